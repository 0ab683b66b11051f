package service

import "mockup-studio/models"

// DriveServiceInterface defines the contract for the artwork library's
// Google Drive source
type DriveServiceInterface interface {
	ListArtworkFiles(folderID string) ([]models.ArtworkFile, error)
	DownloadImage(fileID string) ([]byte, error)
}
