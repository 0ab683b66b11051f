package models

// ArtworkFile is an image found in the artwork library's Drive folder
type ArtworkFile struct {
	DriveFileID string `json:"driveFileId"`
	FileName    string `json:"fileName"`
	DisplayName string `json:"displayName"`
	ImageURL    string `json:"imageUrl"`
}

// ArtworkAsset is a synced artwork row. Its ImageURL is a valid imageRef
// source for image elements in the mockup builder.
type ArtworkAsset struct {
	ID          int64  `json:"id"`
	DriveFileID string `json:"driveFileId"`
	DisplayName string `json:"displayName"`
	ImageURL    string `json:"imageUrl"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt"`
}

// ArtworkSyncResponse reports the outcome of a sync run
type ArtworkSyncResponse struct {
	Status   string `json:"status"`
	Total    int    `json:"total"`
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"`
}
