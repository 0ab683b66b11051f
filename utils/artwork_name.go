package utils

import (
	"regexp"
	"strings"
)

var artworkExtRegex = regexp.MustCompile(`(?i)\.(png|jpg|jpeg)$`)

// DisplayNameFromFileName derives a human-readable artwork name from a
// Drive file name: extension stripped, separators collapsed to spaces,
// words title-cased. "skull-badge_v2.PNG" becomes "Skull Badge V2".
func DisplayNameFromFileName(fileName string) string {
	name := artworkExtRegex.ReplaceAllString(fileName, "")
	name = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(name)

	words := strings.Fields(name)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		if len(runes) > 0 {
			runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		}
		words[i] = string(runes)
	}
	if len(words) == 0 {
		return fileName
	}
	return strings.Join(words, " ")
}

// IsSupportedArtworkFile reports whether a file name has a supported image
// extension
func IsSupportedArtworkFile(fileName string) bool {
	return artworkExtRegex.MatchString(fileName)
}
