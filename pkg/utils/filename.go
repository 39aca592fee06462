package utils

import (
	"path/filepath"
	"strings"
)

// DisplayNameFromFilename derives the document display name from an uploaded
// filename: the base name with its final extension removed. A leading or
// trailing dot is not an extension separator, so dotfiles and names ending in
// a dot come back unchanged.
func DisplayNameFromFilename(name string) string {
	base := filepath.Base(name)
	i := strings.LastIndex(base, ".")
	if i <= 0 || i == len(base)-1 {
		return base
	}
	return base[:i]
}

// mimeTypes maps the supported document extensions to the content type sent
// in the upload handshake.
var mimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".csv":  "text/csv",
	".json": "application/json",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// MimeTypeForFilename returns the upload content type for a supported
// document filename. ok is false for anything outside the supported set.
func MimeTypeForFilename(name string) (string, bool) {
	mimeType, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]
	return mimeType, ok
}
