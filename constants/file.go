package constants

import "strings"

// AllowedExtensions holds the image extensions accepted for card uploads.
var AllowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"bmp":  {},
	"tiff": {},
}

// MaxUploadBytes caps the accepted upload size.
const MaxUploadBytes = 16 << 20

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt reports whether the (possibly dotted) extension is accepted.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
