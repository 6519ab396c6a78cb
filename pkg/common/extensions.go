package common

import "strings"

// IsImageFormat returns true if the URL (or file path) points to a raster image format we can decode.
func IsImageFormat(url string) bool {
	return strings.HasSuffix(url, ".jpg") ||
		strings.HasSuffix(url, ".jpeg") ||
		strings.HasSuffix(url, ".png") ||
		strings.HasSuffix(url, ".gif")
}
