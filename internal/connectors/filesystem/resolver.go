package filesystem

import "strings"

// ResolvePath converts a filesystem URI to a local path.
// Handles file:// URIs and bare paths.
func ResolvePath(uri string) string {
	// Strip file:// prefix for local paths
	if strings.HasPrefix(uri, "file://") {
		return strings.TrimPrefix(uri, "file://")
	}
	// Bare paths pass through unchanged
	return uri
}
