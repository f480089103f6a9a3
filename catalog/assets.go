package catalog

import "strings"

// ResolveAssetURL turns a stored image path into a loadable URL. The
// backend returns relative paths; absolute URLs pass through unchanged
// and an empty path resolves to nothing at all.
func ResolveAssetURL(path, base string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	return base + path
}
