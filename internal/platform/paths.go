package platform

import (
	"path/filepath"
	"runtime"
	"strings"
)

// windowsReserved are the characters Windows rejects in a file name
const windowsReserved = `<>:"|?*`

// PathError describes an input path that cannot be compared
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Reason
}

// InputPath checks a command line file argument and returns it cleaned
// for the current platform
func InputPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", &PathError{Path: path, Reason: "path is empty"}
	}
	if strings.IndexByte(path, 0) >= 0 {
		return "", &PathError{Path: path, Reason: "path contains a NUL byte"}
	}

	if runtime.GOOS != "windows" {
		return filepath.Clean(path), nil
	}

	unc := strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "//")
	rest := path
	if !unc && len(rest) >= 2 && rest[1] == ':' {
		rest = rest[2:]
	}
	if i := strings.IndexAny(rest, windowsReserved); i >= 0 && !unc {
		return "", &PathError{Path: path, Reason: "path contains invalid character: " + string(rest[i])}
	}

	cleaned := filepath.Clean(path)
	// Clean collapses the leading separator pair of a share name
	if unc && !strings.HasPrefix(cleaned, `\\`) {
		cleaned = `\` + cleaned
	}
	return cleaned, nil
}

// Ext returns the lower-cased extension of path, dot included
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
