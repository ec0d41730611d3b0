package cli

import (
	"github.com/ozil111/Compare-File-Tool/internal/platform"
)

// textExtensions are the extensions treated as plain text
var textExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".py":   true,
	".java": true,
	".c":    true,
	".cpp":  true,
	".h":    true,
	".js":   true,
	".html": true,
	".css":  true,
	".bdf":  true,
	".f06":  true,
}

// DetectFileType maps a file name to a comparator tag by extension.
// Unknown extensions are compared as binary.
func DetectFileType(path string) string {
	ext := platform.Ext(path)
	switch {
	case textExtensions[ext]:
		return "text"
	case ext == ".json":
		return "json"
	case ext == ".xml":
		return "xml"
	case ext == ".csv":
		return "csv"
	case ext == ".h5" || ext == ".hdf5" || ext == ".he5":
		return "h5"
	default:
		return "binary"
	}
}
