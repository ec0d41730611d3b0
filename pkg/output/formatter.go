package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ozil111/Compare-File-Tool/pkg/models"
)

// Formatter defines the interface for rendering a comparison result
// Implementations include text, JSON and HTML formatters
type Formatter interface {
	// Format writes the rendered result to w
	Format(w io.Writer, result *models.ComparisonResult) error

	// Name returns the formatter name
	Name() string
}

// NewFormatter returns the formatter registered under name.
// colorize only affects the text formatter.
func NewFormatter(name string, colorize bool) (Formatter, error) {
	switch name {
	case "", "text":
		return NewTextFormatter(colorize), nil
	case "json":
		return NewJSONFormatter(), nil
	case "html":
		return NewHTMLFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", name)
	}
}

// IsTerminal reports whether w is attached to a terminal
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// formatBytes formats bytes in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// countDifferences returns the number of reported differences, not
// counting the overflow entry
func countDifferences(result *models.ComparisonResult) int {
	n := len(result.Differences)
	if result.Truncated() {
		n--
	}
	return n
}
