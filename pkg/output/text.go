package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ozil111/Compare-File-Tool/pkg/models"
)

// TextFormatter renders a result as plain text, optionally coloured
type TextFormatter struct {
	ok    *color.Color
	bad   *color.Color
	muted *color.Color
}

// NewTextFormatter creates a text formatter
func NewTextFormatter(colorize bool) *TextFormatter {
	f := &TextFormatter{
		ok:    color.New(color.FgGreen, color.Bold),
		bad:   color.New(color.FgRed, color.Bold),
		muted: color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{f.ok, f.bad, f.muted} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

// Format writes the result summary and one numbered line per difference
func (f *TextFormatter) Format(w io.Writer, result *models.ComparisonResult) error {
	if result.HasError() {
		_, err := fmt.Fprintf(w, "%s\n", f.bad.Sprintf("Error during comparison: %s", result.Error))
		return err
	}

	if result.IsIdentical() {
		if _, err := fmt.Fprintf(w, "%s\n", f.ok.Sprintf("Files are identical%s.", result.Range.Describe())); err != nil {
			return err
		}
	} else {
		header := f.bad.Sprintf("Files are different. Found %d differences:", countDifferences(result))
		if _, err := fmt.Fprintf(w, "%s\n", header); err != nil {
			return err
		}
		for i, d := range result.Differences {
			line := fmt.Sprintf("%d. %s", i+1, d)
			if d.IsOverflow() {
				line = f.muted.Sprintf("... %s", d)
			}
			if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
				return err
			}
		}
	}

	if result.Similarity != nil {
		if _, err := fmt.Fprintf(w, "Similarity Index: %.2f\n", *result.Similarity); err != nil {
			return err
		}
	}
	return nil
}

// Name returns the formatter name
func (f *TextFormatter) Name() string {
	return "text"
}
