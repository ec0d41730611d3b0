package output

import (
	"encoding/json"
	"io"

	"github.com/ozil111/Compare-File-Tool/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes the indented structured form of the result
func (f *JSONFormatter) Format(w io.Writer, result *models.ComparisonResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
