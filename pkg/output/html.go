package output

import (
	"fmt"
	"html/template"
	"io"

	"github.com/ozil111/Compare-File-Tool/pkg/models"
)

var htmlReport = template.Must(template.New("report").Funcs(template.FuncMap{
	"render": models.Render,
	"inc":    func(i int) int { return i + 1 },
	"bytes":  formatBytes,
}).Parse(`<html><head><style>
body { font-family: Arial, sans-serif; }
.identical { color: green; }
.different { color: red; }
.error { color: red; }
.diff-item { margin: 10px 0; padding: 5px; border: 1px solid #ccc; }
</style></head><body>
<p>{{.Result.File1}}{{with .Result.File1Size}} ({{bytes .}}){{end}} vs {{.Result.File2}}{{with .Result.File2Size}} ({{bytes .}}){{end}}</p>
{{- if .Result.Error}}
<div class='error'>Error during comparison: {{.Result.Error}}</div>
{{- else if .Identical}}
<h2 class='identical'>Files are identical{{.Range}}.</h2>
{{- else}}
<h2 class='different'>Files are different. Found {{.Count}} differences:</h2>
{{- end}}
{{- with .Similarity}}
<p>Similarity Index: {{.}}</p>
{{- end}}
{{- if .Result.Differences}}
<div class='diff-list'>
{{- range $i, $d := .Result.Differences}}
{{- if $d.IsOverflow}}
<p class='overflow'>{{$d.Type}}</p>
{{- else}}
<div class='diff-item'>
<h3>Difference {{inc $i}}</h3>
<p>Position: {{$d.Position}}</p>
<p>Expected: <pre>{{render $d.Expected}}</pre></p>
<p>Actual: <pre>{{render $d.Actual}}</pre></p>
<p>Type: {{$d.Type}}</p>
</div>
{{- end}}
{{- end}}
</div>
{{- end}}
</body></html>
`))

// HTMLFormatter renders a result as a standalone HTML report
type HTMLFormatter struct{}

// NewHTMLFormatter creates a new HTML formatter
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

// Format writes the HTML report. All file content is escaped.
func (f *HTMLFormatter) Format(w io.Writer, result *models.ComparisonResult) error {
	var similarity string
	if result.Similarity != nil {
		similarity = fmt.Sprintf("%.2f", *result.Similarity)
	}
	return htmlReport.Execute(w, struct {
		Result     *models.ComparisonResult
		Identical  bool
		Range      string
		Count      int
		Similarity string
	}{
		Result:     result,
		Identical:  result.IsIdentical(),
		Range:      result.Range.Describe(),
		Count:      countDifferences(result),
		Similarity: similarity,
	})
}

// Name returns the formatter name
func (f *HTMLFormatter) Name() string {
	return "html"
}
