package compare

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/ozil111/Compare-File-Tool/pkg/logging"
	"github.com/ozil111/Compare-File-Tool/pkg/models"
	"github.com/ozil111/Compare-File-Tool/pkg/storage"
)

// CSVComparator compares delimited files cell by cell
type CSVComparator struct {
	base
	decoder   textDecoder
	delimiter rune
	quote     rune
}

// NewCSVComparator creates a CSV comparator with the configured dialect
func NewCSVComparator(opts Options) (*CSVComparator, error) {
	b, err := newBase("csv", opts)
	if err != nil {
		return nil, err
	}
	dec, err := newTextDecoder(opts.Encoding)
	if err != nil {
		return nil, err
	}
	delimiter, err := singleRune("csv_delimiter", opts.Delimiter, ',')
	if err != nil {
		return nil, err
	}
	quote, err := singleRune("csv_quote", opts.QuoteChar, '"')
	if err != nil {
		return nil, err
	}
	if delimiter == quote {
		return nil, &models.ValidationError{Field: "csv_quote", Message: "must differ from the delimiter"}
	}

	return &CSVComparator{
		base:      b,
		decoder:   dec,
		delimiter: delimiter,
		quote:     quote,
	}, nil
}

// ReadContent parses the selected lines of path into records. The column
// range selects cells of every record rather than characters.
func (c *CSVComparator) ReadContent(ctx context.Context, backend storage.Backend, path string, rng models.Range) (Content, error) {
	lines, err := readLines(ctx, backend, c.decoder, path, rng, false)
	if err != nil {
		return nil, err
	}

	rows := parseRecords(strings.Join(lines.Lines, "\n"), c.delimiter, c.quote)
	for i, row := range rows {
		rows[i] = selectCells(row, rng)
	}
	return Rows(rows), nil
}

// CompareContent reports row count, column count and cell differences
func (c *CSVComparator) CompareContent(content1, content2 Content) (bool, []models.Difference, error) {
	rows1, ok1 := content1.(Rows)
	rows2, ok2 := content2.(Rows)
	if !ok1 || !ok2 {
		return false, nil, unexpectedContent(c.name, content1, content2)
	}

	if slices.EqualFunc(rows1, rows2, slices.Equal[[]string]) {
		return true, nil, nil
	}

	diffs := newCollector(c.maxDiffs)
	if len(rows1) != len(rows2) {
		diffs.add(models.Difference{
			Position: "row count",
			Expected: fmt.Sprintf("%d rows", len(rows1)),
			Actual:   fmt.Sprintf("%d rows", len(rows2)),
			Type:     models.DiffRowCount,
		})
	}

	for i := 0; i < min(len(rows1), len(rows2)) && !diffs.done(); i++ {
		row1, row2 := rows1[i], rows2[i]
		if len(row1) != len(row2) {
			diffs.add(models.Difference{
				Position: fmt.Sprintf("row %d", i+1),
				Expected: fmt.Sprintf("%d columns", len(row1)),
				Actual:   fmt.Sprintf("%d columns", len(row2)),
				Type:     models.DiffColumnCount,
			})
		}
		for j := 0; j < min(len(row1), len(row2)) && !diffs.done(); j++ {
			if row1[j] != row2[j] {
				diffs.add(models.Difference{
					Position: fmt.Sprintf("row %d, column %d", i+1, j+1),
					Expected: row1[j],
					Actual:   row2[j],
					Type:     models.DiffCell,
				})
			}
		}
	}

	c.logger.Debug(context.Background(), "csv content differs", logging.Fields{
		"rows1":       len(rows1),
		"rows2":       len(rows2),
		"differences": len(diffs.result()),
	})
	return false, diffs.result(), nil
}

func selectCells(row []string, rng models.Range) []string {
	if rng.StartColumn == 0 && rng.EndColumn == nil {
		return row
	}
	start := min(rng.StartColumn, len(row))
	end := len(row)
	if rng.EndColumn != nil {
		end = min(*rng.EndColumn+1, len(row))
	}
	if end < start {
		end = start
	}
	return row[start:end]
}

// parseRecords splits text into records of fields. A field starting with
// the quote character runs until the matching quote and may contain
// delimiters and line feeds; a doubled quote inside it is a literal quote.
// Blank lines produce empty records.
func parseRecords(text string, delimiter, quote rune) [][]string {
	rows := [][]string{}
	row := []string{}
	var field strings.Builder
	inQuotes := false
	atFieldStart := true
	rowStarted := false

	endRow := func() {
		if rowStarted {
			row = append(row, field.String())
		}
		rows = append(rows, row)
		row = []string{}
		field.Reset()
		atFieldStart = true
		rowStarted = false
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if inQuotes {
			if r == quote {
				if i+1 < len(runes) && runes[i+1] == quote {
					field.WriteRune(quote)
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field.WriteRune(r)
			continue
		}

		switch {
		case r == delimiter:
			row = append(row, field.String())
			field.Reset()
			atFieldStart = true
			rowStarted = true
		case r == '\n':
			endRow()
		case r == '\r' && i+1 < len(runes) && runes[i+1] == '\n':
			// handled by the following line feed
		case r == quote && atFieldStart:
			inQuotes = true
			atFieldStart = false
			rowStarted = true
		default:
			field.WriteRune(r)
			atFieldStart = false
			rowStarted = true
		}
	}

	if rowStarted {
		endRow()
	}
	return rows
}
