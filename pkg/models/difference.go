package models

import (
	"encoding/json"
	"fmt"
)

// DiffType categorizes a single reported difference
type DiffType string

const (
	// DiffSize indicates the compared contents have different lengths
	DiffSize DiffType = "size"
	// DiffContent indicates differing bytes or lines
	DiffContent DiffType = "content"
	// DiffMissing indicates a line present only in the first file
	DiffMissing DiffType = "missing"
	// DiffExtra indicates a line present only in the second file
	DiffExtra DiffType = "extra"

	// CSV differences
	DiffRowCount    DiffType = "row_count_mismatch"
	DiffColumnCount DiffType = "column_count_mismatch"
	DiffCell        DiffType = "cell_mismatch"

	// JSON differences
	DiffTypeMismatch DiffType = "type_mismatch"
	DiffMissingKey   DiffType = "missing_key"
	DiffExtraKey     DiffType = "extra_key"
	DiffLength       DiffType = "length_mismatch"
	DiffValue        DiffType = "value_mismatch"
	DiffMissingItem  DiffType = "missing_item"
	DiffExtraItem    DiffType = "extra_item"

	// XML differences
	DiffTag              DiffType = "tag_mismatch"
	DiffMissingAttribute DiffType = "missing_attribute"
	DiffExtraAttribute   DiffType = "extra_attribute"
	DiffText             DiffType = "text_mismatch"
	DiffChildrenCount    DiffType = "children_count_mismatch"

	// DiffOverflow marks the terminal entry appended when more differences
	// exist than were reported
	DiffOverflow DiffType = "more differences not shown"
)

// Difference is one reported discrepancy between two contents.
// Position is format specific (byte offset, row/column, JSON path, XML
// path) and is empty for the overflow entry. Expected and Actual hold
// the representation of each side.
type Difference struct {
	Position string
	Expected any
	Actual   any
	Type     DiffType
}

// Overflow returns the sentinel entry signalling truncated output
func Overflow() Difference {
	return Difference{Type: DiffOverflow}
}

// IsOverflow reports whether d is the overflow sentinel
func (d Difference) IsOverflow() bool {
	return d.Type == DiffOverflow
}

// String renders the difference as a single human-readable line
func (d Difference) String() string {
	switch d.Type {
	case DiffOverflow:
		return string(DiffOverflow)
	case DiffMissing:
		return fmt.Sprintf("Missing content at %s: '%s'", d.Position, Render(d.Expected))
	case DiffExtra:
		return fmt.Sprintf("Extra content at %s: '%s'", d.Position, Render(d.Actual))
	default:
		return fmt.Sprintf("At %s: expected '%s', got '%s' (%s)",
			d.Position, Render(d.Expected), Render(d.Actual), d.Type)
	}
}

// MarshalJSON encodes the difference with snake_case keys. An empty
// position is encoded as null.
func (d Difference) MarshalJSON() ([]byte, error) {
	var position *string
	if d.Position != "" {
		position = &d.Position
	}
	return json.Marshal(struct {
		Position *string `json:"position"`
		Expected any     `json:"expected"`
		Actual   any     `json:"actual"`
		DiffType string  `json:"diff_type"`
	}{
		Position: position,
		Expected: d.Expected,
		Actual:   d.Actual,
		DiffType: string(d.Type),
	})
}

// Render converts an expected/actual value to display text. Strings are
// returned unchanged, nil becomes "null" and structured values are
// rendered as compact JSON.
func Render(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", val)
	}
}
