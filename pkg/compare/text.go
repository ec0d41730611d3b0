package compare

import (
	"context"
	"fmt"
	"slices"
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/ozil111/Compare-File-Tool/pkg/logging"
	"github.com/ozil111/Compare-File-Tool/pkg/models"
	"github.com/ozil111/Compare-File-Tool/pkg/storage"
)

// TextComparator compares decoded text line by line
type TextComparator struct {
	base
	decoder textDecoder
}

// NewTextComparator creates a line based text comparator
func NewTextComparator(opts Options) (*TextComparator, error) {
	b, err := newBase("text", opts)
	if err != nil {
		return nil, err
	}
	dec, err := newTextDecoder(opts.Encoding)
	if err != nil {
		return nil, err
	}
	return &TextComparator{base: b, decoder: dec}, nil
}

// ReadContent decodes path and returns its selected lines and columns
func (c *TextComparator) ReadContent(ctx context.Context, backend storage.Backend, path string, rng models.Range) (Content, error) {
	return readLines(ctx, backend, c.decoder, path, rng, true)
}

// CompareContent aligns the two line sequences and reports changed,
// removed and added lines
func (c *TextComparator) CompareContent(content1, content2 Content) (bool, []models.Difference, error) {
	l1, ok1 := content1.(Lines)
	l2, ok2 := content2.(Lines)
	if !ok1 || !ok2 {
		return false, nil, unexpectedContent(c.name, content1, content2)
	}

	if slices.Equal(l1.Lines, l2.Lines) {
		return true, nil, nil
	}

	diffs, err := diffLines(l1, l2, c.maxDiffs)
	if err != nil {
		return false, nil, err
	}
	c.logger.Debug(context.Background(), "text content differs", logging.Fields{
		"lines1":      len(l1.Lines),
		"lines2":      len(l2.Lines),
		"differences": len(diffs),
	})
	return false, diffs, nil
}

// lineRef is one line of a pending change hunk with its 0-based index
type lineRef struct {
	index int
	text  string
}

// lineRunes maps each distinct line to one rune so that the diff runs
// over whole lines. Surrogate code points are skipped because they do
// not survive the rune to string conversions inside the diff.
type lineRunes struct {
	runes map[string]rune
	lines []string // indexed by rune - firstLineRune, surrogates excluded
	next  rune
}

const (
	firstLineRune = rune(1)
	surrogateMin  = rune(0xD800)
	surrogateMax  = rune(0xDFFF)
)

func newLineRunes() *lineRunes {
	return &lineRunes{runes: make(map[string]rune), next: firstLineRune}
}

func (m *lineRunes) encode(lines []string) ([]rune, error) {
	out := make([]rune, len(lines))
	for i, line := range lines {
		r, ok := m.runes[line]
		if !ok {
			if m.next > unicode.MaxRune {
				return nil, fmt.Errorf("too many distinct lines: more than %d", len(m.lines))
			}
			r = m.next
			m.runes[line] = r
			m.lines = append(m.lines, line)
			m.next++
			if m.next == surrogateMin {
				m.next = surrogateMax + 1
			}
		}
		out[i] = r
	}
	return out, nil
}

func (m *lineRunes) decode(text string) []string {
	runes := []rune(text)
	lines := make([]string, len(runes))
	for i, r := range runes {
		idx := int(r - firstLineRune)
		if r > surrogateMax {
			idx -= int(surrogateMax - surrogateMin + 1)
		}
		lines[i] = m.lines[idx]
	}
	return lines
}

// diffLines runs a line level diff. Removed and added lines of the same
// hunk are paired into content differences; leftovers become missing or
// extra lines. Positions are 1-based file line numbers.
func diffLines(l1, l2 Lines, maxDiffs int) ([]models.Difference, error) {
	table := newLineRunes()
	runes1, err := table.encode(l1.Lines)
	if err != nil {
		return nil, err
	}
	runes2, err := table.encode(l2.Lines)
	if err != nil {
		return nil, err
	}

	dmp := diffmatchpatch.New()
	hunks := dmp.DiffMainRunes(runes1, runes2, false)

	diffs := newCollector(maxDiffs)
	var removed, added []lineRef
	i1, i2 := 0, 0

	flush := func() {
		paired := min(len(removed), len(added))
		for k := 0; k < paired; k++ {
			diffs.add(models.Difference{
				Position: lineLabel(l1.Start + removed[k].index),
				Expected: removed[k].text,
				Actual:   added[k].text,
				Type:     models.DiffContent,
			})
		}
		for _, ref := range removed[paired:] {
			diffs.add(models.Difference{
				Position: lineLabel(l1.Start + ref.index),
				Expected: ref.text,
				Type:     models.DiffMissing,
			})
		}
		for _, ref := range added[paired:] {
			diffs.add(models.Difference{
				Position: lineLabel(l2.Start + ref.index),
				Actual:   ref.text,
				Type:     models.DiffExtra,
			})
		}
		removed, added = removed[:0], added[:0]
	}

	for _, hunk := range hunks {
		if diffs.done() {
			break
		}
		lines := table.decode(hunk.Text)
		switch hunk.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			i1 += len(lines)
			i2 += len(lines)
		case diffmatchpatch.DiffDelete:
			for _, line := range lines {
				removed = append(removed, lineRef{index: i1, text: line})
				i1++
			}
		case diffmatchpatch.DiffInsert:
			for _, line := range lines {
				added = append(added, lineRef{index: i2, text: line})
				i2++
			}
		}
	}
	flush()

	return diffs.result(), nil
}

func lineLabel(index int) string {
	return fmt.Sprintf("line %d", index+1)
}
