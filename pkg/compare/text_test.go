package compare

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozil111/Compare-File-Tool/pkg/models"
)

func TestTextComparator(t *testing.T) {
	tests := []struct {
		name     string
		content1 string
		content2 string
		rng      models.Range
		want     []models.Difference
	}{
		{
			name:     "Identical",
			content1: "a\nb\nc\n",
			content2: "a\nb\nc\n",
		},
		{
			name:     "TrailingNewlineIgnored",
			content1: "a\nb",
			content2: "a\nb\n",
		},
		{
			name:     "ChangedLine",
			content1: "a\nb\nc\n",
			content2: "a\nx\nc\n",
			want: []models.Difference{
				{Position: "line 2", Expected: "b", Actual: "x", Type: models.DiffContent},
			},
		},
		{
			name:     "AddedLine",
			content1: "a\nb\nc\n",
			content2: "a\nb\nc\nd\n",
			want: []models.Difference{
				{Position: "line 4", Actual: "d", Type: models.DiffExtra},
			},
		},
		{
			name:     "RemovedLine",
			content1: "a\nb\nc\n",
			content2: "a\nc\n",
			want: []models.Difference{
				{Position: "line 2", Expected: "b", Type: models.DiffMissing},
			},
		},
		{
			name:     "LineRangeNumbersFromFile",
			content1: "l1\nl2\nl3\nl4\n",
			content2: "l1\nl2\nX\nl4\n",
			rng:      models.Range{StartLine: 2},
			want: []models.Difference{
				{Position: "line 3", Expected: "l3", Actual: "X", Type: models.DiffContent},
			},
		},
		{
			name:     "LineRangeExcludesDifference",
			content1: "same\nalso\nold\n",
			content2: "same\nalso\nnew\n",
			rng:      models.Range{EndLine: models.Bound(1)},
		},
		{
			name:     "ColumnRangeExcludesDifference",
			content1: "abcdef\n",
			content2: "abXdef\n",
			rng:      models.Range{StartColumn: 3},
		},
		{
			name:     "ColumnRangeClipped",
			content1: "ab\nabcdef\n",
			content2: "ab\nabcdXX\n",
			rng:      models.Range{StartColumn: 1, EndColumn: models.Bound(3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHelper(t)
			result := h.Compare(mustCreate(t, "text", Options{}), tt.content1, tt.content2, tt.rng)

			if len(tt.want) == 0 {
				assertIdentical(t, result)
				return
			}
			assertDifferent(t, result)
			assertDifferences(t, tt.want, result.Differences)
		})
	}
}

func TestTextComparator_Overflow(t *testing.T) {
	var left, right []string
	for i := 0; i < 20; i++ {
		left = append(left, fmt.Sprintf("left %d", i))
		right = append(right, fmt.Sprintf("right %d", i))
	}

	c := mustCreate(t, "text", Options{})
	identical, diffs, err := c.CompareContent(Lines{Lines: left}, Lines{Lines: right})
	require.NoError(t, err)
	assert.False(t, identical)

	require.Len(t, diffs, DefaultMaxDiffs+1)
	assert.Equal(t, models.Difference{
		Position: "line 1",
		Expected: "left 0",
		Actual:   "right 0",
		Type:     models.DiffContent,
	}, diffs[0])
	assert.True(t, diffs[DefaultMaxDiffs].IsOverflow())
}

func TestTextComparator_MaxDiffsOption(t *testing.T) {
	left := strings.Split("a b c d e", " ")
	right := strings.Split("1 2 3 4 5", " ")

	c := mustCreate(t, "text", Options{MaxDiffs: 2})
	_, diffs, err := c.CompareContent(Lines{Lines: left}, Lines{Lines: right})
	require.NoError(t, err)

	require.Len(t, diffs, 3)
	assert.True(t, diffs[2].IsOverflow())
}

func TestTextComparator_ReadContent(t *testing.T) {
	h := NewTestHelper(t)
	c := mustCreate(t, "text", Options{})

	content, err := h.Read(c, "zero\none\ntwo\nthree\n", models.Range{
		StartLine:   1,
		EndLine:     models.Bound(2),
		StartColumn: 1,
		EndColumn:   models.Bound(2),
	})
	require.NoError(t, err)
	assert.Equal(t, Lines{Start: 1, Lines: []string{"ne", "wo"}}, content)
}

func numberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line-%d", i)
	}
	return lines
}

func TestTextComparator_ManyDistinctLines(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		change int
	}{
		{name: "TwoDigitIndexes", count: 20, change: 12},
		{name: "PastSurrogateRange", count: 60000, change: 59990},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left := numberedLines(tt.count)
			right := numberedLines(tt.count)
			right[tt.change] = "CHANGED"

			c := mustCreate(t, "text", Options{})
			identical, diffs, err := c.CompareContent(Lines{Lines: left}, Lines{Lines: right})
			require.NoError(t, err)
			assert.False(t, identical)
			assertDifferences(t, []models.Difference{{
				Position: fmt.Sprintf("line %d", tt.change+1),
				Expected: fmt.Sprintf("line-%d", tt.change),
				Actual:   "CHANGED",
				Type:     models.DiffContent,
			}}, diffs)
		})
	}
}

func TestTextComparator_InsertAmongManyLines(t *testing.T) {
	left := numberedLines(30)
	right := append(append(append([]string{}, left[:17]...), "inserted"), left[17:]...)

	c := mustCreate(t, "text", Options{})
	_, diffs, err := c.CompareContent(Lines{Lines: left}, Lines{Lines: right})
	require.NoError(t, err)
	assertDifferences(t, []models.Difference{
		{Position: "line 18", Actual: "inserted", Type: models.DiffExtra},
	}, diffs)
}

func TestLineRunes(t *testing.T) {
	table := newLineRunes()
	lines := numberedLines(int(surrogateMin) + 10)

	runes, err := table.encode(lines)
	require.NoError(t, err)

	for _, r := range runes {
		if r >= surrogateMin && r <= surrogateMax {
			t.Fatalf("line mapped to surrogate %U", r)
		}
	}
	assert.Equal(t, surrogateMax+1, runes[surrogateMin-firstLineRune])

	again, err := table.encode([]string{"line-0", "line-0"})
	require.NoError(t, err)
	assert.Equal(t, []rune{firstLineRune, firstLineRune}, again)

	assert.Equal(t, lines, table.decode(string(runes)))
}
