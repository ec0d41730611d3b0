package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozil111/Compare-File-Tool/pkg/models"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"Empty", "", []string{}},
		{"SingleNoNewline", "a", []string{"a"}},
		{"TrailingNewline", "a\nb\n", []string{"a", "b"}},
		{"OnlyNewline", "\n", []string{""}},
		{"BlankLines", "a\n\nb", []string{"a", "", "b"}},
		{"CRLF", "a\r\nb\r\n", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitLines(tt.text))
		})
	}
}

func TestSelectLines(t *testing.T) {
	lines := []string{"0", "1", "2", "3"}

	assert.Equal(t, lines, selectLines(lines, models.Range{}))
	assert.Equal(t, []string{"1", "2"}, selectLines(lines, models.Range{StartLine: 1, EndLine: models.Bound(2)}))
	assert.Equal(t, []string{"2", "3"}, selectLines(lines, models.Range{StartLine: 2, EndLine: models.Bound(99)}))
	assert.Empty(t, selectLines(lines, models.Range{StartLine: 10}))
}

func TestSliceColumnsOf(t *testing.T) {
	tests := []struct {
		name string
		line string
		rng  models.Range
		want string
	}{
		{"Full", "abcdef", models.Range{}, "abcdef"},
		{"Inclusive", "abcdef", models.Range{StartColumn: 1, EndColumn: models.Bound(3)}, "bcd"},
		{"OpenEnd", "abcdef", models.Range{StartColumn: 4}, "ef"},
		{"ClippedEnd", "abc", models.Range{StartColumn: 1, EndColumn: models.Bound(10)}, "bc"},
		{"StartPastEnd", "abc", models.Range{StartColumn: 5}, ""},
		{"Runes", "héllo", models.Range{StartColumn: 1, EndColumn: models.Bound(2)}, "él"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sliceColumnsOf(tt.line, tt.rng))
		})
	}
}

func TestTextDecoder(t *testing.T) {
	t.Run("UTF8Aliases", func(t *testing.T) {
		for _, name := range []string{"", "utf-8", "UTF8", "utf_8"} {
			dec, err := newTextDecoder(name)
			require.NoError(t, err, name)
			assert.Nil(t, dec.enc)
		}
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		dec, err := newTextDecoder("utf-8")
		require.NoError(t, err)

		_, err = dec.decode("bad.txt", []byte{'a', 0xff, 'b'})
		var perr *models.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "bad.txt", perr.Path)
	})

	t.Run("Latin1", func(t *testing.T) {
		dec, err := newTextDecoder("latin1")
		require.NoError(t, err)

		text, err := dec.decode("latin.txt", []byte{'c', 'a', 'f', 0xe9})
		require.NoError(t, err)
		assert.Equal(t, "café", text)
	})

	t.Run("IANAName", func(t *testing.T) {
		dec, err := newTextDecoder("ISO-8859-1")
		require.NoError(t, err)

		text, err := dec.decode("latin.txt", []byte{0xe9, 't', 0xe9})
		require.NoError(t, err)
		assert.Equal(t, "été", text)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := newTextDecoder("klingon")
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "encoding", verr.Field)
	})
}

func TestTextComparator_Encoding(t *testing.T) {
	h := NewTestHelper(t)
	c := mustCreate(t, "text", Options{Encoding: "latin1"})

	content, err := h.Read(c, "caf\xe9\n", models.Range{})
	require.NoError(t, err)
	assert.Equal(t, Lines{Lines: []string{"café"}}, content)

	utf8 := mustCreate(t, "text", Options{})
	_, err = h.Read(utf8, "caf\xe9\n", models.Range{})
	var perr *models.ParseError
	assert.ErrorAs(t, err, &perr)
}
