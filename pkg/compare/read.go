package compare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/ozil111/Compare-File-Tool/pkg/models"
	"github.com/ozil111/Compare-File-Tool/pkg/storage"
)

// textDecoder turns raw file bytes into text in a configured encoding.
// A nil enc means UTF-8, which only needs validation.
type textDecoder struct {
	name string
	enc  encoding.Encoding
}

func newTextDecoder(name string) (textDecoder, error) {
	if name == "" {
		name = DefaultEncoding
	}
	if isUTF8(name) {
		return textDecoder{name: name}, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		// WHATWG labels cover common aliases such as latin1 and cp1252
		enc, err = htmlindex.Get(name)
	}
	if err != nil || enc == nil {
		return textDecoder{}, &models.ValidationError{
			Field:   "encoding",
			Message: fmt.Sprintf("unsupported encoding %q", name),
		}
	}
	return textDecoder{name: name, enc: enc}, nil
}

func isUTF8(name string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(name, "_", "-"))
	return normalized == "utf-8" || normalized == "utf8"
}

func (d textDecoder) decode(path string, data []byte) (string, error) {
	if d.enc == nil {
		if !utf8.Valid(data) {
			return "", &models.ParseError{
				Path:   path,
				Format: d.name + " text",
				Err:    errors.New("invalid byte sequence"),
			}
		}
		return string(data), nil
	}

	out, err := d.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", &models.ParseError{Path: path, Format: d.name + " text", Err: err}
	}
	return string(out), nil
}

// readAll opens path through the backend and reads it fully
func readAll(ctx context.Context, backend storage.Backend, path string) ([]byte, error) {
	r, err := backend.Read(ctx, path)
	if err != nil {
		return nil, &models.FileAccessError{Path: path, Err: err}
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &models.FileAccessError{Path: path, Err: err}
	}
	return data, nil
}

// readBytes returns the bytes of path between the range's line bounds,
// which binary comparison interprets as byte offsets
func readBytes(ctx context.Context, backend storage.Backend, path string, rng models.Range) ([]byte, error) {
	if err := rng.ValidateLines(); err != nil {
		return nil, err
	}

	r, err := backend.Read(ctx, path)
	if err != nil {
		return nil, &models.FileAccessError{Path: path, Err: err}
	}
	defer r.Close()

	if rng.StartLine > 0 {
		if seeker, ok := r.(io.Seeker); ok {
			if _, err := seeker.Seek(int64(rng.StartLine), io.SeekStart); err != nil {
				return nil, &models.FileAccessError{Path: path, Err: err}
			}
		} else if _, err := io.CopyN(io.Discard, r, int64(rng.StartLine)); err != nil && !errors.Is(err, io.EOF) {
			return nil, &models.FileAccessError{Path: path, Err: err}
		}
	}

	var src io.Reader = r
	if rng.EndLine != nil {
		src = io.LimitReader(r, int64(*rng.EndLine-rng.StartLine))
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, &models.FileAccessError{Path: path, Err: err}
	}
	return data, nil
}

// readLines decodes path and returns the lines selected by the range,
// each sliced to the range's columns
func readLines(ctx context.Context, backend storage.Backend, dec textDecoder, path string, rng models.Range, sliceColumns bool) (Lines, error) {
	if err := rng.Validate(); err != nil {
		return Lines{}, err
	}

	data, err := readAll(ctx, backend, path)
	if err != nil {
		return Lines{}, err
	}

	text, err := dec.decode(path, data)
	if err != nil {
		return Lines{}, err
	}

	lines := selectLines(splitLines(text), rng)
	if sliceColumns {
		for i, line := range lines {
			lines[i] = sliceColumnsOf(line, rng)
		}
	}
	return Lines{Start: rng.StartLine, Lines: lines}, nil
}

// splitLines splits on line feeds and drops terminators. A trailing
// line feed does not start a new line.
func splitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func selectLines(lines []string, rng models.Range) []string {
	start := min(rng.StartLine, len(lines))
	end := len(lines)
	if rng.EndLine != nil {
		end = min(*rng.EndLine+1, len(lines))
	}
	if end < start {
		end = start
	}
	return lines[start:end]
}

// sliceColumnsOf cuts a line to the inclusive column range, counted in
// characters and clipped to the line length
func sliceColumnsOf(line string, rng models.Range) string {
	if rng.StartColumn == 0 && rng.EndColumn == nil {
		return line
	}
	runes := []rune(line)
	start := min(rng.StartColumn, len(runes))
	end := len(runes)
	if rng.EndColumn != nil {
		end = min(*rng.EndColumn+1, len(runes))
	}
	if end < start {
		end = start
	}
	return string(runes[start:end])
}
