package compare

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/ozil111/Compare-File-Tool/pkg/logging"
	"github.com/ozil111/Compare-File-Tool/pkg/models"
	"github.com/ozil111/Compare-File-Tool/pkg/storage"
)

// JSONComparator compares decoded JSON documents structurally
type JSONComparator struct {
	base
	decoder    textDecoder
	mode       JSONMode
	keyFields  []string
	filterKeys []string
}

// NewJSONComparator creates a JSON comparator in exact or key-based mode
func NewJSONComparator(opts Options) (*JSONComparator, error) {
	b, err := newBase("json", opts)
	if err != nil {
		return nil, err
	}
	dec, err := newTextDecoder(opts.Encoding)
	if err != nil {
		return nil, err
	}

	mode := opts.CompareMode
	if mode == "" {
		mode = JSONExact
	}
	if mode != JSONExact && mode != JSONKeyBased {
		return nil, &models.ValidationError{
			Field:   "json_compare_mode",
			Message: fmt.Sprintf("must be %q or %q, got %q", JSONExact, JSONKeyBased, mode),
		}
	}

	return &JSONComparator{
		base:       b,
		decoder:    dec,
		mode:       mode,
		keyFields:  opts.KeyFields,
		filterKeys: opts.FilterKeys,
	}, nil
}

// ReadContent decodes the selected lines of path as one JSON document.
// A top-level object is projected onto the filter keys when set.
func (c *JSONComparator) ReadContent(ctx context.Context, backend storage.Backend, path string, rng models.Range) (Content, error) {
	lines, err := readLines(ctx, backend, c.decoder, path, rng, true)
	if err != nil {
		return nil, err
	}

	value, err := decodeJSON(strings.Join(lines.Lines, "\n"))
	if err != nil {
		return nil, &models.ParseError{Path: path, Format: "JSON", Err: err}
	}

	if obj, ok := value.(map[string]any); ok && len(c.filterKeys) > 0 {
		projected := make(map[string]any, len(c.filterKeys))
		for _, key := range c.filterKeys {
			if v, ok := obj[key]; ok {
				projected[key] = v
			}
		}
		value = projected
	}
	return JSONValue{Value: value}, nil
}

func decodeJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return value, nil
}

// CompareContent walks both documents and reports structural differences.
// The documents are identical when the walk finds none.
func (c *JSONComparator) CompareContent(content1, content2 Content) (bool, []models.Difference, error) {
	v1, ok1 := content1.(JSONValue)
	v2, ok2 := content2.(JSONValue)
	if !ok1 || !ok2 {
		return false, nil, unexpectedContent(c.name, content1, content2)
	}

	if cmp.Equal(v1.Value, v2.Value) {
		return true, nil, nil
	}

	d := &jsonDiffer{
		keyBased:  c.mode == JSONKeyBased,
		keyFields: c.keyFields,
		diffs:     newCollector(c.maxDiffs),
	}
	d.compare(v1.Value, v2.Value, "")

	diffs := d.diffs.result()
	c.logger.Debug(context.Background(), "json content compared", logging.Fields{
		"mode":        string(c.mode),
		"differences": len(diffs),
	})
	return len(diffs) == 0, diffs, nil
}

type jsonDiffer struct {
	keyBased  bool
	keyFields []string
	diffs     *collector
}

func (d *jsonDiffer) compare(v1, v2 any, path string) {
	if d.diffs.done() {
		return
	}

	t1, t2 := jsonType(v1), jsonType(v2)
	if t1 != t2 {
		d.diffs.add(models.Difference{
			Position: positionOrRoot(path),
			Expected: fmt.Sprintf("%s: %s", t1, models.Render(v1)),
			Actual:   fmt.Sprintf("%s: %s", t2, models.Render(v2)),
			Type:     models.DiffTypeMismatch,
		})
		return
	}

	switch a := v1.(type) {
	case map[string]any:
		d.compareObjects(a, v2.(map[string]any), path)
	case []any:
		b := v2.([]any)
		if d.keyBased && d.keyEligible(a, b) {
			d.compareByKey(a, b, path)
		} else {
			d.compareArrays(a, b, path)
		}
	default:
		if !scalarEqual(v1, v2) {
			d.diffs.add(models.Difference{
				Position: positionOrRoot(path),
				Expected: v1,
				Actual:   v2,
				Type:     models.DiffValue,
			})
		}
	}
}

func (d *jsonDiffer) compareObjects(a, b map[string]any, path string) {
	keys1, keys2 := sortedKeys(a), sortedKeys(b)

	for _, key := range keys1 {
		if _, ok := b[key]; !ok {
			if !d.diffs.add(models.Difference{
				Position: childPath(path, key),
				Expected: a[key],
				Type:     models.DiffMissingKey,
			}) {
				return
			}
		}
	}

	for _, key := range keys2 {
		if _, ok := a[key]; !ok {
			if !d.diffs.add(models.Difference{
				Position: childPath(path, key),
				Actual:   b[key],
				Type:     models.DiffExtraKey,
			}) {
				return
			}
		}
	}

	for _, key := range keys1 {
		if d.diffs.done() {
			return
		}
		if other, ok := b[key]; ok {
			d.compare(a[key], other, childPath(path, key))
		}
	}
}

func (d *jsonDiffer) compareArrays(a, b []any, path string) {
	if len(a) != len(b) {
		d.diffs.add(models.Difference{
			Position: positionOrRoot(path),
			Expected: fmt.Sprintf("array with %d items", len(a)),
			Actual:   fmt.Sprintf("array with %d items", len(b)),
			Type:     models.DiffLength,
		})
	}
	for i := 0; i < min(len(a), len(b)) && !d.diffs.done(); i++ {
		d.compare(a[i], b[i], fmt.Sprintf("%s[%d]", path, i))
	}
}

// keyEligible reports whether both lists hold only objects
func (d *jsonDiffer) keyEligible(a, b []any) bool {
	if len(d.keyFields) == 0 {
		return false
	}
	for _, list := range [][]any{a, b} {
		for _, item := range list {
			if _, ok := item.(map[string]any); !ok {
				return false
			}
		}
	}
	return true
}

// keyedItem is a list element indexed by its key field values
type keyedItem struct {
	index int
	item  map[string]any
	label string // field=value pairs, for positions
}

// indexByKey maps each element carrying every key field to its key,
// in order of first appearance. A later duplicate replaces the earlier
// element, index included.
func (d *jsonDiffer) indexByKey(list []any) (map[string]keyedItem, []string) {
	index := make(map[string]keyedItem)
	var order []string
	for i, raw := range list {
		item := raw.(map[string]any)
		key, label, ok := d.itemKey(item)
		if !ok {
			continue
		}
		if _, seen := index[key]; !seen {
			order = append(order, key)
		}
		index[key] = keyedItem{index: i, item: item, label: label}
	}
	return index, order
}

// itemKey returns the matching key of item and its display label.
// The key is the JSON encoding of the value list, so values containing
// separators cannot collide.
func (d *jsonDiffer) itemKey(item map[string]any) (string, string, bool) {
	values := make([]string, 0, len(d.keyFields))
	parts := make([]string, 0, len(d.keyFields))
	for _, field := range d.keyFields {
		v, ok := item[field]
		if !ok {
			return "", "", false
		}
		value := keyString(v)
		values = append(values, value)
		parts = append(parts, field+"="+value)
	}
	key, err := json.Marshal(values)
	if err != nil {
		return "", "", false
	}
	return string(key), strings.Join(parts, "."), true
}

func (d *jsonDiffer) compareByKey(a, b []any, path string) {
	index1, order1 := d.indexByKey(a)
	index2, order2 := d.indexByKey(b)

	for _, key := range order1 {
		if _, ok := index2[key]; !ok {
			entry := index1[key]
			if !d.diffs.add(models.Difference{
				Position: fmt.Sprintf("%s[%d] (key: %s)", path, entry.index, entry.label),
				Expected: entry.item,
				Type:     models.DiffMissingItem,
			}) {
				return
			}
		}
	}

	for _, key := range order2 {
		if _, ok := index1[key]; !ok {
			entry := index2[key]
			if !d.diffs.add(models.Difference{
				Position: fmt.Sprintf("%s[%d] (key: %s)", path, entry.index, entry.label),
				Actual:   entry.item,
				Type:     models.DiffExtraItem,
			}) {
				return
			}
		}
	}

	for _, key := range order1 {
		if d.diffs.done() {
			return
		}
		other, ok := index2[key]
		if !ok {
			continue
		}
		entry := index1[key]
		if cmp.Equal(entry.item, other.item) {
			continue
		}
		d.compare(entry.item, other.item, fmt.Sprintf("%s[key:%s]", path, entry.label))
	}
}

// jsonType names the JSON type of a decoded value
func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// scalarEqual compares leaf values. Numbers are equal when their literals
// or their numeric values match, so 1 and 1.0 are the same number.
func scalarEqual(v1, v2 any) bool {
	n1, ok1 := v1.(json.Number)
	n2, ok2 := v2.(json.Number)
	if ok1 && ok2 {
		if n1 == n2 {
			return true
		}
		if i1, err1 := n1.Int64(); err1 == nil {
			if i2, err2 := n2.Int64(); err2 == nil {
				return i1 == i2
			}
		}
		f1, err1 := n1.Float64()
		f2, err2 := n2.Float64()
		return err1 == nil && err2 == nil && f1 == f2
	}
	return v1 == v2
}

// keyString renders a key field value for item matching
func keyString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case nil:
		return "null"
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(t); err != nil {
			return fmt.Sprint(t)
		}
		return strings.TrimSuffix(buf.String(), "\n")
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func positionOrRoot(path string) string {
	if path == "" {
		return "root"
	}
	return path
}
