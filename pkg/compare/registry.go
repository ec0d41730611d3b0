package compare

import (
	"sort"
	"strings"
	"sync"
)

// Constructor builds a comparator from options
type Constructor func(opts Options) (Comparator, error)

// Registry maps file type tags to comparator constructors
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// builtin lists the built-in comparators in registration order
var builtin = []struct {
	tag  string
	ctor Constructor
}{
	{"text", textConstructor},
	{"binary", binaryConstructor},
	{"json", jsonConstructor},
	{"xml", xmlConstructor},
	{"csv", csvConstructor},
}

// DefaultRegistry returns a new registry holding the built-in comparators.
// The entry point builds it once and passes it to its consumers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, b := range builtin {
		r.Register(b.tag, b.ctor)
	}
	return r
}

// Register adds or replaces the constructor for a tag.
// Tags are case-insensitive.
func (r *Registry) Register(tag string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[normalizeTag(tag)] = ctor
}

// Create builds the comparator registered for tag. Unknown tags fall back
// to the text comparator for "auto" and "text" and to the binary
// comparator otherwise. Options outside the chosen format are dropped.
func (r *Registry) Create(tag string, opts Options) (Comparator, error) {
	key := normalizeTag(tag)

	r.mu.RLock()
	ctor, ok := r.constructors[key]
	r.mu.RUnlock()

	if !ok {
		if key == "auto" || key == "text" {
			key, ctor = "text", textConstructor
		} else {
			key, ctor = "binary", binaryConstructor
		}
	}
	return ctor(opts.forFormat(key))
}

// Tags lists the registered tags in sorted order
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.constructors))
	for tag := range r.constructors {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func textConstructor(opts Options) (Comparator, error) {
	c, err := NewTextComparator(opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func binaryConstructor(opts Options) (Comparator, error) {
	c, err := NewBinaryComparator(opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func jsonConstructor(opts Options) (Comparator, error) {
	c, err := NewJSONComparator(opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func xmlConstructor(opts Options) (Comparator, error) {
	c, err := NewXMLComparator(opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func csvConstructor(opts Options) (Comparator, error) {
	c, err := NewCSVComparator(opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}
