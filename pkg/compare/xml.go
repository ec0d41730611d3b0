package compare

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ozil111/Compare-File-Tool/pkg/logging"
	"github.com/ozil111/Compare-File-Tool/pkg/models"
	"github.com/ozil111/Compare-File-Tool/pkg/storage"
)

const missingAttribute = "missing attribute"

// Element is one node of a parsed XML tree. Names are rendered as
// "{namespace}local" when the element or attribute has a namespace.
type Element struct {
	Name string
	// Attrs are sorted by name; namespace declarations are omitted
	Attrs    []xml.Attr
	Text     string // character data before the first child, comment or processing instruction
	Children []*Element
}

// Attr returns the value of the named attribute
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if qualifiedName(a.Name) == name {
			return a.Value, true
		}
	}
	return "", false
}

// XMLComparator compares XML documents as element trees
type XMLComparator struct {
	base
	decoder textDecoder
}

// NewXMLComparator creates a structural XML comparator
func NewXMLComparator(opts Options) (*XMLComparator, error) {
	b, err := newBase("xml", opts)
	if err != nil {
		return nil, err
	}
	dec, err := newTextDecoder(opts.Encoding)
	if err != nil {
		return nil, err
	}
	return &XMLComparator{base: b, decoder: dec}, nil
}

// ReadContent parses the selected lines of path into an element tree
func (c *XMLComparator) ReadContent(ctx context.Context, backend storage.Backend, path string, rng models.Range) (Content, error) {
	lines, err := readLines(ctx, backend, c.decoder, path, rng, true)
	if err != nil {
		return nil, err
	}

	root, err := parseXML(strings.Join(lines.Lines, "\n"))
	if err != nil {
		return nil, &models.ParseError{Path: path, Format: "XML", Err: err}
	}
	return XMLNode{Root: root}, nil
}

func parseXML(text string) (*Element, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	// Content is already decoded, whatever the declaration says
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var root *Element
	var stack []*Element
	// textDone[i] is set once stack[i] has seen a non text token
	var textDone []bool
	closeText := func() {
		if n := len(textDone); n > 0 {
			textDone[n-1] = true
		}
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: qualifiedName(t.Name), Attrs: elementAttrs(t.Attr)}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			closeText()
			stack = append(stack, el)
			textDone = append(textDone, false)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
			textDone = textDone[:len(textDone)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, errors.New("character data outside the root element")
				}
				continue
			}
			if !textDone[len(textDone)-1] {
				top := stack[len(stack)-1]
				top.Text += string(t)
			}
		case xml.Comment, xml.ProcInst, xml.Directive:
			closeText()
		}
	}

	if root == nil {
		return nil, errors.New("no root element")
	}
	return root, nil
}

func elementAttrs(attrs []xml.Attr) []xml.Attr {
	kept := make([]xml.Attr, 0, len(attrs))
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		kept = append(kept, a)
	}
	sort.Slice(kept, func(i, j int) bool {
		return qualifiedName(kept[i].Name) < qualifiedName(kept[j].Name)
	})
	return kept
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return "{" + name.Space + "}" + name.Local
}

// CompareContent walks both trees and reports structural differences.
// The documents are identical when the walk finds none.
func (c *XMLComparator) CompareContent(content1, content2 Content) (bool, []models.Difference, error) {
	n1, ok1 := content1.(XMLNode)
	n2, ok2 := content2.(XMLNode)
	if !ok1 || !ok2 || n1.Root == nil || n2.Root == nil {
		return false, nil, unexpectedContent(c.name, content1, content2)
	}

	diffs := newCollector(c.maxDiffs)
	compareElements(n1.Root, n2.Root, "", diffs)

	result := diffs.result()
	c.logger.Debug(context.Background(), "xml content compared", logging.Fields{
		"root":        n1.Root.Name,
		"differences": len(result),
	})
	return len(result) == 0, result, nil
}

func compareElements(e1, e2 *Element, path string, diffs *collector) {
	if diffs.done() {
		return
	}

	position := path
	if position == "" {
		position = "/"
	}

	if e1.Name != e2.Name {
		diffs.add(models.Difference{
			Position: position,
			Expected: e1.Name,
			Actual:   e2.Name,
			Type:     models.DiffTag,
		})
		return
	}

	for _, a := range e1.Attrs {
		name := qualifiedName(a.Name)
		if v, ok := e2.Attr(name); ok && v == a.Value {
			continue
		}
		if !diffs.add(models.Difference{
			Position: path + "/@" + name,
			Expected: a.Value,
			Actual:   missingAttribute,
			Type:     models.DiffMissingAttribute,
		}) {
			return
		}
	}

	for _, a := range e2.Attrs {
		name := qualifiedName(a.Name)
		if v, ok := e1.Attr(name); ok && v == a.Value {
			continue
		}
		if !diffs.add(models.Difference{
			Position: path + "/@" + name,
			Expected: missingAttribute,
			Actual:   a.Value,
			Type:     models.DiffExtraAttribute,
		}) {
			return
		}
	}

	if len(e1.Children) == 0 && len(e2.Children) == 0 {
		text1 := strings.TrimSpace(e1.Text)
		text2 := strings.TrimSpace(e2.Text)
		if text1 != text2 {
			diffs.add(models.Difference{
				Position: position,
				Expected: text1,
				Actual:   text2,
				Type:     models.DiffText,
			})
		}
		return
	}

	if len(e1.Children) != len(e2.Children) {
		diffs.add(models.Difference{
			Position: position,
			Expected: fmt.Sprintf("%d child elements", len(e1.Children)),
			Actual:   fmt.Sprintf("%d child elements", len(e2.Children)),
			Type:     models.DiffChildrenCount,
		})
	}

	for i := 0; i < min(len(e1.Children), len(e2.Children)) && !diffs.done(); i++ {
		child := e1.Children[i]
		compareElements(child, e2.Children[i], fmt.Sprintf("%s/%s[%d]", path, child.Name, i), diffs)
	}
}
