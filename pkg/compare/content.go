package compare

// Content is the parsed, range-bounded representation of one file.
// Each comparator produces and consumes exactly one variant:
// Bytes, Lines, Rows, JSONValue or XMLNode.
type Content interface {
	isContent()
}

// Bytes is raw binary content
type Bytes []byte

// Lines is a sequence of text lines without terminators.
// Start is the 0-based file line number of the first entry.
type Lines struct {
	Start int
	Lines []string
}

// Rows is parsed CSV content, one cell slice per record
type Rows [][]string

// JSONValue is a decoded JSON document. Numbers are kept as json.Number.
type JSONValue struct {
	Value any
}

// XMLNode is the root element of a parsed XML document
type XMLNode struct {
	Root *Element
}

func (Bytes) isContent()     {}
func (Lines) isContent()     {}
func (Rows) isContent()      {}
func (JSONValue) isContent() {}
func (XMLNode) isContent()   {}
