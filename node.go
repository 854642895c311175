package htmlproof

// Attribute is a single name/value pair on a markup element.
type Attribute struct {
	Key string
	Val string
}

// Node is one element of a parsed markup tree.
// Implementations are owned by the parse tree; an Element only reads them.
type Node interface {
	// Name returns the tag name, e.g. "img".
	Name() string

	// Attr returns the value of the named attribute and whether it is present.
	// Non-element nodes report every attribute as absent.
	Attr(name string) (string, bool)

	// Attrs returns the node's attributes in source order.
	Attrs() []Attribute

	// Ancestors returns the chain of enclosing nodes, starting with the
	// immediate parent. The last entry is the document node.
	Ancestors() []Node

	// Line returns the 1-based source line of the node's start tag,
	// or 0 when unknown.
	Line() int

	// Content returns the node's text content.
	Content() string
}
