package mock

import "github.com/fwojciec/htmlproof"

var _ htmlproof.Node = (*Node)(nil)

// Node is a mock implementation of htmlproof.Node.
type Node struct {
	NameFn      func() string
	AttrFn      func(name string) (string, bool)
	AttrsFn     func() []htmlproof.Attribute
	AncestorsFn func() []htmlproof.Node
	LineFn      func() int
	ContentFn   func() string
}

func (n *Node) Name() string {
	return n.NameFn()
}

func (n *Node) Attr(name string) (string, bool) {
	return n.AttrFn(name)
}

func (n *Node) Attrs() []htmlproof.Attribute {
	return n.AttrsFn()
}

func (n *Node) Ancestors() []htmlproof.Node {
	return n.AncestorsFn()
}

func (n *Node) Line() int {
	return n.LineFn()
}

func (n *Node) Content() string {
	return n.ContentFn()
}
