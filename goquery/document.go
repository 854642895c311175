// Package goquery adapts goquery-parsed HTML documents to htmlproof.Node
// and extracts references from them.
package goquery

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlproof"
	"golang.org/x/net/html"
)

// Document is a parsed HTML document.
type Document struct {
	doc   *goquery.Document
	lines map[*html.Node]int
}

// Parse reads and parses an HTML document.
// Returns EINVALID if the document cannot be parsed.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, htmlproof.Errorf(htmlproof.EINVALID, "failed to parse HTML: %v", err)
	}

	d := &Document{doc: doc}
	d.lines = matchLines(doc.Find("*").Nodes, startTagLines(data))
	return d, nil
}

// Elements returns every element in document order.
func (d *Document) Elements() []*Node {
	nodes := d.doc.Find("*").Nodes
	elements := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &Node{n: n, doc: d})
	}
	return elements
}

// BaseHref returns the href of the document's first <base> element.
func (d *Document) BaseHref() (string, bool) {
	href, ok := d.doc.Find("base[href]").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", false
	}
	return strings.TrimSpace(href), true
}

// startTag is a start tag seen by the tokenizer.
type startTag struct {
	line int
	used bool
}

// tagQueue holds start tags in source order.
type tagQueue []*startTag

// next returns the first unused tag and drops the used ones before it.
func (q *tagQueue) next() *startTag {
	for len(*q) > 0 {
		t := (*q)[0]
		if !t.used {
			return t
		}
		*q = (*q)[1:]
	}
	return nil
}

// startTags indexes start tags by tag name, and by tag name plus attributes.
type startTags struct {
	byName map[string]*tagQueue
	bySig  map[string]*tagQueue
}

func (st *startTags) add(name, sig string, line int) {
	t := &startTag{line: line}
	push(st.byName, name, t)
	push(st.bySig, name+"\x00"+sig, t)
}

func push(index map[string]*tagQueue, key string, t *startTag) {
	q, ok := index[key]
	if !ok {
		q = &tagQueue{}
		index[key] = q
	}
	*q = append(*q, t)
}

// take claims the earliest unused start tag with the same name and
// attributes, falling back to the earliest unused tag with the same name.
func (st *startTags) take(name, sig string) (int, bool) {
	var t *startTag
	if q, ok := st.bySig[name+"\x00"+sig]; ok {
		t = q.next()
	}
	if t == nil {
		if q, ok := st.byName[name]; ok {
			t = q.next()
		}
	}
	if t == nil {
		return 0, false
	}
	t.used = true
	return t.line, true
}

// tagKey normalizes a tag name. The parser rewrites <image> to <img> in
// HTML content, so both share a key.
func tagKey(name string) string {
	name = strings.ToLower(name)
	if name == "image" {
		return "img"
	}
	return name
}

// startTagLines tokenizes the source and records the line of every start tag.
func startTagLines(data []byte) *startTags {
	st := &startTags{byName: make(map[string]*tagQueue), bySig: make(map[string]*tagQueue)}
	z := html.NewTokenizer(bytes.NewReader(data))
	line := 1
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return st
		}
		newlines := bytes.Count(z.Raw(), []byte("\n"))
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			name, hasAttr := z.TagName()
			var sig strings.Builder
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				writeAttr(&sig, string(key), string(val))
			}
			st.add(tagKey(string(name)), sig.String(), line)
		}
		line += newlines
	}
}

// nodeSignature renders a parsed element's attributes the way the tokenizer
// reports them.
func nodeSignature(n *html.Node) string {
	var sig strings.Builder
	for _, a := range n.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + key
		}
		writeAttr(&sig, key, a.Val)
	}
	return sig.String()
}

func writeAttr(sig *strings.Builder, key, val string) {
	sig.WriteString(strings.ToLower(key))
	sig.WriteByte('=')
	sig.WriteString(val)
	sig.WriteByte(0)
}

// matchLines assigns each parsed element the line of the start tag it came
// from. Tags are matched by name and attributes, so elements the parser
// moved (such as content foster-parented out of a table) keep their own
// line when their attributes differ. Elements the parser implied (html,
// head, body, tbody) may have no start tag and get no line.
func matchLines(nodes []*html.Node, tags *startTags) map[*html.Node]int {
	lines := make(map[*html.Node]int, len(nodes))
	for _, n := range nodes {
		if line, ok := tags.take(tagKey(n.Data), nodeSignature(n)); ok {
			lines[n] = line
		}
	}
	return lines
}

// Compile-time interface verification.
var _ htmlproof.Node = (*Node)(nil)

// Node wraps an html.Node as an htmlproof.Node.
type Node struct {
	n   *html.Node
	doc *Document
}

// Name returns the tag name. Non-element nodes return "".
func (n *Node) Name() string {
	if n.n.Type != html.ElementNode {
		return ""
	}
	return n.n.Data
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Attrs returns the node's attributes in source order.
func (n *Node) Attrs() []htmlproof.Attribute {
	attrs := make([]htmlproof.Attribute, 0, len(n.n.Attr))
	for _, a := range n.n.Attr {
		if a.Namespace != "" {
			continue
		}
		attrs = append(attrs, htmlproof.Attribute{Key: a.Key, Val: a.Val})
	}
	return attrs
}

// Ancestors returns the enclosing nodes up to and including the document node.
func (n *Node) Ancestors() []htmlproof.Node {
	var ancestors []htmlproof.Node
	for p := n.n.Parent; p != nil; p = p.Parent {
		ancestors = append(ancestors, &Node{n: p, doc: n.doc})
	}
	return ancestors
}

// Line returns the source line of the start tag, or 0 when unknown.
func (n *Node) Line() int {
	if n.doc == nil {
		return 0
	}
	return n.doc.lines[n.n]
}

// Content returns the combined text of the node and its descendants.
func (n *Node) Content() string {
	return goquery.NewDocumentFromNode(n.n).Text()
}
