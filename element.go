package htmlproof

// IgnoreAttribute exempts an element, and every element nested inside it,
// from validation. Only its presence matters; the value is not inspected.
const IgnoreAttribute = "data-proofer-ignore"

// Element wraps one parsed node for a scan. It applies the configured
// attribute swaps, selects the attribute holding the element's reference,
// and decides whether the element is exempt from validation.
//
// Swaps are applied to a copy of the node's attributes, so the node itself
// is never modified and may be shared between Elements.
type Element struct {
	node    Node
	kind    TagKind
	attrs   map[string]string
	baseURL string
	url     *URL
	line    int
	content string
}

// NewElement wraps node. baseURL may be empty.
func NewElement(cfg *Config, node Node, baseURL string) *Element {
	e := &Element{
		node:    node,
		kind:    ParseTagKind(node.Name()),
		attrs:   swapAttributes(node.Attrs(), cfg.AttributeSwaps(node.Name())),
		baseURL: baseURL,
		line:    node.Line(),
		content: node.Content(),
	}

	// Selection reads the swapped view, so swaps must be applied first.
	link, _ := e.LinkAttribute()
	e.url = NewURL(cfg, link, baseURL)

	return e
}

// swapAttributes copies attrs and applies each rename whose old attribute
// holds a non-blank value.
func swapAttributes(attrs []Attribute, swaps []AttributeSwap) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if _, ok := m[a.Key]; !ok {
			m[a.Key] = a.Val
		}
	}
	for _, swap := range swaps {
		val := m[swap.Old]
		if isBlank(val) {
			continue
		}
		m[swap.New] = val
		delete(m, swap.Old)
	}
	return m
}

// Node returns the wrapped node.
func (e *Element) Node() Node { return e.node }

// Name returns the tag name.
func (e *Element) Name() string { return e.node.Name() }

// Kind returns the element's tag kind.
func (e *Element) Kind() TagKind { return e.kind }

// Attr returns the value of an attribute after swaps were applied.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// HasAttr returns true if the attribute is present after swaps were applied.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// BaseURL returns the location references are resolved against.
func (e *Element) BaseURL() string { return e.baseURL }

// URL returns the element's reference.
func (e *Element) URL() *URL { return e.url }

// Line returns the source line of the element.
func (e *Element) Line() int { return e.line }

// Content returns the element's text content.
func (e *Element) Content() string { return e.content }

// LinkAttribute returns the value of the attribute holding the element's
// reference. Candidates are consulted in a fixed order (meta content, src,
// srcset, href) and the first non-blank value wins, so a source element
// with both src and srcset resolves to src.
func (e *Element) LinkAttribute() (string, bool) {
	_, val, ok := e.linkAttribute()
	return val, ok
}

// LinkAttributeName returns the name of the attribute LinkAttribute read,
// or "" if there is none.
func (e *Element) LinkAttributeName() string {
	name, _, _ := e.linkAttribute()
	return name
}

func (e *Element) linkAttribute() (name, val string, ok bool) {
	for _, attr := range e.kind.LinkAttributes() {
		if v := e.attrs[attr]; !isBlank(v) {
			return attr, v, true
		}
	}
	return "", "", false
}

// IsMeta reports whether the element is a meta tag.
func (e *Element) IsMeta() bool { return e.kind == TagMeta }

// IsImg reports whether the element is an img tag.
func (e *Element) IsImg() bool { return e.kind == TagImg }

// IsScript reports whether the element is a script tag.
func (e *Element) IsScript() bool { return e.kind == TagScript }

// IsSource reports whether the element is a source tag.
func (e *Element) IsSource() bool { return e.kind == TagSource }

// IsA reports whether the element is an anchor.
func (e *Element) IsA() bool { return e.kind == TagA }

// IsLink reports whether the element is a link tag.
func (e *Element) IsLink() bool { return e.kind == TagLink }

// AriaHidden returns true only when aria-hidden is exactly "true".
func (e *Element) AriaHidden() bool {
	return e.attrs["aria-hidden"] == "true"
}

// Srcset returns the srcset value for img and source elements, or "".
func (e *Element) Srcset() Srcset {
	if !e.kind.hasSrcset() {
		return ""
	}
	return Srcset(e.attrs["srcset"])
}

// MultipleSrcsets returns true if the srcset lists more than one candidate.
func (e *Element) MultipleSrcsets() bool { return e.Srcset().HasMultipleCandidates() }

// Srcsets returns the trimmed srcset candidates, or nil.
func (e *Element) Srcsets() []string { return e.Srcset().Candidates() }

// MultipleSizes returns true if any srcset candidate carries a descriptor.
func (e *Element) MultipleSizes() bool { return e.Srcset().HasDescriptors() }

// SrcsetsWithoutSizes returns the srcset candidate URLs, or nil.
func (e *Element) SrcsetsWithoutSizes() []string { return e.Srcset().URLs() }

// Ignore returns true if the element is exempt from validation: it carries
// IgnoreAttribute, one of its ancestors below the document does, or its
// reference is ignored by configuration. It does not modify any state.
func (e *Element) Ignore() bool {
	if e.HasAttr(IgnoreAttribute) {
		return true
	}
	if e.ancestorsIgnorable() {
		return true
	}
	return e.url.Ignore()
}

func (e *Element) ancestorsIgnorable() bool {
	ancestors := e.node.Ancestors()
	if len(ancestors) > 0 {
		// The outermost ancestor is the document itself.
		ancestors = ancestors[:len(ancestors)-1]
	}
	for _, a := range ancestors {
		if a == nil {
			continue
		}
		if _, ok := a.Attr(IgnoreAttribute); ok {
			return true
		}
	}
	return false
}
