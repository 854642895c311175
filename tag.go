package htmlproof

// TagKind classifies the elements that can carry a checkable reference.
type TagKind int

// Tag kinds. TagOther covers every tag without a reference attribute.
const (
	TagOther TagKind = iota
	TagMeta
	TagImg
	TagScript
	TagSource
	TagA
	TagLink
)

var tagKinds = map[string]TagKind{
	"meta":   TagMeta,
	"img":    TagImg,
	"script": TagScript,
	"source": TagSource,
	"a":      TagA,
	"link":   TagLink,
}

// linkAttributes lists, per tag kind, the attributes that may hold the
// element's reference in the order they are consulted: content, src,
// srcset, then href.
var linkAttributes = map[TagKind][]string{
	TagMeta:   {"content"},
	TagImg:    {"src", "srcset"},
	TagScript: {"src"},
	TagSource: {"src", "srcset"},
	TagA:      {"href"},
	TagLink:   {"href"},
}

// ParseTagKind returns the kind for a tag name. Matching is exact and
// case-sensitive; unknown names map to TagOther.
func ParseTagKind(name string) TagKind {
	return tagKinds[name]
}

// LinkAttributes returns the candidate reference attributes for the kind,
// in precedence order. TagOther has none.
func (k TagKind) LinkAttributes() []string {
	return linkAttributes[k]
}

// String returns the tag name for the kind.
func (k TagKind) String() string {
	switch k {
	case TagMeta:
		return "meta"
	case TagImg:
		return "img"
	case TagScript:
		return "script"
	case TagSource:
		return "source"
	case TagA:
		return "a"
	case TagLink:
		return "link"
	}
	return "other"
}

// hasSrcset reports whether the kind accepts a srcset attribute.
func (k TagKind) hasSrcset() bool {
	return k == TagImg || k == TagSource
}
