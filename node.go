package greywater

// NodeKind identifies the kind of a parsed node. The set is closed: every
// traversal and serialization site switches over all of these explicitly so
// that no node kind is ever handled by accident.
type NodeKind uint8

const (
	// KindFragment is the root of a parsed fragment. It carries no name,
	// attributes or character data, only children.
	KindFragment NodeKind = iota

	// KindElement is a named element, possibly with attributes and children.
	KindElement

	// KindText is character data. Data returns the decoded code points;
	// entity re-encoding happens at serialization, never earlier.
	KindText

	// KindComment is an HTML comment. Always stripped from output.
	KindComment

	// KindProcInst is a processing instruction or doctype. Always stripped
	// from output.
	KindProcInst
)

// Attribute is a single element attribute. Namespace holds the prefix of a
// namespaced name such as "xlink" in xlink:href, or is empty. Key is the
// local name. Attribute order on a node is the order of the input markup.
type Attribute struct {
	Namespace string
	Key       string
	Val       string
}

// Name returns the serialized attribute name, prefix included.
func (a Attribute) Name() string {
	if a.Namespace == "" {
		return a.Key
	}
	return a.Namespace + ":" + a.Key
}

// Node is the accessor view of a parsed node that the sanitizer traverses.
//
// The sanitizer never touches host parser objects directly: all structure is
// read through this interface, so markup that tries to clobber traversal
// properties (name="nextSibling" and friends) has nothing to overwrite. The
// walker additionally bounds the number of nodes it will visit, so even a
// hostile Node implementation that fabricates cycles cannot make
// sanitization loop forever.
type Node interface {
	// Kind reports which member of the closed node union this is.
	Kind() NodeKind

	// Tag returns the element name as produced by the parser, prefix
	// included (e.g. "my:hr"), lowercased for HTML content. Empty for
	// non-elements.
	Tag() string

	// Attrs returns the element attributes in input order. Nil for
	// non-elements.
	Attrs() []Attribute

	// Children returns the child nodes in document order.
	Children() []Node

	// Data returns the character data of text, comment and processing
	// instruction nodes. Empty for elements and fragments.
	Data() string
}
