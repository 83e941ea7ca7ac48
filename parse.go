package greywater

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParseContext supplies the capabilities a sanitization pass depends on: an
// inert parser that builds a Node tree without executing scripts or firing
// resource handlers, and a sink for stripped-content notices.
//
// It is passed explicitly into every Sanitize call; the sanitizer holds no
// process-wide state.
type ParseContext interface {
	// Parse reads a HTML fragment and returns its node tree. The returned
	// tree must have been built without side effects: no script execution,
	// no load/error handlers. Parse must never return a tree it intends to
	// mutate while the caller is still walking it.
	Parse(r io.Reader) (Node, error)

	// Log receives a human-readable notice each time the sanitizer strips
	// content.
	Log(msg string)
}

// stepLimiter is an optional ParseContext extension that overrides the
// walker's traversal step ceiling.
type stepLimiter interface {
	MaxSteps() int
}

// Context is the default ParseContext. It builds the fragment tree straight
// off the golang.org/x/net/html tokenizer, which decodes entities and
// tracks raw-text elements but never executes embedded script or fetches
// resources, satisfying the inert-parse contract. Driving the tokenizer
// directly also keeps tree shape literal: a <frame> start tag produces a
// frame node holding its content, rather than being second-guessed by
// document-level insertion modes.
//
// A Context carries no per-call state and is safe for concurrent use.
type Context struct {
	sink     Sink
	maxSteps int
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithSink routes stripped-content notices to sink.
func WithSink(sink Sink) ContextOption {
	return func(c *Context) { c.sink = sink }
}

// WithMaxSteps overrides the traversal step ceiling. Values below 1 are
// ignored.
func WithMaxSteps(n int) ContextOption {
	return func(c *Context) {
		if n > 0 {
			c.maxSteps = n
		}
	}
}

// NewContext returns a Context with the given options applied. Without
// options, notices are discarded and the default step ceiling applies.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{sink: discardSink{}, maxSteps: defaultMaxSteps}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Parse implements ParseContext.
func (self *Context) Parse(r io.Reader) (Node, error) {
	z := html.NewTokenizer(r)

	root := &memNode{kind: KindFragment}
	stack := []*memNode{root}

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf(genericErrMsg, err)
			}
			return root, nil

		case html.TextToken:
			t := z.Token()
			appendChild(stack, &memNode{kind: KindText, data: t.Data})

		case html.StartTagToken:
			t := z.Token()
			n := elementNode(&t)
			appendChild(stack, n)
			// Void elements never hold children, so they stay off the open
			// element stack; everything else nests until its end tag.
			if !voidElement(n.tag) {
				stack = append(stack, n)
			}

		case html.SelfClosingTagToken:
			t := z.Token()
			appendChild(stack, elementNode(&t))

		case html.EndTagToken:
			t := z.Token()
			stack = closeElement(stack, t.Data)

		case html.CommentToken:
			t := z.Token()
			appendChild(stack, &memNode{kind: KindComment, data: t.Data})

		case html.DoctypeToken:
			t := z.Token()
			appendChild(stack, &memNode{kind: KindProcInst, data: t.Data})
		}
	}
}

// Log implements ParseContext.
func (self *Context) Log(msg string) { self.sink.Log(msg) }

// MaxSteps reports the traversal step ceiling for this context.
func (self *Context) MaxSteps() int { return self.maxSteps }

func appendChild(stack []*memNode, n *memNode) {
	parent := stack[len(stack)-1]
	parent.children = append(parent.children, n)
}

// closeElement pops the open element stack down to (and including) the
// nearest element with the given tag. An end tag that matches nothing is
// ignored, so stray closers cannot unbalance the tree.
func closeElement(stack []*memNode, tag string) []*memNode {
	for i := len(stack) - 1; i > 0; i-- {
		if stack[i].tag == tag {
			return stack[:i]
		}
	}
	return stack
}

func elementNode(t *html.Token) *memNode {
	return &memNode{
		kind:  KindElement,
		tag:   t.Data,
		attrs: convertAttrs(t.Attr),
	}
}

// convertAttrs maps tokenizer attributes into the sanitizer's attribute
// shape, splitting namespaced names and keeping only the first occurrence
// of a duplicated name, the way a renderer would.
func convertAttrs(attrs []html.Attribute) []Attribute {
	if len(attrs) == 0 {
		return nil
	}

	out := make([]Attribute, 0, len(attrs))
	seen := make(map[string]struct{}, len(attrs))
	for _, a := range attrs {
		if _, dup := seen[a.Key]; dup {
			continue
		}
		seen[a.Key] = struct{}{}
		out = append(out, splitAttrName(a))
	}
	return out
}

// splitAttrName splits namespaced attribute names such as xlink:href into
// prefix and local name, giving the attribute filter one uniform shape.
func splitAttrName(a html.Attribute) Attribute {
	attr := Attribute{Namespace: a.Namespace, Key: a.Key, Val: a.Val}
	if attr.Namespace != "" {
		return attr
	}

	if ns, local, ok := strings.Cut(a.Key, ":"); ok && ns != "" && local != "" {
		attr.Namespace, attr.Key = ns, local
	}
	return attr
}

// memNode is the value-typed node the bundled Context builds. It is
// created once during Parse and read-only afterwards.
type memNode struct {
	kind     NodeKind
	tag      string
	data     string
	attrs    []Attribute
	children []Node
}

func (self *memNode) Kind() NodeKind     { return self.kind }
func (self *memNode) Tag() string        { return self.tag }
func (self *memNode) Attrs() []Attribute { return self.attrs }
func (self *memNode) Children() []Node   { return self.children }
func (self *memNode) Data() string       { return self.data }
