// Copyright (c) 2014, David Kitchen <david@buro9.com>
//
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
//
// * Redistributions of source code must retain the above copyright notice, this
//   list of conditions and the following disclaimer.
//
// * Redistributions in binary form must reproduce the above copyright notice,
//   this list of conditions and the following disclaimer in the documentation
//   and/or other materials provided with the distribution.
//
// * Neither the name of the organisation (Microcosm) nor the names of its
//   contributors may be used to endorse or promote products derived from
//   this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
// FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
// DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
// CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
// OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package greywater

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

const genericErrMsg = "greywater: %w"

// defaultMaxSteps bounds the number of nodes a single sanitization pass
// will visit. Trees built by the bundled parser terminate on their own; the
// ceiling guarantees termination even against a hostile ParseContext whose
// accessors fabricate cycles. Override per context with WithMaxSteps.
const defaultMaxSteps = 1 << 20

// Sanitize takes a string that contains a HTML fragment and applies the
// policy allowlist, using ctx to parse the fragment inertly and to receive
// stripped-content notices.
//
// It returns a HTML string that has been sanitized by the policy or an
// empty string if an error has occurred (most likely as a consequence of
// extremely malformed input).
func (self *Policy) Sanitize(ctx ParseContext, s string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	return self.sanitizeWithBuff(ctx, strings.NewReader(s)).String()
}

// SanitizeBytes takes a []byte that contains a HTML fragment and applies
// the policy allowlist.
//
// It returns a []byte containing the HTML that has been sanitized by the
// policy or an empty []byte if an error has occurred (most likely as a
// consequence of extremely malformed input).
func (self *Policy) SanitizeBytes(ctx ParseContext, b []byte) []byte {
	if len(bytes.TrimSpace(b)) == 0 {
		return b
	}
	return self.sanitizeWithBuff(ctx, bytes.NewReader(b)).Bytes()
}

// SanitizeReader takes an io.Reader that contains a HTML fragment and
// applies the policy allowlist.
//
// It returns a bytes.Buffer containing the HTML that has been sanitized by
// the policy. Errors during sanitization will merely return an empty
// result.
func (self *Policy) SanitizeReader(ctx ParseContext, r io.Reader) *bytes.Buffer {
	return self.sanitizeWithBuff(ctx, r)
}

// SanitizeReaderToWriter takes an io.Reader that contains a HTML fragment,
// applies the policy allowlist and writes to the provided writer, returning
// an error if there is one.
func (self *Policy) SanitizeReaderToWriter(ctx ParseContext, r io.Reader, w io.Writer) error {
	return self.sanitize(ctx, r, w)
}

// SanitizeWithOutcome sanitizes s and additionally returns every
// stripped-content notice the pass produced, alongside whatever sink ctx
// already carries.
func (self *Policy) SanitizeWithOutcome(ctx ParseContext, s string) Outcome {
	counting := &CountingSink{}
	out := self.Sanitize(&teeContext{ParseContext: ctx, sink: counting}, s)
	return Outcome{HTML: out, Notices: counting.Messages()}
}

// teeContext duplicates notices into an extra sink while delegating
// everything else to the wrapped context.
type teeContext struct {
	ParseContext
	sink Sink
}

func (self *teeContext) Log(msg string) {
	self.sink.Log(msg)
	self.ParseContext.Log(msg)
}

func (self *teeContext) MaxSteps() int {
	if l, ok := self.ParseContext.(stepLimiter); ok {
		return l.MaxSteps()
	}
	return 0
}

func (self *Policy) sanitizeWithBuff(ctx ParseContext, r io.Reader) *bytes.Buffer {
	buff := new(bytes.Buffer)
	if err := self.sanitize(ctx, r, buff); err != nil {
		return new(bytes.Buffer)
	}
	return buff
}

type stringWriter struct {
	io.Writer
}

var _ io.StringWriter = (*stringWriter)(nil)

func (a *stringWriter) WriteString(s string) (int, error) {
	return a.Write([]byte(s)) //nolint:wrapcheck // call forwarder
}

// sanitize performs the actual sanitization pass: parse through the
// context, walk the tree against the policy, serialize to w.
func (self *Policy) sanitize(ctx ParseContext, r io.Reader, w io.Writer) error {
	// It is possible that the developer has created the policy via:
	//   p := greywater.Policy{}
	// rather than:
	//   p := greywater.NewPolicy()
	// If this is the case, and if they haven't yet triggered an action that
	// would initialize the maps, then we need to do that.
	self.init()

	root, err := ctx.Parse(r)
	if err != nil {
		return err
	}

	buff, ok := w.(io.StringWriter)
	if !ok {
		buff = &stringWriter{w}
	}

	walker := &treeWalker{
		policy:   self,
		ctx:      ctx,
		out:      buff,
		maxSteps: defaultMaxSteps,
	}
	if l, ok := ctx.(stepLimiter); ok && l.MaxSteps() > 0 {
		walker.maxSteps = l.MaxSteps()
	}
	return walker.walk(root)
}

// treeWalker traverses a source tree in document order and emits the
// sanitized rendition. Traversal state lives in an explicit frame stack
// with monotonically advancing cursors; node structure is only ever read
// through the Node accessors. Together with the step ceiling this keeps
// the walk terminating and on course no matter what the markup tried to
// clobber.
type treeWalker struct {
	policy   *Policy
	ctx      ParseContext
	out      io.StringWriter
	maxSteps int
}

// frame is one level of the traversal stack: the children being visited,
// the cursor into them, and the tag to close once they are exhausted.
type frame struct {
	children []Node
	next     int
	closeTag string
}

func (self *treeWalker) walk(root Node) error {
	stack := []frame{{children: root.Children()}}
	steps := 0

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.next >= len(top.children) {
			if top.closeTag != "" {
				if err := writeCloseTag(self.out, top.closeTag); err != nil {
					return err
				}
			}
			stack = stack[:len(stack)-1]
			continue
		}

		steps++
		if steps > self.maxSteps {
			self.ctx.Log("sanitizing HTML stripped some content: traversal " +
				"step limit reached, output truncated")
			return self.unwind(stack)
		}

		n := top.children[top.next]
		top.next++

		next, err := self.visit(n)
		if err != nil {
			return err
		}
		if next != nil {
			stack = append(stack, *next)
		}
	}
	return nil
}

// unwind closes every open tag after an aborted traversal so that the
// partial output is still balanced markup.
func (self *treeWalker) unwind(stack []frame) error {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].closeTag == "" {
			continue
		}
		if err := writeCloseTag(self.out, stack[i].closeTag); err != nil {
			return err
		}
	}
	return nil
}

// visit handles a single node and returns the frame to descend into, if
// any. Every member of the node union is matched explicitly.
func (self *treeWalker) visit(n Node) (*frame, error) {
	switch n.Kind() {
	case KindText:
		return nil, writeText(self.out, n.Data())

	case KindComment:
		self.ctx.Log(`sanitizing HTML stripped a comment`)
		return nil, nil

	case KindProcInst:
		self.ctx.Log(`sanitizing HTML stripped a processing instruction`)
		return nil, nil

	case KindElement:
		return self.visitElement(n)

	case KindFragment:
		return &frame{children: n.Children()}, nil
	}
	return nil, nil
}

func (self *treeWalker) visitElement(n Node) (*frame, error) {
	tag := strings.ToLower(n.Tag())

	if !self.policy.allowedElement(tag) {
		if self.policy.skipContentElement(tag) {
			self.ctx.Log(fmt.Sprintf(
				"sanitizing HTML stripped element %q with its content", tag))
			return nil, nil
		}
		// Unwrap: the tag goes, the children are still walked and may
		// survive on their own merits.
		self.ctx.Log(fmt.Sprintf(
			"sanitizing HTML stripped disallowed element %q", tag))
		return &frame{children: n.Children()}, nil
	}

	attrs := self.sanitizeAttrs(tag, n.Attrs())
	if err := writeOpenTag(self.out, tag, attrs); err != nil {
		return nil, err
	}

	if voidElement(tag) {
		return nil, nil
	}
	return &frame{children: n.Children(), closeTag: tag}, nil
}

// sanitizeAttrs applies the attribute policy to the attributes of an
// element being kept, preserving input order. The returned slice contains
// only attributes that are allowed, with URI values already sanitized.
func (self *treeWalker) sanitizeAttrs(tag string, attrs []Attribute) []Attribute {
	if len(attrs) == 0 {
		return nil
	}

	kept := make([]Attribute, 0, len(attrs))
	for _, attr := range attrs {
		attr.Namespace = strings.ToLower(attr.Namespace)
		attr.Key = strings.ToLower(attr.Key)

		a, ok := self.keepAttr(tag, attr)
		if !ok {
			self.ctx.Log(fmt.Sprintf(
				"sanitizing HTML stripped attribute %q from element %q",
				attr.Name(), tag))
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

func (self *treeWalker) keepAttr(tag string, attr Attribute) (Attribute, bool) {
	p := self.policy

	// Namespaced attributes resolve by local name: URI-valued locals are
	// kept and sanitized (xlink:href), anything else must be separately
	// allowlisted by its local name.
	if attr.Namespace != "" {
		if _, ok := p.uriAttrs[attr.Key]; ok {
			attr.Val, _ = p.sanitizeURL(attr.Val)
			return attr, true
		}
		return attr, p.allowedAttr(tag, attr.Key)
	}

	if _, ok := dangerousAttrs[attr.Key]; ok {
		return attr, false
	}

	if _, ok := p.uriAttrs[attr.Key]; ok {
		attr.Val, _ = p.sanitizeURL(attr.Val)
		return attr, true
	}

	if _, ok := p.srcsetAttrs[attr.Key]; ok {
		attr.Val, _ = p.sanitizeSrcSet(attr.Val)
		return attr, true
	}

	return attr, p.allowedAttr(tag, attr.Key)
}
