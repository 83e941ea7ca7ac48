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

import "strings"

// Policy encapsulates the allowlists of HTML elements, attributes and URL
// schemes that will be applied to the sanitized HTML.
//
// You should use greywater.NewPolicy() to create a blank policy as the
// unexported fields contain maps that need to be initialized, then build it
// up with the Allow* methods, or start from one of the presets in
// helpers.go.
//
// Build a Policy once at startup and treat it as read-only afterwards; a
// frozen Policy is safe for concurrent Sanitize calls without locking.
type Policy struct {
	// Declares whether the maps have been initialized, used as a cheap check
	// to ensure that those using Policy{} directly won't cause nil pointer
	// exceptions
	initialized bool

	// map[htmlElementName]struct{}: elements kept in the output. Disallowed
	// elements are unwrapped (tag dropped, children walked) unless listed in
	// skipContent.
	elements map[string]struct{}

	// map[htmlAttributeName]struct{}: attributes allowed on any allowed
	// element.
	globalAttrs map[string]struct{}

	// map[htmlElementName]map[htmlAttributeName]struct{}: per-element
	// attribute exceptions on top of the global allowlist.
	elementAttrs map[string]map[string]struct{}

	// map[htmlAttributeName]struct{}: attributes whose value is a single
	// URI, routed through the URL sanitizer.
	uriAttrs map[string]struct{}

	// map[htmlAttributeName]struct{}: attributes whose value is a
	// comma-separated image candidate list, routed through the srcset
	// sanitizer.
	srcsetAttrs map[string]struct{}

	// map[urlScheme]struct{}: schemes kept as-is by the URL sanitizer.
	// Schemeless (relative, query, fragment) references always pass.
	urlSchemes map[string]struct{}

	// map[htmlElementName]struct{}: disallowed elements whose entire subtree
	// is removed rather than unwrapped, i.e. structural hijack vectors like
	// frame.
	skipContent map[string]struct{}
}

// dangerousAttrs are dropped unconditionally, even on otherwise-safe
// elements: id and name enable DOM clobbering, style enables CSS-based
// exfiltration and script vectors. They are not policy-configurable.
var dangerousAttrs = map[string]struct{}{
	"id":    {},
	"name":  {},
	"style": {},
}

// init initializes the maps if this has not been done already
func (p *Policy) init() {
	if p.initialized {
		return
	}

	p.elements = make(map[string]struct{})
	p.globalAttrs = make(map[string]struct{})
	p.elementAttrs = make(map[string]map[string]struct{})
	p.uriAttrs = make(map[string]struct{})
	p.srcsetAttrs = make(map[string]struct{})
	p.urlSchemes = make(map[string]struct{})
	p.skipContent = make(map[string]struct{})
	p.initialized = true
}

// NewPolicy returns a blank policy with nothing allowed. This is the
// recommended way to start building a policy: use AllowElements,
// AllowAttrs, AllowURLSchemes and friends to construct the allowlists.
func NewPolicy() *Policy {
	p := Policy{}
	p.init()
	return &p
}

// AllowElements appends HTML elements to the allowlist. Lookup is
// case-insensitive; names are stored lowercase.
func (p *Policy) AllowElements(names ...string) *Policy {
	p.init()

	for _, name := range names {
		p.elements[strings.ToLower(name)] = struct{}{}
	}
	return p
}

// AllowAttrs appends attribute names to the global allowlist: the
// attributes are permitted on any allowed element. Attributes whose values
// need URI handling belong in AllowURLAttrs or AllowSrcSetAttrs instead.
func (p *Policy) AllowAttrs(names ...string) *Policy {
	p.init()

	for _, name := range names {
		p.globalAttrs[strings.ToLower(name)] = struct{}{}
	}
	return p
}

// AllowElementAttrs appends attribute names to the allowlist for one
// element only, on top of whatever the global allowlist permits.
// Example: p.AllowElementAttrs("img", "usemap", "ismap")
func (p *Policy) AllowElementAttrs(element string, names ...string) *Policy {
	p.init()

	element = strings.ToLower(element)
	attrs := p.elementAttrs[element]
	if attrs == nil {
		attrs = make(map[string]struct{})
		p.elementAttrs[element] = attrs
	}
	for _, name := range names {
		attrs[strings.ToLower(name)] = struct{}{}
	}
	return p
}

// AllowURLAttrs declares attributes whose value is a single URI. Their
// values are routed through the URL sanitizer and kept, rewritten to the
// inert "unsafe:" form when the scheme is not allowed.
func (p *Policy) AllowURLAttrs(names ...string) *Policy {
	p.init()

	for _, name := range names {
		p.uriAttrs[strings.ToLower(name)] = struct{}{}
	}
	return p
}

// AllowSrcSetAttrs declares attributes whose value is an image candidate
// list; each candidate URL is sanitized independently.
func (p *Policy) AllowSrcSetAttrs(names ...string) *Policy {
	p.init()

	for _, name := range names {
		p.srcsetAttrs[strings.ToLower(name)] = struct{}{}
	}
	return p
}

// AllowURLSchemes appends URL schemes to the allowlist.
// Example: p.AllowURLSchemes("mailto", "http", "https")
func (p *Policy) AllowURLSchemes(schemes ...string) *Policy {
	p.init()

	for _, scheme := range schemes {
		p.urlSchemes[strings.ToLower(scheme)] = struct{}{}
	}
	return p
}

// SkipElementsContent marks disallowed elements whose whole subtree must be
// removed from the output instead of being unwrapped. Use it for elements
// whose children are as dangerous as the element itself, such as frame.
func (p *Policy) SkipElementsContent(names ...string) *Policy {
	p.init()

	for _, name := range names {
		p.skipContent[strings.ToLower(name)] = struct{}{}
	}
	return p
}

// allowedElement reports whether the element name (prefix included, so
// "my:hr" never matches a table entry "hr") survives sanitization.
func (p *Policy) allowedElement(name string) bool {
	_, ok := p.elements[name]
	return ok
}

func (p *Policy) skipContentElement(name string) bool {
	_, ok := p.skipContent[name]
	return ok
}

// allowedAttr reports whether a plain (non-URI) attribute survives on the
// given element, by the global allowlist or a per-element exception.
func (p *Policy) allowedAttr(element, name string) bool {
	if _, ok := p.globalAttrs[name]; ok {
		return true
	}
	_, ok := p.elementAttrs[element][name]
	return ok
}
