// Package greywater sanitizes untrusted HTML fragments before they are
// rendered into a live document. It strips constructs that can execute
// script, exfiltrate data or escape the intended content boundary, while
// preserving benign markup byte-for-byte where possible.
//
// A Policy holds immutable allowlists of elements, attributes and URL
// schemes; a ParseContext supplies an inert parser (one that never executes
// scripts or fires load handlers while building the tree) and a sink for
// stripped-content notices. Sanitization walks the parsed tree through
// clobbering-safe accessors, filters it against the policy and
// re-serializes it with canonical escaping:
//
//	p := greywater.Default()
//	ctx := greywater.NewContext(greywater.WithSink(greywater.SlogSink(nil)))
//	clean := p.Sanitize(ctx, `<a href="javascript:alert(1)" title="hi">x</a>`)
//	// clean == `<a href="unsafe:javascript:alert(1)" title="hi">x</a>`
//
// Disallowed elements are unwrapped: the tag is dropped but its children
// are still walked and survive if individually valid. Elements registered
// with SkipElementsContent (frame in the default policy) are removed with
// their entire subtree. URI values with a disallowed scheme are kept but
// prefixed with "unsafe:", which no renderer will resolve.
//
// Sanitization is a pure function of (Policy, ParseContext, input): it
// never panics on hostile input, traversal is bounded so malformed or
// clobbering markup cannot loop it forever, and sanitizing already
// sanitized output is a no-op. A built Policy and Context are safe for
// concurrent use.
package greywater
