package greywater

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// unsafePrefix is prepended to URI values whose scheme is not allowed. The
// value stays visible in the output but no browser resolves an "unsafe:"
// scheme, so the link is inert. Keeping the value beats deleting it: the
// author can see what was rejected without the markup regaining
// executability.
const unsafePrefix = "unsafe:"

// SanitizeURL classifies raw markup text by its URI scheme against the
// policy's scheme allowlist and returns either raw unchanged or raw
// prefixed with "unsafe:". The second return value reports whether the
// value was rewritten.
//
// Classification happens on the decoded character content of the value, the
// way a renderer would interpret it: HTML entity references are resolved
// and control or invisible code points are ignored, so a scheme hidden as
// "jav&#x09;ascript:" or spelled with zero-width characters is still
// detected. The returned string is always the original spelling, never the
// decoded form.
func (p *Policy) SanitizeURL(raw string) (string, bool) {
	return p.judgeURL(raw, html.UnescapeString(raw))
}

// sanitizeURL classifies a value the parser has already entity-decoded,
// which is what attribute values look like by the time the walker sees
// them. Decoding again would misjudge benign values whose character
// content happens to spell an entity reference: URL resolution never
// decodes HTML entities, so such values are inert as-is.
func (p *Policy) sanitizeURL(val string) (string, bool) {
	return p.judgeURL(val, val)
}

func (p *Policy) judgeURL(orig, decoded string) (string, bool) {
	scheme, ok := uriScheme(decoded)
	if !ok {
		// Relative, query or fragment reference: no scheme to judge.
		return orig, false
	}

	// A value already carrying the poison-pill prefix is inert; prefixing
	// it again would break idempotence without making it any safer.
	if scheme == "unsafe" {
		return orig, false
	}

	if _, allowed := p.urlSchemes[scheme]; allowed {
		return orig, false
	}
	return unsafePrefix + orig, true
}

// uriScheme extracts the lowercased scheme of a URI value, reporting false
// when the value has none. The scheme is the run of characters before the
// first ":", provided that colon appears before any "/", "?" or "#".
func uriScheme(s string) (string, bool) {
	s = strings.Map(dropInvisible, s)

	i := strings.IndexAny(s, ":/?#")
	if i < 0 || s[i] != ':' {
		return "", false
	}
	return strings.ToLower(s[:i]), true
}

// dropInvisible removes characters that renderers skip when resolving a
// scheme: ASCII whitespace and controls, Unicode control and format
// characters, and every kind of separator.
func dropInvisible(r rune) rune {
	if r <= 0x20 || r == 0x7f {
		return -1
	}
	if unicode.In(r, unicode.Cc, unicode.Cf, unicode.Z) {
		return -1
	}
	return r
}
