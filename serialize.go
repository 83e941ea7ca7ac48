package greywater

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// voidElements render without a closing tag. This is the HTML5 void set;
// most of these never pass the default policy, but the serializer must not
// fabricate closing tags for the ones that do (br, hr, img, ...).
var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "keygen": {}, "link": {}, "meta": {},
	"param": {}, "source": {}, "track": {}, "wbr": {},
}

func voidElement(name string) bool {
	_, ok := voidElements[name]
	return ok
}

// writeText writes character data with canonical escaping: &, < and > as
// named entities, everything outside printable ASCII as a decimal numeric
// reference. Re-encoding decoded entities is lossless and is not a strip,
// so it produces no notice.
func writeText(w io.StringWriter, s string) error {
	return writeEscaped(w, s, false)
}

// writeOpenTag writes the start tag of an element with its already-filtered
// attributes. Attribute values additionally escape the double quote as the
// numeric reference &#34; (never the named entity) so that permissive
// consumers re-parsing the output cannot be confused about where the value
// ends.
func writeOpenTag(w io.StringWriter, tag string, attrs []Attribute) error {
	if _, err := w.WriteString("<" + tag); err != nil {
		return fmt.Errorf(genericErrMsg, err)
	}

	for _, a := range attrs {
		if _, err := w.WriteString(" " + a.Name() + `="`); err != nil {
			return fmt.Errorf(genericErrMsg, err)
		}
		if err := writeEscaped(w, a.Val, true); err != nil {
			return err
		}
		if _, err := w.WriteString(`"`); err != nil {
			return fmt.Errorf(genericErrMsg, err)
		}
	}

	if _, err := w.WriteString(">"); err != nil {
		return fmt.Errorf(genericErrMsg, err)
	}
	return nil
}

func writeCloseTag(w io.StringWriter, tag string) error {
	if _, err := w.WriteString("</" + tag + ">"); err != nil {
		return fmt.Errorf(genericErrMsg, err)
	}
	return nil
}

func writeEscaped(w io.StringWriter, s string, attrValue bool) error {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r == '"' && attrValue:
			b.WriteString("&#34;")
		case r < 0x20 && r != '\t' && r != '\n':
			// Raw controls cannot round-trip through a reparse; encode them.
			// That includes carriage returns, which a reparse would
			// normalize to newlines.
			writeCharRef(&b, r)
		case r > 0x7e:
			writeCharRef(&b, r)
		default:
			b.WriteRune(r)
		}
	}

	if _, err := w.WriteString(b.String()); err != nil {
		return fmt.Errorf(genericErrMsg, err)
	}
	return nil
}

func writeCharRef(b *strings.Builder, r rune) {
	b.WriteString("&#")
	b.WriteString(strconv.Itoa(int(r)))
	b.WriteString(";")
}
