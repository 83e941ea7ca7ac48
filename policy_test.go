package greywater

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyCaseInsensitive(t *testing.T) {
	p := NewPolicy().
		AllowElements("DIV", "P").
		AllowAttrs("TITLE")

	ctx := NewContext()
	assert.Equal(t, `<div title="x">a</div>`,
		p.Sanitize(ctx, `<DIV TITLE="x">a</DIV>`))
	assert.Equal(t, `<p>b</p>`, p.Sanitize(ctx, `<p>b</p>`))
}

func TestPolicyChaining(t *testing.T) {
	p := NewPolicy().
		AllowElements("a").
		AllowAttrs("title").
		AllowURLAttrs("href").
		AllowSrcSetAttrs("srcset").
		AllowURLSchemes("https").
		SkipElementsContent("frame")

	ctx := NewContext()
	assert.Equal(t, `<a href="https://x/">t</a>`,
		p.Sanitize(ctx, `<a href="https://x/">t</a>`))
	assert.Equal(t, `<a href="unsafe:http://x/">t</a>`,
		p.Sanitize(ctx, `<a href="http://x/">t</a>`),
		"http is not in this policy's scheme allowlist")
}

func TestElementAttrs(t *testing.T) {
	p := NewPolicy().
		AllowElements("img", "p").
		AllowAttrs("title").
		AllowElementAttrs("img", "alt", "WIDTH")

	ctx := NewContext()
	assert.Equal(t, `<img alt="a" width="5" title="t">`,
		p.Sanitize(ctx, `<img alt="a" width="5" title="t">`))
	assert.Equal(t, `<p title="t">x</p>`,
		p.Sanitize(ctx, `<p alt="a" title="t">x</p>`),
		"img-only attributes must not leak onto other elements")
}

func TestStrictPolicy(t *testing.T) {
	p := Strict()
	ctx := NewContext()

	assert.Equal(t, `<b>hi</b>`, p.Sanitize(ctx, `<b title="x">hi</b>`),
		"strict policy allows no attributes")
	assert.Equal(t, `link`, p.Sanitize(ctx, `<a href="/x">link</a>`))
	assert.Empty(t, p.Sanitize(ctx, `<frame>evil</frame>`))
}

func TestDefaultPolicyTables(t *testing.T) {
	p := Default()

	require.True(t, p.allowedElement("p"))
	require.True(t, p.allowedElement("table"))
	require.False(t, p.allowedElement("script"))
	require.False(t, p.allowedElement("style"))
	require.False(t, p.allowedElement("form"))
	require.False(t, p.allowedElement("iframe"))
	require.False(t, p.allowedElement("frame"))
	require.True(t, p.skipContentElement("frame"))
	require.False(t, p.skipContentElement("frameset"))
}
