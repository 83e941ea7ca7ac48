package greywater

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a & b", "a &amp; b"},
		{"a < b > c", "a &lt; b &gt; c"},
		{`quotes " stay literal in text`, `quotes " stay literal in text`},
		{"Hellö Wörld", "Hell&#246; W&#246;rld"},
		{"emoji \U0001f600", "emoji &#128512;"},
		{"tab\tand\nnewline kept", "tab\tand\nnewline kept"},
		{"carriage\rreturn", "carriage&#13;return"},
		{"control \x01 encoded", "control &#1; encoded"},
	}

	for _, tt := range tests {
		var sb strings.Builder
		require.NoError(t, writeText(&sb, tt.in))
		assert.Equal(t, tt.want, sb.String())
	}
}

func TestWriteOpenTag(t *testing.T) {
	tests := []struct {
		tag   string
		attrs []Attribute
		want  string
	}{
		{
			tag:  "br",
			want: `<br>`,
		},
		{
			tag:   "a",
			attrs: []Attribute{{Key: "href", Val: "/x"}},
			want:  `<a href="/x">`,
		},
		{
			tag: "p",
			attrs: []Attribute{
				{Key: "alt", Val: `% & " !`},
				{Key: "title", Val: "<b>"},
			},
			want: `<p alt="% &amp; &#34; !" title="&lt;b&gt;">`,
		},
		{
			tag:   "a",
			attrs: []Attribute{{Namespace: "xlink", Key: "href", Val: "/y"}},
			want:  `<a xlink:href="/y">`,
		},
		{
			tag:   "td",
			attrs: []Attribute{{Key: "colspan", Val: ""}},
			want:  `<td colspan="">`,
		},
	}

	for _, tt := range tests {
		var sb strings.Builder
		require.NoError(t, writeOpenTag(&sb, tt.tag, tt.attrs))
		assert.Equal(t, tt.want, sb.String())
	}
}

func TestVoidElements(t *testing.T) {
	assert.True(t, voidElement("br"))
	assert.True(t, voidElement("img"))
	assert.False(t, voidElement("div"))
	assert.False(t, voidElement("frame"))
}
