package greywater

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeSrcSet(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		want      string
		rewritten bool
	}{
		{
			name: "single url",
			in:   "/foo.png",
			want: "/foo.png",
		},
		{
			name: "url with descriptor",
			in:   "/foo.png 2x",
			want: "/foo.png 2x",
		},
		{
			name: "multiple candidates",
			in:   "/a.png 1x, /b.png 2x, /c.png 100w",
			want: "/a.png 1x, /b.png 2x, /c.png 100w",
		},
		{
			name:      "unsafe candidate rewritten independently",
			in:        "/foo.png 400px, javascript:evil() 23px",
			want:      "/foo.png 400px, unsafe:javascript:evil() 23px",
			rewritten: true,
		},
		{
			name: "descriptor preserved verbatim",
			in:   "https://example.com/i.png   640w",
			want: "https://example.com/i.png 640w",
		},
		{
			name: "empty candidates dropped",
			in:   "/a.png,, /b.png",
			want: "/a.png, /b.png",
		},
		{
			// Splitting is on commas, so a data URI's own comma starts a new
			// candidate; both halves are judged on their own.
			name:      "all candidates unsafe",
			in:        "javascript:a(), data:text/html,x",
			want:      "unsafe:javascript:a(), unsafe:data:text/html, x",
			rewritten: true,
		},
	}

	p := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rewritten := p.sanitizeSrcSet(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rewritten, rewritten)
		})
	}
}

func TestSanitizeSrcSetIdempotent(t *testing.T) {
	p := Default()

	once, _ := p.sanitizeSrcSet("/foo.png 400px, javascript:evil() 23px")
	twice, rewritten := p.sanitizeSrcSet(once)
	assert.Equal(t, once, twice)
	assert.False(t, rewritten)
}
