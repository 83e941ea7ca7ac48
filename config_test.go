package greywater

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPolicyYAML = `
elements: [p, a, b]
attributes: [title]
element_attributes:
  a: [rel]
url_attributes: [href]
srcset_attributes: [srcset]
url_schemes: [https]
skip_content: [frame]
`

func TestLoadPolicy(t *testing.T) {
	p, err := LoadPolicy(strings.NewReader(testPolicyYAML))
	require.NoError(t, err)

	ctx := NewContext()
	assert.Equal(t, `<p><a href="https://x/" title="t">x</a></p>`,
		p.Sanitize(ctx, `<p><a href="https://x/" title="t">x</a></p>`))
	assert.Equal(t, `<a href="unsafe:http://x/">x</a>`,
		p.Sanitize(ctx, `<a href="http://x/">x</a>`))
	assert.Equal(t, `<a rel="nofollow">x</a>`,
		p.Sanitize(ctx, `<a rel="nofollow">x</a>`))
	assert.Equal(t, `<p>x</p>`, p.Sanitize(ctx, `<p rel="nofollow">x</p>`))
	assert.Equal(t, `x`, p.Sanitize(ctx, `<div>x</div>`))
	assert.Empty(t, p.Sanitize(ctx, `<frame>evil</frame>`))
}

func TestLoadPolicyUnknownField(t *testing.T) {
	_, err := LoadPolicy(strings.NewReader("element: [p]\n"))
	require.Error(t, err, "typoed keys must fail loudly")
}

func TestLoadPolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testPolicyYAML), 0o600))

	p, err := LoadPolicyFile(path)
	require.NoError(t, err)
	assert.Equal(t, `<b>x</b>`, p.Sanitize(NewContext(), `<b>x</b>`))

	_, err = LoadPolicyFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
