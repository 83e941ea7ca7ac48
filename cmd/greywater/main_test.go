package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSanitizeStdin(t *testing.T) {
	out, errOut, err := execute(t,
		`<p onclick="x()">hello</p><script>evil()</script>`)
	require.NoError(t, err)
	assert.Equal(t, `<p>hello</p>evil()`, out)
	assert.Contains(t, errOut, "stripped")
}

func TestQuietSuppressesNotices(t *testing.T) {
	out, errOut, err := execute(t, `<script>x</script>ok`, "--quiet")
	require.NoError(t, err)
	assert.Equal(t, `xok`, out)
	assert.Empty(t, errOut)
}

func TestStrictExit(t *testing.T) {
	_, _, err := execute(t, `<script>x</script>`, "--quiet", "--strict-exit")
	require.Error(t, err)

	_, _, err = execute(t, `<p>fine</p>`, "--quiet", "--strict-exit")
	require.NoError(t, err)
}

func TestSanitizeFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.html")
	require.NoError(t,
		os.WriteFile(path, []byte(`<b onclick="x">bold</b>`), 0o600))

	out, _, err := execute(t, "", "--quiet", path)
	require.NoError(t, err)
	assert.Equal(t, `<b>bold</b>`, out)

	_, _, err = execute(t, "", "--quiet", filepath.Join(dir, "missing.html"))
	require.Error(t, err)
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("elements: [em]\n"), 0o600))

	out, _, err := execute(t, `<em>e</em><p>gone</p>`, "--quiet", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, `<em>e</em>gone`, out)
}
