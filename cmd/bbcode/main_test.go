package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Drolfothesgnir/bbcode/bbcode"
	"github.com/Drolfothesgnir/bbcode/tagconf"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := newRootCmd()

	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRender_Stdin(t *testing.T) {
	out, _, err := execute(t, "[b]hi[/b] [quote]q[/quote]")
	require.NoError(t, err)
	require.Equal(t, "<b>hi</b> <blockquote>q</blockquote>", out)
}

func TestRender_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post.txt")
	require.NoError(t, os.WriteFile(path, []byte("see http://x.com"), 0o600))

	out, _, err := execute(t, "", "--preset", "basic", "--autolink", path)
	require.NoError(t, err)
	require.Equal(t, `see <a target="_blank" href="http://x.com">http://x.com</a>`, out)
}

func TestRender_Warnings(t *testing.T) {
	out, stderr, err := execute(t, "[b]x", "--warnings")
	require.NoError(t, err)
	require.Equal(t, "<b>x</b>", out)

	var w bbcode.Warning
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(stderr)), &w))
	require.Equal(t, bbcode.IssueUnclosedTag, w.Issue)
	require.Equal(t, "b", w.Tag)
}

func TestRender_UnknownPreset(t *testing.T) {
	_, _, err := execute(t, "x", "--preset", "fancy")
	require.ErrorIs(t, err, tagconf.ErrUnknownPreset)
}

func TestRender_MissingFile(t *testing.T) {
	_, _, err := execute(t, "", filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestTags_PrintsLoadableYAML(t *testing.T) {
	out, _, err := execute(t, "", "tags", "--preset", "basic")
	require.NoError(t, err)

	defs, err := tagconf.Decode(strings.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, bbcode.BasicTags(), defs)
}
