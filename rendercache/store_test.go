package rendercache

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Drolfothesgnir/bbcode/bbcode"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	k := Key("fp", "[b]x[/b]")

	require.True(t, strings.HasPrefix(k, RenderPrefix))
	require.Len(t, k, len(RenderPrefix)+64)

	require.Equal(t, k, Key("fp", "[b]x[/b]"))
	require.NotEqual(t, k, Key("fp2", "[b]x[/b]"))
	require.NotEqual(t, k, Key("fp", "[b]y[/b]"))

	// the separator keeps the two parts apart
	require.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
}

func TestRenderedPost_JSON(t *testing.T) {
	post := RenderedPost{
		HTML: "<b>x</b>",
		Warnings: []bbcode.Warning{
			{Issue: bbcode.IssueUnclosedTag, Pos: 0, Tag: "b", Description: "d"},
		},
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	data, err := json.Marshal(post)
	require.NoError(t, err)
	require.Contains(t, string(data), `"issue":"unclosed_tag"`)

	var got RenderedPost
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, post, got)
}
