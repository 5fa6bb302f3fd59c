package bbcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeHTML(t *testing.T) {
	require.Equal(t, "", EscapeHTML(""))
	require.Equal(t, "plain", EscapeHTML("plain"))
	require.Equal(t, "&lt;a href=&quot;x&quot;&gt;&#39;&amp;&#39;&lt;/a&gt;", EscapeHTML(`<a href="x">'&'</a>`))
	require.Equal(t, "line\nline", EscapeHTML("line\r\nline"))
}

// The escape rules and the attribute escaping share one table.
func TestEscapeHTML_MatchesDirectReplaceRules(t *testing.T) {
	p := testParser(t)

	for _, r := range p.Rules() {
		if r.Action != ActDirectReplace {
			continue
		}

		// none of the escaped characters is a metacharacter, so the pattern is "^" + char
		char := r.Pattern.String()[1:]
		require.Equal(t, r.Text, EscapeHTML(char), "rule %s", r.Pattern)
	}
}
