package bbcode

import (
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// voidElements have no closing tag in the output.
var voidElements = map[string]bool{
	"img": true,
}

// requireWellFormed checks that every emitted element is closed and closing tags come in
// reverse order of the opening ones.
func requireWellFormed(t *testing.T, input, out string) {
	t.Helper()

	z := html.NewTokenizer(strings.NewReader(out))
	var stack []string

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			require.ErrorIs(t, z.Err(), io.EOF, "input %q, output %q", input, out)
			break
		}

		tok := z.Token()
		switch tt {
		case html.StartTagToken:
			if !voidElements[tok.Data] {
				stack = append(stack, tok.Data)
			}

		case html.EndTagToken:
			require.NotEmpty(t, stack, "stray </%s> for input %q, output %q", tok.Data, input, out)
			require.Equal(t, stack[len(stack)-1], tok.Data, "input %q, output %q", input, out)
			stack = stack[:len(stack)-1]

		case html.SelfClosingTagToken:
			require.Fail(t, "unexpected self-closing token", "input %q, output %q", input, out)
		}
	}

	require.Empty(t, stack, "unclosed elements for input %q, output %q", input, out)
}

var chaosPieces = []string{
	"[b]", "[/b]", "[i]", "[/i]", "[u]", "[/U]",
	"[url]", "[url=http://x.y/?a=1&b=2]", "[/url]",
	"[img]", "[img=p.png]", "[/img]",
	"[list]", "[/list]", "[*]", "[/*]",
	"[quote]", "[quote=<q>]", "[/quote]",
	"[code]", "[/code]", "[icode]", "[/icode]",
	"[video]", "[/video]", "[spoiler]", "[spoiler=s]", "[/spoiler]",
	"[anchor=a]", "[/anchor]", "[h1]", "[/h1]",
	"text", " ", "<", ">", "&", `"`, "'", "\n", "\r\n", "[", "]", "/", "=",
	"http://x.y/z", "ü", "日本",
}

func chaosInput(r *rand.Rand) string {
	var sb strings.Builder
	n := r.IntN(40)
	for range n {
		sb.WriteString(chaosPieces[r.IntN(len(chaosPieces))])
	}
	return sb.String()
}

func TestParse_WellFormedOnChaos(t *testing.T) {
	parsers := []*Parser{testParser(t), testParser(t, WithAutolink())}
	r := rand.New(rand.NewPCG(42, 1024))

	for range 2000 {
		input := chaosInput(r)
		for _, p := range parsers {
			requireWellFormed(t, input, p.Parse(input))
		}
	}
}

func TestParse_WellFormedOnKnownCases(t *testing.T) {
	p := testParser(t)

	inputs := []string{
		"[b]foo[i]bar[u]baz[/b]quux",
		"[list][*]a[*]b[/list]",
		"[url]a[url]b[/url]",
		"[video]a[video=x][b]b[/video]c[/video]",
		"[quote=a][quote=b][/quote]",
		"[/b][/i][b][i][u][/i][/b][/u]",
	}

	for _, input := range inputs {
		requireWellFormed(t, input, p.Parse(input))
	}
}

func TestParse_NoSpecialCharsIsIdentity(t *testing.T) {
	p := testParser(t)
	r := rand.New(rand.NewPCG(7, 7))

	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789 .,;:!?-_()\n\téüж"
	runes := []rune(alphabet)

	for range 500 {
		var sb strings.Builder
		for range r.IntN(60) {
			sb.WriteRune(runes[r.IntN(len(runes))])
		}
		input := sb.String()
		require.Equal(t, input, p.Parse(input))
	}
}
