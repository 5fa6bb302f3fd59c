package bbcode

import "strings"

// htmlEscapes is the fixed escape table. The same table backs the direct replace rules
// and the escaping of attribute values.
var htmlEscapes = [...]struct {
	char string
	repl string
}{
	{"<", "&lt;"},
	{">", "&gt;"},
	{"&", "&amp;"},
	{`"`, "&quot;"},
	{"'", "&#39;"},
	{"\r", ""},
}

var htmlEscaper = func() *strings.Replacer {
	pairs := make([]string, 0, len(htmlEscapes)*2)
	for _, e := range htmlEscapes {
		pairs = append(pairs, e.char, e.repl)
	}
	return strings.NewReplacer(pairs...)
}()

// EscapeHTML applies the escape table to s: "<>&\"'" become entities and bare "\r" is removed.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
