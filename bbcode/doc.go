// Package bbcode converts BBCode markup into an HTML fragment in a single pass.
//
// A [Parser] is compiled once from an ordered list of [TagDefinition] and can then be shared
// between goroutines. Each call to [Parser.Parse] walks the input from left to right, trying
// the compiled rules in table order at the cursor. The first rule that matches wins.
//
// # Notes and Policies.
//
//  1. Tags are matched case-insensitively: "[B]" opens "b".
//  2. The text "<>&\"'" is always escaped and a bare "\r" is removed. Nothing else is sanitized.
//  3. A closing tag closes every scope opened after its counterpart, e.g.
//     "[b]foo[i]bar[/b]" -> "<b>foo<i>bar</i></b>".
//  4. A closing tag without an open counterpart is dropped.
//  5. Tags still open at the end of the input are closed there, innermost first.
//  6. Inside a verbatim scope only the escapes and the scope's own Tag are recognized, so
//     "[url]a[b]c[/url]" links to "a[b]c".
//  7. Malformed input never produces an error. [Parser.ParseWithWarnings] reports what was repaired.
//
// The output is well nested with respect to the defined Tags. It is not validated against
// the HTML content model, so a "<b>" may wrap a "<ul>".
package bbcode
