package bbcode

import "regexp"

// ActionType defines what happens when a [MatchRule] matches at the cursor.
type ActionType uint8

const (
	// ActPassthrough copies the match verbatim.
	ActPassthrough ActionType = iota

	// ActDirectReplace emits [MatchRule.Text] instead of the match.
	ActDirectReplace

	// ActBlockTransform HTML-escapes the match and substitutes it into [MatchRule.Text]
	// at every "$0" placeholder.
	ActBlockTransform

	// ActOpen opens a scope of the Tag [MatchRule.Def].
	ActOpen

	// ActClose closes scopes down to the Tag [MatchRule.Def].
	ActClose
)

// valuePlaceholder is replaced with the escaped match in block transform templates.
const valuePlaceholder = "$0"

// MatchRule pairs a pattern, anchored at the start of the remaining input, with an action.
// Rule order is priority: the first rule that matches wins.
type MatchRule struct {
	Pattern *regexp.Regexp
	Action  ActionType

	// Text is the replacement for [ActDirectReplace] or the template for [ActBlockTransform].
	Text string

	// Def is the index of the Tag in [Parser.Tags] for [ActOpen] and [ActClose], otherwise -1.
	Def int

	// leads lists every byte the pattern can start with. Used to build the jump table.
	leads []byte
}

// isBaseline reports whether the rule still applies inside a verbatim scope regardless of the Tag.
func (r *MatchRule) isBaseline() bool {
	return r.Action == ActPassthrough || r.Action == ActDirectReplace
}
