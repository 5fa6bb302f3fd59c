package bbcode

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// passthroughExcluded are the bytes a plain text run can't contain.
	passthroughExcluded = "[]<>'\"&\r\n/"

	// autolinkPattern: brackets, quotes and angle brackets
	// never become part of a link.
	autolinkPattern = `https?://[-A-Za-z0-9+&@#/%?=~_|!:,.;]*[-A-Za-z0-9+&@#/%=~_|]`

	// AutolinkTemplate is the output of an autolinked URL. "$0" is the escaped URL.
	AutolinkTemplate = `<a target="_blank" href="$0">$0</a>`
)

type compileOptions struct {
	autolink bool
}

// CompileDecorator sets optional behaviour of the compiled [Parser].
type CompileDecorator func(o *compileOptions)

// WithAutolink turns bare http(s) URLs into links.
func WithAutolink() CompileDecorator {
	return func(o *compileOptions) {
		o.autolink = true
	}
}

// Parser is a compiled, immutable matcher table. It is safe for concurrent use.
type Parser struct {
	// tags holds the definitions. Index 0 is always the Start sentinel.
	tags []TagDefinition

	rules []MatchRule

	// jump lists, for every byte, the indices of the rules which can match at it, in table order.
	jump [256][]int

	autolink bool
}

// Tags returns a copy of the definitions, excluding the Start sentinel.
func (p *Parser) Tags() []TagDefinition {
	out := make([]TagDefinition, len(p.tags)-1)
	copy(out, p.tags[1:])
	return out
}

// Rules returns a copy of the compiled rules in priority order.
func (p *Parser) Rules() []MatchRule {
	out := make([]MatchRule, len(p.rules))
	copy(out, p.rules)
	return out
}

// Autolink reports whether the parser links bare URLs.
func (p *Parser) Autolink() bool {
	return p.autolink
}

// MustCompile is like [Compile] but panics on error. Intended for the built-in presets.
func MustCompile(defs []TagDefinition, opts ...CompileDecorator) *Parser {
	p, err := Compile(defs, opts...)
	if err != nil {
		panic("bbcode: Compile: " + err.Error())
	}
	return p
}

// Compile turns the ordered list of definitions into a [Parser]. Rule order, which is
// priority order, is: the plain text passthrough, the HTML escapes, the optional autolink,
// and then an open and a close rule for every Tag in the given order.
//
// At most one definition may be of [KindStart]; if none is supplied a sentinel is created.
// Any invalid definition fails the whole compilation with a *[CompileError].
func Compile(defs []TagDefinition, opts ...CompileDecorator) (*Parser, error) {
	var o compileOptions
	for _, dec := range opts {
		dec(&o)
	}

	tags, err := collectTags(defs)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		tags:     tags,
		rules:    make([]MatchRule, 0, 8+2*len(tags)),
		autolink: o.autolink,
	}

	p.rules = append(p.rules, passthroughRule(o.autolink))

	for _, e := range htmlEscapes {
		p.rules = append(p.rules, MatchRule{
			Pattern: regexp.MustCompile("^" + regexp.QuoteMeta(e.char)),
			Action:  ActDirectReplace,
			Text:    e.repl,
			Def:     -1,
			leads:   []byte(e.char),
		})
	}

	if o.autolink {
		p.rules = append(p.rules, MatchRule{
			Pattern: regexp.MustCompile("^" + autolinkPattern),
			Action:  ActBlockTransform,
			Text:    AutolinkTemplate,
			Def:     -1,
			leads:   []byte{'h'},
		})
	}

	for i := 1; i < len(tags); i++ {
		open, close, err := tagRules(&tags[i], i)
		if err != nil {
			return nil, err
		}
		p.rules = append(p.rules, open, close)
	}

	for i := range p.rules {
		for _, b := range p.rules[i].leads {
			p.jump[b] = append(p.jump[b], i)
		}
	}

	return p, nil
}

// collectTags validates the definitions and places the Start sentinel at index 0.
func collectTags(defs []TagDefinition) ([]TagDefinition, error) {
	tags := make([]TagDefinition, 1, len(defs)+1)
	tags[0] = TagDefinition{Kind: Start()}

	hasStart := false
	seen := make(map[string]struct{}, len(defs))

	for _, def := range defs {
		if def.Kind.Type == KindStart {
			if hasStart {
				return nil, NewCompileError(
					IssueDuplicateStart,
					def.Tag,
					errors.New("only one start definition is allowed"),
				)
			}
			hasStart = true
			tags[0] = def
			continue
		}

		if err := validateDefinition(&def); err != nil {
			return nil, err
		}

		key := strings.ToLower(def.Tag)
		if _, ok := seen[key]; ok {
			return nil, NewCompileError(IssueDuplicateTag, def.Tag, errors.New("tag is already registered"))
		}
		seen[key] = struct{}{}

		tags = append(tags, def)
	}

	return tags, nil
}

// passthroughRule matches the longest run of plain text. With autolinking 'h' stops the run,
// so a URL can be found at its first byte.
func passthroughRule(autolink bool) MatchRule {
	excluded := passthroughExcluded
	if autolink {
		excluded += "h"
	}

	leads := make([]byte, 0, 256)
	for b := 0; b < 256; b++ {
		if strings.IndexByte(excluded, byte(b)) < 0 {
			leads = append(leads, byte(b))
		}
	}

	class := strings.NewReplacer(`[`, `\[`, `]`, `\]`, "\r", `\r`, "\n", `\n`).Replace(excluded)

	return MatchRule{
		Pattern: regexp.MustCompile("^[^" + class + "]+"),
		Action:  ActPassthrough,
		Def:     -1,
		leads:   leads,
	}
}

// blankSuffix is the newline absorbing tail of a pattern.
func blankSuffix(n int) string {
	if n == 0 {
		return ""
	}
	return `(?:\r?\n){0,` + strconv.Itoa(n) + `}`
}

// tagRules builds the open and the close rule of the Tag. The "=value" argument of the
// open rule is always capture group 1.
func tagRules(def *TagDefinition, idx int) (open, close MatchRule, err error) {
	ident := `(?i:` + def.Tag + `)`

	var openTail, closeTail string
	switch def.BlankConsume.Mode {
	case BlankAfterStart:
		openTail = blankSuffix(def.BlankConsume.N)
	case BlankAfterEnd:
		closeTail = blankSuffix(def.BlankConsume.N)
	}

	openRe, err := regexp.Compile(`^\[` + ident + `(?:=([^\]]*))?\]` + openTail)
	if err != nil {
		return open, close, NewCompileError(IssueInvalidPattern, def.Tag, fmt.Errorf("open rule: %w", err))
	}

	closeRe, err := regexp.Compile(`^\[/` + ident + `\]` + closeTail)
	if err != nil {
		return open, close, NewCompileError(IssueInvalidPattern, def.Tag, fmt.Errorf("close rule: %w", err))
	}

	open = MatchRule{Pattern: openRe, Action: ActOpen, Def: idx, leads: []byte{'['}}
	close = MatchRule{Pattern: closeRe, Action: ActClose, Def: idx, leads: []byte{'['}}

	return open, close, nil
}
