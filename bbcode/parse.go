package bbcode

import (
	"strings"
	"unicode/utf8"
)

// Parse converts the BBCode input into an HTML fragment. It never fails: malformed markup is
// closed, dropped or flushed so that the output is always well nested.
func (p *Parser) Parse(input string) string {
	return p.ParseWithWarnings(input, nil)
}

// ParseWithWarnings is like [Parser.Parse] and additionally records in warns every construct
// that was repaired. warns may be nil.
func (p *Parser) ParseWithWarnings(input string, warns *Warnings) string {
	stack := newScopeStack(p.tags)
	e := emitter{
		input: input,
		tags:  p.tags,
		out:   make([]byte, 0, 2*len(input)),
	}

	cursor := 0
	for cursor < len(input) {
		rest := input[cursor:]

		top := stack.top()
		rule, loc := p.match(rest, top.def, p.isVerbatim(top))

		// no rule: a stray character, copy exactly one of them
		if rule == nil {
			_, size := utf8.DecodeRuneInString(rest)
			e.out = append(e.out, rest[:size]...)
			cursor += size
			continue
		}

		scopeEnd := cursor
		matched := rest[:loc[1]]
		cursor += loc[1]

		switch rule.Action {
		case ActPassthrough:
			e.out = append(e.out, matched...)

		case ActDirectReplace:
			e.out = append(e.out, rule.Text...)

		case ActBlockTransform:
			e.out = append(e.out, strings.ReplaceAll(rule.Text, valuePlaceholder, EscapeHTML(matched))...)

		case ActOpen:
			f := scopeFrame{
				def:        rule.Def,
				innerStart: cursor,
				hasArg:     loc[2] >= 0,
				pos:        scopeEnd,
			}

			var value string
			if f.hasArg {
				value = rest[loc[2]:loc[3]]
			}

			pushed, autoClosed := stack.open(f)
			for i := range autoClosed {
				warns.Add(Warning{
					Issue:       IssueDoubleClose,
					Pos:         scopeEnd,
					Tag:         p.tags[autoClosed[i].def].Tag,
					Description: "tag opened again while open; the previous one is closed",
				})
				e.closeTag(&autoClosed[i], scopeEnd)
			}
			e.openTag(pushed, value)

		case ActClose:
			popped := stack.close(rule.Def)
			if len(popped) == 0 {
				warns.Add(Warning{
					Issue:       IssueUnmatchedCloseTag,
					Pos:         scopeEnd,
					Tag:         p.tags[rule.Def].Tag,
					Description: "closing tag has no open counterpart and is dropped",
				})
			}

			for i := range popped {
				if i < len(popped)-1 {
					warns.Add(Warning{
						Issue:       IssueImplicitClose,
						Pos:         scopeEnd,
						Tag:         p.tags[popped[i].def].Tag,
						Description: "tag closed by the closing tag of an enclosing " + p.tags[rule.Def].Tag,
					})
				}
				e.closeTag(&popped[i], scopeEnd)
			}
		}
	}

	remaining := stack.dumpRemaining()
	for i := range remaining {
		if remaining[i].def != 0 {
			warns.Add(Warning{
				Issue:       IssueUnclosedTag,
				Pos:         remaining[i].pos,
				Tag:         p.tags[remaining[i].def].Tag,
				Description: "tag is not closed before the end of the input",
			})
		}
		e.closeTag(&remaining[i], len(input))
	}

	return string(e.out)
}

// isVerbatim reports whether only the baseline rules and the frame's own Tag rules apply
// inside the frame. A deferred attribute makes the body verbatim; an explicit argument lifts it.
func (p *Parser) isVerbatim(f *scopeFrame) bool {
	def := &p.tags[f.def]

	if def.Kind.Type == KindStart {
		return false
	}

	return def.ValueParse == ParseForceVerbatim || (def.Kind.defersBody() && !f.hasArg)
}

// match returns the first rule, in table order, matching at the start of rest, along with the
// submatch indices. Inside a verbatim scope rules of other Tags and block transforms are skipped.
func (p *Parser) match(rest string, topDef int, verbatim bool) (*MatchRule, []int) {
	for _, idx := range p.jump[rest[0]] {
		r := &p.rules[idx]

		if verbatim && !r.isBaseline() && r.Def != topDef {
			continue
		}

		if loc := r.Pattern.FindStringSubmatchIndex(rest); loc != nil {
			return r, loc
		}
	}

	return nil, nil
}
