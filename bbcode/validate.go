package bbcode

import (
	"errors"
	"fmt"
	"strings"
)

// regexMetachars are the characters that must be escaped inside a Tag identifier.
const regexMetachars = `.+*?()|[]{}^$`

// isASCIIPunct returns true for printable ASCII characters which are neither letters, digits nor space.
func isASCIIPunct(b byte) bool {
	return (b >= '!' && b <= '/') ||
		(b >= ':' && b <= '@') ||
		(b >= '[' && b <= '`') ||
		(b >= '{' && b <= '~')
}

// validateIdent checks that the Tag identifier is a literal: every metacharacter is escaped
// and every backslash escapes punctuation only.
func validateIdent(tag string) error {
	if tag == "" {
		return NewCompileError(IssueEmptyTag, tag, errors.New("tag identifier is empty"))
	}

	for i := 0; i < len(tag); i++ {
		c := tag[i]

		if c == '\\' {
			if i+1 == len(tag) {
				return NewCompileError(IssueInvalidEscape, tag, errors.New("trailing backslash"))
			}

			if !isASCIIPunct(tag[i+1]) {
				return NewCompileError(
					IssueInvalidEscape,
					tag,
					fmt.Errorf("backslash at %d escapes %q, only ASCII punctuation can be escaped", i, tag[i+1]),
				)
			}

			i++
			continue
		}

		if strings.IndexByte(regexMetachars, c) >= 0 {
			return NewCompileError(
				IssueUnescapedMetachar,
				tag,
				fmt.Errorf("unescaped metacharacter %q at %d", c, i),
			)
		}
	}

	return nil
}

// validateDefinition checks the non-sentinel [TagDefinition] for missing or out of range fields.
func validateDefinition(def *TagDefinition) error {
	if err := validateIdent(def.Tag); err != nil {
		return err
	}

	if def.OutputTag == "" {
		return NewCompileError(IssueEmptyOutputTag, def.Tag, errors.New("output tag is empty"))
	}

	switch def.Kind.Type {
	case KindDefinedArg, KindSelfClosing, KindDefaultArg:
		if def.Kind.Attr == "" {
			return NewCompileError(
				IssueMissingAttr,
				def.Tag,
				fmt.Errorf("kind %s requires an attribute name", def.Kind.Type),
			)
		}

	case KindDefinedTag:
		if def.Kind.Child == "" {
			return NewCompileError(IssueMissingChild, def.Tag, errors.New("kind defined_tag requires a child tag"))
		}
	}

	bc := def.BlankConsume
	if bc.Mode != BlankNone && (bc.N < 0 || bc.N > MaxBlankConsume) {
		return NewCompileError(
			IssueInvalidBlankConsume,
			def.Tag,
			fmt.Errorf("blank count must be within [0, %d], got %d", MaxBlankConsume, bc.N),
		)
	}

	return nil
}
