package bbcode

import "fmt"

// Issue defines types of problems found while compiling the tag table or while parsing the input.
type Issue int

const (
	// IssueEmptyTag occurs when the Tag identifier is an empty string.
	IssueEmptyTag Issue = iota

	// IssueUnescapedMetachar occurs when the Tag identifier contains a regular expression
	// metacharacter which is not escaped with a backslash.
	IssueUnescapedMetachar

	// IssueInvalidEscape occurs when a backslash in the Tag identifier escapes something other
	// than an ASCII punctuation character, or ends the identifier.
	IssueInvalidEscape

	// IssueInvalidPattern occurs when the rule built from the Tag can't be compiled.
	IssueInvalidPattern

	// IssueDuplicateTag occurs when a Tag with the same identifier is already registered.
	IssueDuplicateTag

	// IssueEmptyOutputTag occurs when the Tag has no HTML element name to emit.
	IssueEmptyOutputTag

	// IssueMissingAttr occurs when a [KindDefinedArg], [KindSelfClosing] or [KindDefaultArg]
	// Tag has no attribute name.
	IssueMissingAttr

	// IssueMissingChild occurs when a [KindDefinedTag] Tag has no child element name.
	IssueMissingChild

	// IssueInvalidBlankConsume occurs when [BlankConsume.N] is negative or greater than
	// [MaxBlankConsume].
	IssueInvalidBlankConsume

	// IssueDuplicateStart occurs when more than one [KindStart] definition is supplied.
	IssueDuplicateStart

	// IssueNegativeWarningsCap reports an invalid (negative) warnings capacity.
	IssueNegativeWarningsCap

	// IssueWarningsTruncated occurs when there are too many Warnings recorded.
	IssueWarningsTruncated

	// IssueUnmatchedCloseTag occurs when a closing tag has no open counterpart anywhere in the
	// scope stack. The closing tag is dropped from the output.
	IssueUnmatchedCloseTag

	// IssueImplicitClose occurs when a closing tag closes scopes opened after its counterpart.
	IssueImplicitClose

	// IssueDoubleClose occurs when a [ParseDoubleCloses] Tag closes its previous sibling.
	IssueDoubleClose

	// IssueUnclosedTag occurs when the input ends while the Tag is still open.
	IssueUnclosedTag
)

var issueToString = map[Issue]string{
	IssueEmptyTag:            "empty_tag",
	IssueUnescapedMetachar:   "unescaped_metachar",
	IssueInvalidEscape:       "invalid_escape",
	IssueInvalidPattern:      "invalid_pattern",
	IssueDuplicateTag:        "duplicate_tag",
	IssueEmptyOutputTag:      "empty_output_tag",
	IssueMissingAttr:         "missing_attr",
	IssueMissingChild:        "missing_child",
	IssueInvalidBlankConsume: "invalid_blank_consume",
	IssueDuplicateStart:      "duplicate_start",
	IssueNegativeWarningsCap: "negative_warnings_cap",
	IssueWarningsTruncated:   "warnings_truncated",
	IssueUnmatchedCloseTag:   "unmatched_close_tag",
	IssueImplicitClose:       "implicit_close",
	IssueDoubleClose:         "double_close",
	IssueUnclosedTag:         "unclosed_tag",
}

func (i Issue) String() string {
	if s, ok := issueToString[i]; ok {
		return s
	}
	return "unknown"
}

// MarshalText renders the Issue by name, so the serialized Warnings are readable.
func (i Issue) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText is the inverse of [Issue.MarshalText].
func (i *Issue) UnmarshalText(text []byte) error {
	for issue, name := range issueToString {
		if name == string(text) {
			*i = issue
			return nil
		}
	}
	return fmt.Errorf("unknown issue %q", text)
}
