package bbcode

// KindType defines how a Tag treats its bracket argument and its body.
type KindType uint8

const (
	// KindStart is the sentinel at the bottom of the scope stack. It is never matched
	// against the input and produces no output.
	KindStart KindType = iota

	// KindSimple tags take no argument, e.g. "[b]" -> "<b>".
	KindSimple

	// KindDefinedArg tags render an optional "=value" argument as an attribute,
	// e.g. "[anchor=top]" -> `<a id="top">`.
	KindDefinedArg

	// KindDefinedTag tags render the "=value" argument as a nested child element,
	// e.g. "[quote=Bob]" -> "<blockquote><cite>Bob</cite>".
	KindDefinedTag

	// KindSelfClosing tags have no real closing tag. Without an "=value" argument the body
	// becomes the attribute value, e.g. "[img]pic.png[/img]" -> `<img src="pic.png">`.
	KindSelfClosing

	// KindDefaultArg tags use the "=value" argument as the attribute if given. Otherwise the body
	// becomes the attribute value and is also echoed as the element's content,
	// e.g. "[url]x.com[/url]" -> `<a href="x.com">x.com</a>`.
	KindDefaultArg
)

var kindTypeToString = map[KindType]string{
	KindStart:       "start",
	KindSimple:      "simple",
	KindDefinedArg:  "defined_arg",
	KindDefinedTag:  "defined_tag",
	KindSelfClosing: "self_closing",
	KindDefaultArg:  "default_arg",
}

func (k KindType) String() string {
	if s, ok := kindTypeToString[k]; ok {
		return s
	}
	return "unknown"
}

// Kind is the argument handling mode of a [TagDefinition] together with its parameters.
type Kind struct {
	Type KindType

	// Attr is the attribute name for [KindDefinedArg], [KindSelfClosing] and [KindDefaultArg].
	Attr string

	// Child is the element name for [KindDefinedTag].
	Child string

	// Default is the child element's text for [KindDefinedTag] when no argument is given.
	// Only used if HasDefault is true. It is trusted and written as is.
	Default    string
	HasDefault bool
}

// Start returns the sentinel Kind.
func Start() Kind { return Kind{Type: KindStart} }

// Simple returns the Kind of an argument-less Tag.
func Simple() Kind { return Kind{Type: KindSimple} }

// DefinedArg returns the Kind of a Tag whose argument renders as attribute attr.
func DefinedArg(attr string) Kind { return Kind{Type: KindDefinedArg, Attr: attr} }

// DefinedTag returns the Kind of a Tag whose argument renders as a child element.
func DefinedTag(child string) Kind { return Kind{Type: KindDefinedTag, Child: child} }

// DefinedTagDefault is like [DefinedTag], but emits the child element with text when
// the argument is missing.
func DefinedTagDefault(child, text string) Kind {
	return Kind{Type: KindDefinedTag, Child: child, Default: text, HasDefault: true}
}

// SelfClosing returns the Kind of a Tag without a closing element.
func SelfClosing(attr string) Kind { return Kind{Type: KindSelfClosing, Attr: attr} }

// DefaultArg returns the Kind of a Tag whose attribute is either the argument or the body.
func DefaultArg(attr string) Kind { return Kind{Type: KindDefaultArg, Attr: attr} }

// defersBody is true for kinds whose body may become the attribute value.
func (k Kind) defersBody() bool {
	return k.Type == KindSelfClosing || k.Type == KindDefaultArg
}

// ValueParse defines how the content of an open Tag is scanned.
type ValueParse uint8

const (
	// ParseNormal means all rules apply inside the Tag.
	ParseNormal ValueParse = iota

	// ParseForceVerbatim means only the HTML escape rules and the Tag's own open/close rules
	// apply inside it. Everything else is literal text.
	ParseForceVerbatim

	// ParseDoubleCloses means opening the Tag while the same Tag is the innermost open scope
	// closes the previous instance first. Used for list items.
	ParseDoubleCloses
)

var valueParseToString = map[ValueParse]string{
	ParseNormal:        "normal",
	ParseForceVerbatim: "force_verbatim",
	ParseDoubleCloses:  "double_closes",
}

func (v ValueParse) String() string {
	if s, ok := valueParseToString[v]; ok {
		return s
	}
	return "unknown"
}

// BlankMode selects where newlines are absorbed around a Tag.
type BlankMode uint8

const (
	BlankNone BlankMode = iota

	// BlankAfterStart absorbs newlines right after the opening match.
	BlankAfterStart

	// BlankAfterEnd absorbs newlines right after the closing match.
	BlankAfterEnd
)

// MaxBlankConsume is the upper bound of [BlankConsume.N].
const MaxBlankConsume = 1000

// BlankConsume is the newline consumption policy of a Tag. Up to N "\n" or "\r\n"
// sequences are swallowed at the position selected by Mode.
type BlankConsume struct {
	Mode BlankMode
	N    int
}

// NoBlank consumes nothing.
var NoBlank = BlankConsume{}

// BlankStart absorbs up to n newline sequences after the opening tag.
func BlankStart(n int) BlankConsume { return BlankConsume{Mode: BlankAfterStart, N: n} }

// BlankEnd absorbs up to n newline sequences after the closing tag.
func BlankEnd(n int) BlankConsume { return BlankConsume{Mode: BlankAfterEnd, N: n} }

// TagDefinition describes a recognized tag. Identity is the Tag field, compared
// case-insensitively.
type TagDefinition struct {
	// Tag is the identifier between the brackets. It is a regular expression fragment, so
	// metacharacters must be escaped by the caller, e.g. `\*`.
	Tag string

	// OutputTag is the HTML element name to emit.
	OutputTag string

	Kind Kind

	// RawExtra is injected verbatim into the opening tag, e.g. `target="_blank"`.
	// It is trusted and never escaped.
	RawExtra string

	ValueParse ValueParse

	BlankConsume BlankConsume
}

// TagDecorator fills optional fields of the [TagDefinition].
type TagDecorator func(t *TagDefinition)

func WithRawExtra(extra string) TagDecorator {
	return func(t *TagDefinition) {
		t.RawExtra = extra
	}
}

func WithValueParse(vp ValueParse) TagDecorator {
	return func(t *TagDefinition) {
		t.ValueParse = vp
	}
}

func WithBlankConsume(bc BlankConsume) TagDecorator {
	return func(t *TagDefinition) {
		t.BlankConsume = bc
	}
}

// NewTag creates a [TagDefinition] from the bracket identifier, the output element name,
// the Kind and optional values.
func NewTag(tag, outputTag string, kind Kind, opts ...TagDecorator) TagDefinition {
	t := TagDefinition{
		Tag:       tag,
		OutputTag: outputTag,
		Kind:      kind,
	}

	for _, dec := range opts {
		dec(&t)
	}

	return t
}
