// Package tagconf loads BBCode tag tables from YAML files or named presets and builds
// ready to use parsers from the service configuration.
package tagconf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Drolfothesgnir/bbcode/bbcode"
	"github.com/Drolfothesgnir/bbcode/util"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownPreset     = errors.New("unknown tag preset")
	ErrUnknownKind       = errors.New("unknown tag kind")
	ErrUnknownValueParse = errors.New("unknown value parse mode")
	ErrConflictingBlank  = errors.New("blank_start and blank_end are mutually exclusive")
	ErrNoTags            = errors.New("tag table is empty")
)

// TagSpec is the serialized form of a [bbcode.TagDefinition].
type TagSpec struct {
	Tag        string  `yaml:"tag" json:"tag"`
	Output     string  `yaml:"output" json:"output"`
	Kind       string  `yaml:"kind,omitempty" json:"kind"`
	Attr       string  `yaml:"attr,omitempty" json:"attr,omitempty"`
	Child      string  `yaml:"child,omitempty" json:"child,omitempty"`
	Default    *string `yaml:"default,omitempty" json:"default,omitempty"`
	Extra      string  `yaml:"extra,omitempty" json:"extra,omitempty"`
	Parse      string  `yaml:"parse,omitempty" json:"parse,omitempty"`
	BlankStart *int    `yaml:"blank_start,omitempty" json:"blank_start,omitempty"`
	BlankEnd   *int    `yaml:"blank_end,omitempty" json:"blank_end,omitempty"`
}

// File is the top level document of a tag table.
type File struct {
	Tags []TagSpec `yaml:"tags"`
}

var kinds = map[string]bbcode.KindType{}
var valueParses = map[string]bbcode.ValueParse{}

func init() {
	for _, k := range []bbcode.KindType{
		bbcode.KindStart,
		bbcode.KindSimple,
		bbcode.KindDefinedArg,
		bbcode.KindDefinedTag,
		bbcode.KindSelfClosing,
		bbcode.KindDefaultArg,
	} {
		kinds[k.String()] = k
	}

	for _, v := range []bbcode.ValueParse{
		bbcode.ParseNormal,
		bbcode.ParseForceVerbatim,
		bbcode.ParseDoubleCloses,
	} {
		valueParses[v.String()] = v
	}
}

// Load reads the YAML tag table at path.
func Load(path string) ([]bbcode.TagDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open tag table: %w", err)
	}
	defer f.Close()

	defs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("tag table %s: %w", path, err)
	}

	return defs, nil
}

// Decode reads a YAML tag table from r. Unknown fields are rejected.
func Decode(r io.Reader) ([]bbcode.TagDefinition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoTags
		}
		return nil, fmt.Errorf("cannot decode tag table: %w", err)
	}

	if len(file.Tags) == 0 {
		return nil, ErrNoTags
	}

	defs := make([]bbcode.TagDefinition, 0, len(file.Tags))
	for i, spec := range file.Tags {
		def, err := spec.Definition()
		if err != nil {
			return nil, fmt.Errorf("tags[%d] (%q): %w", i, spec.Tag, err)
		}
		defs = append(defs, def)
	}

	return defs, nil
}

// Encode writes defs as a YAML tag table.
func Encode(w io.Writer, defs []bbcode.TagDefinition) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(File{Tags: Specs(defs)}); err != nil {
		return fmt.Errorf("cannot encode tag table: %w", err)
	}

	return enc.Close()
}

// Definition converts the TagSpec into a [bbcode.TagDefinition]. Only the field level
// shape is checked here; everything else is validated by [bbcode.Compile].
func (spec TagSpec) Definition() (bbcode.TagDefinition, error) {
	kindName := spec.Kind
	if kindName == "" {
		kindName = bbcode.KindSimple.String()
	}

	kindType, ok := kinds[kindName]
	if !ok {
		return bbcode.TagDefinition{}, fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}

	var kind bbcode.Kind
	switch kindType {
	case bbcode.KindStart:
		kind = bbcode.Start()
	case bbcode.KindSimple:
		kind = bbcode.Simple()
	case bbcode.KindDefinedArg:
		kind = bbcode.DefinedArg(spec.Attr)
	case bbcode.KindDefinedTag:
		if spec.Default != nil {
			kind = bbcode.DefinedTagDefault(spec.Child, *spec.Default)
		} else {
			kind = bbcode.DefinedTag(spec.Child)
		}
	case bbcode.KindSelfClosing:
		kind = bbcode.SelfClosing(spec.Attr)
	case bbcode.KindDefaultArg:
		kind = bbcode.DefaultArg(spec.Attr)
	}

	vp := bbcode.ParseNormal
	if spec.Parse != "" {
		vp, ok = valueParses[spec.Parse]
		if !ok {
			return bbcode.TagDefinition{}, fmt.Errorf("%w: %q", ErrUnknownValueParse, spec.Parse)
		}
	}

	blank := bbcode.NoBlank
	switch {
	case spec.BlankStart != nil && spec.BlankEnd != nil:
		return bbcode.TagDefinition{}, ErrConflictingBlank
	case spec.BlankStart != nil:
		blank = bbcode.BlankStart(*spec.BlankStart)
	case spec.BlankEnd != nil:
		blank = bbcode.BlankEnd(*spec.BlankEnd)
	}

	return bbcode.NewTag(spec.Tag, spec.Output, kind,
		bbcode.WithRawExtra(spec.Extra),
		bbcode.WithValueParse(vp),
		bbcode.WithBlankConsume(blank),
	), nil
}

// Specs converts definitions into their serialized form. Zero valued optional fields
// are left out.
func Specs(defs []bbcode.TagDefinition) []TagSpec {
	specs := make([]TagSpec, 0, len(defs))

	for _, def := range defs {
		spec := TagSpec{
			Tag:    def.Tag,
			Output: def.OutputTag,
			Kind:   def.Kind.Type.String(),
			Attr:   def.Kind.Attr,
			Child:  def.Kind.Child,
			Extra:  def.RawExtra,
		}

		if def.Kind.HasDefault {
			text := def.Kind.Default
			spec.Default = &text
		}

		if def.ValueParse != bbcode.ParseNormal {
			spec.Parse = def.ValueParse.String()
		}

		n := def.BlankConsume.N
		switch def.BlankConsume.Mode {
		case bbcode.BlankAfterStart:
			spec.BlankStart = &n
		case bbcode.BlankAfterEnd:
			spec.BlankEnd = &n
		}

		specs = append(specs, spec)
	}

	return specs
}

// FromPreset returns the built-in tag table with the given name.
func FromPreset(name string) ([]bbcode.TagDefinition, error) {
	switch name {
	case util.PresetBasic:
		return bbcode.BasicTags(), nil
	case util.PresetExtras:
		return bbcode.AllTags(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}

// Definitions returns the tag table selected by the config: the YAML file if
// TagsFile is set, the preset otherwise.
func Definitions(config util.Config) ([]bbcode.TagDefinition, error) {
	if config.TagsFile != "" {
		return Load(config.TagsFile)
	}
	return FromPreset(config.TagPreset)
}

// NewParser compiles the tag table selected by the config.
func NewParser(config util.Config) (*bbcode.Parser, error) {
	defs, err := Definitions(config)
	if err != nil {
		return nil, err
	}

	var opts []bbcode.CompileDecorator
	if config.Autolink {
		opts = append(opts, bbcode.WithAutolink())
	}

	parser, err := bbcode.Compile(defs, opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot compile tag table: %w", err)
	}

	return parser, nil
}

// Fingerprint identifies the compiled tag table of p. Rendered output can only be
// reused between parsers with equal fingerprints.
func Fingerprint(p *bbcode.Parser) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, p.Tags()); err != nil {
		return "", err
	}

	fmt.Fprintf(&buf, "autolink: %t\n", p.Autolink())
	return buf.String(), nil
}
