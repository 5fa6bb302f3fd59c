package bbcode

// emitter appends HTML to a growing output buffer.
//
// Opening tags of deferred scopes (SelfClosing and DefaultArg without an "=value" argument)
// are not written when the scope opens. The scope's body is emitted at frame.mark, and on
// close everything from mark on is replaced with the complete opening tag, whose attribute
// value is the escaped body slice of the input. Every tag in the buffer is therefore always
// complete, and a same-Tag scope nested in the body can't leak markup into the attribute.
type emitter struct {
	input string
	tags  []TagDefinition
	out   []byte
}

// startTag writes "<output_tag raw_extra" without closing the angle bracket.
func (e *emitter) startTag(def *TagDefinition) {
	e.out = append(e.out, '<')
	e.out = append(e.out, def.OutputTag...)
	if def.RawExtra != "" {
		e.out = append(e.out, ' ')
		e.out = append(e.out, def.RawExtra...)
	}
}

// attr writes ` name="value"`. The value must be escaped already.
func (e *emitter) attr(name, value string) {
	e.out = append(e.out, ' ')
	e.out = append(e.out, name...)
	e.out = append(e.out, `="`...)
	e.out = append(e.out, value...)
	e.out = append(e.out, '"')
}

func (e *emitter) endTag(name string) {
	e.out = append(e.out, "</"...)
	e.out = append(e.out, name...)
	e.out = append(e.out, '>')
}

// openTag emits the opening of the frame's Tag. value is the raw "=value" argument,
// meaningful only when frame.hasArg is true.
func (e *emitter) openTag(f *scopeFrame, value string) {
	def := &e.tags[f.def]

	switch def.Kind.Type {
	case KindStart:
		return

	case KindSimple:
		e.startTag(def)
		e.out = append(e.out, '>')

	case KindDefinedArg:
		e.startTag(def)
		if f.hasArg {
			e.attr(def.Kind.Attr, EscapeHTML(value))
		}
		e.out = append(e.out, '>')

	case KindDefinedTag:
		e.startTag(def)
		e.out = append(e.out, '>')

		switch {
		case f.hasArg:
			e.child(def.Kind.Child, EscapeHTML(value))
		case def.Kind.HasDefault:
			e.child(def.Kind.Child, def.Kind.Default)
		}

	case KindSelfClosing, KindDefaultArg:
		if f.hasArg {
			e.startTag(def)
			e.attr(def.Kind.Attr, EscapeHTML(value))
			e.out = append(e.out, '>')
			return
		}

		// the attribute is the body, wait for the close
		f.mark = len(e.out)
	}
}

func (e *emitter) child(name, text string) {
	e.out = append(e.out, '<')
	e.out = append(e.out, name...)
	e.out = append(e.out, '>')
	e.out = append(e.out, text...)
	e.endTag(name)
}

// closeTag emits the closing of the frame's Tag. scopeEnd is the input offset where the
// frame's body ends, i.e. the start of the match which closes it.
func (e *emitter) closeTag(f *scopeFrame, scopeEnd int) {
	def := &e.tags[f.def]

	switch def.Kind.Type {
	case KindStart:
		return

	case KindSelfClosing:
		if !f.hasArg {
			e.spliceDeferred(f, def, scopeEnd)
		}

	case KindDefaultArg:
		if !f.hasArg {
			body := e.spliceDeferred(f, def, scopeEnd)
			e.out = append(e.out, body...)
		}
		e.endTag(def.OutputTag)

	default:
		e.endTag(def.OutputTag)
	}
}

// spliceDeferred replaces the output emitted since f.mark with the complete opening tag,
// using the body as the attribute value. It returns the escaped body.
func (e *emitter) spliceDeferred(f *scopeFrame, def *TagDefinition, scopeEnd int) string {
	body := EscapeHTML(e.input[f.innerStart:scopeEnd])
	e.out = e.out[:f.mark]

	e.startTag(def)
	e.attr(def.Kind.Attr, body)
	e.out = append(e.out, '>')

	return body
}
