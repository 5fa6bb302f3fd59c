package bbcode

// scopeFrame is a currently open Tag.
type scopeFrame struct {
	// def is the index of the Tag in [Parser.tags].
	def int

	// innerStart is the input offset where the body begins, right after the opening match.
	innerStart int

	// hasArg is true when the opening match captured an "=value" argument.
	hasArg bool

	// mark is the output offset where the body's output begins. Only meaningful for
	// deferred scopes, whose opening tag is spliced in at mark on close.
	mark int

	// pos is the input offset of the opening match, for Warnings.
	pos int
}

// scopeStack tracks the open Tags. The bottom frame is always the Start sentinel until
// dumpRemaining consumes the stack. Frames are pushed and popped in strict LIFO order,
// which keeps the emitted HTML well nested whatever the input looks like.
type scopeStack struct {
	frames []scopeFrame
	tags   []TagDefinition
}

func newScopeStack(tags []TagDefinition) scopeStack {
	frames := make([]scopeFrame, 1, 16)
	frames[0] = scopeFrame{def: 0}

	return scopeStack{
		frames: frames,
		tags:   tags,
	}
}

// top returns the innermost open frame.
func (s *scopeStack) top() *scopeFrame {
	return &s.frames[len(s.frames)-1]
}

// topDef returns the definition of the innermost open frame.
func (s *scopeStack) topDef() *TagDefinition {
	return &s.tags[s.top().def]
}

// depth is the number of frames, the sentinel included.
func (s *scopeStack) depth() int {
	return len(s.frames)
}

// open pushes the frame. If the innermost frame is the same Tag and the Tag closes its
// double, the innermost frame is popped first and returned as auto-closed. The returned
// pointer to the pushed frame is valid until the next push or pop.
func (s *scopeStack) open(f scopeFrame) (pushed *scopeFrame, autoClosed []scopeFrame) {
	if len(s.frames) > 1 && s.top().def == f.def && s.tags[f.def].ValueParse == ParseDoubleCloses {
		last := len(s.frames) - 1
		autoClosed = []scopeFrame{s.frames[last]}
		s.frames = s.frames[:last]
	}

	s.frames = append(s.frames, f)
	return s.top(), autoClosed
}

// close pops every frame from the top down to and including the nearest frame of the Tag def.
// The frames are returned innermost first, which is the order of their closing tags.
// If no frame of the Tag is open, nothing changes and nil is returned.
func (s *scopeStack) close(def int) []scopeFrame {
	count := 0
	found := false

	// the sentinel at index 0 is never a match
	for i := len(s.frames) - 1; i > 0; i-- {
		count++
		if s.frames[i].def == def {
			found = true
			break
		}
	}

	if !found {
		return nil
	}

	if count >= len(s.frames) {
		panic("bbcode: scope stack: close would pop the start sentinel")
	}

	popped := make([]scopeFrame, 0, count)
	for range count {
		popped = append(popped, s.pop())
	}

	return popped
}

// dumpRemaining consumes the whole stack and returns the frames innermost first.
// The last returned frame is the Start sentinel, which emits nothing.
func (s *scopeStack) dumpRemaining() []scopeFrame {
	out := make([]scopeFrame, 0, len(s.frames))
	for len(s.frames) > 0 {
		out = append(out, s.pop())
	}
	return out
}

func (s *scopeStack) pop() scopeFrame {
	last := len(s.frames) - 1
	if last < 0 {
		panic("bbcode: scope stack: pop from an empty stack")
	}

	f := s.frames[last]
	s.frames = s.frames[:last]
	return f
}
