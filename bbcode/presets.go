package bbcode

// BasicTags returns the inline formatting, list, link and image Tags.
func BasicTags() []TagDefinition {
	return []TagDefinition{
		NewTag("b", "b", Simple()),
		NewTag("i", "i", Simple()),
		NewTag("u", "u", Simple()),
		NewTag("s", "s", Simple()),
		NewTag("sup", "sup", Simple()),
		NewTag("sub", "sub", Simple()),
		NewTag("list", "ul", Simple(), WithBlankConsume(BlankStart(1))),
		NewTag(`\*`, "li", Simple(), WithValueParse(ParseDoubleCloses)),
		NewTag("url", "a", DefaultArg("href"),
			WithRawExtra(`target="_blank"`),
			WithValueParse(ParseDoubleCloses),
		),
		NewTag("img", "img", SelfClosing("src"), WithValueParse(ParseDoubleCloses)),
	}
}

// ExtraTags returns the block level Tags: quotes, anchors, code, video, spoilers and headings.
// They are meant to be appended to [BasicTags].
func ExtraTags() []TagDefinition {
	return []TagDefinition{
		NewTag("quote", "blockquote", DefinedTag("cite"), WithBlankConsume(BlankEnd(1))),
		NewTag("anchor", "a", DefinedArg("id")),
		NewTag("icode", "code", Simple(), WithValueParse(ParseForceVerbatim)),
		NewTag("code", "pre", Simple(),
			WithRawExtra(`class="code"`),
			WithValueParse(ParseForceVerbatim),
			WithBlankConsume(BlankStart(1)),
		),
		NewTag("video", "video", DefaultArg("src"), WithRawExtra("controls")),
		NewTag("spoiler", "details", DefinedTagDefault("summary", "Spoiler")),
		NewTag("h1", "h1", Simple(), WithBlankConsume(BlankEnd(1))),
		NewTag("h2", "h2", Simple(), WithBlankConsume(BlankEnd(1))),
		NewTag("h3", "h3", Simple(), WithBlankConsume(BlankEnd(1))),
	}
}

// AllTags returns [BasicTags] followed by [ExtraTags].
func AllTags() []TagDefinition {
	return append(BasicTags(), ExtraTags()...)
}
