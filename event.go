package mdhtml

import "iter"

// EventKind identifies the variant carried by an Event.
type EventKind uint8

const (
	// EventStart opens the construct described by Event.Tag.
	EventStart EventKind = iota
	// EventEnd closes the construct described by Event.Tag.
	EventEnd
	// EventText carries body text in Event.Text.
	EventText
	// EventCode carries inline code in Event.Text.
	EventCode
	// EventHTML carries raw markup in Event.Text. It is never escaped.
	EventHTML
	// EventSoftBreak is a line break inside a paragraph.
	EventSoftBreak
	// EventHardBreak is a forced line break.
	EventHardBreak
	// EventRule is a thematic break.
	EventRule
	// EventFootnoteReference refers to the footnote named in Event.Text.
	EventFootnoteReference
	// EventTaskListMarker is a task list checkbox; Event.Checked holds its state.
	EventTaskListMarker
)

var eventKindNames = [...]string{
	EventStart:             "start",
	EventEnd:               "end",
	EventText:              "text",
	EventCode:              "code",
	EventHTML:              "html",
	EventSoftBreak:         "softbreak",
	EventHardBreak:         "hardbreak",
	EventRule:              "rule",
	EventFootnoteReference: "footnote-reference",
	EventTaskListMarker:    "task-marker",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event is one unit of the document stream produced by a Markdown parser.
type Event struct {
	Kind    EventKind
	Tag     Tag
	Text    string
	Checked bool
}

// TagKind identifies the structural construct carried by Start and End events.
type TagKind uint8

const (
	TagParagraph TagKind = iota
	TagHeading
	TagBlockQuote
	TagCodeBlock
	TagList
	TagItem
	TagFootnoteDefinition
	TagTable
	TagTableHead
	TagTableRow
	TagTableCell
	TagEmphasis
	TagStrong
	TagStrikethrough
	TagLink
	TagImage
	TagDefinitionList
	TagDefinitionListTitle
	TagDefinitionListDefinition
	TagMetadataBlock
)

var tagKindNames = [...]string{
	TagParagraph:                "paragraph",
	TagHeading:                  "heading",
	TagBlockQuote:               "blockquote",
	TagCodeBlock:                "codeblock",
	TagList:                     "list",
	TagItem:                     "item",
	TagFootnoteDefinition:       "footnote-definition",
	TagTable:                    "table",
	TagTableHead:                "table-head",
	TagTableRow:                 "table-row",
	TagTableCell:                "table-cell",
	TagEmphasis:                 "emphasis",
	TagStrong:                   "strong",
	TagStrikethrough:            "strikethrough",
	TagLink:                     "link",
	TagImage:                    "image",
	TagDefinitionList:           "definition-list",
	TagDefinitionListTitle:      "definition-title",
	TagDefinitionListDefinition: "definition",
	TagMetadataBlock:            "metadata",
}

func (k TagKind) String() string {
	if int(k) < len(tagKindNames) {
		return tagKindNames[k]
	}
	return "unknown"
}

// CodeBlockKind distinguishes fenced from indented code blocks.
type CodeBlockKind uint8

const (
	CodeIndented CodeBlockKind = iota
	CodeFenced
)

// Alignment is the text alignment of a table column.
type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// LinkType records how a link or image was written in the source.
type LinkType uint8

const (
	LinkInline LinkType = iota
	LinkReference
	LinkCollapsed
	LinkShortcut
	LinkAutolink
	LinkEmail
)

// MetadataKind is the front matter flavour of a metadata block.
type MetadataKind uint8

const (
	MetadataYAML MetadataKind = iota
	MetadataTOML
	MetadataJSON
)

// Attr is a single HTML attribute. Bare attributes render without a value.
type Attr struct {
	Name  string
	Value string
	Bare  bool
}

// Tag describes a construct. Only the fields relevant to Kind are set.
type Tag struct {
	Kind TagKind

	// Heading
	Level   int
	ID      string
	Classes []string
	Attrs   []Attr

	// CodeBlock
	CodeBlock CodeBlockKind
	Info      string

	// List; Ordered reports whether a start number was present.
	Ordered bool
	Start   uint64

	// FootnoteDefinition
	Name string

	// Table
	Alignments []Alignment

	// Link and Image
	LinkType LinkType
	Dest     string
	Title    string

	// MetadataBlock
	Metadata MetadataKind
}

func Paragraph() Tag  { return Tag{Kind: TagParagraph} }
func BlockQuote() Tag { return Tag{Kind: TagBlockQuote} }
func Item() Tag       { return Tag{Kind: TagItem} }
func TableHead() Tag  { return Tag{Kind: TagTableHead} }
func TableRow() Tag   { return Tag{Kind: TagTableRow} }
func TableCell() Tag  { return Tag{Kind: TagTableCell} }
func Emphasis() Tag   { return Tag{Kind: TagEmphasis} }
func Strong() Tag     { return Tag{Kind: TagStrong} }

// Strikethrough returns a strikethrough tag.
func Strikethrough() Tag { return Tag{Kind: TagStrikethrough} }

// DefinitionList returns a definition list tag.
func DefinitionList() Tag { return Tag{Kind: TagDefinitionList} }

// DefinitionTitle returns a definition list term tag.
func DefinitionTitle() Tag { return Tag{Kind: TagDefinitionListTitle} }

// Definition returns a definition list description tag.
func Definition() Tag { return Tag{Kind: TagDefinitionListDefinition} }

// Heading returns a heading tag for level 1 through 6.
func Heading(level int) Tag { return Tag{Kind: TagHeading, Level: level} }

// FencedCode returns a fenced code block tag with the given info string.
func FencedCode(info string) Tag {
	return Tag{Kind: TagCodeBlock, CodeBlock: CodeFenced, Info: info}
}

// IndentedCode returns an indented code block tag.
func IndentedCode() Tag { return Tag{Kind: TagCodeBlock, CodeBlock: CodeIndented} }

// OrderedList returns a list tag starting at start.
func OrderedList(start uint64) Tag { return Tag{Kind: TagList, Ordered: true, Start: start} }

// UnorderedList returns a bullet list tag.
func UnorderedList() Tag { return Tag{Kind: TagList} }

// FootnoteDefinition returns a footnote definition tag.
func FootnoteDefinition(name string) Tag { return Tag{Kind: TagFootnoteDefinition, Name: name} }

// Table returns a table tag with per-column alignments.
func Table(alignments ...Alignment) Tag { return Tag{Kind: TagTable, Alignments: alignments} }

// Link returns an inline link tag.
func Link(dest, title string) Tag {
	return Tag{Kind: TagLink, LinkType: LinkInline, Dest: dest, Title: title}
}

// Image returns an inline image tag.
func Image(dest, title string) Tag {
	return Tag{Kind: TagImage, LinkType: LinkInline, Dest: dest, Title: title}
}

// MetadataBlock returns a front matter tag.
func MetadataBlock(kind MetadataKind) Tag { return Tag{Kind: TagMetadataBlock, Metadata: kind} }

// Start returns an event opening t.
func Start(t Tag) Event { return Event{Kind: EventStart, Tag: t} }

// End returns an event closing t.
func End(t Tag) Event { return Event{Kind: EventEnd, Tag: t} }

// Text returns a body text event.
func Text(s string) Event { return Event{Kind: EventText, Text: s} }

// Code returns an inline code event.
func Code(s string) Event { return Event{Kind: EventCode, Text: s} }

// HTML returns a raw markup event.
func HTML(s string) Event { return Event{Kind: EventHTML, Text: s} }

func SoftBreak() Event { return Event{Kind: EventSoftBreak} }
func HardBreak() Event { return Event{Kind: EventHardBreak} }
func Rule() Event      { return Event{Kind: EventRule} }

// FootnoteReference returns a reference to the footnote called name.
func FootnoteReference(name string) Event {
	return Event{Kind: EventFootnoteReference, Text: name}
}

// TaskListMarker returns a task list checkbox event.
func TaskListMarker(checked bool) Event {
	return Event{Kind: EventTaskListMarker, Checked: checked}
}

// Events returns a sequence yielding events in order.
func Events(events ...Event) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for _, ev := range events {
			if !yield(ev) {
				return
			}
		}
	}
}
