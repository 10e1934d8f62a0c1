package mdhtml

// Writer maps document events to markup. HTMLWriter implements every method;
// custom writers embed *HTMLWriter and override the methods they need.
//
// Each method writes its fragment to the output and updates State when the
// construct changes the context of nested content. A returned error aborts
// the render.
type Writer interface {
	Config() *Config
	State() *State
	WriteString(s string) error

	StartParagraph() error
	EndParagraph() error
	StartHeading(tag Tag) error
	EndHeading(level int) error
	StartBlockQuote() error
	EndBlockQuote() error
	StartCodeBlock(tag Tag) error
	EndCodeBlock() error
	StartList(tag Tag) error
	EndList(ordered bool) error
	StartListItem() error
	EndListItem() error
	StartFootnoteDefinition(name string) error
	EndFootnoteDefinition() error
	StartTable(alignments []Alignment) error
	EndTable() error
	StartTableHead() error
	EndTableHead() error
	StartTableRow() error
	EndTableRow() error
	StartTableCell() error
	EndTableCell() error
	StartEmphasis() error
	EndEmphasis() error
	StartStrong() error
	EndStrong() error
	StartStrikethrough() error
	EndStrikethrough() error
	StartLink(tag Tag) error
	EndLink() error
	// Image writes a complete image element. alt is the flattened text of
	// the events nested in the image.
	Image(tag Tag, alt string) error
	StartDefinitionList() error
	EndDefinitionList() error
	StartDefinitionTitle() error
	EndDefinitionTitle() error
	StartDefinition() error
	EndDefinition() error
	StartMetadataBlock(kind MetadataKind) error
	EndMetadataBlock() error

	Text(text string) error
	Raw(html string) error
	InlineCode(code string) error
	SoftBreak() error
	HardBreak() error
	Rule() error
	FootnoteReference(name string) error
	TaskListMarker(checked bool) error
}
