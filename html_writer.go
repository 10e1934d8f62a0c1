package mdhtml

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriterOption configures an HTMLWriter.
type WriterOption func(*HTMLWriter)

// WithHighlighter routes code block text through h.
func WithHighlighter(h Highlighter) WriterOption {
	return func(w *HTMLWriter) {
		w.highlighter = h
	}
}

// HTMLWriter is the default Writer. It writes HTML to an io.Writer using the
// policy in Config and the context in State.
type HTMLWriter struct {
	w           io.Writer
	cfg         *Config
	state       *State
	highlighter Highlighter
}

var _ Writer = (*HTMLWriter)(nil)

// NewHTMLWriter returns a writer with fresh state. A nil cfg uses DefaultConfig.
func NewHTMLWriter(w io.Writer, cfg *Config, opts ...WriterOption) *HTMLWriter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	h := &HTMLWriter{w: w, cfg: cfg, state: NewState()}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Reset points the writer at w and discards all render state.
func (h *HTMLWriter) Reset(w io.Writer) {
	h.w = w
	h.state = NewState()
}

// Config returns the configuration. Callers must not modify it.
func (h *HTMLWriter) Config() *Config { return h.cfg }

// State returns the render state.
func (h *HTMLWriter) State() *State { return h.state }

// Highlighter returns the configured highlighter, if any.
func (h *HTMLWriter) Highlighter() Highlighter { return h.highlighter }

// WriteString writes s to the sink.
func (h *HTMLWriter) WriteString(s string) error {
	if s == "" {
		return nil
	}
	if _, err := io.WriteString(h.w, s); err != nil {
		return sinkError("write", err)
	}
	return nil
}

// WriteAttributes writes the configured attributes of element.
func (h *HTMLWriter) WriteAttributes(element string) error {
	var b strings.Builder
	h.appendAttributes(&b, element)
	return h.WriteString(b.String())
}

// IsExternalLink reports whether url starts with http:// or https://.
func IsExternalLink(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

func (h *HTMLWriter) appendAttributes(b *strings.Builder, element string) {
	for _, attr := range h.cfg.Attributes.ElementAttributes[element] {
		b.WriteByte(' ')
		b.WriteString(attr.Name)
		if attr.Bare {
			continue
		}
		b.WriteString(`="`)
		b.WriteString(attr.Value)
		b.WriteByte('"')
	}
}

func (h *HTMLWriter) openTag(element string) error {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(element)
	h.appendAttributes(&b, element)
	b.WriteByte('>')
	return h.WriteString(b.String())
}

func (h *HTMLWriter) closeBlock(s string) error {
	if h.cfg.HTML.PrettyPrint {
		s += "\n"
	}
	return h.WriteString(s)
}

func (h *HTMLWriter) voidEnd() string {
	if h.cfg.HTML.XHTMLStyle {
		return " />"
	}
	return ">"
}

// StartParagraph opens <p>. Paragraphs inside a footnote definition are
// written without tags.
func (h *HTMLWriter) StartParagraph() error {
	if h.state.InFootnote {
		return nil
	}
	return h.openTag("p")
}

func (h *HTMLWriter) EndParagraph() error {
	if h.state.InFootnote {
		return nil
	}
	return h.closeBlock("</p>")
}

// StartHeading writes the opening heading tag: id, classes, the attributes
// carried by the tag and finally the configured attributes for hN.
func (h *HTMLWriter) StartHeading(tag Tag) error {
	level := tag.Level
	if level < 1 || level > 6 {
		return renderError("heading", fmt.Errorf("invalid heading level %d", level))
	}
	name := "h" + strconv.Itoa(level)
	opts := h.cfg.Elements.Headings
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(name)
	if opts.AddIDs {
		id := tag.ID
		if id == "" {
			id = opts.IDPrefix + strconv.Itoa(level)
		}
		b.WriteString(` id="`)
		b.WriteString(EscapeHTML(id))
		b.WriteByte('"')
		h.state.HeadingStack = append(h.state.HeadingStack, id)
	}
	classes := make([]string, 0, len(tag.Classes)+1)
	if class, ok := opts.LevelClasses[level]; ok && class != "" {
		classes = append(classes, class)
	}
	classes = append(classes, tag.Classes...)
	if len(classes) > 0 {
		b.WriteString(` class="`)
		b.WriteString(EscapeHTML(strings.Join(classes, " ")))
		b.WriteByte('"')
	}
	for _, attr := range tag.Attrs {
		b.WriteByte(' ')
		b.WriteString(EscapeHTML(attr.Name))
		if attr.Bare {
			continue
		}
		b.WriteString(`="`)
		b.WriteString(EscapeHTML(attr.Value))
		b.WriteByte('"')
	}
	h.appendAttributes(&b, name)
	b.WriteByte('>')
	return h.WriteString(b.String())
}

// EndHeading closes hN and pops the heading from the id stack.
func (h *HTMLWriter) EndHeading(level int) error {
	if h.cfg.Elements.Headings.AddIDs && len(h.state.HeadingStack) > 0 {
		h.state.HeadingStack = h.state.HeadingStack[:len(h.state.HeadingStack)-1]
	}
	return h.closeBlock("</h" + strconv.Itoa(level) + ">")
}

func (h *HTMLWriter) StartBlockQuote() error { return h.openTag("blockquote") }
func (h *HTMLWriter) EndBlockQuote() error   { return h.closeBlock("</blockquote>") }

// StartCodeBlock opens <pre><code>. The language is the fenced info string,
// or the configured default language when there is none.
func (h *HTMLWriter) StartCodeBlock(tag Tag) error {
	s := h.state
	s.InCodeBlock = true
	lang := h.cfg.Elements.CodeBlocks.DefaultLanguage
	if tag.CodeBlock == CodeFenced && tag.Info != "" {
		lang = tag.Info
	}
	s.CodeLanguage = lang
	s.code.Reset()

	var b strings.Builder
	b.WriteString("<pre")
	h.appendAttributes(&b, "pre")
	b.WriteString("><code")
	if lang != "" {
		b.WriteString(` class="language-`)
		b.WriteString(EscapeHTML(lang))
		b.WriteByte('"')
	}
	h.appendAttributes(&b, "code")
	b.WriteByte('>')
	return h.WriteString(b.String())
}

// EndCodeBlock flushes highlighted code, if a highlighter is set, and closes
// the block.
func (h *HTMLWriter) EndCodeBlock() error {
	s := h.state
	if h.highlighter != nil {
		out, err := h.highlighter.Highlight(s.code.String(), s.CodeLanguage)
		s.code.Reset()
		if err != nil {
			return renderError("highlight", err)
		}
		if err := h.WriteString(out); err != nil {
			return err
		}
	}
	s.InCodeBlock = false
	s.CodeLanguage = ""
	return h.closeBlock("</code></pre>")
}

// StartList opens <ul> or <ol>. An ordered list carries start unless it
// starts at 1.
func (h *HTMLWriter) StartList(tag Tag) error {
	if !tag.Ordered {
		h.state.pushList(ListUnordered())
		return h.openTag("ul")
	}
	h.state.pushList(ListOrdered(tag.Start))
	var b strings.Builder
	b.WriteString("<ol")
	if tag.Start != 1 {
		b.WriteString(` start="`)
		b.WriteString(strconv.FormatUint(tag.Start, 10))
		b.WriteByte('"')
	}
	h.appendAttributes(&b, "ol")
	b.WriteByte('>')
	return h.WriteString(b.String())
}

func (h *HTMLWriter) EndList(ordered bool) error {
	h.state.popList()
	if ordered {
		return h.closeBlock("</ol>")
	}
	return h.closeBlock("</ul>")
}

func (h *HTMLWriter) StartListItem() error { return h.openTag("li") }
func (h *HTMLWriter) EndListItem() error   { return h.closeBlock("</li>") }

// StartFootnoteDefinition opens the definition div with its label and
// suppresses paragraph tags until the definition ends.
func (h *HTMLWriter) StartFootnoteDefinition(name string) error {
	h.state.InFootnote = true
	var b strings.Builder
	b.WriteString(`<div class="footnote-definition" id="`)
	b.WriteString(EscapeHTML(name))
	b.WriteString(`"`)
	h.appendAttributes(&b, "div")
	b.WriteString(`><sup class="footnote-definition-label">`)
	b.WriteString(EscapeHTML(name))
	b.WriteString("</sup>")
	return h.WriteString(b.String())
}

func (h *HTMLWriter) EndFootnoteDefinition() error {
	h.state.InFootnote = false
	return h.closeBlock("</div>")
}

// StartTable enters the table header phase and records the column alignments.
func (h *HTMLWriter) StartTable(alignments []Alignment) error {
	s := h.state
	s.Table = InHeader
	s.TableAlignments = alignments
	s.TableCellIndex = 0
	return h.openTag("table")
}

// EndTable closes the body and the table and clears the table state.
func (h *HTMLWriter) EndTable() error {
	h.state.endTable()
	return h.closeBlock("</tbody></table>")
}

func (h *HTMLWriter) StartTableHead() error {
	h.state.TableCellIndex = 0
	var b strings.Builder
	b.WriteString("<thead")
	h.appendAttributes(&b, "thead")
	b.WriteString("><tr")
	h.appendAttributes(&b, "tr")
	b.WriteByte('>')
	return h.WriteString(b.String())
}

// EndTableHead closes the header row and opens <tbody>.
func (h *HTMLWriter) EndTableHead() error {
	var b strings.Builder
	b.WriteString("</tr></thead><tbody")
	h.appendAttributes(&b, "tbody")
	b.WriteByte('>')
	return h.WriteString(b.String())
}

// StartTableRow resets the column cursor. The first row after the head moves
// the table into its body.
func (h *HTMLWriter) StartTableRow() error {
	s := h.state
	s.TableCellIndex = 0
	if s.Table == InHeader {
		s.Table = InBody
	}
	return h.openTag("tr")
}

func (h *HTMLWriter) EndTableRow() error { return h.closeBlock("</tr>") }

// StartTableCell opens th in the head and td in the body, aligned by the
// column's recorded alignment.
func (h *HTMLWriter) StartTableCell() error {
	s := h.state
	tag := "td"
	if s.Table == InHeader {
		tag = "th"
	}
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)
	if s.TableCellIndex < len(s.TableAlignments) {
		switch s.TableAlignments[s.TableCellIndex] {
		case AlignLeft:
			b.WriteString(` style="text-align: left"`)
		case AlignCenter:
			b.WriteString(` style="text-align: center"`)
		case AlignRight:
			b.WriteString(` style="text-align: right"`)
		}
	}
	h.appendAttributes(&b, tag)
	b.WriteByte('>')
	s.TableCellIndex++
	s.TableCellTag = tag
	return h.WriteString(b.String())
}

func (h *HTMLWriter) EndTableCell() error {
	tag := h.state.TableCellTag
	if tag == "" {
		tag = "td"
	}
	return h.WriteString("</" + tag + ">")
}

func (h *HTMLWriter) StartEmphasis() error      { return h.openTag("em") }
func (h *HTMLWriter) EndEmphasis() error        { return h.WriteString("</em>") }
func (h *HTMLWriter) StartStrong() error        { return h.openTag("strong") }
func (h *HTMLWriter) EndStrong() error          { return h.WriteString("</strong>") }
func (h *HTMLWriter) StartStrikethrough() error { return h.openTag("del") }
func (h *HTMLWriter) EndStrikethrough() error   { return h.WriteString("</del>") }

// StartLink opens an anchor. External destinations get rel and target
// attributes according to LinkOptions.
func (h *HTMLWriter) StartLink(tag Tag) error {
	h.state.LinkStack = append(h.state.LinkStack, tag.LinkType)
	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(EscapeHref(tag.Dest))
	b.WriteByte('"')
	if tag.Title != "" {
		b.WriteString(` title="`)
		b.WriteString(EscapeHTML(tag.Title))
		b.WriteByte('"')
	}
	if IsExternalLink(tag.Dest) {
		links := h.cfg.Elements.Links
		if links.NofollowExternal {
			b.WriteString(` rel="nofollow"`)
		}
		if links.OpenExternalBlank {
			b.WriteString(` target="_blank"`)
		}
	}
	h.appendAttributes(&b, "a")
	b.WriteByte('>')
	return h.WriteString(b.String())
}

func (h *HTMLWriter) EndLink() error {
	h.state.popLink()
	return h.WriteString("</a>")
}

// Image writes a void img element. alt is the plain text of the image
// description.
func (h *HTMLWriter) Image(tag Tag, alt string) error {
	var b strings.Builder
	b.WriteString(`<img src="`)
	b.WriteString(EscapeHref(tag.Dest))
	b.WriteString(`" alt="`)
	b.WriteString(EscapeHTML(alt))
	b.WriteByte('"')
	if tag.Title != "" {
		b.WriteString(` title="`)
		b.WriteString(EscapeHTML(tag.Title))
		b.WriteByte('"')
	}
	h.appendAttributes(&b, "img")
	b.WriteString(h.voidEnd())
	return h.WriteString(b.String())
}

func (h *HTMLWriter) StartDefinitionList() error  { return h.openTag("dl") }
func (h *HTMLWriter) EndDefinitionList() error    { return h.closeBlock("</dl>") }
func (h *HTMLWriter) StartDefinitionTitle() error { return h.openTag("dt") }
func (h *HTMLWriter) EndDefinitionTitle() error   { return h.closeBlock("</dt>") }
func (h *HTMLWriter) StartDefinition() error      { return h.openTag("dd") }
func (h *HTMLWriter) EndDefinition() error        { return h.closeBlock("</dd>") }

// StartMetadataBlock suppresses output until the block ends.
func (h *HTMLWriter) StartMetadataBlock(kind MetadataKind) error {
	h.state.InMetadata = true
	return nil
}

func (h *HTMLWriter) EndMetadataBlock() error {
	h.state.InMetadata = false
	return nil
}

// Text writes body text, escaped when EscapeHTML is set. Inside a code block
// the text is buffered for the highlighter or written escaped.
func (h *HTMLWriter) Text(text string) error {
	s := h.state
	switch {
	case s.InMetadata:
		return nil
	case s.InCodeBlock && h.highlighter != nil:
		s.code.WriteString(text)
		return nil
	case s.InCodeBlock, h.cfg.HTML.EscapeHTML:
		return h.WriteString(EscapeHTML(text))
	default:
		return h.WriteString(text)
	}
}

// Raw writes markup unchanged.
func (h *HTMLWriter) Raw(html string) error {
	if h.state.InMetadata {
		return nil
	}
	return h.WriteString(html)
}

// InlineCode writes a code span. The content is always escaped.
func (h *HTMLWriter) InlineCode(code string) error {
	var b strings.Builder
	b.WriteString("<code")
	h.appendAttributes(&b, "code")
	b.WriteByte('>')
	b.WriteString(EscapeHTML(code))
	b.WriteString("</code>")
	return h.WriteString(b.String())
}

// SoftBreak writes a newline, or <br> when BreakOnNewline is set.
func (h *HTMLWriter) SoftBreak() error {
	if h.cfg.HTML.BreakOnNewline {
		return h.WriteString("<br" + h.voidEnd())
	}
	return h.WriteString("\n")
}

func (h *HTMLWriter) HardBreak() error {
	return h.WriteString("<br" + h.voidEnd())
}

func (h *HTMLWriter) Rule() error {
	var b strings.Builder
	b.WriteString("<hr")
	h.appendAttributes(&b, "hr")
	b.WriteString(h.voidEnd())
	if h.cfg.HTML.PrettyPrint {
		b.WriteByte('\n')
	}
	return h.WriteString(b.String())
}

// FootnoteReference links to the definition whose id is name.
func (h *HTMLWriter) FootnoteReference(name string) error {
	var b strings.Builder
	b.WriteString(`<sup class="footnote-reference"><a href="#`)
	b.WriteString(EscapeHref(name))
	b.WriteString(`">`)
	b.WriteString(EscapeHTML(name))
	b.WriteString("</a></sup>")
	return h.WriteString(b.String())
}

// TaskListMarker writes a disabled checkbox.
func (h *HTMLWriter) TaskListMarker(checked bool) error {
	var b strings.Builder
	b.WriteString(`<input type="checkbox" disabled`)
	if checked {
		b.WriteString(" checked")
	}
	h.appendAttributes(&b, "input")
	b.WriteString(h.voidEnd())
	return h.WriteString(b.String())
}
