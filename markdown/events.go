package markdown

import (
	"bytes"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"pkt.systems/mdhtml"
)

// Events parses src and returns its document events. Parsing happens when
// the sequence is iterated; each iteration parses src again.
func Events(src []byte, opts ...Option) iter.Seq[mdhtml.Event] {
	o := newOptions(opts)
	return func(yield func(mdhtml.Event) bool) {
		body := src
		if fm, ok := splitFrontMatter(src); ok {
			body = fm.body
			if !o.dropMetadata {
				tag := mdhtml.MetadataBlock(fm.kind)
				if !yield(mdhtml.Start(tag)) || !yield(mdhtml.Text(string(fm.meta))) || !yield(mdhtml.End(tag)) {
					return
				}
			}
		}
		doc := o.parser().Parse(text.NewReader(body))
		w := walker{src: body, yield: yield}
		// visit never returns an error. The walk ends early only when yield
		// reports that the consumer stopped.
		_ = ast.Walk(doc, w.visit)
	}
}

type walker struct {
	src   []byte
	yield func(mdhtml.Event) bool
}

func (w *walker) emit(events ...mdhtml.Event) ast.WalkStatus {
	for _, ev := range events {
		if !w.yield(ev) {
			return ast.WalkStop
		}
	}
	return ast.WalkContinue
}

func (w *walker) pair(tag mdhtml.Tag, entering bool) (ast.WalkStatus, error) {
	if entering {
		return w.emit(mdhtml.Start(tag)), nil
	}
	return w.emit(mdhtml.End(tag)), nil
}

// leaf emits events once on entering and skips the children of n.
func (w *walker) leaf(entering bool, events ...mdhtml.Event) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	if w.emit(events...) == ast.WalkStop {
		return ast.WalkStop, nil
	}
	return ast.WalkSkipChildren, nil
}

func (w *walker) visit(node ast.Node, entering bool) (ast.WalkStatus, error) {
	src := w.src
	switch n := node.(type) {
	case *ast.Paragraph:
		return w.pair(mdhtml.Paragraph(), entering)
	case *ast.Heading:
		return w.pair(headingTag(n), entering)
	case *ast.Blockquote:
		return w.pair(mdhtml.BlockQuote(), entering)
	case *ast.List:
		tag := mdhtml.UnorderedList()
		if n.IsOrdered() {
			tag = mdhtml.OrderedList(uint64(n.Start))
		}
		return w.pair(tag, entering)
	case *ast.ListItem:
		return w.pair(mdhtml.Item(), entering)
	case *ast.ThematicBreak:
		return w.leaf(entering, mdhtml.Rule())
	case *ast.CodeBlock:
		return w.codeBlock(mdhtml.IndentedCode(), n, entering)
	case *ast.FencedCodeBlock:
		info := ""
		if n.Info != nil {
			info = strings.TrimSpace(string(n.Info.Segment.Value(src)))
		}
		return w.codeBlock(mdhtml.FencedCode(info), n, entering)
	case *ast.HTMLBlock:
		if !entering {
			return ast.WalkContinue, nil
		}
		raw := linesOf(n, src)
		if n.HasClosure() {
			raw += string(n.ClosureLine.Value(src))
		}
		return w.leaf(entering, mdhtml.HTML(raw))
	case *ast.Text:
		if !entering {
			return ast.WalkContinue, nil
		}
		return w.leaf(entering, textEvents(n, src)...)
	case *ast.String:
		value := n.Value
		switch {
		case n.IsCode():
			value = util.ResolveEntityNames(value)
		case !n.IsRaw():
			value = unescape(value)
		}
		return w.leaf(entering, mdhtml.Text(string(value)))
	case *ast.CodeSpan:
		return w.leaf(entering, mdhtml.Code(codeSpanText(n, src)))
	case *ast.Emphasis:
		if n.Level >= 2 {
			return w.pair(mdhtml.Strong(), entering)
		}
		return w.pair(mdhtml.Emphasis(), entering)
	case *ast.Link:
		return w.pair(mdhtml.Link(string(n.Destination), string(n.Title)), entering)
	case *ast.Image:
		return w.pair(mdhtml.Image(string(n.Destination), string(n.Title)), entering)
	case *ast.AutoLink:
		if !entering {
			return ast.WalkContinue, nil
		}
		tag := mdhtml.Link(string(n.URL(src)), "")
		tag.LinkType = mdhtml.LinkAutolink
		if n.AutoLinkType == ast.AutoLinkEmail {
			tag.LinkType = mdhtml.LinkEmail
			if !strings.HasPrefix(strings.ToLower(tag.Dest), "mailto:") {
				tag.Dest = "mailto:" + tag.Dest
			}
		}
		return w.leaf(entering, mdhtml.Start(tag), mdhtml.Text(string(n.Label(src))), mdhtml.End(tag))
	case *ast.RawHTML:
		if !entering {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(src))
		}
		return w.leaf(entering, mdhtml.HTML(b.String()))

	case *east.Table:
		return w.pair(mdhtml.Table(alignments(n.Alignments)...), entering)
	case *east.TableHeader:
		return w.pair(mdhtml.TableHead(), entering)
	case *east.TableRow:
		return w.pair(mdhtml.TableRow(), entering)
	case *east.TableCell:
		return w.pair(mdhtml.TableCell(), entering)
	case *east.Strikethrough:
		return w.pair(mdhtml.Strikethrough(), entering)
	case *east.TaskCheckBox:
		return w.leaf(entering, mdhtml.TaskListMarker(n.IsChecked))
	case *east.FootnoteLink:
		return w.leaf(entering, mdhtml.FootnoteReference(strconv.Itoa(n.Index)))
	case *east.FootnoteBacklink:
		return w.leaf(entering)
	case *east.Footnote:
		return w.pair(mdhtml.FootnoteDefinition(strconv.Itoa(n.Index)), entering)
	case *east.DefinitionList:
		return w.pair(mdhtml.DefinitionList(), entering)
	case *east.DefinitionTerm:
		return w.pair(mdhtml.DefinitionTitle(), entering)
	case *east.DefinitionDescription:
		return w.pair(mdhtml.Definition(), entering)
	}
	return ast.WalkContinue, nil
}

func (w *walker) codeBlock(tag mdhtml.Tag, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return w.emit(mdhtml.End(tag)), nil
	}
	events := []mdhtml.Event{mdhtml.Start(tag)}
	if code := linesOf(n, w.src); code != "" {
		events = append(events, mdhtml.Text(code))
	}
	if w.emit(events...) == ast.WalkStop {
		return ast.WalkStop, nil
	}
	return ast.WalkSkipChildren, nil
}

func headingTag(n *ast.Heading) mdhtml.Tag {
	tag := mdhtml.Heading(n.Level)
	for _, attr := range n.Attributes() {
		name := string(attr.Name)
		switch name {
		case "id":
			tag.ID = attrString(attr.Value)
		case "class":
			tag.Classes = strings.Fields(attrString(attr.Value))
		default:
			if attr.Value == nil {
				tag.Attrs = append(tag.Attrs, mdhtml.Attr{Name: name, Bare: true})
				continue
			}
			tag.Attrs = append(tag.Attrs, mdhtml.Attr{Name: name, Value: attrString(attr.Value)})
		}
	}
	return tag
}

func attrString(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func textEvents(n *ast.Text, src []byte) []mdhtml.Event {
	value := n.Segment.Value(src)
	var events []mdhtml.Event
	if n.IsRaw() {
		events = append(events, mdhtml.Text(string(value)))
	} else if len(value) > 0 {
		events = append(events, mdhtml.Text(string(unescape(value))))
	}
	switch {
	case n.HardLineBreak():
		events = append(events, mdhtml.HardBreak())
	case n.SoftLineBreak():
		events = append(events, mdhtml.SoftBreak())
	}
	return events
}

func codeSpanText(n *ast.CodeSpan, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			value := t.Segment.Value(src)
			if bytes.HasSuffix(value, []byte("\n")) {
				b.Write(value[:len(value)-1])
				b.WriteByte(' ')
				continue
			}
			b.Write(value)
		case *ast.String:
			b.Write(t.Value)
		}
	}
	return b.String()
}

func linesOf(n ast.Node, src []byte) string {
	lines := n.Lines()
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}

func unescape(v []byte) []byte {
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	return util.ResolveEntityNames(v)
}

func alignments(in []east.Alignment) []mdhtml.Alignment {
	out := make([]mdhtml.Alignment, len(in))
	for i, a := range in {
		switch a {
		case east.AlignLeft:
			out[i] = mdhtml.AlignLeft
		case east.AlignCenter:
			out[i] = mdhtml.AlignCenter
		case east.AlignRight:
			out[i] = mdhtml.AlignRight
		default:
			out[i] = mdhtml.AlignNone
		}
	}
	return out
}
