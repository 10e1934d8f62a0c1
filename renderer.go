package mdhtml

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"
)

// Renderer drives an event sequence through a Writer.
type Renderer struct {
	w Writer
	// Logger, when set, receives a debug record per dispatched event.
	Logger *slog.Logger
}

// NewRenderer returns a renderer writing through w.
func NewRenderer(w Writer) *Renderer {
	return &Renderer{w: w}
}

// Writer returns the writer events are dispatched to.
func (r *Renderer) Writer() Writer { return r.w }

// Run consumes events once, in order. It stops at the first error.
func (r *Renderer) Run(events iter.Seq[Event]) error {
	if r.w == nil {
		return renderError("run", fmt.Errorf("nil writer"))
	}
	if events == nil {
		return nil
	}
	next, stop := iter.Pull(events)
	defer stop()

	for {
		ev, ok := next()
		if !ok {
			return nil
		}
		r.trace(ev)
		var err error
		switch ev.Kind {
		case EventStart:
			if ev.Tag.Kind == TagImage {
				err = r.w.Image(ev.Tag, collectAltText(next))
			} else {
				err = r.start(ev.Tag)
			}
		case EventEnd:
			err = r.end(ev.Tag)
		case EventText:
			err = r.w.Text(ev.Text)
		case EventCode:
			err = r.w.InlineCode(ev.Text)
		case EventHTML:
			err = r.w.Raw(ev.Text)
		case EventSoftBreak:
			err = r.w.SoftBreak()
		case EventHardBreak:
			err = r.w.HardBreak()
		case EventRule:
			err = r.w.Rule()
		case EventFootnoteReference:
			err = r.w.FootnoteReference(ev.Text)
		case EventTaskListMarker:
			err = r.w.TaskListMarker(ev.Checked)
		default:
			err = renderError("run", fmt.Errorf("unknown event kind %d", ev.Kind))
		}
		if err != nil {
			return err
		}
	}
}

func (r *Renderer) start(tag Tag) error {
	w := r.w
	switch tag.Kind {
	case TagParagraph:
		return w.StartParagraph()
	case TagHeading:
		return w.StartHeading(tag)
	case TagBlockQuote:
		return w.StartBlockQuote()
	case TagCodeBlock:
		return w.StartCodeBlock(tag)
	case TagList:
		return w.StartList(tag)
	case TagItem:
		return w.StartListItem()
	case TagFootnoteDefinition:
		return w.StartFootnoteDefinition(tag.Name)
	case TagTable:
		return w.StartTable(tag.Alignments)
	case TagTableHead:
		return w.StartTableHead()
	case TagTableRow:
		return w.StartTableRow()
	case TagTableCell:
		return w.StartTableCell()
	case TagEmphasis:
		return w.StartEmphasis()
	case TagStrong:
		return w.StartStrong()
	case TagStrikethrough:
		return w.StartStrikethrough()
	case TagLink:
		return w.StartLink(tag)
	case TagDefinitionList:
		return w.StartDefinitionList()
	case TagDefinitionListTitle:
		return w.StartDefinitionTitle()
	case TagDefinitionListDefinition:
		return w.StartDefinition()
	case TagMetadataBlock:
		return w.StartMetadataBlock(tag.Metadata)
	default:
		return renderError("start", fmt.Errorf("unknown tag %s", tag.Kind))
	}
}

func (r *Renderer) end(tag Tag) error {
	w := r.w
	switch tag.Kind {
	case TagParagraph:
		return w.EndParagraph()
	case TagHeading:
		return w.EndHeading(tag.Level)
	case TagBlockQuote:
		return w.EndBlockQuote()
	case TagCodeBlock:
		return w.EndCodeBlock()
	case TagList:
		return w.EndList(tag.Ordered)
	case TagItem:
		return w.EndListItem()
	case TagFootnoteDefinition:
		return w.EndFootnoteDefinition()
	case TagTable:
		return w.EndTable()
	case TagTableHead:
		return w.EndTableHead()
	case TagTableRow:
		return w.EndTableRow()
	case TagTableCell:
		return w.EndTableCell()
	case TagEmphasis:
		return w.EndEmphasis()
	case TagStrong:
		return w.EndStrong()
	case TagStrikethrough:
		return w.EndStrikethrough()
	case TagLink:
		return w.EndLink()
	case TagImage:
		// Image ends are consumed by collectAltText.
		return nil
	case TagDefinitionList:
		return w.EndDefinitionList()
	case TagDefinitionListTitle:
		return w.EndDefinitionTitle()
	case TagDefinitionListDefinition:
		return w.EndDefinition()
	case TagMetadataBlock:
		return w.EndMetadataBlock()
	default:
		return renderError("end", fmt.Errorf("unknown tag %s", tag.Kind))
	}
}

// collectAltText consumes the events nested in an image up to and including
// the End that closes it, and returns their flattened text.
func collectAltText(next func() (Event, bool)) string {
	var b strings.Builder
	depth := 0
	for {
		ev, ok := next()
		if !ok {
			return b.String()
		}
		switch ev.Kind {
		case EventStart:
			depth++
		case EventEnd:
			if depth == 0 {
				return b.String()
			}
			depth--
		case EventText, EventCode:
			b.WriteString(ev.Text)
		case EventSoftBreak, EventHardBreak:
			b.WriteByte(' ')
		}
	}
}

func (r *Renderer) trace(ev Event) {
	if r.Logger == nil || !r.Logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := []slog.Attr{slog.String("kind", ev.Kind.String())}
	switch ev.Kind {
	case EventStart, EventEnd:
		attrs = append(attrs, slog.String("tag", ev.Tag.Kind.String()))
	case EventText, EventCode, EventHTML, EventFootnoteReference:
		attrs = append(attrs, slog.Int("len", len(ev.Text)))
	}
	if s := r.w.State(); s != nil {
		attrs = append(attrs, slog.Int("lists", s.ListDepth()), slog.String("table", s.Table.String()))
	}
	r.Logger.LogAttrs(context.Background(), slog.LevelDebug, "event", attrs...)
}
