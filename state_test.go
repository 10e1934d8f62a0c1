package mdhtml

import (
	"io"
	"testing"
)

func TestStateListStack(t *testing.T) {
	t.Parallel()
	w := NewHTMLWriter(io.Discard, nil)
	s := w.State()

	if err := w.StartList(OrderedList(3)); err != nil {
		t.Fatalf("start ordered: %v", err)
	}
	if err := w.StartList(UnorderedList()); err != nil {
		t.Fatalf("start unordered: %v", err)
	}
	if s.ListDepth() != 2 || len(s.Numbers) != 1 || s.Numbers[0] != 3 {
		t.Fatalf("unexpected stacks: lists=%+v numbers=%v", s.ListStack, s.Numbers)
	}
	if top, ok := s.CurrentList(); !ok || top.Ordered {
		t.Fatalf("expected unordered top, got %+v", top)
	}
	if err := w.EndList(false); err != nil {
		t.Fatalf("end unordered: %v", err)
	}
	if top, ok := s.CurrentList(); !ok || top != ListOrdered(3) {
		t.Fatalf("expected ordered(3) top, got %+v", top)
	}
	if err := w.EndList(true); err != nil {
		t.Fatalf("end ordered: %v", err)
	}
	if s.ListDepth() != 0 || len(s.Numbers) != 0 {
		t.Fatalf("stacks not empty: lists=%+v numbers=%v", s.ListStack, s.Numbers)
	}
	if _, ok := s.CurrentList(); ok {
		t.Fatalf("expected no current list")
	}
}

func TestStateTablePhase(t *testing.T) {
	t.Parallel()
	w := NewHTMLWriter(io.Discard, nil)
	s := w.State()
	steps := []struct {
		name string
		do   func() error
		want TableContext
	}{
		{"table", func() error { return w.StartTable([]Alignment{AlignLeft}) }, InHeader},
		{"head", w.StartTableHead, InHeader},
		{"head cell", w.StartTableCell, InHeader},
		{"head end", w.EndTableHead, InHeader},
		{"row", w.StartTableRow, InBody},
		{"cell", w.StartTableCell, InBody},
		{"second row", w.StartTableRow, InBody},
		{"end", w.EndTable, NotInTable},
	}
	for _, step := range steps {
		if err := step.do(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		if s.Table != step.want {
			t.Fatalf("%s: phase %s, want %s", step.name, s.Table, step.want)
		}
	}
	if s.TableAlignments != nil || s.TableCellIndex != 0 || s.InTable() {
		t.Fatalf("table state not reset: %+v", s)
	}
}

func TestStateHeadingStack(t *testing.T) {
	t.Parallel()
	w := NewHTMLWriter(io.Discard, nil)
	tag := Heading(2)
	tag.ID = "intro"
	if err := w.StartHeading(tag); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := w.State().HeadingStack; len(got) != 1 || got[0] != "intro" {
		t.Fatalf("unexpected heading stack %v", got)
	}
	if err := w.EndHeading(2); err != nil {
		t.Fatalf("end: %v", err)
	}
	if got := w.State().HeadingStack; len(got) != 0 {
		t.Fatalf("heading stack not popped: %v", got)
	}
}

func TestStateFlagsAndReset(t *testing.T) {
	t.Parallel()
	w := NewHTMLWriter(io.Discard, nil)
	_ = w.StartCodeBlock(FencedCode("go"))
	_ = w.StartFootnoteDefinition("1")
	_ = w.StartLink(Link("/x", ""))
	s := w.State()
	if !s.InCodeBlock || !s.InFootnote || s.CodeLanguage != "go" || len(s.LinkStack) != 1 {
		t.Fatalf("flags not set: %+v", s)
	}
	w.Reset(io.Discard)
	if w.State() == s {
		t.Fatalf("reset reused state")
	}
	fresh := w.State()
	if fresh.InCodeBlock || fresh.InFootnote || fresh.CodeLanguage != "" || len(fresh.LinkStack) != 0 {
		t.Fatalf("state not fresh after reset: %+v", fresh)
	}
}

func TestTableContextString(t *testing.T) {
	t.Parallel()
	if NotInTable.String() != "none" || InHeader.String() != "header" || InBody.String() != "body" {
		t.Fatalf("unexpected table context names")
	}
}
