package mdhtml

import "strings"

// TableContext is the phase of the table being rendered.
type TableContext uint8

const (
	NotInTable TableContext = iota
	InHeader
	InBody
)

func (t TableContext) String() string {
	switch t {
	case InHeader:
		return "header"
	case InBody:
		return "body"
	default:
		return "none"
	}
}

// ListContext is one entry of the list nesting stack.
type ListContext struct {
	Ordered bool
	// Number is the start number of an ordered list.
	Number uint64
}

// ListOrdered returns the context of an ordered list starting at n.
func ListOrdered(n uint64) ListContext { return ListContext{Ordered: true, Number: n} }

// ListUnordered returns the context of a bullet list.
func ListUnordered() ListContext { return ListContext{} }

// State is the mutable context of a single render. It is owned by one
// HTMLWriter and must not be shared between renders.
type State struct {
	// Numbers holds the start numbers of the enclosing ordered lists.
	Numbers         []uint64
	ListStack       []ListContext
	Table           TableContext
	TableCellIndex  int
	TableAlignments []Alignment
	// TableCellTag is the element opened by the current cell.
	TableCellTag string
	LinkStack    []LinkType
	HeadingStack []string
	InCodeBlock  bool
	InFootnote   bool
	InMetadata   bool
	// CodeLanguage is the resolved language of the open code block.
	CodeLanguage string

	code strings.Builder
}

// NewState returns empty render state.
func NewState() *State {
	return &State{}
}

// InTable reports whether a table is open.
func (s *State) InTable() bool { return s.Table != NotInTable }

// InTableHeader reports whether the open table is still in its header.
func (s *State) InTableHeader() bool { return s.Table == InHeader }

// ListDepth returns the number of open lists.
func (s *State) ListDepth() int { return len(s.ListStack) }

// CurrentList returns the innermost open list.
func (s *State) CurrentList() (ListContext, bool) {
	if len(s.ListStack) == 0 {
		return ListContext{}, false
	}
	return s.ListStack[len(s.ListStack)-1], true
}

func (s *State) pushList(l ListContext) {
	if l.Ordered {
		s.Numbers = append(s.Numbers, l.Number)
	}
	s.ListStack = append(s.ListStack, l)
}

func (s *State) popList() {
	if len(s.ListStack) == 0 {
		return
	}
	top := s.ListStack[len(s.ListStack)-1]
	s.ListStack = s.ListStack[:len(s.ListStack)-1]
	if top.Ordered && len(s.Numbers) > 0 {
		s.Numbers = s.Numbers[:len(s.Numbers)-1]
	}
}

func (s *State) popLink() {
	if len(s.LinkStack) > 0 {
		s.LinkStack = s.LinkStack[:len(s.LinkStack)-1]
	}
}

func (s *State) endTable() {
	s.Table = NotInTable
	s.TableCellIndex = 0
	s.TableAlignments = nil
	s.TableCellTag = ""
}
