package mdhtml

import "io"

// Highlighter turns the raw text of a code block into markup that is safe to
// emit as is. lang is the resolved language token and may be empty.
type Highlighter interface {
	Highlight(code, lang string) (string, error)
}

// HighlighterFunc adapts a function to Highlighter.
type HighlighterFunc func(code, lang string) (string, error)

// Highlight calls f(code, lang).
func (f HighlighterFunc) Highlight(code, lang string) (string, error) {
	return f(code, lang)
}

// CSSWriter is implemented by highlighters that need a style sheet.
type CSSWriter interface {
	WriteCSS(w io.Writer) error
}
