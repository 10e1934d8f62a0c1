package mdhtml

import (
	"errors"
	"io"
	"iter"
	"log/slog"
	"strings"
)

// RenderRequest describes a render of an event sequence to HTML.
type RenderRequest struct {
	Events iter.Seq[Event]
	Writer io.Writer
	// Config defaults to DefaultConfig when nil.
	Config *Config
	// Highlighter, when set, renders code block bodies.
	Highlighter Highlighter
	Logger      *slog.Logger
}

// Render validates the configuration and renders req.Events with a fresh
// HTMLWriter. Output written before a failure is incomplete.
func Render(req RenderRequest) error {
	if req.Writer == nil {
		return renderError("render", errors.New("nil output writer"))
	}
	cfg := req.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	var opts []WriterOption
	if req.Highlighter != nil {
		opts = append(opts, WithHighlighter(req.Highlighter))
	}
	hw := NewHTMLWriter(req.Writer, cfg, opts...)
	if err := writeStyleSheet(hw, cfg, req.Highlighter); err != nil {
		return err
	}
	r := NewRenderer(hw)
	r.Logger = req.Logger
	return r.Run(req.Events)
}

// RenderString renders events with cfg and returns the HTML.
func RenderString(events iter.Seq[Event], cfg *Config) (string, error) {
	var b strings.Builder
	if err := Render(RenderRequest{Events: events, Writer: &b, Config: cfg}); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeStyleSheet(hw *HTMLWriter, cfg *Config, h Highlighter) error {
	if cfg.Highlight == nil || !cfg.Highlight.InjectCSS || !cfg.Highlight.Classes {
		return nil
	}
	cw, ok := h.(CSSWriter)
	if !ok {
		return nil
	}
	var css strings.Builder
	if err := cw.WriteCSS(&css); err != nil {
		return renderError("stylesheet", err)
	}
	return hw.WriteString("<style>\n" + css.String() + "</style>\n")
}
