// Package highlight provides a syntax highlighter for code blocks backed by
// chroma.
package highlight

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"pkt.systems/mdhtml"
)

// Chroma highlights code with a chroma style. It is safe for concurrent use.
type Chroma struct {
	style     *chroma.Style
	formatter *html.Formatter
	classes   bool
}

// New returns a highlighter for opts. An empty style selects
// mdhtml.DefaultHighlightStyle; an unknown style is a configuration error.
func New(opts mdhtml.HighlightOptions, lineNumbers bool) (*Chroma, error) {
	name := strings.TrimSpace(opts.Style)
	if name == "" {
		name = mdhtml.DefaultHighlightStyle
	}
	style, ok := styles.Registry[name]
	if !ok {
		style, ok = styles.Registry[strings.ToLower(name)]
	}
	if !ok {
		return nil, &mdhtml.Error{Kind: mdhtml.KindConfig, Op: "highlight", Err: fmt.Errorf("unknown style %q", opts.Style)}
	}
	formatOpts := []html.Option{html.WithClasses(opts.Classes)}
	if lineNumbers {
		formatOpts = append(formatOpts, html.WithLineNumbers(true), html.WithPreWrapper(bareWrapper{}))
	} else {
		formatOpts = append(formatOpts, html.PreventSurroundingPre(true))
	}
	return &Chroma{
		style:     style,
		formatter: html.New(formatOpts...),
		classes:   opts.Classes,
	}, nil
}

// Highlight tokenises code with the lexer registered for the first word of
// lang. Unknown languages fall back to content analysis and then to plain text.
func (c *Chroma) Highlight(code, lang string) (string, error) {
	lexer := lexerFor(code, lang)
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", lexer.Config().Name, err)
	}
	var b strings.Builder
	if err := c.formatter.Format(&b, c.style, iterator); err != nil {
		return "", fmt.Errorf("format: %w", err)
	}
	return b.String(), nil
}

// WriteCSS writes the style sheet for class based output. It writes nothing
// when the highlighter emits inline styles.
func (c *Chroma) WriteCSS(w io.Writer) error {
	if !c.classes {
		return nil
	}
	return c.formatter.WriteCSS(w, c.style)
}

// Style returns the name of the style in use.
func (c *Chroma) Style() string {
	return c.style.Name
}

// Styles lists the available style names in sorted order.
func Styles() []string {
	return styles.Names()
}

func lexerFor(code, lang string) chroma.Lexer {
	if fields := strings.Fields(lang); len(fields) > 0 {
		if l := lexers.Get(fields[0]); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(code); l != nil {
		return l
	}
	return lexers.Fallback
}

// bareWrapper drops the <pre> wrapper; the writer emits its own.
type bareWrapper struct{}

func (bareWrapper) Start(code bool, styleAttr string) string { return "" }
func (bareWrapper) End(code bool) string                     { return "" }
