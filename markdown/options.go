package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Option configures parsing.
type Option func(*options)

type options struct {
	autoHeadingID bool
	typographer   bool
	dropMetadata  bool
	extensions    []goldmark.Extender
}

// WithAutoHeadingID derives heading ids from the heading text.
func WithAutoHeadingID() Option {
	return func(o *options) {
		o.autoHeadingID = true
	}
}

// WithTypographer replaces straight quotes, dashes and ellipses with their
// typographic forms.
func WithTypographer() Option {
	return func(o *options) {
		o.typographer = true
	}
}

// WithoutFrontMatter strips front matter without emitting a metadata block.
func WithoutFrontMatter() Option {
	return func(o *options) {
		o.dropMetadata = true
	}
}

// WithExtensions adds goldmark extensions to the parser.
func WithExtensions(ext ...goldmark.Extender) Option {
	return func(o *options) {
		o.extensions = append(o.extensions, ext...)
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func (o options) parser() parser.Parser {
	exts := []goldmark.Extender{
		extension.GFM,
		extension.Footnote,
		extension.DefinitionList,
	}
	if o.typographer {
		exts = append(exts, extension.Typographer)
	}
	exts = append(exts, o.extensions...)
	popts := []parser.Option{parser.WithAttribute()}
	if o.autoHeadingID {
		popts = append(popts, parser.WithAutoHeadingID())
	}
	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(popts...),
	)
	return md.Parser()
}
