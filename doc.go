// Package mdhtml renders a stream of Markdown document events to HTML.
//
// Events come from a parser (see the markdown subpackage) as an iter.Seq and
// are consumed exactly once. A Renderer dispatches each event to a Writer,
// which decides the markup using a Config for policy and a State for the
// nesting context of the current render.
//
// Core properties:
//   - Single forward pass; image alt text is the only lookahead
//   - Every element's attributes can be extended from Config
//   - Custom output by embedding *HTMLWriter and overriding methods
//   - Pluggable code highlighting (see the highlight subpackage)
//
// Example:
//
//	events := mdhtml.Events(
//		mdhtml.Start(mdhtml.Heading(1)),
//		mdhtml.Text("Hello"),
//		mdhtml.End(mdhtml.Heading(1)),
//	)
//	err := mdhtml.Render(mdhtml.RenderRequest{
//		Events: events,
//		Writer: os.Stdout,
//		Config: mdhtml.DefaultConfig(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Errors are *Error values; use errors.Is with ErrSink, ErrConfig or ErrRender
// to classify them.
package mdhtml
