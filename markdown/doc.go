// Package markdown parses Markdown with goldmark and exposes the document as
// an mdhtml event sequence.
//
// The parser enables GitHub Flavored Markdown (tables, strikethrough, task
// lists and autolinks), footnotes, definition lists and the {#id .class}
// attribute syntax. Front matter delimited by ---, +++ or ;;; at the start of
// the input becomes a metadata block.
//
// Example:
//
//	err := markdown.Convert(markdown.ConvertRequest{
//		Reader: os.Stdin,
//		Writer: os.Stdout,
//		Config: mdhtml.DefaultConfig(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
package markdown
