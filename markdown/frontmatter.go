package markdown

import (
	"bytes"

	"pkt.systems/mdhtml"
)

type frontMatter struct {
	kind mdhtml.MetadataKind
	meta []byte
	body []byte
}

// splitFrontMatter separates a leading front matter block from the document.
// The opening delimiter must be the first line and the next line must look
// like metadata; otherwise src is returned unchanged as the body.
func splitFrontMatter(src []byte) (frontMatter, bool) {
	openLine, openNext := nextLine(src, 0)
	delim, kind, ok := parseOpeningFrontMatterDelimiter(openLine)
	if !ok || openNext >= len(src) {
		return frontMatter{body: src}, false
	}
	secondLine, _ := nextLine(src, openNext)
	if !frontMatterMetadataLikely(secondLine) {
		return frontMatter{body: src}, false
	}
	closeStart, closeNext, found := findClosingFrontMatterDelimiter(src, openNext, delim)
	if !found {
		return frontMatter{body: src}, false
	}
	return frontMatter{
		kind: kind,
		meta: src[openNext:closeStart],
		body: src[closeNext:],
	}, true
}

func nextLine(src []byte, start int) ([]byte, int) {
	if start >= len(src) {
		return nil, len(src)
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src)
	}
	lineEnd := start + i
	return trimCR(src[start:lineEnd]), lineEnd + 1
}

func parseOpeningFrontMatterDelimiter(line []byte) ([]byte, mdhtml.MetadataKind, bool) {
	trimmed := bytes.TrimSpace(trimBOM(line))
	switch {
	case bytes.Equal(trimmed, []byte("---")):
		return []byte("---"), mdhtml.MetadataYAML, true
	case bytes.Equal(trimmed, []byte("+++")):
		return []byte("+++"), mdhtml.MetadataTOML, true
	case bytes.Equal(trimmed, []byte(";;;")):
		return []byte(";;;"), mdhtml.MetadataJSON, true
	default:
		return nil, 0, false
	}
}

func frontMatterMetadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
		return true
	}
	return bytes.Contains(trimmed, []byte(":")) || bytes.Contains(trimmed, []byte("="))
}

// findClosingFrontMatterDelimiter returns the offset of the closing line and
// the offset just past it.
func findClosingFrontMatterDelimiter(src []byte, start int, delim []byte) (int, int, bool) {
	for idx := start; idx < len(src); {
		line, next := nextLine(src, idx)
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return idx, next, true
		}
		idx = next
	}
	return 0, 0, false
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
