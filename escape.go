package mdhtml

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// EscapeHTML escapes < > & " and ' for use in text or attribute values.
func EscapeHTML(s string) string {
	if !strings.ContainsAny(s, "&<>\"'") {
		return s
	}
	return htmlEscaper.Replace(s)
}

const hexDigits = "0123456789ABCDEF"

// EscapeHref percent-encodes the characters that would break out of a URL
// attribute: < > " ' space, newline, carriage return and tab. Everything
// else, including & ? and =, is kept so query strings survive.
func EscapeHref(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if hrefUnsafe(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if hrefUnsafe(c) {
			b.WriteByte('%')
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0x0F])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func hrefUnsafe(c byte) bool {
	switch c {
	case '<', '>', '"', '\'', ' ', '\n', '\r', '\t':
		return true
	}
	return false
}
