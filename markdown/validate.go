package markdown

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports input that is not UTF-8 encoded.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that looks like a binary file.
	ErrBinaryInput = errors.New("binary input detected")
)

// Inputs of at least binarySampleMin bytes are binary when control bytes make
// up binaryControlPct percent or more of them.
const (
	binarySampleMin  = 64
	binaryControlPct = 2
)

// ValidateInput rejects src unless it is UTF-8 Markdown text. The error
// wraps ErrInvalidUTF8 or ErrBinaryInput and names the byte offset of the
// offending input.
func ValidateInput(src []byte) error {
	for off := 0; off < len(src); {
		r, size := utf8.DecodeRune(src[off:])
		if r == utf8.RuneError && size <= 1 {
			return fmt.Errorf("%w at byte %d", ErrInvalidUTF8, off)
		}
		off += size
	}
	first, controls := -1, 0
	for off, b := range src {
		if b == 0 {
			return fmt.Errorf("%w: NUL at byte %d", ErrBinaryInput, off)
		}
		if controlByte(b) {
			if first < 0 {
				first = off
			}
			controls++
		}
	}
	if len(src) >= binarySampleMin && controls*100 >= len(src)*binaryControlPct {
		return fmt.Errorf("%w: %d control bytes, first at byte %d", ErrBinaryInput, controls, first)
	}
	return nil
}

// controlByte reports C0 controls other than tab, newline, vertical tab,
// form feed and carriage return, plus DEL.
func controlByte(b byte) bool {
	if b == 0x7F {
		return true
	}
	return b < 0x20 && (b < '\t' || b > '\r')
}
