package markdown

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestValidateInputReportsOffset(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  []byte
		is   error
		want string
	}{
		{"invalid utf8", []byte("ok \xff\xfe"), ErrInvalidUTF8, "at byte 3"},
		{"truncated rune", []byte("caf\xc3"), ErrInvalidUTF8, "at byte 3"},
		{"nul", append([]byte("hello"), 0x00), ErrBinaryInput, "NUL at byte 5"},
		{"control heavy", append(bytes.Repeat([]byte("a"), 60), 0x01, 0x02, 0x03, 0x04), ErrBinaryInput, "4 control bytes, first at byte 60"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateInput(tc.src)
			if !errors.Is(err, tc.is) {
				t.Fatalf("expected %v, got %v", tc.is, err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("missing %q in error: %q", tc.want, err.Error())
			}
		})
	}
}

func TestValidateInputAcceptsText(t *testing.T) {
	t.Parallel()
	data := []byte(strings.Repeat("# Title\n\n\tTabbed text with ümlauts.\r\n\f", 8))
	if err := ValidateInput(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateInputToleratesSparseControls(t *testing.T) {
	t.Parallel()
	data := append(bytes.Repeat([]byte("a"), 200), 0x1B)
	if err := ValidateInput(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConvertRejectsBinaryBeforeWriting(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	err := Convert(ConvertRequest{
		Reader: bytes.NewReader([]byte{0x00, 0x01, 0x02, 0x03, 0x04}),
		Writer: &out,
	})
	if !errors.Is(err, ErrBinaryInput) {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "at byte 0") {
		t.Fatalf("missing offset in error: %q", err.Error())
	}
	if out.Len() != 0 {
		t.Fatalf("expected empty output, got %q", out.String())
	}
}
