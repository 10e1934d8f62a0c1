package mdhtml

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func renderEvents(t *testing.T, cfg *Config, events ...Event) string {
	t.Helper()
	out, err := RenderString(Events(events...), cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

func parseHTML(t *testing.T, out string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func wrap(tag Tag, inner ...Event) []Event {
	out := make([]Event, 0, len(inner)+2)
	out = append(out, Start(tag))
	out = append(out, inner...)
	return append(out, End(tag))
}

var errBoom = errors.New("boom")

// failingSink accepts ok writes and then fails every write.
type failingSink struct {
	ok    int
	calls int
}

func (f *failingSink) Write(p []byte) (int, error) {
	f.calls++
	if f.calls > f.ok {
		return 0, errBoom
	}
	return len(p), nil
}
