package markdown

import (
	"strings"
	"testing"

	"pkt.systems/mdhtml"
)

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		kind mdhtml.MetadataKind
		meta string
		body string
	}{
		{
			name: "yaml",
			src:  "---\ntitle: Post\ndate: 2026-02-09\n---\n\n# Hello\n",
			kind: mdhtml.MetadataYAML,
			meta: "title: Post\ndate: 2026-02-09\n",
			body: "\n# Hello\n",
		},
		{
			name: "toml",
			src:  "+++\ntitle = \"Post\"\n+++\n# Hello\n",
			kind: mdhtml.MetadataTOML,
			meta: "title = \"Post\"\n",
			body: "# Hello\n",
		},
		{
			name: "json",
			src:  ";;;\n{\"title\": \"Post\"}\n;;;\n",
			kind: mdhtml.MetadataJSON,
			meta: "{\"title\": \"Post\"}\n",
			body: "",
		},
		{
			name: "crlf",
			src:  "---\r\ntitle: Post\r\n---\r\nBody\r\n",
			kind: mdhtml.MetadataYAML,
			meta: "title: Post\r\n",
			body: "Body\r\n",
		},
		{
			name: "bom",
			src:  "\xEF\xBB\xBF---\ntitle: Post\n---\nBody\n",
			kind: mdhtml.MetadataYAML,
			meta: "title: Post\n",
			body: "Body\n",
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fm, ok := splitFrontMatter([]byte(tc.src))
			if !ok {
				t.Fatalf("front matter not detected in %q", tc.src)
			}
			if fm.kind != tc.kind {
				t.Fatalf("kind = %v, want %v", fm.kind, tc.kind)
			}
			if string(fm.meta) != tc.meta {
				t.Fatalf("meta = %q, want %q", fm.meta, tc.meta)
			}
			if string(fm.body) != tc.body {
				t.Fatalf("body = %q, want %q", fm.body, tc.body)
			}
		})
	}
}

func TestSplitFrontMatterLeavesOtherInputAlone(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
	}{
		{"unclosed", "---\ntitle: Post\n\n# Hello\n"},
		{"no metadata", "---\n# Keep\n---\n\nTail\n"},
		{"not at start", "# Intro\n\n+++\ntitle = \"Keep me\"\n+++\n"},
		{"delimiter only", "---"},
		{"empty", ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fm, ok := splitFrontMatter([]byte(tc.src))
			if ok {
				t.Fatalf("unexpected front matter %q in %q", fm.meta, tc.src)
			}
			if string(fm.body) != tc.src {
				t.Fatalf("body = %q, want %q", fm.body, tc.src)
			}
		})
	}
}

func TestConvertUnclosedFrontMatterIsRendered(t *testing.T) {
	t.Parallel()
	out := convert(t, "---\ntitle: Post\n\n# Hello\n", nil)
	for _, want := range []string{"title: Post", "Hello"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output: %q", want, out)
		}
	}
}

func TestConvertOnlyLeadingFrontMatterIsRemoved(t *testing.T) {
	t.Parallel()
	out := convert(t, "---\ntitle: Skip\n---\n\nBody\n\n---\nkeep: yes\n---\n", nil)
	if strings.Contains(out, "title: Skip") {
		t.Fatalf("unexpected front-matter content in output: %q", out)
	}
	for _, want := range []string{"Body", "keep: yes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output: %q", want, out)
		}
	}
}
