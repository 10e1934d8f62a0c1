package mdhtml

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	if cfg.HTML.EscapeHTML || !cfg.HTML.BreakOnNewline || cfg.HTML.XHTMLStyle || cfg.HTML.PrettyPrint {
		t.Fatalf("unexpected html defaults: %+v", cfg.HTML)
	}
	h := cfg.Elements.Headings
	if !h.AddIDs || h.IDPrefix != "heading-" || len(h.LevelClasses) != 0 {
		t.Fatalf("unexpected heading defaults: %+v", h)
	}
	l := cfg.Elements.Links
	if !l.NofollowExternal || !l.OpenExternalBlank {
		t.Fatalf("unexpected link defaults: %+v", l)
	}
	if cfg.Elements.CodeBlocks.DefaultLanguage != "" {
		t.Fatalf("unexpected default language %q", cfg.Elements.CodeBlocks.DefaultLanguage)
	}
	if len(cfg.Attributes.ElementAttributes) != 0 || cfg.Highlight != nil {
		t.Fatalf("unexpected attribute or highlight defaults")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigCloneIsDeep(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig().WithElementAttribute("p", "class", "lead")
	cfg.Elements.Headings.LevelClasses[1] = "title"
	opts := DefaultHighlightOptions()
	cfg.Highlight = &opts

	clone := cfg.Clone()
	clone.Elements.Headings.LevelClasses[1] = "changed"
	clone.Attributes.ElementAttributes["p"][0].Value = "changed"
	clone.Highlight.Style = "changed"

	if cfg.Elements.Headings.LevelClasses[1] != "title" {
		t.Fatalf("level classes shared with clone")
	}
	if cfg.Attributes.ElementAttributes["p"][0].Value != "lead" {
		t.Fatalf("attributes shared with clone")
	}
	if cfg.Highlight.Style != DefaultHighlightStyle {
		t.Fatalf("highlight options shared with clone")
	}
}

func TestWithElementAttributeKeepsOriginal(t *testing.T) {
	t.Parallel()
	base := DefaultConfig()
	cfg := base.WithElementAttribute("a", "rel", "noopener").WithElementAttribute("a", "rel", "external")
	if len(base.Attributes.ElementAttributes["a"]) != 0 {
		t.Fatalf("base config modified")
	}
	got := cfg.Attributes.ElementAttributes["a"]
	if len(got) != 2 || got[0].Value != "noopener" || got[1].Value != "external" {
		t.Fatalf("unexpected attributes %+v", got)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"level too high", func(c *Config) { c.Elements.Headings.LevelClasses[7] = "x" }},
		{"level zero", func(c *Config) { c.Elements.Headings.LevelClasses[0] = "x" }},
		{"bad element", func(c *Config) { c.Attributes.ElementAttributes["a b"] = nil }},
		{"empty element", func(c *Config) { c.Attributes.ElementAttributes[""] = nil }},
		{"bad attribute", func(c *Config) {
			c.Attributes.ElementAttributes["p"] = []Attr{{Name: `on"click`, Value: "x"}}
		}},
		{"empty style", func(c *Config) { c.Highlight = &HighlightOptions{} }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrConfig) {
				t.Fatalf("expected config error, got %v", err)
			}
		})
	}
}

func TestNilConfigValidate(t *testing.T) {
	t.Parallel()
	var cfg *Config
	if err := cfg.Validate(); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}
