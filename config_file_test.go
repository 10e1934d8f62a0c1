package mdhtml

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const tomlConfig = `
[html]
escape_html = true
pretty_print = true

[elements.headings]
id_prefix = "h-"

[elements.headings.level_classes]
1 = "title"
h2 = "subtitle"

[elements.links]
open_external_blank = false

[elements.code_blocks]
default_language = "text"

[attributes.element_attributes.a]
rel = "noopener"
class = "ext"

[highlight]
style = "monokai"
`

const yamlConfig = `
html:
  xhtml_style: true
  break_on_newline: false
elements:
  headings:
    add_ids: false
attributes:
  element_attributes:
    img:
      loading: lazy
`

const jsonConfig = `{
  "elements": {"links": {"nofollow_external": false}},
  "highlight": {"classes": false}
}`

func TestParseConfigTOML(t *testing.T) {
	t.Parallel()
	cfg, err := ParseConfig([]byte(tomlConfig), FormatTOML)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !cfg.HTML.EscapeHTML || !cfg.HTML.PrettyPrint || !cfg.HTML.BreakOnNewline {
		t.Fatalf("unexpected html options: %+v", cfg.HTML)
	}
	h := cfg.Elements.Headings
	if !h.AddIDs || h.IDPrefix != "h-" || h.LevelClasses[1] != "title" || h.LevelClasses[2] != "subtitle" {
		t.Fatalf("unexpected heading options: %+v", h)
	}
	if !cfg.Elements.Links.NofollowExternal || cfg.Elements.Links.OpenExternalBlank {
		t.Fatalf("unexpected link options: %+v", cfg.Elements.Links)
	}
	if cfg.Elements.CodeBlocks.DefaultLanguage != "text" {
		t.Fatalf("unexpected default language %q", cfg.Elements.CodeBlocks.DefaultLanguage)
	}
	attrs := cfg.Attributes.ElementAttributes["a"]
	if len(attrs) != 2 || attrs[0].Name != "class" || attrs[1].Name != "rel" {
		t.Fatalf("attributes not sorted by name: %+v", attrs)
	}
	if cfg.Highlight == nil || cfg.Highlight.Style != "monokai" || !cfg.Highlight.Classes || !cfg.Highlight.InjectCSS {
		t.Fatalf("unexpected highlight options: %+v", cfg.Highlight)
	}
}

func TestParseConfigYAML(t *testing.T) {
	t.Parallel()
	cfg, err := ParseConfig([]byte(yamlConfig), FormatYAML)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !cfg.HTML.XHTMLStyle || cfg.HTML.BreakOnNewline {
		t.Fatalf("unexpected html options: %+v", cfg.HTML)
	}
	if cfg.Elements.Headings.AddIDs {
		t.Fatalf("add_ids not applied")
	}
	if cfg.Elements.Headings.IDPrefix != "heading-" {
		t.Fatalf("default prefix lost: %q", cfg.Elements.Headings.IDPrefix)
	}
	if got := cfg.Attributes.ElementAttributes["img"]; len(got) != 1 || got[0] != (Attr{Name: "loading", Value: "lazy"}) {
		t.Fatalf("unexpected img attributes %+v", got)
	}
	if cfg.Highlight != nil {
		t.Fatalf("highlight enabled without a highlight section")
	}
}

func TestParseConfigJSON(t *testing.T) {
	t.Parallel()
	cfg, err := ParseConfig([]byte(jsonConfig), FormatJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Elements.Links.NofollowExternal || !cfg.Elements.Links.OpenExternalBlank {
		t.Fatalf("unexpected link options: %+v", cfg.Elements.Links)
	}
	if cfg.Highlight == nil || cfg.Highlight.Style != DefaultHighlightStyle || cfg.Highlight.Classes {
		t.Fatalf("unexpected highlight options: %+v", cfg.Highlight)
	}
}

func TestParseConfigEmptyIsDefault(t *testing.T) {
	t.Parallel()
	for _, format := range []string{FormatTOML, FormatYAML, FormatJSON} {
		cfg, err := ParseConfig(nil, format)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if !cfg.Elements.Headings.AddIDs || cfg.Elements.Headings.IDPrefix != "heading-" {
			t.Fatalf("%s: defaults not kept", format)
		}
	}
}

func TestParseConfigErrors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		data   string
		format string
	}{
		{"unknown toml key", "[html]\nbogus = true\n", FormatTOML},
		{"unknown yaml key", "html:\n  bogus: true\n", FormatYAML},
		{"unknown json key", `{"bogus": 1}`, FormatJSON},
		{"bad level", "[elements.headings.level_classes]\nx = \"a\"\n", FormatTOML},
		{"level out of range", "[elements.headings.level_classes]\n9 = \"a\"\n", FormatTOML},
		{"non-string attribute", "[attributes.element_attributes.a]\nrel = 1\n", FormatTOML},
		{"empty style", "[highlight]\nstyle = \"\"\n", FormatTOML},
		{"bad format", "", "ini"},
		{"malformed", "[html\n", FormatTOML},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseConfig([]byte(tc.data), tc.format)
			if !errors.Is(err, ErrConfig) {
				t.Fatalf("expected config error, got %v", err)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "mdhtml.yml")
	if err := os.WriteFile(path, []byte(yamlConfig), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.HTML.XHTMLStyle {
		t.Fatalf("yaml file not decoded")
	}

	_, err = LoadConfigFile(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, ErrConfig) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected config error wrapping ErrNotExist, got %v", err)
	}
}

func TestFormatForPath(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"a.toml": FormatTOML,
		"a.YAML": FormatYAML,
		"a.yml":  FormatYAML,
		"a.json": FormatJSON,
		"a.conf": FormatTOML,
		"no-ext": FormatTOML,
	}
	for path, want := range cases {
		if got := FormatForPath(path); got != want {
			t.Fatalf("FormatForPath(%q) = %q, want %q", path, got, want)
		}
	}
}
