package mdhtml

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/naoina/toml"
	"gopkg.in/yaml.v3"
)

// Config file formats accepted by ParseConfig.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// fileConfig is the on-disk schema. Nil fields keep their defaults.
type fileConfig struct {
	HTML       *fileHTML       `toml:"html" yaml:"html" json:"html"`
	Elements   *fileElements   `toml:"elements" yaml:"elements" json:"elements"`
	Attributes *fileAttributes `toml:"attributes" yaml:"attributes" json:"attributes"`
	Highlight  *fileHighlight  `toml:"highlight" yaml:"highlight" json:"highlight"`
}

type fileHTML struct {
	EscapeHTML     *bool `toml:"escape_html" yaml:"escape_html" json:"escape_html"`
	BreakOnNewline *bool `toml:"break_on_newline" yaml:"break_on_newline" json:"break_on_newline"`
	XHTMLStyle     *bool `toml:"xhtml_style" yaml:"xhtml_style" json:"xhtml_style"`
	PrettyPrint    *bool `toml:"pretty_print" yaml:"pretty_print" json:"pretty_print"`
}

type fileElements struct {
	Headings   *fileHeadings   `toml:"headings" yaml:"headings" json:"headings"`
	Links      *fileLinks      `toml:"links" yaml:"links" json:"links"`
	CodeBlocks *fileCodeBlocks `toml:"code_blocks" yaml:"code_blocks" json:"code_blocks"`
}

type fileHeadings struct {
	AddIDs       *bool             `toml:"add_ids" yaml:"add_ids" json:"add_ids"`
	IDPrefix     *string           `toml:"id_prefix" yaml:"id_prefix" json:"id_prefix"`
	LevelClasses map[string]string `toml:"level_classes" yaml:"level_classes" json:"level_classes"`
}

type fileLinks struct {
	NofollowExternal  *bool `toml:"nofollow_external" yaml:"nofollow_external" json:"nofollow_external"`
	OpenExternalBlank *bool `toml:"open_external_blank" yaml:"open_external_blank" json:"open_external_blank"`
}

type fileCodeBlocks struct {
	DefaultLanguage *string `toml:"default_language" yaml:"default_language" json:"default_language"`
	LineNumbers     *bool   `toml:"line_numbers" yaml:"line_numbers" json:"line_numbers"`
}

type fileAttributes struct {
	ElementAttributes map[string]map[string]string `toml:"element_attributes" yaml:"element_attributes" json:"element_attributes"`
}

type fileHighlight struct {
	Style     *string `toml:"style" yaml:"style" json:"style"`
	Classes   *bool   `toml:"classes" yaml:"classes" json:"classes"`
	InjectCSS *bool   `toml:"inject_css" yaml:"inject_css" json:"inject_css"`
}

// LoadConfigFile reads a TOML, YAML or JSON configuration file. The format is
// chosen by extension; unknown extensions are read as TOML.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configError("load config", err)
	}
	cfg, err := ParseConfig(data, FormatForPath(path))
	if err != nil {
		return nil, configError("load config", fmt.Errorf("%s: %w", path, err))
	}
	return cfg, nil
}

// FormatForPath returns the config format implied by the extension of path.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// ParseConfig decodes data in the given format and overlays it on
// DefaultConfig. Unknown keys are rejected.
func ParseConfig(data []byte, format string) (*Config, error) {
	var fc fileConfig
	var err error
	switch strings.ToLower(format) {
	case FormatTOML:
		err = toml.Unmarshal(data, &fc)
	case FormatYAML, "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&fc)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&fc)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return nil, configError("parse config", fmt.Errorf("unsupported format %q", format))
	}
	if err != nil {
		return nil, configError("parse config", err)
	}
	cfg := DefaultConfig()
	if err := fc.apply(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (fc *fileConfig) apply(cfg *Config) error {
	if h := fc.HTML; h != nil {
		setBool(&cfg.HTML.EscapeHTML, h.EscapeHTML)
		setBool(&cfg.HTML.BreakOnNewline, h.BreakOnNewline)
		setBool(&cfg.HTML.XHTMLStyle, h.XHTMLStyle)
		setBool(&cfg.HTML.PrettyPrint, h.PrettyPrint)
	}
	if e := fc.Elements; e != nil {
		if h := e.Headings; h != nil {
			setBool(&cfg.Elements.Headings.AddIDs, h.AddIDs)
			setString(&cfg.Elements.Headings.IDPrefix, h.IDPrefix)
			for key, class := range h.LevelClasses {
				level, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(key), "h"))
				if err != nil {
					return configError("parse config", fmt.Errorf("level_classes: invalid heading level %q", key))
				}
				cfg.Elements.Headings.LevelClasses[level] = class
			}
		}
		if l := e.Links; l != nil {
			setBool(&cfg.Elements.Links.NofollowExternal, l.NofollowExternal)
			setBool(&cfg.Elements.Links.OpenExternalBlank, l.OpenExternalBlank)
		}
		if c := e.CodeBlocks; c != nil {
			setString(&cfg.Elements.CodeBlocks.DefaultLanguage, c.DefaultLanguage)
			setBool(&cfg.Elements.CodeBlocks.LineNumbers, c.LineNumbers)
		}
	}
	if a := fc.Attributes; a != nil {
		for element, attrs := range a.ElementAttributes {
			names := make([]string, 0, len(attrs))
			for name := range attrs {
				names = append(names, name)
			}
			sort.Strings(names)
			list := make([]Attr, 0, len(names))
			for _, name := range names {
				list = append(list, Attr{Name: name, Value: attrs[name]})
			}
			cfg.Attributes.ElementAttributes[element] = list
		}
	}
	if h := fc.Highlight; h != nil {
		opts := DefaultHighlightOptions()
		setString(&opts.Style, h.Style)
		setBool(&opts.Classes, h.Classes)
		setBool(&opts.InjectCSS, h.InjectCSS)
		cfg.Highlight = &opts
	}
	return nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
