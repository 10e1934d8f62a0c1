package mdhtml

import (
	"fmt"
	"sort"
	"strings"
)

// Config controls every rendering decision. A Config must not be modified
// while a render that uses it is running; it may be shared between renders.
type Config struct {
	HTML       HTMLOptions
	Elements   ElementOptions
	Attributes AttributeMappings
	// Highlight configures the syntax highlighter. Nil disables highlighting.
	Highlight *HighlightOptions
}

// HTMLOptions holds document-wide output options.
type HTMLOptions struct {
	// EscapeHTML escapes body text.
	EscapeHTML bool
	// BreakOnNewline renders soft breaks as <br>.
	BreakOnNewline bool
	// XHTMLStyle closes void elements with " />".
	XHTMLStyle bool
	// PrettyPrint writes a newline after closing block elements.
	PrettyPrint bool
}

// ElementOptions groups per-element options.
type ElementOptions struct {
	Headings   HeadingOptions
	Links      LinkOptions
	CodeBlocks CodeBlockOptions
}

// HeadingOptions controls heading ids and classes.
type HeadingOptions struct {
	AddIDs   bool
	IDPrefix string
	// LevelClasses maps a heading level (1-6) to a class name.
	LevelClasses map[int]string
}

// LinkOptions controls attributes added to external links.
type LinkOptions struct {
	NofollowExternal  bool
	OpenExternalBlank bool
}

// CodeBlockOptions controls code block output.
type CodeBlockOptions struct {
	// DefaultLanguage is used when a block has no info string. Empty means none.
	DefaultLanguage string
	// LineNumbers asks the highlighter to number lines.
	LineNumbers bool
}

// AttributeMappings holds literal attributes appended to elements by tag name.
type AttributeMappings struct {
	ElementAttributes map[string][]Attr
}

// HighlightOptions configures syntax highlighting.
type HighlightOptions struct {
	// Style names the highlighting style.
	Style string
	// Classes emits CSS classes instead of inline styles.
	Classes bool
	// InjectCSS writes the style sheet before the document when Classes is set.
	InjectCSS bool
}

// DefaultHighlightStyle is the style used when highlighting is enabled without a style.
const DefaultHighlightStyle = "github"

// DefaultConfig returns the baseline configuration.
func DefaultConfig() *Config {
	return &Config{
		HTML: HTMLOptions{
			EscapeHTML:     false,
			BreakOnNewline: true,
			XHTMLStyle:     false,
		},
		Elements: ElementOptions{
			Headings: HeadingOptions{
				AddIDs:       true,
				IDPrefix:     "heading-",
				LevelClasses: map[int]string{},
			},
			Links: LinkOptions{
				NofollowExternal:  true,
				OpenExternalBlank: true,
			},
		},
		Attributes: AttributeMappings{
			ElementAttributes: map[string][]Attr{},
		},
	}
}

// DefaultHighlightOptions returns highlighting options for DefaultHighlightStyle.
func DefaultHighlightOptions() HighlightOptions {
	return HighlightOptions{Style: DefaultHighlightStyle, Classes: true, InjectCSS: true}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Elements.Headings.LevelClasses = make(map[int]string, len(c.Elements.Headings.LevelClasses))
	for k, v := range c.Elements.Headings.LevelClasses {
		out.Elements.Headings.LevelClasses[k] = v
	}
	out.Attributes.ElementAttributes = make(map[string][]Attr, len(c.Attributes.ElementAttributes))
	for k, v := range c.Attributes.ElementAttributes {
		out.Attributes.ElementAttributes[k] = append([]Attr(nil), v...)
	}
	if c.Highlight != nil {
		h := *c.Highlight
		out.Highlight = &h
	}
	return &out
}

// WithElementAttribute returns a copy of c with name=value appended to element.
func (c *Config) WithElementAttribute(element, name, value string) *Config {
	out := c.Clone()
	out.Attributes.ElementAttributes[element] = append(out.Attributes.ElementAttributes[element], Attr{Name: name, Value: value})
	return out
}

// Validate reports structural problems as configuration errors.
func (c *Config) Validate() error {
	if c == nil {
		return configError("validate", fmt.Errorf("config is nil"))
	}
	levels := make([]int, 0, len(c.Elements.Headings.LevelClasses))
	for level := range c.Elements.Headings.LevelClasses {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	for _, level := range levels {
		if level < 1 || level > 6 {
			return configError("validate", fmt.Errorf("heading level must be between 1 and 6, got %d", level))
		}
	}
	elements := make([]string, 0, len(c.Attributes.ElementAttributes))
	for element := range c.Attributes.ElementAttributes {
		elements = append(elements, element)
	}
	sort.Strings(elements)
	for _, element := range elements {
		if !validAttrName(element) {
			return configError("validate", fmt.Errorf("invalid element name %q", element))
		}
		for _, attr := range c.Attributes.ElementAttributes[element] {
			if !validAttrName(attr.Name) {
				return configError("validate", fmt.Errorf("element %q: invalid attribute name %q", element, attr.Name))
			}
		}
	}
	if c.Highlight != nil && strings.TrimSpace(c.Highlight.Style) == "" {
		return configError("validate", fmt.Errorf("highlight style is empty"))
	}
	return nil
}

func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, " \t\r\n\f\"'=<>/`")
}
