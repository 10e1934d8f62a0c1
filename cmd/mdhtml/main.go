package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/version"

	"pkt.systems/mdhtml"
	"pkt.systems/mdhtml/highlight"
	"pkt.systems/mdhtml/markdown"
)

const (
	defaultWidth = 80
	fetchTimeout = 30 * time.Second

	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func init() {
	version.SetDefaultModule("pkt.systems/mdhtml")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	inputs      []string
	outPath     string
	configPath  string
	highlight   bool
	style       string
	listStyles  bool
	escape      bool
	xhtml       bool
	pretty      bool
	autoID      bool
	typographer bool
	verbose     bool
	showVersion bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	flags := pflag.NewFlagSet("mdhtml", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringArrayVarP(&opts.inputs, "input", "i", nil, "Input file or URL (repeatable; positional inputs also accepted)")
	flags.StringVarP(&opts.outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (.toml, .yaml, .yml or .json)")
	flags.BoolVar(&opts.highlight, "highlight", false, "Syntax highlight code blocks")
	flags.StringVar(&opts.style, "style", "", "Highlight style (implies --highlight)")
	flags.BoolVar(&opts.listStyles, "list-styles", false, "List available highlight styles")
	flags.BoolVar(&opts.escape, "escape", false, "Escape HTML in body text")
	flags.BoolVar(&opts.xhtml, "xhtml", false, "Close void elements XHTML style")
	flags.BoolVar(&opts.pretty, "pretty", false, "Write a newline after block elements")
	flags.BoolVar(&opts.autoID, "auto-id", false, "Derive heading ids from heading text")
	flags.BoolVar(&opts.typographer, "typographer", false, "Replace quotes, dashes and ellipses with typographic entities")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log render events to stderr")
	flags.BoolVar(&opts.showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: mdhtml [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if opts.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return exitOK
	}
	if opts.listStyles {
		printStyles(stdout)
		return exitOK
	}

	cfg, err := buildConfig(flags, opts)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitUsage
	}
	var hl mdhtml.Highlighter
	if cfg.Highlight != nil {
		h, err := highlight.New(*cfg.Highlight, cfg.Elements.CodeBlocks.LineNumbers)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n\n", err)
			printStyles(stderr)
			return exitUsage
		}
		hl = h
	}

	var logger *slog.Logger
	if opts.verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	inputs := append(opts.inputs, flags.Args()...)
	if len(inputs) == 0 && isTerminal(stdin) {
		flags.Usage()
		return exitUsage
	}
	client := &http.Client{Timeout: fetchTimeout}
	reader, closer, err := openInputs(context.Background(), client, inputs, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return exitError
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	writer, outFile, err := resolveOutput(opts.outPath, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "open output: %v\n", err)
		return exitError
	}

	var mdOpts []markdown.Option
	if opts.autoID {
		mdOpts = append(mdOpts, markdown.WithAutoHeadingID())
	}
	if opts.typographer {
		mdOpts = append(mdOpts, markdown.WithTypographer())
	}
	err = markdown.Convert(markdown.ConvertRequest{
		Reader:      reader,
		Writer:      writer,
		Config:      cfg,
		Highlighter: hl,
		Logger:      logger,
		Options:     mdOpts,
	})
	if err != nil {
		fmt.Fprintf(stderr, "render: %v\n", err)
		discardOutput(outFile, stderr)
		if errors.Is(err, mdhtml.ErrConfig) {
			return exitUsage
		}
		return exitError
	}
	if outFile != nil {
		if err := outFile.Close(); err != nil {
			fmt.Fprintf(stderr, "close output: %v\n", err)
			_ = os.Remove(outFile.Name())
			return exitError
		}
		return exitOK
	}
	if isTerminal(writer) {
		fmt.Fprintln(writer)
	}
	return exitOK
}

// discardOutput removes an output file left incomplete by a failed render.
func discardOutput(f *os.File, stderr io.Writer) {
	if f == nil {
		return
	}
	_ = f.Close()
	if err := os.Remove(f.Name()); err != nil {
		fmt.Fprintf(stderr, "remove partial output: %v\n", err)
	}
}

// buildConfig loads the config file, if any, and applies flags that were set
// on the command line on top of it.
func buildConfig(flags *pflag.FlagSet, opts options) (*mdhtml.Config, error) {
	cfg := mdhtml.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := mdhtml.LoadConfigFile(normalizePath(opts.configPath))
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if flags.Changed("escape") {
		cfg.HTML.EscapeHTML = opts.escape
	}
	if flags.Changed("xhtml") {
		cfg.HTML.XHTMLStyle = opts.xhtml
	}
	if flags.Changed("pretty") {
		cfg.HTML.PrettyPrint = opts.pretty
	}
	if opts.highlight || opts.style != "" {
		if cfg.Highlight == nil {
			hl := mdhtml.DefaultHighlightOptions()
			cfg.Highlight = &hl
		}
		if opts.style != "" {
			cfg.Highlight.Style = opts.style
		}
	}
	if flags.Changed("highlight") && !opts.highlight && opts.style == "" {
		cfg.Highlight = nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printStyles(w io.Writer) {
	width := defaultWidth
	if isTerminal(w) {
		width = terminalWidth(w, defaultWidth)
	}
	fmt.Fprintln(w, wrapNames(highlight.Styles(), width))
}

// wrapNames joins names with spaces and wraps at width without splitting a
// name at its hyphens.
func wrapNames(names []string, width int) string {
	ww := wordwrap.NewWriter(width)
	ww.Breakpoints = nil
	_, _ = ww.Write([]byte(strings.Join(names, " ")))
	_ = ww.Close()
	return ww.String()
}

func terminalWidth(w io.Writer, fallback int) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if cols, err := strconv.Atoi(value); err == nil && cols > 0 {
			return cols
		}
	}
	return fallback
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(ctx context.Context, client *http.Client, args []string, stdin io.Reader) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(ctx, client, raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	m := &multiInputReader{sources: sources}
	return m, m, nil
}

func makeInputSource(ctx context.Context, client *http.Client, raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				body, err := markdown.Fetch(ctx, client, raw)
				if err != nil {
					return nil, nil, err
				}
				return body, body, nil
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, *os.File, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
