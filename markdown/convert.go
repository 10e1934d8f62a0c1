package markdown

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"pkt.systems/mdhtml"
)

// ConvertRequest configures Convert.
type ConvertRequest struct {
	Reader      io.Reader
	Writer      io.Writer
	Config      *mdhtml.Config
	Highlighter mdhtml.Highlighter
	Logger      *slog.Logger
	Options     []Option
}

// Convert reads Markdown from req.Reader and writes HTML to req.Writer.
// Input that is not UTF-8 text is rejected before any output is written.
func Convert(req ConvertRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("convert: Reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("convert: Writer is nil")
	}
	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("convert: read input: %w", err)
	}
	if err := ValidateInput(src); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	return mdhtml.Render(mdhtml.RenderRequest{
		Events:      Events(src, req.Options...),
		Writer:      req.Writer,
		Config:      req.Config,
		Highlighter: req.Highlighter,
		Logger:      req.Logger,
	})
}

// ConvertString converts src with cfg and returns the HTML.
func ConvertString(src string, cfg *mdhtml.Config, opts ...Option) (string, error) {
	var b strings.Builder
	err := Convert(ConvertRequest{
		Reader:  strings.NewReader(src),
		Writer:  &b,
		Config:  cfg,
		Options: opts,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// HTTPConvertRequest configures HTTPConvert. A nil Client uses
// http.DefaultClient.
type HTTPConvertRequest struct {
	URL         string
	Client      *http.Client
	Writer      io.Writer
	Config      *mdhtml.Config
	Highlighter mdhtml.Highlighter
	Logger      *slog.Logger
	Options     []Option
}

// HTTPConvert fetches a Markdown document with Fetch and converts it.
func HTTPConvert(ctx context.Context, req HTTPConvertRequest) error {
	if req.Writer == nil {
		return fmt.Errorf("convert %s: Writer is nil", req.URL)
	}
	body, err := Fetch(ctx, req.Client, req.URL)
	if err != nil {
		return err
	}
	defer body.Close()
	return Convert(ConvertRequest{
		Reader:      body,
		Writer:      req.Writer,
		Config:      req.Config,
		Highlighter: req.Highlighter,
		Logger:      req.Logger,
		Options:     req.Options,
	})
}

// acceptMarkdown prefers Markdown and plain text over HTML renditions.
const acceptMarkdown = "text/markdown, text/x-markdown;q=0.9, text/plain;q=0.8, */*;q=0.1"

// Fetch opens the Markdown document at rawURL. Only http and https URLs are
// accepted and any status outside 2xx is an error. The caller closes the
// returned body.
func Fetch(ctx context.Context, client *http.Client, rawURL string) (io.ReadCloser, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("fetch: URL is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return nil, fmt.Errorf("fetch %s: unsupported scheme %q", rawURL, req.URL.Scheme)
	}
	req.Header.Set("Accept", acceptMarkdown)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %s", rawURL, resp.Status)
	}
	return resp.Body, nil
}
