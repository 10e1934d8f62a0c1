package mdhtml

import (
	"errors"
	"fmt"
)

var (
	// ErrSink reports that the output destination rejected a write.
	ErrSink = errors.New("sink error")
	// ErrConfig reports a structurally invalid configuration.
	ErrConfig = errors.New("configuration error")
	// ErrRender reports a rendering failure not covered by the other kinds.
	ErrRender = errors.New("rendering error")
)

// ErrorKind classifies an Error.
type ErrorKind uint8

const (
	KindSink ErrorKind = iota + 1
	KindConfig
	KindRender
)

func (k ErrorKind) String() string {
	switch k {
	case KindSink:
		return "sink"
	case KindConfig:
		return "config"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindSink:
		return ErrSink
	case KindConfig:
		return ErrConfig
	case KindRender:
		return ErrRender
	default:
		return nil
	}
}

// Error is returned by every failing operation of the package.
// errors.Is matches the sentinel for its Kind as well as the wrapped cause.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel error of e's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func sinkError(op string, err error) error {
	return &Error{Kind: KindSink, Op: op, Err: err}
}

func configError(op string, err error) error {
	return &Error{Kind: KindConfig, Op: op, Err: err}
}

func renderError(op string, err error) error {
	return &Error{Kind: KindRender, Op: op, Err: err}
}

// NewConfigError wraps err as a configuration error for op.
func NewConfigError(op string, err error) error { return configError(op, err) }

// NewRenderError wraps err as a render error for op.
func NewRenderError(op string, err error) error { return renderError(op, err) }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
