package svgdoc

import (
	"log/slog"

	"github.com/benoitkugler/svgmodel/internal/logx"
	"github.com/benoitkugler/svgmodel/svgunit"
)

// ErrorMode determines how element errors are handled
// while walking a whole document.
type ErrorMode uint8

const (
	// IgnoreErrorMode silently drops the faulty elements.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode drops the faulty elements and logs a warning.
	WarnErrorMode
	// StrictErrorMode aborts the resolution on the first error.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

type options struct {
	mode     ErrorMode
	viewport *svgunit.Viewport
}

// Option configures the resolution of a document.
type Option func(*options)

// WithErrorMode sets the error mode, IgnoreErrorMode by default.
func WithErrorMode(mode ErrorMode) Option {
	return func(o *options) { o.mode = mode }
}

// WithViewport sets the viewport used when the root svg element
// declares neither width and height nor viewBox.
func WithViewport(width, height float64) Option {
	return func(o *options) { o.viewport = &svgunit.Viewport{Width: width, Height: height} }
}

// WithLogger sets the logger shared by the svgmodel packages.
// It is a shortcut for SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(*options) { SetLogger(l) }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SetLogger replaces the logger used by the svgmodel packages.
// Nothing is logged by default; passing nil restores that behavior.
func SetLogger(l *slog.Logger) { logx.Set(l) }
