package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yildizm/BrandSum/internal/analyzer"
)

// ErrUnknownFormat is returned for output formats no formatter handles
var ErrUnknownFormat = errors.New("unknown output format")

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *analyzer.Report) ([]byte, error)
}

// Options controls presentation details shared by the formatters
type Options struct {
	Color           bool
	Emoji           bool
	Compact         bool
	Verbose         bool
	TimestampFormat string
}

// DefaultOptions returns plain, emoji-enabled options
func DefaultOptions() Options {
	return Options{
		Emoji:           true,
		TimestampFormat: "2006-01-02 15:04:05",
	}
}

// Formats lists the accepted output format names
func Formats() []string {
	return []string{"text", "json", "markdown", "csv", "prompt"}
}

// New returns the formatter for format. An empty format selects text.
func New(format string, opts Options) (Formatter, error) {
	if opts.TimestampFormat == "" {
		opts.TimestampFormat = DefaultOptions().TimestampFormat
	}

	switch strings.ToLower(format) {
	case "", "text", "terminal":
		return NewTerminal(opts), nil
	case "json":
		return NewJSON(opts.Compact), nil
	case "markdown", "md":
		return NewMarkdown(opts), nil
	case "csv":
		return NewCSV(), nil
	case "prompt":
		return NewPrompt(), nil
	default:
		return nil, fmt.Errorf("%w %q (must be one of: %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
}
