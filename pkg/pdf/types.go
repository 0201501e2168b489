package pdf

import (
	"fmt"
	"strings"
)

// Default page size (US Letter) used when a page has no resolvable MediaBox
const (
	DefaultPageWidth  = 612
	DefaultPageHeight = 792
)

// PageReport is the size breakdown of a single page
type PageReport struct {
	Number       int     `json:"page"`
	Width        float64 `json:"width_pt"`
	Height       float64 `json:"height_pt"`
	ContentBytes int64   `json:"contents_bytes"`
	XObjectBytes int64   `json:"xobject_bytes"`
	XObjectCount int     `json:"xobject_count"`

	// Standalone is the serialized size of a one-page rebuild of this page.
	// Only set when the analysis runs WithStandalone(true).
	Standalone    int64 `json:"standalone_bytes,omitempty"`
	StandaloneErr error `json:"-"`
}

// DocumentReport is the result of analyzing one PDF file
type DocumentReport struct {
	Path  string       `json:"path"`
	Size  int64        `json:"size_bytes"`
	Pages []PageReport `json:"pages,omitempty"`

	// Err is set when the file could not be analyzed; Pages is empty then.
	Err error `json:"-"`
}

// ContentTotal sums the content bytes over all pages. Streams shared between
// pages are counted once per page.
func (d DocumentReport) ContentTotal() int64 {
	var n int64
	for _, p := range d.Pages {
		n += p.ContentBytes
	}
	return n
}

// XObjectTotal sums the XObject bytes over all pages
func (d DocumentReport) XObjectTotal() int64 {
	var n int64
	for _, p := range d.Pages {
		n += p.XObjectBytes
	}
	return n
}

// Strategy names one way of measuring a stream
type Strategy string

const (
	StrategyDeclaredLength Strategy = "declared-length"
	StrategyDecode         Strategy = "decode-and-measure"
	StrategyZero           Strategy = "zero-default"
)

// StrategyFailure records why a strategy could not produce a length
type StrategyFailure struct {
	Strategy Strategy
	Err      error
}

// LengthResult is the outcome of measuring a stream
type LengthResult struct {
	Length   int64
	Strategy Strategy
	Failures []StrategyFailure
}

func (r LengthResult) String() string {
	if len(r.Failures) == 0 {
		return fmt.Sprintf("%d (%s)", r.Length, r.Strategy)
	}
	reasons := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		reasons = append(reasons, fmt.Sprintf("%s: %v", f.Strategy, f.Err))
	}
	return fmt.Sprintf("%d (%s; %s)", r.Length, r.Strategy, strings.Join(reasons, "; "))
}

// DecodeError reports a PDF object of an unexpected kind
type DecodeError struct {
	Key  string
	Want string
	Got  interface{}
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed /%s: expected %s, got %T", e.Key, e.Want, e.Got)
}

// Option is a function that modifies analysis behavior
type Option func(*options)

type options struct {
	Standalone bool
	Rebuilder  Rebuilder
}

// WithStandalone enables the one-page rebuild measurement. It is slow and
// overcounts, since every rebuilt file carries its own document overhead.
func WithStandalone(enabled bool) Option {
	return func(o *options) {
		o.Standalone = enabled
	}
}

// WithRebuilder replaces the rebuilder used for the standalone measurement
func WithRebuilder(r Rebuilder) Option {
	return func(o *options) {
		o.Rebuilder = r
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
