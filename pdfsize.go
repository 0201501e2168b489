// Package pdfsize reports how much each page of a PDF contributes to the file size
package pdfsize

import (
	"github.com/pyhub-apps/pdfsize-golang/pkg/pdf"
	"github.com/pyhub-apps/pdfsize-golang/pkg/report"
)

// Re-export types from pdf package for public API
type (
	Document       = pdf.Document
	Page           = pdf.Page
	PageReport     = pdf.PageReport
	DocumentReport = pdf.DocumentReport
	Option         = pdf.Option
	Resolver       = pdf.Resolver
	Rebuilder      = pdf.Rebuilder
	Source         = pdf.Source
)

// Re-export option functions
var (
	WithStandalone = pdf.WithStandalone
	WithRebuilder  = pdf.WithRebuilder
)

// ErrNotFound is returned for input paths that do not exist
var ErrNotFound = pdf.ErrNotFound

// Open opens a PDF file for analysis
func Open(path string) (*pdf.Document, error) {
	return pdf.Open(path)
}

// OpenSource opens a PDF file, falling back to a more lenient reader when
// the default one cannot parse it
func OpenSource(path string) (Source, error) {
	return pdf.OpenSource(path)
}

// AnalyzeFile returns the size breakdown of every page of the PDF at path
func AnalyzeFile(path string, opts ...Option) (*DocumentReport, error) {
	return pdf.AnalyzeFile(path, opts...)
}

// Analyze analyzes each path in turn. Failed files carry their error in
// DocumentReport.Err and do not stop the batch.
func Analyze(paths []string, opts ...Option) []DocumentReport {
	return pdf.Analyze(paths, opts...)
}

// HumanBytes formats a byte count with base-1024 units, e.g. "1.50 KB"
func HumanBytes(n int64) string {
	return report.HumanBytes(n)
}
