package pdf

import (
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when an input path does not exist
var ErrNotFound = errors.New("file not found")

// Document is an open, parsed PDF file
type Document struct {
	ctx  *model.Context
	file *os.File
	path string
	size int64
}

// Open opens and parses a PDF file. The document is read as-is: it is
// neither validated nor optimized, so objects shared between pages keep
// their identity.
func Open(path string) (*Document, error) {
	info, err := statFile(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}

	// Parse PDF with pdfcpu
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "failed to read PDF context")
	}
	if err := ctx.EnsurePageCount(); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "failed to count pages")
	}

	return &Document{
		ctx:  ctx,
		file: f,
		path: path,
		size: info.Size(),
	}, nil
}

// statFile checks that path names a regular file
func statFile(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrNotFound, path)
		}
		return nil, errors.Wrap(err, "failed to stat file")
	}
	if info.IsDir() {
		return nil, errors.Errorf("%s is a directory", path)
	}
	return info, nil
}

// Path returns the file the document was read from
func (d *Document) Path() string {
	return d.path
}

// Size returns the on-disk size of the file in bytes
func (d *Document) Size() int64 {
	return d.size
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// Page returns the page with the given 1-based number, including the
// MediaBox it inherits from the page tree
func (d *Document) Page(pageNr int) (Page, error) {
	if pageNr < 1 || pageNr > d.ctx.PageCount {
		return Page{}, errors.Errorf("page number %d out of range [1, %d]", pageNr, d.ctx.PageCount)
	}

	pageDict, _, attrs, err := d.ctx.PageDict(pageNr, false)
	if err != nil {
		return Page{}, errors.Wrapf(err, "failed to get page dict %d", pageNr)
	}
	if pageDict == nil {
		return Page{}, errors.Errorf("page %d not found in page tree", pageNr)
	}

	p := Page{Number: pageNr, Dict: pageDict}
	if attrs != nil {
		p.MediaBox = attrs.MediaBox
	}
	return p, nil
}

// Dereference implements Resolver
func (d *Document) Dereference(o types.Object) (types.Object, error) {
	return d.ctx.Dereference(o)
}

// RebuildSize implements Rebuilder by extracting the page into a fresh
// single-page document and counting the serialized bytes. Nothing is
// written to disk.
func (d *Document) RebuildSize(pageNr int) (int64, error) {
	r, err := api.ExtractPage(d.ctx, pageNr)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to extract page %d", pageNr)
	}
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to serialize page %d", pageNr)
	}
	return n, nil
}

// Close releases the file handle
func (d *Document) Close() error {
	d.ctx = nil
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// Analyze computes the size breakdown of every page, in page order
func (d *Document) Analyze(opts ...Option) ([]PageReport, error) {
	return analyzePages(d, opts...)
}

func analyzePages(src Source, opts ...Option) ([]PageReport, error) {
	pages := make([]PageReport, 0, src.PageCount())
	for i := 1; i <= src.PageCount(); i++ {
		p, err := src.Page(i)
		if err != nil {
			return nil, err
		}
		report, err := AnalyzePage(src, p, opts...)
		if err != nil {
			return nil, err
		}
		pages = append(pages, report)
	}
	return pages, nil
}

// OpenSource opens path with pdfcpu. When pdfcpu cannot parse the file, for
// example because a stream has no /Length, the more lenient ledongthuc
// reader is tried before giving up. The pdfcpu error is returned if both
// fail.
func OpenSource(path string) (Source, error) {
	doc, err := Open(path)
	if err == nil {
		return doc, nil
	}
	if errors.Cause(err) == ErrNotFound {
		return nil, err
	}
	if _, statErr := statFile(path); statErr != nil {
		return nil, err
	}

	debugf("%s: pdfcpu failed (%v), retrying with ledongthuc", path, err)
	fallback, ferr := OpenWithLedongthuc(path)
	if ferr != nil {
		debugf("%s: %v", path, ferr)
		return nil, err
	}
	return fallback, nil
}

// AnalyzeFile opens path, analyzes all of its pages and closes it again
func AnalyzeFile(path string, opts ...Option) (*DocumentReport, error) {
	src, err := OpenSource(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	pages, err := analyzePages(src, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to analyze PDF")
	}

	return &DocumentReport{
		Path:  path,
		Size:  src.Size(),
		Pages: pages,
	}, nil
}

// Analyze runs AnalyzeFile over paths one after another. A file that fails
// gets a report with Err set; the remaining files are still analyzed.
func Analyze(paths []string, opts ...Option) []DocumentReport {
	reports := make([]DocumentReport, 0, len(paths))
	for _, path := range paths {
		report, err := AnalyzeFile(path, opts...)
		if err != nil {
			reports = append(reports, DocumentReport{Path: path, Err: err})
			continue
		}
		reports = append(reports, *report)
	}
	return reports
}
