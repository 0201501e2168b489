package pdf

import (
	"fmt"
	"io"
	"os"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"
)

// Nesting depth converted for /Contents and /Resources. Enough to reach
// Resources → XObject → stream → stream dictionary entries.
const (
	contentsDepth  = 2
	resourcesDepth = 3
)

// LedongthucDocument reads a PDF with the ledongthuc/pdf library. It is more
// lenient than pdfcpu and opens files pdfcpu rejects, such as streams
// without a /Length entry. Page dictionaries are converted into pdfcpu
// objects with every reference already resolved, so the same accounting
// code runs over both backends.
type LedongthucDocument struct {
	file   *os.File
	reader *lpdf.Reader
	path   string
	size   int64
}

// OpenWithLedongthuc opens a PDF file using the ledongthuc/pdf library
func OpenWithLedongthuc(path string) (doc *LedongthucDocument, err error) {
	info, err := statFile(path)
	if err != nil {
		return nil, err
	}

	// The library reports malformed input by panicking
	defer func() {
		if p := recover(); p != nil {
			doc, err = nil, errors.Errorf("failed to open PDF with ledongthuc: %v", p)
		}
	}()

	f, r, err := lpdf.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF with ledongthuc")
	}

	return &LedongthucDocument{
		file:   f,
		reader: r,
		path:   path,
		size:   info.Size(),
	}, nil
}

// Path returns the file the document was read from
func (d *LedongthucDocument) Path() string {
	return d.path
}

// Size returns the on-disk size of the file in bytes
func (d *LedongthucDocument) Size() int64 {
	return d.size
}

// PageCount returns the total number of pages
func (d *LedongthucDocument) PageCount() int {
	return d.reader.NumPage()
}

// Page returns the page with the given 1-based number
func (d *LedongthucDocument) Page(pageNr int) (p Page, err error) {
	if pageNr < 1 || pageNr > d.reader.NumPage() {
		return Page{}, errors.Errorf("page number %d out of range [1, %d]", pageNr, d.reader.NumPage())
	}

	defer func() {
		if r := recover(); r != nil {
			p, err = Page{}, errors.Errorf("failed to read page %d: %v", pageNr, r)
		}
	}()

	page := d.reader.Page(pageNr)
	if page.V.IsNull() {
		return Page{}, errors.Errorf("page %d not found in page tree", pageNr)
	}

	dict := types.Dict{}
	if o := convertValue(page.V.Key("Contents"), contentsDepth); o != nil {
		dict["Contents"] = o
	}
	if o := convertValue(page.V.Key("Resources"), resourcesDepth); o != nil {
		dict["Resources"] = o
	}

	return Page{Number: pageNr, Dict: dict, MediaBox: inheritedMediaBox(page.V)}, nil
}

// Dereference implements Resolver. Converted objects are all direct.
func (d *LedongthucDocument) Dereference(o types.Object) (types.Object, error) {
	switch o.(type) {
	case types.IndirectRef, *types.IndirectRef:
		return nil, errors.Errorf("unexpected reference %v in converted object", o)
	}
	return o, nil
}

// Close releases the file handle
func (d *LedongthucDocument) Close() error {
	d.reader = nil
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// Analyze computes the size breakdown of every page, in page order. The
// standalone column is unavailable with this backend.
func (d *LedongthucDocument) Analyze(opts ...Option) ([]PageReport, error) {
	return analyzePages(d, opts...)
}

// inheritedMediaBox walks up the page tree until a MediaBox is found
func inheritedMediaBox(v lpdf.Value) *types.Rectangle {
	for i := 0; i < 32 && v.Kind() == lpdf.Dict; i++ {
		mb := v.Key("MediaBox")
		if mb.Kind() == lpdf.Array && mb.Len() == 4 {
			return types.NewRectangle(
				mb.Index(0).Float64(),
				mb.Index(1).Float64(),
				mb.Index(2).Float64(),
				mb.Index(3).Float64(),
			)
		}
		v = v.Key("Parent")
	}
	return nil
}

// convertValue turns a ledongthuc value into the equivalent pdfcpu object.
// Composite values deeper than depth are dropped.
func convertValue(v lpdf.Value, depth int) types.Object {
	switch v.Kind() {
	case lpdf.Null:
		return nil
	case lpdf.Bool:
		return types.Boolean(v.Bool())
	case lpdf.Integer:
		return types.Integer(v.Int64())
	case lpdf.Real:
		return types.Float(v.Float64())
	case lpdf.Name:
		return types.Name(v.Name())
	case lpdf.String:
		return types.StringLiteral(v.RawString())
	}

	if depth <= 0 {
		return nil
	}

	switch v.Kind() {
	case lpdf.Array:
		arr := make(types.Array, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			arr = append(arr, convertValue(v.Index(i), depth-1))
		}
		return arr

	case lpdf.Dict:
		return convertDict(v, depth-1)

	case lpdf.Stream:
		return convertStream(v, depth-1)
	}
	return nil
}

func convertDict(v lpdf.Value, depth int) types.Dict {
	d := types.Dict{}
	for _, key := range v.Keys() {
		if o := convertValue(v.Key(key), depth); o != nil {
			d[key] = o
		}
	}
	return d
}

// convertStream keeps the stream dictionary. The data is only read when
// /Length is not a usable integer, so the decode fallback has something to
// measure.
func convertStream(v lpdf.Value, depth int) types.StreamDict {
	sd := types.StreamDict{Dict: convertDict(v, depth), FilterPipeline: filterPipeline(v)}
	if v.Key("Length").Kind() == lpdf.Integer && v.Key("Length").Int64() >= 0 {
		return sd
	}

	data, err := readStream(v)
	if err != nil {
		debugf("ledongthuc: %v", err)
		return sd
	}
	sd.Content = data
	return sd
}

func filterPipeline(v lpdf.Value) []types.PDFFilter {
	var fp []types.PDFFilter
	switch f := v.Key("Filter"); f.Kind() {
	case lpdf.Name:
		fp = append(fp, types.PDFFilter{Name: f.Name()})
	case lpdf.Array:
		for i := 0; i < f.Len(); i++ {
			fp = append(fp, types.PDFFilter{Name: f.Index(i).Name()})
		}
	}
	return fp
}

func readStream(v lpdf.Value) (data []byte, err error) {
	defer func() {
		if p := recover(); p != nil {
			data, err = nil, fmt.Errorf("failed to decode stream: %v", p)
		}
	}()

	rc := v.Reader()
	defer rc.Close()
	data, err = io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode stream")
	}
	return data, nil
}
