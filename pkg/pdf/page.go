package pdf

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"
)

// Page is one page of an open document, as needed for size accounting
type Page struct {
	Number   int // 1-based
	Dict     types.Dict
	MediaBox *types.Rectangle
}

// Width returns the media box width in points
func (p Page) Width() float64 {
	if p.MediaBox == nil {
		return DefaultPageWidth
	}
	return p.MediaBox.Width()
}

// Height returns the media box height in points
func (p Page) Height() float64 {
	if p.MediaBox == nil {
		return DefaultPageHeight
	}
	return p.MediaBox.Height()
}

// CollectContents returns the page's content streams in the order they are
// concatenated. A page without /Contents has none.
func CollectContents(r Resolver, page types.Dict) ([]types.StreamDict, error) {
	contents, err := entry(r, page, "Contents")
	if err != nil {
		return nil, err
	}

	switch v := contents.(type) {
	case nil:
		return nil, nil

	case types.Array:
		// Multiple content streams
		streams := make([]types.StreamDict, 0, len(v))
		for i, item := range v {
			o, err := Deref(r, item)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to dereference /Contents[%d]", i)
			}
			sd, err := asStream("Contents", o)
			if err != nil {
				return nil, err
			}
			streams = append(streams, sd)
		}
		return streams, nil

	default:
		// Single content stream
		sd, err := asStream("Contents", v)
		if err != nil {
			return nil, err
		}
		return []types.StreamDict{sd}, nil
	}
}

// CollectXObjects returns the streams in the page's /Resources /XObject
// dictionary. Their order is unspecified.
func CollectXObjects(r Resolver, page types.Dict) ([]types.StreamDict, error) {
	res, err := entry(r, page, "Resources")
	if err != nil || res == nil {
		return nil, err
	}
	resDict, err := asDict("Resources", res)
	if err != nil {
		return nil, err
	}

	xo, err := entry(r, resDict, "XObject")
	if err != nil || xo == nil {
		return nil, err
	}
	xoDict, err := asDict("XObject", xo)
	if err != nil {
		return nil, err
	}

	streams := make([]types.StreamDict, 0, len(xoDict))
	for name, item := range xoDict {
		o, err := Deref(r, item)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to dereference XObject /%s", name)
		}
		sd, err := asStream("XObject/"+name, o)
		if err != nil {
			return nil, err
		}
		streams = append(streams, sd)
	}
	return streams, nil
}

// sumLengths adds up the encoded lengths of streams
func sumLengths(r Resolver, streams []types.StreamDict, what string, pageNr int) int64 {
	var total int64
	for i, sd := range streams {
		res := MeasureLength(r, sd)
		if len(res.Failures) > 0 {
			debugf("page %d %s #%d: %s", pageNr, what, i, res)
		}
		total += res.Length
	}
	return total
}

// AnalyzePage computes the size breakdown of one page. Streams the page
// shares with other pages are counted in full here as well.
func AnalyzePage(r Resolver, p Page, opts ...Option) (PageReport, error) {
	o := newOptions(opts)

	report := PageReport{
		Number: p.Number,
		Width:  p.Width(),
		Height: p.Height(),
	}

	contents, err := CollectContents(r, p.Dict)
	if err != nil {
		return report, errors.Wrapf(err, "page %d", p.Number)
	}
	report.ContentBytes = sumLengths(r, contents, "content stream", p.Number)

	xobjects, err := CollectXObjects(r, p.Dict)
	if err != nil {
		return report, errors.Wrapf(err, "page %d", p.Number)
	}
	report.XObjectBytes = sumLengths(r, xobjects, "xobject", p.Number)
	report.XObjectCount = len(xobjects)

	if o.Standalone {
		rb := o.Rebuilder
		if rb == nil {
			rb, _ = r.(Rebuilder)
		}
		if rb == nil {
			report.StandaloneErr = errors.New("no rebuilder available")
		} else {
			report.Standalone, report.StandaloneErr = rb.RebuildSize(p.Number)
		}
		if report.StandaloneErr != nil {
			debugf("page %d: standalone rebuild failed: %v", p.Number, report.StandaloneErr)
		}
	}

	return report, nil
}
