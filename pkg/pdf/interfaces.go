package pdf

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Resolver looks up indirect references in a document's object table.
// *model.Context satisfies it.
type Resolver interface {
	// Dereference returns the direct object o points to. Direct objects
	// are returned unchanged.
	Dereference(o types.Object) (types.Object, error)
}

// Rebuilder builds a document holding only one page and reports its size
type Rebuilder interface {
	// RebuildSize serializes page pageNr (1-based) as a standalone PDF and
	// returns the number of bytes written
	RebuildSize(pageNr int) (int64, error)
}

// Source is an open PDF that can be walked page by page. Document (pdfcpu)
// and LedongthucDocument both implement it.
type Source interface {
	Resolver
	Path() string
	Size() int64
	PageCount() int
	Page(pageNr int) (Page, error)
	Close() error
}
