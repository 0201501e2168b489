package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/pyhub-apps/pdfsize-golang/pkg/pdf"
)

const (
	cellWidth = 12
	nameWidth = 72
)

// Printer writes one section per analyzed file
type Printer struct {
	w          io.Writer
	standalone bool

	// Banner, when set, prefixes every section header, e.g. "[20250101-120000 pid=42]"
	Banner string
}

// NewPrinter returns a Printer writing to w. standalone adds the
// "1-page PDF" column.
func NewPrinter(w io.Writer, standalone bool) *Printer {
	return &Printer{w: w, standalone: standalone}
}

func (p *Printer) headers() []string {
	h := []string{"Page", "Dims(pt)", "Contents(enc)", "XObjects(enc)", "XObj#"}
	if p.standalone {
		h = append(h, "1-page PDF")
	}
	return h
}

// row right-aligns every cell by display width
func (p *Printer) row(cells []string) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = runewidth.FillLeft(c, cellWidth)
	}
	return "  " + strings.Join(padded, " | ")
}

// PrintDocument writes the section for one file: its header, then either an
// error line or the size summary and the page table.
func (p *Printer) PrintDocument(d pdf.DocumentReport) {
	name := runewidth.Truncate(filepath.Base(d.Path), nameWidth, "...")
	if p.Banner != "" {
		fmt.Fprintf(p.w, "\n%s === %s ===\n", p.Banner, name)
	} else {
		fmt.Fprintf(p.w, "\n=== %s ===\n", name)
	}

	if d.Err != nil {
		fmt.Fprintln(p.w, ErrorLine(d))
		return
	}

	fmt.Fprintf(p.w, "Full PDF size: %s (%d bytes)\n", HumanBytes(d.Size), d.Size)
	fmt.Fprintf(p.w, "Pages: %d\n", len(d.Pages))

	headers := p.headers()
	fmt.Fprintln(p.w, p.row(headers))
	fmt.Fprintln(p.w, "  "+strings.Repeat("-", 15*len(headers)))

	var xobjCount int
	var standalone int64
	standaloneFailed := false
	for _, r := range d.Pages {
		cells := []string{
			strconv.Itoa(r.Number),
			Dims(r.Width, r.Height),
			HumanBytes(r.ContentBytes),
			HumanBytes(r.XObjectBytes),
			strconv.Itoa(r.XObjectCount),
		}
		if p.standalone {
			if r.StandaloneErr != nil {
				cells = append(cells, "n/a")
			} else {
				cells = append(cells, HumanBytes(r.Standalone))
			}
		}
		fmt.Fprintln(p.w, p.row(cells))
		xobjCount += r.XObjectCount
		standalone += r.Standalone
		if r.StandaloneErr != nil {
			standaloneFailed = true
		}
	}

	// Shared streams are counted once per page, so the sums may exceed the file size
	if len(d.Pages) > 1 {
		fmt.Fprintln(p.w, "  "+strings.Repeat("-", 15*len(headers)))
		cells := []string{
			"Sum",
			"",
			HumanBytes(d.ContentTotal()),
			HumanBytes(d.XObjectTotal()),
			strconv.Itoa(xobjCount),
		}
		if p.standalone {
			// a partial sum would understate the total
			if standaloneFailed {
				cells = append(cells, "n/a")
			} else {
				cells = append(cells, HumanBytes(standalone))
			}
		}
		fmt.Fprintln(p.w, p.row(cells))
	}
}

// ErrorLine is the single line reported for a file that could not be analyzed
func ErrorLine(d pdf.DocumentReport) string {
	if errors.Cause(d.Err) == pdf.ErrNotFound {
		return fmt.Sprintf("ERROR: file not found: %s", d.Path)
	}
	return fmt.Sprintf("ERROR: failed to read/analyze PDF: %v", d.Err)
}

type jsonDocument struct {
	pdf.DocumentReport
	Error string `json:"error,omitempty"`
}

// WriteJSON encodes the reports as an indented JSON array
func WriteJSON(w io.Writer, reports []pdf.DocumentReport) error {
	out := make([]jsonDocument, 0, len(reports))
	for _, r := range reports {
		doc := jsonDocument{DocumentReport: r}
		if r.Err != nil {
			doc.Error = r.Err.Error()
		}
		out = append(out, doc)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(out)
}
