// Package pdftest writes small uncompressed PDF files for tests
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Builder assembles a PDF with a classic xref table. Object numbers start
// at 1 and are handed out in the order objects are added or reserved.
type Builder struct {
	objs [][]byte
}

// Reserve allocates an object number to be filled in later with Set or
// SetStream, for forward references such as /Parent.
func (b *Builder) Reserve() int {
	b.objs = append(b.objs, nil)
	return len(b.objs)
}

// Add appends a direct object body, e.g. "<< /Type /Catalog >>"
func (b *Builder) Add(body string) int {
	n := b.Reserve()
	b.Set(n, body)
	return n
}

// Set fills in object n
func (b *Builder) Set(n int, body string) {
	b.objs[n-1] = []byte(body)
}

// AddStream appends a stream object. dict is the dictionary content
// without the angle brackets and normally carries the /Length entry.
func (b *Builder) AddStream(dict string, data []byte) int {
	n := b.Reserve()
	b.SetStream(n, dict, data)
	return n
}

// SetStream fills in object n with a stream
func (b *Builder) SetStream(n int, dict string, data []byte) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<< %s >>\nstream\n", dict)
	buf.Write(data)
	buf.WriteString("\nendstream")
	b.objs[n-1] = buf.Bytes()
}

// Bytes serializes the document with root as the catalog
func (b *Builder) Bytes(root int) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(b.objs))
	for i, body := range b.objs {
		if body == nil {
			panic(fmt.Sprintf("pdftest: object %d reserved but never set", i+1))
		}
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", i+1)
		buf.Write(body)
		buf.WriteString("\nendobj\n")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(b.objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R >>\n", len(b.objs)+1, root)
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xref)
	return buf.Bytes()
}

// WriteFile writes data into a fresh file under t.TempDir and returns its path
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// Filler returns n bytes of whitespace, which is a valid (empty) content stream
func Filler(n int) []byte {
	return bytes.Repeat([]byte{' '}, n)
}

// SharedContents builds the three page document used throughout the tests:
//
//	page 1: one content stream of 500 bytes, no XObjects
//	page 2: content streams of 300 and 200 bytes, one 4096 byte image
//	        whose /Length is an indirect object
//	page 3: the same content stream object as page 1, own 595x842 MediaBox
//
// Pages 1 and 2 inherit a 612x792 MediaBox from the page tree root.
func SharedContents() []byte {
	var b Builder
	catalog := b.Reserve()
	pages := b.Reserve()
	p1, p2, p3 := b.Reserve(), b.Reserve(), b.Reserve()

	shared := b.AddStream("/Length 500", Filler(500))
	c1 := b.AddStream("/Length 300", Filler(300))
	c2 := b.AddStream("/Length 200", Filler(200))
	imgLen := b.Reserve()
	img := b.AddStream(fmt.Sprintf("/Type /XObject /Subtype /Image /Width 64 /Height 64 /ColorSpace /DeviceGray /BitsPerComponent 8 /Length %d 0 R", imgLen), make([]byte, 4096))
	b.Set(imgLen, "4096")

	b.Set(catalog, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pages))
	b.Set(pages, fmt.Sprintf("<< /Type /Pages /Kids [%d 0 R %d 0 R %d 0 R] /Count 3 /MediaBox [0 0 612 792] >>", p1, p2, p3))
	b.Set(p1, fmt.Sprintf("<< /Type /Page /Parent %d 0 R /Contents %d 0 R /Resources << >> >>", pages, shared))
	b.Set(p2, fmt.Sprintf("<< /Type /Page /Parent %d 0 R /Contents [%d 0 R %d 0 R] /Resources << /XObject << /Im1 %d 0 R >> >> >>", pages, c1, c2, img))
	b.Set(p3, fmt.Sprintf("<< /Type /Page /Parent %d 0 R /MediaBox [0 0 595 842] /Contents %d 0 R >>", pages, shared))

	return b.Bytes(catalog)
}

// MissingLength builds a two page document whose second page has a content
// stream of n bytes without a /Length entry. Page 1 has a regular 500 byte
// content stream.
func MissingLength(n int) []byte {
	var b Builder
	catalog := b.Reserve()
	pages := b.Reserve()
	p1, p2 := b.Reserve(), b.Reserve()

	c1 := b.AddStream("/Length 500", Filler(500))
	c2 := b.AddStream("/Filler true", Filler(n))

	b.Set(catalog, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pages))
	b.Set(pages, fmt.Sprintf("<< /Type /Pages /Kids [%d 0 R %d 0 R] /Count 2 /MediaBox [0 0 612 792] >>", p1, p2))
	b.Set(p1, fmt.Sprintf("<< /Type /Page /Parent %d 0 R /Contents %d 0 R >>", pages, c1))
	b.Set(p2, fmt.Sprintf("<< /Type /Page /Parent %d 0 R /Contents %d 0 R >>", pages, c2))

	return b.Bytes(catalog)
}
