package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pyhub-apps/pdfsize-golang/pkg/pdf"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/debug_streams <pdf-file> [page]")
		os.Exit(1)
	}
	api.DisableConfigDir()

	// Open the PDF
	doc, err := pdf.OpenSource(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	fmt.Printf("Document has %d pages\n", doc.PageCount())

	first, last := 1, doc.PageCount()
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatalf("Invalid page number %q", os.Args[2])
		}
		first, last = n, n
	}

	for i := first; i <= last; i++ {
		page, err := doc.Page(i)
		if err != nil {
			log.Fatalf("Failed to get page: %v", err)
		}
		fmt.Printf("\nPage %d (%.2f x %.2f pt)\n", i, page.Width(), page.Height())

		contents, err := pdf.CollectContents(doc, page.Dict)
		if err != nil {
			fmt.Printf("  Contents: %v\n", err)
		}
		for j, sd := range contents {
			fmt.Printf("  Content %d: filters=%s length=%s\n", j+1, filters(sd), pdf.MeasureLength(doc, sd))
		}

		xobjects, err := pdf.CollectXObjects(doc, page.Dict)
		if err != nil {
			fmt.Printf("  XObjects: %v\n", err)
		}
		for j, sd := range xobjects {
			subtype := "?"
			if st := sd.NameEntry("Subtype"); st != nil {
				subtype = *st
			}
			fmt.Printf("  XObject %d: /%s filters=%s length=%s\n", j+1, subtype, filters(sd), pdf.MeasureLength(doc, sd))
		}
	}
}

func filters(sd types.StreamDict) string {
	if len(sd.FilterPipeline) == 0 {
		return "none"
	}
	s := ""
	for i, f := range sd.FilterPipeline {
		if i > 0 {
			s += ","
		}
		s += f.Name
	}
	return s
}
