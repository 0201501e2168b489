package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pyhub-apps/pdfsize-golang"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/benchmark <pdf-file>")
		os.Exit(1)
	}
	api.DisableConfigDir()

	pdfPath := os.Args[1]

	// Warm-up run
	doc, err := pdfsize.Open(pdfPath)
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	doc.Close()

	// Benchmark PDF opening
	start := time.Now()
	doc, err = pdfsize.Open(pdfPath)
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()
	openTime := time.Since(start)

	fmt.Printf("=== pdfsize Benchmark ===\n")
	fmt.Printf("File: %s\n", pdfPath)
	fmt.Printf("Size: %s\n", pdfsize.HumanBytes(doc.Size()))
	fmt.Printf("Pages: %d\n", doc.PageCount())
	fmt.Printf("Open time: %v\n", openTime)

	// Benchmark stream accounting
	start = time.Now()
	pages, err := doc.Analyze()
	if err != nil {
		log.Fatalf("Failed to analyze PDF: %v", err)
	}
	accountTime := time.Since(start)

	var streamBytes int64
	for _, p := range pages {
		streamBytes += p.ContentBytes + p.XObjectBytes
	}
	fmt.Printf("Accounting time: %v\n", accountTime)
	fmt.Printf("Attributed bytes: %s\n", pdfsize.HumanBytes(streamBytes))

	// Benchmark standalone rebuilds
	start = time.Now()
	pages, err = doc.Analyze(pdfsize.WithStandalone(true))
	if err != nil {
		log.Fatalf("Failed to analyze PDF: %v", err)
	}
	rebuildTime := time.Since(start)

	var rebuilt int64
	for _, p := range pages {
		rebuilt += p.Standalone
	}
	fmt.Printf("Standalone rebuild time: %v\n", rebuildTime)
	fmt.Printf("Sum of 1-page PDFs: %s\n", pdfsize.HumanBytes(rebuilt))

	// Summary
	totalTime := openTime + accountTime + rebuildTime
	fmt.Printf("\n=== Summary ===\n")
	fmt.Printf("Total processing time: %v\n", totalTime)
	if accountTime > 0 {
		fmt.Printf("Pages/sec (accounting): %.2f\n", float64(len(pages))/accountTime.Seconds())
	}
}
