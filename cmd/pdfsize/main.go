package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pyhub-apps/pdfsize-golang/pkg/config"
	"github.com/pyhub-apps/pdfsize-golang/pkg/pdf"
	"github.com/pyhub-apps/pdfsize-golang/pkg/report"
)

func main() {
	// Keep pdfcpu from creating its config directory under the user's home
	api.DisableConfigDir()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run analyzes the files named by args. Files that fail are reported
// inline and do not change the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.FromArgs("pdfsize", args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintf(stderr, "pdfsize: %v\n", err)
		return 2
	}

	if cfg.Verbose {
		pdf.SetLogger(log.New(stderr, "pdfsize: ", 0))
		defer pdf.SetLogger(nil)
	}

	opts := []pdf.Option{pdf.WithStandalone(cfg.Standalone)}

	if cfg.JSON {
		reports := pdf.Analyze(cfg.Paths, opts...)
		if err := report.WriteJSON(stdout, reports); err != nil {
			fmt.Fprintf(stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	printer := report.NewPrinter(stdout, cfg.Standalone)
	printer.Banner = fmt.Sprintf("[%s pid=%d]", time.Now().Format("20060102-150405"), os.Getpid())

	// One file at a time, so each section appears as soon as it is done
	for _, path := range cfg.Paths {
		d, err := pdf.AnalyzeFile(path, opts...)
		if err != nil {
			d = &pdf.DocumentReport{Path: path, Err: err}
		}
		printer.PrintDocument(*d)
	}
	return 0
}
