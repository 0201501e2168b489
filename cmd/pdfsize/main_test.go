package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pyhub-apps/pdfsize-golang/internal/pdftest"
)

func TestMain(m *testing.M) {
	api.DisableConfigDir()
	os.Exit(m.Run())
}

func TestRunReportsEachFile(t *testing.T) {
	good := pdftest.WriteFile(t, "shared.pdf", pdftest.SharedContents())
	missing := filepath.Join(t.TempDir(), "gone.pdf")

	var stdout, stderr bytes.Buffer
	code := run([]string{missing, good}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run returned %d, stderr: %s", code, stderr.String())
	}

	out := stdout.String()
	if n := strings.Count(out, "ERROR:"); n != 1 {
		t.Errorf("Expected exactly one error line, got %d:\n%s", n, out)
	}
	if !strings.Contains(out, "ERROR: file not found: "+missing) {
		t.Errorf("Missing not-found line:\n%s", out)
	}
	if !strings.Contains(out, "=== shared.pdf ===") || !strings.Contains(out, "Pages: 3") {
		t.Errorf("Second file was not reported:\n%s", out)
	}

	// the missing file's section ends at its error line
	section := out[strings.Index(out, "gone.pdf ==="):strings.Index(out, "shared.pdf ===")]
	if strings.Contains(section, "Pages:") {
		t.Errorf("Failed file produced rows:\n%s", section)
	}
}

func TestRunJSON(t *testing.T) {
	good := pdftest.WriteFile(t, "shared.pdf", pdftest.SharedContents())

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-json", good, good}, &stdout, &stderr); code != 0 {
		t.Fatalf("run returned %d, stderr: %s", code, stderr.String())
	}

	var reports []struct {
		Path  string `json:"path"`
		Pages []struct {
			Page     int   `json:"page"`
			Contents int64 `json:"contents_bytes"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &reports); err != nil {
		t.Fatalf("Invalid JSON: %v\n%s", err, stdout.String())
	}

	// duplicate paths are analyzed once
	if len(reports) != 1 {
		t.Fatalf("Expected 1 report, got %d", len(reports))
	}
	if len(reports[0].Pages) != 3 || reports[0].Pages[2].Contents != 500 {
		t.Errorf("Unexpected pages: %+v", reports[0].Pages)
	}
}

func TestRunStandalone(t *testing.T) {
	good := pdftest.WriteFile(t, "shared.pdf", pdftest.SharedContents())

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-standalone", good}, &stdout, &stderr); code != 0 {
		t.Fatalf("run returned %d, stderr: %s", code, stderr.String())
	}

	out := stdout.String()
	if !strings.Contains(out, "1-page PDF") {
		t.Errorf("Missing standalone column:\n%s", out)
	}
	if strings.Contains(out, "n/a") {
		t.Errorf("Every page should rebuild:\n%s", out)
	}
	if strings.Contains(out, "ERROR:") {
		t.Errorf("Unexpected error line:\n%s", out)
	}
}

func TestRunWithoutStandaloneHasNoColumn(t *testing.T) {
	good := pdftest.WriteFile(t, "shared.pdf", pdftest.SharedContents())

	var stdout, stderr bytes.Buffer
	if code := run([]string{good}, &stdout, &stderr); code != 0 {
		t.Fatalf("run returned %d, stderr: %s", code, stderr.String())
	}
	if strings.Contains(stdout.String(), "1-page PDF") {
		t.Errorf("Standalone column printed without -standalone:\n%s", stdout.String())
	}
}

func TestRunUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 2 {
		t.Errorf("Expected exit code 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "no input files") {
		t.Errorf("Unexpected stderr: %s", stderr.String())
	}
}
