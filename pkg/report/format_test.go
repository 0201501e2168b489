package report

import "testing"

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0.00 B"},
		{1, "1.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
		{1 << 40, "1.00 TB"},
		// no unit above TB
		{1 << 50, "1024.00 TB"},
	}

	for _, tt := range tests {
		if got := HumanBytes(tt.n); got != tt.want {
			t.Errorf("HumanBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestDims(t *testing.T) {
	if got := Dims(612, 792); got != "612x792" {
		t.Errorf("Dims(612, 792) = %q", got)
	}
	// rounded to whole points
	if got := Dims(595.276, 841.89); got != "595x842" {
		t.Errorf("Dims(595.276, 841.89) = %q", got)
	}
}
