// Package report renders page size reports for a terminal
package report

import "fmt"

var units = []string{"B", "KB", "MB", "GB", "TB"}

// HumanBytes formats n with two decimals in base-1024 units, up to TB
func HumanBytes(n int64) string {
	f := float64(n)
	u := 0
	for f >= 1024 && u < len(units)-1 {
		f /= 1024
		u++
	}
	return fmt.Sprintf("%.2f %s", f, units[u])
}

// Dims formats a page size in whole points, e.g. "612x792"
func Dims(width, height float64) string {
	return fmt.Sprintf("%.0fx%.0f", width, height)
}
