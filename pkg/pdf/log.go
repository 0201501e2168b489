package pdf

import (
	"io"
	"log"
)

var logger = log.New(io.Discard, "", 0)

// SetLogger routes the package's debug output to l. Passing nil silences it.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	logger = l
}

func debugf(format string, args ...interface{}) {
	logger.Printf("[DEBUG] "+format, args...)
}
