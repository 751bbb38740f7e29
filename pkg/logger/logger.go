package logger

import (
	"io"
	"log"
	"os"
)

// New returns a standard logger with a consistent prefix.
func New(prefix string) *log.Logger {
	return NewWithWriter(os.Stdout, prefix)
}

// NewWithWriter is New with an explicit destination, mainly for tests.
func NewWithWriter(w io.Writer, prefix string) *log.Logger {
	return log.New(w, prefix, log.LstdFlags|log.LUTC)
}
