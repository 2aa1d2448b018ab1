// Package writers opens command output destinations.
package writers

import (
	"io"
	"os"
)

// Stdout is the output location that writes to standard output.
const Stdout = "-"

// LazyWriteCloser delays initialization until the first write, so a command
// that fails before producing output leaves no empty file behind.
type LazyWriteCloser struct {
	init   func() (io.WriteCloser, error)
	writer io.WriteCloser
}

// NewLazyWriteCloser calls init once, on the first Write.
func NewLazyWriteCloser(init func() (io.WriteCloser, error)) *LazyWriteCloser {
	return &LazyWriteCloser{init: init}
}

func (f *LazyWriteCloser) Write(p []byte) (int, error) {
	if f.writer == nil {
		var err error
		f.writer, err = f.init()
		if err != nil {
			return 0, err
		}
	}

	return f.writer.Write(p)
}

func (f *LazyWriteCloser) Close() error {
	if f.writer != nil {
		return f.writer.Close()
	}
	return nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Open returns a writer for location: Stdout, or a file path that is created
// or truncated on first write.
func Open(location string) io.WriteCloser {
	if location == "" || location == Stdout {
		return nopCloser{os.Stdout}
	}
	return NewLazyWriteCloser(func() (io.WriteCloser, error) {
		return os.OpenFile(location, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	})
}
