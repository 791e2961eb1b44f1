package pkg

import (
	"io"
	"os"

	"go.uber.org/multierr"
)

// CombinedWriter fans each log line out to stdout and the rotated log file.
// A failing writer does not stop the others. The write counts as done when any writer took it.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	for _, w := range writers {
		if w == nil {
			continue
		}
		cw.Writers = append(cw.Writers, w)
	}
	return cw
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	delivered := false
	for _, w := range cw.Writers {
		n, werr := w.Write(p)
		if werr == nil && n < len(p) {
			werr = io.ErrShortWrite
		}
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		delivered = true
	}
	if !delivered {
		return 0, err
	}
	return len(p), err
}

// Close closes the writers that are io.Closers; stdout is left alone.
func (cw *CombinedWriter) Close() error {
	var err error
	for _, w := range cw.Writers {
		if w == io.Writer(os.Stdout) || w == io.Writer(os.Stderr) {
			continue
		}
		if c, ok := w.(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}
