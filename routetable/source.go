package routetable

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// LineSource supplies one text line at a time, without the trailing newline.
// ReadLine returns io.EOF once the source is exhausted; any other error is an
// I/O failure of the source itself.
type LineSource interface {
	ReadLine() (string, error)
}

type scannerSource struct {
	s *bufio.Scanner
}

// NewScannerSource adapts an io.Reader into a LineSource. It is the adapter
// to use for in-memory fixtures and pre-opened streams.
func NewScannerSource(r io.Reader) LineSource {
	return &scannerSource{s: bufio.NewScanner(r)}
}

func (src *scannerSource) ReadLine() (string, error) {
	if src.s.Scan() {
		return src.s.Text(), nil
	}
	if err := src.s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

type fileSource struct {
	f *os.File
	s *bufio.Scanner
}

// OpenFileSource opens path and returns a LineSource over its lines. The
// returned source implements io.Closer; closing the table that wraps it
// releases the file.
func OpenFileSource(path string) (LineSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &fileSource{f: f, s: bufio.NewScanner(f)}, nil
}

func (src *fileSource) ReadLine() (string, error) {
	if src.s.Scan() {
		return src.s.Text(), nil
	}
	if err := src.s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (src *fileSource) Close() error {
	return src.f.Close()
}

// TableOption adjusts how a route table reads its line source.
type TableOption func(*tableOptions)

type tableOptions struct {
	headerLines int
}

// WithHeaderLines sets how many leading lines are discarded before the first
// entry is decoded. /proc/net/route prints one column-header line;
// /proc/net/ipv6_route prints none. Those are the per-family defaults.
func WithHeaderLines(n int) TableOption {
	return func(o *tableOptions) { o.headerLines = n }
}
