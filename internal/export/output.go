package export

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
)

// Output writes encoded images either to a directory or to a stream.
type Output struct {
	dir    string
	format Format
	stream io.Writer
}

// NewOutput returns an Output writing files into dir. An empty dir writes
// every image to stdout.
func NewOutput(dir string, format Format) *Output {
	return &Output{dir: dir, format: format, stream: os.Stdout}
}

// SetStream replaces the stream used when no directory is set.
func (o *Output) SetStream(w io.Writer) {
	o.stream = w
}

// Filename returns the path an image named name would be written to, or
// "-" for the stream.
func (o *Output) Filename(name string) string {
	if o.dir == "" {
		return "-"
	}
	return filepath.Join(o.dir, name+o.format.Ext())
}

// Write encodes img and returns where it went.
func (o *Output) Write(name string, img image.Image) (string, error) {
	if o.dir == "" {
		w := bufio.NewWriter(o.stream)
		if err := Encode(w, img, o.format); err != nil {
			return "", err
		}
		return "-", w.Flush()
	}

	if err := os.MkdirAll(o.dir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	filename := o.Filename(name)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := Encode(file, img, o.format); err != nil {
		return "", err
	}
	return filename, file.Close()
}
