// Package export turns synthesized textures into encoded images.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/poptex/pkg/landscape"
)

// Format is an output image encoding.
type Format string

// Supported formats.
const (
	FormatBMP Format = "bmp"
	FormatPNG Format = "png"
)

// ParseFormat accepts "bmp" or "png" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatBMP, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", s)
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatBMP:
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("encoding BMP: %w", err)
		}
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	default:
		return fmt.Errorf("unsupported image format %q", f)
	}
	return nil
}

// Colorize applies pal to an indexed texture. The result shares the
// texture's pixel buffer.
func Colorize(tex *landscape.Image, pal color.Palette) *image.Paletted {
	return tex.Paletted(pal)
}
