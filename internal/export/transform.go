package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/Faultbox/poptex/pkg/landscape"
)

// Scale enlarges img by an integer factor with nearest-neighbour sampling.
// Paletted images stay paletted.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	rect := image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor)

	var dst xdraw.Image
	if p, ok := img.(*image.Paletted); ok {
		dst = image.NewPaletted(rect, p.Palette)
	} else {
		dst = image.NewRGBA(rect)
	}
	xdraw.NearestNeighbor.Scale(dst, rect, img, b, xdraw.Src, nil)
	return dst
}

// Shift moves the texture toroidally: the texel at (x, y) ends up at
// (x+dx, y+dy) wrapped to the image size.
func Shift(tex *landscape.Image, dx, dy int) *landscape.Image {
	if dx == 0 && dy == 0 {
		return tex
	}
	out := landscape.NewImage(tex.Width, tex.Height)
	for y := 0; y < tex.Height; y++ {
		ty := landscape.Wrap(y+dy, tex.Height)
		for x := 0; x < tex.Width; x++ {
			out.Set(landscape.Wrap(x+dx, tex.Width), ty, tex.At(x, y))
		}
	}
	return out
}

// ParseMove parses a "x;y" (or "x,y") texture offset.
func ParseMove(s string) (dx, dy int, err error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' })
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid move %q: expected x;y", s)
	}
	if dx, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
		return 0, 0, fmt.Errorf("invalid move %q: %w", s, err)
	}
	if dy, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		return 0, 0, fmt.Errorf("invalid move %q: %w", s, err)
	}
	return dx, dy, nil
}

// GridOverlay draws cell boundaries every cell pixels on a copy of img.
func GridOverlay(img image.Image, cell int, c color.Color) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	if cell <= 0 {
		return out
	}
	b := out.Bounds()
	for y := 0; y < b.Dy(); y += cell {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, y, c)
		}
	}
	for x := 0; x < b.Dx(); x += cell {
		for y := 0; y < b.Dy(); y++ {
			out.Set(x, y, c)
		}
	}
	return out
}
