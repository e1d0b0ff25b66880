package export

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Palette swatch defaults: the first 128 colours on a 1024x1024 image.
const (
	SwatchSize   = 1024
	SwatchColors = 128
)

// SwatchOptions controls DrawPalette.
type SwatchOptions struct {
	Width  int
	Height int
	Colors int  // number of leading palette entries to draw
	Labels bool // print each entry's index on its band
}

// DefaultSwatchOptions returns the standard swatch layout.
func DefaultSwatchOptions() SwatchOptions {
	return SwatchOptions{Width: SwatchSize, Height: SwatchSize, Colors: SwatchColors}
}

// DrawPalette draws one horizontal band per palette entry, top to bottom.
// Rows below the last full band stay black.
func DrawPalette(pal color.Palette, opts SwatchOptions) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	n := min(opts.Colors, len(pal))
	if n <= 0 {
		return img
	}
	band := opts.Height / opts.Colors
	if band == 0 {
		return img
	}

	face := basicfont.Face7x13
	for c := 0; c < n; c++ {
		r := image.Rect(0, c*band, opts.Width, (c+1)*band)
		draw.Draw(img, r, image.NewUniform(pal[c]), image.Point{}, draw.Src)

		if !opts.Labels || band < face.Height {
			continue
		}
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(labelColor(pal[c])),
			Face: face,
			Dot:  fixed.Point26_6{X: fixed.I(2), Y: fixed.I(r.Min.Y + face.Ascent)},
		}
		d.DrawString(strconv.Itoa(c))
	}
	return img
}

// labelColor picks black or white for contrast against bg.
func labelColor(bg color.Color) color.Color {
	r, g, b, _ := bg.RGBA()
	if (299*r+587*g+114*b)/1000 > 0x7fff {
		return color.Black
	}
	return color.White
}
