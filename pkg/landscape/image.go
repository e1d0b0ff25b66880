package landscape

import (
	"image"
	"image/color"
)

// Image is an indexed (pre-palette) texture.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// NewImage allocates a zeroed width x height image.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height),
	}
}

// Set writes one pixel.
func (m *Image) Set(x, y int, v byte) {
	m.Pix[y*m.Width+x] = v
}

// At returns one pixel.
func (m *Image) At(x, y int) byte {
	return m.Pix[y*m.Width+x]
}

// SetLine copies a scanline starting at column 0 of row y.
func (m *Image) SetLine(y int, line []byte) {
	copy(m.Pix[y*m.Width:(y+1)*m.Width], line)
}

// Tile returns a sub-view with its top-left corner at (x, y).
func (m *Image) Tile(x, y, width, height int) Tile {
	return Tile{img: m, X: x, Y: y, Width: width, Height: height}
}

// Paletted wraps the pixels in an *image.Paletted sharing the same buffer.
func (m *Image) Paletted(pal color.Palette) *image.Paletted {
	return &image.Paletted{
		Pix:     m.Pix,
		Stride:  m.Width,
		Rect:    image.Rect(0, 0, m.Width, m.Height),
		Palette: pal,
	}
}

// Tile is a rectangular window into an Image. All coordinates are local to
// the tile.
type Tile struct {
	img    *Image
	X, Y   int
	Width  int
	Height int
}

// Set writes one pixel.
func (t Tile) Set(x, y int, v byte) {
	t.img.Pix[(t.Y+y)*t.img.Width+t.X+x] = v
}

// SetLine writes up to Width pixels of row y.
func (t Tile) SetLine(y int, line []byte) {
	start := (t.Y+y)*t.img.Width + t.X
	n := min(len(line), t.Width)
	copy(t.img.Pix[start:start+n], line[:n])
}

// Fill copies a row-major Width x Height block into the tile.
func (t Tile) Fill(block []byte) {
	for y := 0; y < t.Height; y++ {
		off := y * t.Width
		if off >= len(block) {
			return
		}
		t.SetLine(y, block[off:min(off+t.Width, len(block))])
	}
}

// Layout selects how a Composer places tiles.
type Layout int

// Composer layouts.
const (
	LayoutGrid   Layout = iota // fixed cols x rows grid
	LayoutPacked               // sequential along the x axis
)

// Composer assembles equally sized tiles into one image.
type Composer struct {
	layout Layout
	img    *Image
	tileW  int
	tileH  int
	next   int
}

// NewGridComposer allocates an image of cols x rows tiles.
func NewGridComposer(cols, rows, tileW, tileH int) *Composer {
	return &Composer{
		layout: LayoutGrid,
		img:    NewImage(cols*tileW, rows*tileH),
		tileW:  tileW,
		tileH:  tileH,
	}
}

// NewPackedComposer allocates a strip holding count tiles side by side.
func NewPackedComposer(count, tileW, tileH int) *Composer {
	return &Composer{
		layout: LayoutPacked,
		img:    NewImage(count*tileW, tileH),
		tileW:  tileW,
		tileH:  tileH,
	}
}

// TileAt returns the tile in grid row, col. For a packed composer row is
// ignored and col is the tile's position in the strip.
func (c *Composer) TileAt(row, col int) Tile {
	if c.layout == LayoutPacked {
		return c.img.Tile(col*c.tileW, 0, c.tileW, c.tileH)
	}
	return c.img.Tile(col*c.tileW, row*c.tileH, c.tileW, c.tileH)
}

// Next returns the tile after the previously returned one, in row-major
// order for a grid and left to right for a packed strip.
func (c *Composer) Next() Tile {
	n := c.next
	c.next++
	if c.layout == LayoutPacked {
		return c.TileAt(0, n)
	}
	cols := c.img.Width / c.tileW
	return c.TileAt(n/cols, n%cols)
}

// Image returns the composed image.
func (c *Composer) Image() *Image {
	return c.img
}
