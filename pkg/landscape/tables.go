package landscape

import (
	"image/color"

	"go.uber.org/multierr"
)

// Fixed table dimensions.
const (
	DispWidth     = 256
	DispSize      = DispWidth * DispWidth
	HeightLevels  = 1152
	Bigf0MinSize  = HeightLevels * 256
	Cliff0MinSize = 256 * 128
	PaletteColors = 256
	// MaxColorIndex is the highest palette entry a texture texel can select.
	MaxColorIndex = 127
)

// Tables holds the lookup tables for one landscape type. They are read-only
// once built and may be shared between goroutines.
type Tables struct {
	Disp    []int8   // 256x256 displacement field, already mirrored
	Bigf0   []byte   // height*256 + brightness -> cliff0 base
	Cliff0  []byte   // base + edge*128 -> palette index
	Fade0   []byte   // unused by synthesis
	Static  []uint16 // height multiplier, see StaticLandscapeArray
	Palette []byte   // RGBA quads
}

// NewTables assembles Tables and computes the static landscape array.
// The displacement field must be exactly DispSize entries and the palette a
// whole number of RGBA quads.
func NewTables(disp []int8, bigf0, cliff0, fade0, palette []byte) (*Tables, error) {
	var err error
	if len(disp) != DispSize {
		err = multierr.Append(err, &InputShapeError{What: "disp0", Got: len(disp), Want: DispSize})
	}
	if len(palette)%4 != 0 {
		err = multierr.Append(err, &InputShapeError{What: "palette", Got: len(palette), Want: PaletteColors * 4})
	}
	if err != nil {
		return nil, err
	}

	return &Tables{
		Disp:    disp,
		Bigf0:   bigf0,
		Cliff0:  cliff0,
		Fade0:   fade0,
		Static:  StaticLandscapeArray(),
		Palette: palette,
	}, nil
}

// StaticLandscapeArray computes the per-height multiplier applied to the
// displacement value: flat below 128, a linear ramp up to 362, then 0x400.
func StaticLandscapeArray() []uint16 {
	v := make([]uint16, HeightLevels)
	for i := range v {
		switch {
		case i < 128:
			v[i] = 0x140
		case i < 362:
			v[i] = uint16(0xd3d - (HeightLevels-i)*3)
		default:
			v[i] = 0x400
		}
	}
	return v
}

// Colors converts the RGBA palette to opaque colours. Missing entries are
// black.
func (t *Tables) Colors() color.Palette {
	pal := make(color.Palette, PaletteColors)
	for i := range pal {
		p := i * 4
		if p+2 >= len(t.Palette) {
			pal[i] = color.RGBA{A: 0xff}
			continue
		}
		pal[i] = color.RGBA{R: t.Palette[p], G: t.Palette[p+1], B: t.Palette[p+2], A: 0xff}
	}
	return pal
}

// TextureColors is Colors with every entry above MaxColorIndex replaced by
// entry MaxColorIndex, so texels past the end of the landscape palette
// render as its last colour.
func (t *Tables) TextureColors() color.Palette {
	pal := t.Colors()
	for i := MaxColorIndex + 1; i < len(pal); i++ {
		pal[i] = pal[MaxColorIndex]
	}
	return pal
}

// Size returns the total number of bytes held by the tables.
func (t *Tables) Size() int {
	return len(t.Disp) + len(t.Bigf0) + len(t.Cliff0) + len(t.Fade0) + len(t.Static)*2 + len(t.Palette)
}
