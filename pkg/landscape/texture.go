package landscape

import (
	"image"
	"image/color"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Fixed table offsets used by the direct-lookup variants.
const (
	minimapWaterBase = 0x7840
	minimapEdgeBias  = 0x8c
	minimapEdgeMax   = 0x47f
	minimapLandFlag  = 8
	waterBase        = 0x4b80
	waterScale       = 0x1a9
)

// TextureLand renders the full-detail atlas: 32x32 texels per cell.
func TextureLand(g *Grid, t *Tables) (*Image, error) {
	return RenderAtlas(g, t, LandTile, 0)
}

// TextureGlobe renders the globe atlas: 8x8 texels per cell.
func TextureGlobe(g *Grid, t *Tables) (*Image, error) {
	return RenderAtlas(g, t, GlobeTile, 0)
}

// RenderAtlas synthesizes one tileWidth x tileWidth tile per cell (tileWidth
// is LandTile or GlobeTile). Cell rows are rendered concurrently by at most
// workers goroutines; workers <= 0 means GOMAXPROCS. If several rows fail, the
// error of the lowest row is returned.
func RenderAtlas(g *Grid, t *Tables, tileWidth, workers int) (*Image, error) {
	if tileWidth != LandTile && tileWidth != GlobeTile {
		return nil, &InputShapeError{What: "tile width", Got: tileWidth, Want: LandTile}
	}
	if len(t.Disp) != DispSize {
		return nil, &InputShapeError{What: "disp0", Got: len(t.Disp), Want: DispSize}
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	size := g.LandSize()
	comp := NewGridComposer(size, size, tileWidth, tileWidth)
	rowErrs := make([]error, size)

	var eg errgroup.Group
	eg.SetLimit(workers)
	for i := 0; i < size; i++ {
		i := i
		eg.Go(func() error {
			for j := 0; j < size; j++ {
				q := g.QuadAt(i, j, 1)
				s := newSampler(t.Disp, tileWidth, q)
				if err := synthesizeTile(t, q, s, comp.TileAt(i, j), i, j); err != nil {
					rowErrs[i] = err
					return err
				}
			}
			return nil
		})
	}
	if eg.Wait() != nil {
		for _, err := range rowErrs {
			if err != nil {
				return nil, err
			}
		}
	}
	return comp.Image(), nil
}

// TextureMinimap renders one texel per cell by direct bigf0 lookup. When
// flag is false only cells carrying the land flag are drawn; others are 0.
func TextureMinimap(g *Grid, flag bool, bigf0 []byte) (*Image, error) {
	size := g.LandSize()
	img := NewImage(size, size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			c := g.Cell(i, j)
			if !flag && c.Flags&minimapLandFlag == 0 {
				continue
			}
			if c.EdgeParam == 0 {
				idx := minimapWaterBase + int(c.Height)*256
				if idx >= len(bigf0) {
					return nil, boundsErr("bigf0", idx, len(bigf0), i, j)
				}
				img.Set(j, i, bigf0[idx])
				continue
			}
			if len(bigf0) == 0 {
				return nil, boundsErr("bigf0", 0, 0, i, j)
			}
			v := min(int(c.Height)+minimapEdgeBias, minimapEdgeMax)
			idx := min(v*256+int(c.Brightness)*256, len(bigf0)-1)
			img.Set(j, i, bigf0[idx])
		}
	}
	return img, nil
}

// TextureWater renders the 256x256 animated water texture. offset scrolls
// the displacement field vertically.
func TextureWater(offset int, t *Tables) (*Image, error) {
	if len(t.Disp) != DispSize {
		return nil, &InputShapeError{What: "disp0", Got: len(t.Disp), Want: DispSize}
	}
	img := NewImage(DispWidth, DispWidth)
	for i := 0; i < DispWidth; i++ {
		row := Wrap(offset+i, DispWidth) * DispWidth
		for j := 0; j < DispWidth; j++ {
			d := int32(t.Disp[row+j]) * waterScale
			if d < 0 {
				d = -d
			}
			idx := waterBase + int(maskShift(d))
			if idx < 0 || idx >= len(t.Bigf0) {
				return nil, boundsErr("bigf0", idx, len(t.Bigf0), -1, -1)
			}
			img.Set(j, i, t.Bigf0[idx])
		}
	}
	return img, nil
}

// TextureDisp dumps the displacement field as raw bytes.
func TextureDisp(t *Tables) (*Image, error) {
	if len(t.Disp) != DispSize {
		return nil, &InputShapeError{What: "disp0", Got: len(t.Disp), Want: DispSize}
	}
	img := NewImage(DispWidth, DispWidth)
	for k, v := range t.Disp {
		img.Pix[k] = uint8(v)
	}
	return img, nil
}

// DispColor maps the displacement field to colour: negative values in blue,
// positive in red. Field row r is drawn at x = r.
func DispColor(t *Tables) (*image.RGBA, error) {
	if len(t.Disp) != DispSize {
		return nil, &InputShapeError{What: "disp0", Got: len(t.Disp), Want: DispSize}
	}
	img := image.NewRGBA(image.Rect(0, 0, DispWidth, DispWidth))
	for i := 0; i < DispWidth; i++ {
		for j := 0; j < DispWidth; j++ {
			v := t.Disp[i*DispWidth+j]
			if v < 0 {
				b := -max(v, -127)
				img.SetRGBA(i, j, color.RGBA{B: uint8(b) * 2, A: 0xff})
			} else {
				img.SetRGBA(i, j, color.RGBA{R: uint8(v) * 2, A: 0xff})
			}
		}
	}
	return img, nil
}

// TextureDispQuarter renders an 8x8 grid of 8x8 samples of the field. Block
// (i, j) starts at byte (i<<8) + (j<<5); texel (h, v) reads every 4th byte of
// every 4th row from there.
func TextureDispQuarter(t *Tables) (*Image, error) {
	if len(t.Disp) != DispSize {
		return nil, &InputShapeError{What: "disp0", Got: len(t.Disp), Want: DispSize}
	}
	comp := NewGridComposer(8, 8, GlobeTile, GlobeTile)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			base := i<<8 + j<<5
			tile := comp.TileAt(i, j)
			for v := 0; v < GlobeTile; v++ {
				for h := 0; h < GlobeTile; h++ {
					tile.Set(h, v, uint8(t.Disp[base+v<<10+h*4]))
				}
			}
		}
	}
	return comp.Image(), nil
}

// TextureDispBlocks packs all 64 32x32 sub-blocks into one strip, ordered by
// Y then X, each drawn the way a land tile samples it.
func TextureDispBlocks(t *Tables) (*Image, error) {
	if len(t.Disp) != DispSize {
		return nil, &InputShapeError{What: "disp0", Got: len(t.Disp), Want: DispSize}
	}
	comp := NewPackedComposer(64, LandTile, LandTile)
	block := make([]byte, LandTile*LandTile)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			s := newSampler(t.Disp, LandTile, Quad{X: x, Y: y})
			for i := 0; i < LandTile; i++ {
				for j := 0; j < LandTile; j++ {
					block[i*LandTile+j] = uint8(s.val(i, j))
				}
			}
			comp.Next().Fill(block)
		}
	}
	return comp.Image(), nil
}

// TextureBigf0 renders the 256-entry bigf0 slice for one height level, one
// entry per image row.
func TextureBigf0(height int, t *Tables) (*Image, error) {
	base := height * 256
	if height < 0 || base+255 >= len(t.Bigf0) {
		return nil, boundsErr("bigf0", base+255, len(t.Bigf0), -1, -1)
	}
	img := NewImage(256, 256)
	line := make([]byte, 256)
	for i := 0; i < 256; i++ {
		v := t.Bigf0[base+i]
		for j := range line {
			line[j] = v
		}
		img.SetLine(i, line)
	}
	return img, nil
}
