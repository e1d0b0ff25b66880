// Package landscape synthesizes terrain textures from a level height grid and
// the landscape lookup tables (displacement, bigf0, cliff0).
package landscape

import "fmt"

// DefaultLandSize is the edge length of a standard level grid.
const DefaultLandSize = 128

// Default cell brightness before sunlight is applied.
const defaultBrightness = 0x80

// Sunlight constants used by NewSunlitGrid.
const (
	sunlightBase    = 0x93
	sunlightSlopeI  = 0x93
	sunlightSlopeJ  = 0x93
	sunlightDivisor = 0x15e
)

// Heightmap is a square toroidal grid of raw elevations, row-major.
type Heightmap struct {
	Size    int
	Heights []uint16
}

// NewHeightmap allocates a flat size x size heightmap.
func NewHeightmap(size int) *Heightmap {
	return &Heightmap{
		Size:    size,
		Heights: make([]uint16, size*size),
	}
}

// At returns the height at row i, column j. Indices wrap around both axes.
func (h *Heightmap) At(i, j int) uint16 {
	return h.Heights[Wrap(i, h.Size)*h.Size+Wrap(j, h.Size)]
}

// Set stores a height at row i, column j. Indices wrap around both axes.
func (h *Heightmap) Set(i, j int, v uint16) {
	h.Heights[Wrap(i, h.Size)*h.Size+Wrap(j, h.Size)] = v
}

// LandAdjacent reports whether cell (i, j) is water with land on any of its
// eight neighbours.
func (h *Heightmap) LandAdjacent(i, j int) bool {
	if h.At(i, j) > 0 {
		return false
	}
	for di := -1; di <= 1; di++ {
		for dj := -1; dj <= 1; dj++ {
			if di == 0 && dj == 0 {
				continue
			}
			if h.At(i+di, j+dj) > 0 {
				return true
			}
		}
	}
	return false
}

// MakeShores returns a copy where every land-adjacent water cell is raised to
// height 1.
func (h *Heightmap) MakeShores() *Heightmap {
	out := &Heightmap{Size: h.Size, Heights: make([]uint16, len(h.Heights))}
	copy(out.Heights, h.Heights)
	for i := 0; i < h.Size; i++ {
		for j := 0; j < h.Size; j++ {
			if h.At(i, j) == 0 && h.LandAdjacent(i, j) {
				out.Set(i, j, 1)
			}
		}
	}
	return out
}

// Cell is one grid point of the landscape.
type Cell struct {
	Height       uint16
	Flags        uint32 // bit 3 marks land/coast for the minimap
	EdgeParam    uint8  // cliff/edge indicator
	Brightness   uint8
	LandAdjacent bool
}

// Grid is an immutable square toroidal array of cells.
type Grid struct {
	size  int
	cells []Cell
}

// NewGrid builds a grid from heights with default brightness and no edges.
func NewGrid(hm *Heightmap) (*Grid, error) {
	if hm == nil || hm.Size <= 0 {
		return nil, &InputShapeError{What: "heightmap", Got: 0, Want: DefaultLandSize}
	}
	if len(hm.Heights) != hm.Size*hm.Size {
		return nil, &InputShapeError{What: "heightmap", Got: len(hm.Heights), Want: hm.Size * hm.Size}
	}

	g := &Grid{size: hm.Size, cells: make([]Cell, hm.Size*hm.Size)}
	for i := 0; i < hm.Size; i++ {
		for j := 0; j < hm.Size; j++ {
			g.cells[i*hm.Size+j] = Cell{
				Height:       hm.At(i, j),
				Brightness:   defaultBrightness,
				LandAdjacent: hm.LandAdjacent(i, j),
			}
		}
	}
	return g, nil
}

// NewSunlitGrid builds a grid like NewGrid and then derives each cell's
// brightness from the height slope towards its lower and right neighbours.
func NewSunlitGrid(hm *Heightmap) (*Grid, error) {
	g, err := NewGrid(hm)
	if err != nil {
		return nil, err
	}
	for i := 0; i < g.size; i++ {
		for j := 0; j < g.size; j++ {
			ch := int32(hm.At(i, j))
			h1 := int32(hm.At(i+1, j))
			h2 := int32(hm.At(i, j+1))
			b := sunlightBase + (h1-ch)*sunlightSlopeI - (ch-h2)*sunlightSlopeJ

			c := &g.cells[i*g.size+j]
			v := float64(b)/float64(sunlightDivisor) + float64(c.Brightness)
			c.Brightness = uint8(clampf64(v, 0, 255))
		}
	}
	return g, nil
}

// NewGridFromCells wraps an explicit cell slice. LandAdjacent is taken as
// given, so callers that set heights by hand are responsible for it.
func NewGridFromCells(size int, cells []Cell) (*Grid, error) {
	if size <= 0 || len(cells) != size*size {
		return nil, &InputShapeError{What: "grid cells", Got: len(cells), Want: size * size}
	}
	g := &Grid{size: size, cells: make([]Cell, len(cells))}
	copy(g.cells, cells)
	return g, nil
}

// LandSize returns the grid edge length.
func (g *Grid) LandSize() int {
	return g.size
}

// Cell returns the cell at row i, column j with toroidal wraparound.
func (g *Grid) Cell(i, j int) *Cell {
	return &g.cells[Wrap(i, g.size)*g.size+Wrap(j, g.size)]
}

// String returns a short description for logging.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d)", g.size, g.size)
}

// Quad holds the four corners used to rasterize one tile.
//
//	UL - UR
//	|    |
//	LL - LR
type Quad struct {
	X, Y int // mod-8 sub-block of the displacement field
	UL   *Cell
	UR   *Cell
	LL   *Cell
	LR   *Cell
}

// QuadAt returns the quad anchored at cell (i, j). rowShift is added to i
// before taking the vertical sub-block: 1 for land and globe, 0 for minimap.
func (g *Grid) QuadAt(i, j, rowShift int) Quad {
	return Quad{
		X:  Wrap(j, 8),
		Y:  Wrap(i+rowShift, 8),
		UL: g.Cell(i, j),
		UR: g.Cell(i, j+1),
		LL: g.Cell(i+1, j),
		LR: g.Cell(i+1, j+1),
	}
}

func clampf64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
