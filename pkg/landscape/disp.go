package landscape

// The displacement field is 256 rows of 256 bytes. Each row holds eight
// horizontal sub-blocks of 32 bytes. A quad's mod-8 column (X) picks the
// group of 32 field rows and its mod-8 row (Y) picks the sub-block:
//
//	index = (X&7)<<13 + (Y&7)<<5 + local offset
//
// A 32x32 tile reads a whole sub-block, one field row per tile column. An 8x8
// tile reads every 4th byte of every 4th row.

// Sampler tile widths.
const (
	GlobeTile = 8
	LandTile  = 32
)

// sampler reads displacement values for one tile. It is a closed variant
// selected by tile width.
type sampler struct {
	disp  []int8
	width int
	base  int // 8-wide: flat base index
	row   int // 32-wide: first field row
	col   int // 32-wide: first field column
}

func newSampler(disp []int8, width int, q Quad) sampler {
	s := sampler{disp: disp, width: width}
	switch width {
	case GlobeTile:
		s.base = (q.X&7)<<13 | (q.Y&7)<<5
	default:
		s.row = (q.X & 7) * 32
		s.col = (q.Y & 7) * 32
	}
	return s
}

// index returns the flat field index of tile pixel (i, j).
func (s sampler) index(i, j int) int {
	if s.width == GlobeTile {
		return s.base | i*4 | j<<10
	}
	return Wrap(s.row+j, DispWidth)*DispWidth + Wrap(s.col+i, DispWidth)
}

// val returns the raw displacement at tile pixel (i, j).
func (s sampler) val(i, j int) int8 {
	return s.disp[s.index(i, j)]
}

// adjacent returns the brightness offset signal for tile pixel (i, j). The
// 8-wide sampler uses the displacement itself. The 32-wide sampler uses the
// forward difference to the next line and column, except on the last column
// where the line does not advance.
func (s sampler) adjacent(i, j int) float32 {
	v := s.val(i, j)
	if s.width == GlobeTile {
		return float32(v)
	}
	ni := i + 1
	if j >= LandTile-1 {
		ni = i
	}
	return float32(s.val(ni, j+1)) - float32(v)
}
