package landscape

import "math"

const (
	staticMask = 0xfffffc03
	heightMask = 0x7fffff00
	edgeStride = 0x80
)

// maskShift applies the game's fixed-point truncation: mask the two's
// complement bit pattern, then shift right arithmetically.
func maskShift(v int32) int32 {
	return int32(uint32(v)&staticMask) >> 2
}

// synthesizeTile rasterizes quad q into tile. row and col identify the cell
// for error reports.
func synthesizeTile(t *Tables, q Quad, s sampler, tile Tile, row, col int) error {
	n := s.width

	heightInterp := NewInterp(
		float32(EffectiveHeight(q.UL)),
		float32(EffectiveHeight(q.UR)),
		float32(EffectiveHeight(q.LL)),
		float32(EffectiveHeight(q.LR)),
		n)
	brightInterp := NewInterp8(q.UL.Brightness, q.UR.Brightness, q.LL.Brightness, q.LR.Brightness, n)
	edgeInterp := NewInterp8(q.UL.EdgeParam, q.UR.EdgeParam, q.LL.EdgeParam, q.LR.EdgeParam, n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			height := int32(heightInterp.At(i, j))

			bright := math.Round(float64(s.adjacent(i, j)/4 + brightInterp.At(i, j)))
			brightness := int32(clampf64(bright, 0, 255))

			edge := 0
			if e := edgeInterp.At(i, j) / 4; e > 0 {
				edge = int(e)
			}

			if height < 0 || int(height) >= len(t.Static) {
				return boundsErr("static_landscape_array", int(height), len(t.Static), row, col)
			}
			disp := int32(s.val(i, j))
			static := maskShift(int32(t.Static[height]) * disp)
			heightComponent := (height * 256) & heightMask

			big := int(static + heightComponent + brightness)
			if big < 0 || big >= len(t.Bigf0) {
				return boundsErr("bigf0", big, len(t.Bigf0), row, col)
			}

			cliff := int(t.Bigf0[big]) + edge*edgeStride
			if cliff >= len(t.Cliff0) {
				return boundsErr("cliff0", cliff, len(t.Cliff0), row, col)
			}
			tile.Set(j, i, t.Cliff0[cliff])
		}
	}
	return nil
}
