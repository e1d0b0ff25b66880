package landscape

// Interp interpolates a value across a quad. It is two nested linear ramps
// (left edge, then along each line) rather than product-form bilinear
// interpolation, and must stay that way for the output to match.
type Interp struct {
	start    float32
	incVert  float32 // start increment per line
	incStart float32 // line increment on the first line
	incHorz  float32 // change of the line increment per line
}

// NewInterp builds an interpolator for corners p1 (upper-left), p2
// (upper-right), p3 (lower-left) and p4 (lower-right) over n steps.
func NewInterp(p1, p2, p3, p4 float32, n int) Interp {
	fn := float32(n)
	incStart := (p2 - p1) / fn
	return Interp{
		start:    p1,
		incVert:  (p3 - p1) / fn,
		incStart: incStart,
		incHorz:  ((p4-p3)/fn - incStart) / fn,
	}
}

// NewInterp8 is NewInterp for byte-valued corners.
func NewInterp8(p1, p2, p3, p4 uint8, n int) Interp {
	return NewInterp(float32(p1), float32(p2), float32(p3), float32(p4), n)
}

// At returns the interpolated value at line i, column j.
// The float32 conversions keep the compiler from fusing multiply-adds.
func (in Interp) At(i, j int) float32 {
	start := in.start + float32(in.incVert*float32(i))
	line := in.incStart + float32(in.incHorz*float32(i))
	return start + float32(line*float32(j))
}

// Height clamp limits.
const (
	heightLandOffset  = 0x96
	heightWaterOffset = 0x4b
	heightEdgeMax     = 0x3fe
	heightMax         = 0x400
)

// EffectiveHeight returns the clamped height used as an interpolation corner.
func EffectiveHeight(c *Cell) uint16 {
	h := uint32(c.Height)
	switch {
	case c.EdgeParam != 0:
		return uint16(min(h+heightLandOffset, heightEdgeMax))
	case h > 0 || c.LandAdjacent:
		return uint16(min(h+heightLandOffset, heightMax))
	default:
		return uint16(min(h+heightWaterOffset, heightMax))
	}
}
