package prism

import "fmt"

// Rgba is a packed 32-bit color: 8 bits each of red, green, blue, and
// alpha, in that byte order. It is a value type so it can be used
// directly as a map key (Layer grouping keys on exact byte pattern,
// per spec) and compared with ==.
type Rgba uint32

// NewRgba packs four byte channels into an Rgba.
func NewRgba(r, g, b, a uint8) Rgba {
	return Rgba(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// R returns the red channel.
func (c Rgba) R() uint8 { return uint8(c >> 24) }

// G returns the green channel.
func (c Rgba) G() uint8 { return uint8(c >> 16) }

// B returns the blue channel.
func (c Rgba) B() uint8 { return uint8(c >> 8) }

// A returns the alpha channel.
func (c Rgba) A() uint8 { return uint8(c) }

// AlphaF returns the alpha channel normalized to [0, 1].
func (c Rgba) AlphaF() float64 { return float64(c.A()) / 255 }

// IsTransparent reports whether the color's alpha byte is exactly 0,
// matching original_source/lib/src/math.rs's Rgba::is_transparent.
func (c Rgba) IsTransparent() bool { return c.A() == 0 }

// IsOpaque reports whether the color's alpha byte is exactly 255.
func (c Rgba) IsOpaque() bool { return c.A() == 255 }

// withAlphaF returns a copy of c with its alpha channel scaled by f
// (f in [0, 1]). Used to compose a shader color's own alpha with the
// alpha of the face color it tints.
func (c Rgba) withAlphaF(f float64) Rgba {
	a := uint8(clamp255(float64(c.A()) * f))
	return NewRgba(c.R(), c.G(), c.B(), a)
}

// String renders the color per SVG's hex-color serialization rule:
// a=0 -> "#00000000", a=255 -> "#rrggbb", else "#rrggbbaa", all lowercase.
func (c Rgba) String() string {
	switch c.A() {
	case 0:
		return "#00000000"
	case 255:
		return fmt.Sprintf("#%02x%02x%02x", c.R(), c.G(), c.B())
	default:
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R(), c.G(), c.B(), c.A())
	}
}

// Over composites a "over" b using the standard Porter-Duff source-over
// operator in straight (non-premultiplied) alpha:
//
//	result.a   = a.a + b.a*(1-a.a)
//	result.rgb = (a.rgb*a.a + b.rgb*b.a*(1-a.a)) / result.a
//
// Grounded on the compositing formula in
// _examples/gogpu-gg/internal/blend/porter_duff.go's blendSourceOver,
// adapted from premultiplied bytes to the straight-alpha floats the
// spec's formula is written in.
func Over(a, b Rgba) Rgba {
	aa := a.AlphaF()
	ba := b.AlphaF()
	if aa == 0 {
		return b
	}
	if ba == 0 {
		return a
	}
	resultA := aa + ba*(1-aa)
	if resultA <= 0 {
		return NewRgba(0, 0, 0, 0)
	}
	mix := func(ac, bc uint8) uint8 {
		v := (float64(ac)*aa + float64(bc)*ba*(1-aa)) / resultA
		return uint8(clamp255(v))
	}
	return NewRgba(mix(a.R(), b.R()), mix(a.G(), b.G()), mix(a.B(), b.B()), uint8(clamp255(resultA*255)))
}

// clamp255 restricts a value to the [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Named colors used by defaults elsewhere in the package.
var (
	Transparent = NewRgba(0, 0, 0, 0)
	OpaqueBlack = NewRgba(0, 0, 0, 255)
)
