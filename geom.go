package prism

// Geom3 is an axis-aligned integer box: an integer position plus a
// non-negative size.
type Geom3 struct {
	Pos  IVec3
	Size UVec3
}

// NewGeom3 builds a Geom3 from a position and size.
func NewGeom3(pos IVec3, size UVec3) Geom3 {
	return Geom3{Pos: pos, Size: size}
}

// HasPositiveVolume reports whether every size component is > 0.
func (g Geom3) HasPositiveVolume() bool {
	return g.Size.AllPositive()
}

// End returns the exclusive end coordinate on the given axis
// (Pos.On(axis) + Size.On(axis)).
func (g Geom3) End(axis Axis) int32 {
	return g.Pos.On(axis) + int32(g.Size.On(axis))
}

// XEnd, YEnd, and ZEnd are axis-specific shorthand for End.
func (g Geom3) XEnd() int32 { return g.End(AxisX) }
func (g Geom3) YEnd() int32 { return g.End(AxisY) }
func (g Geom3) ZEnd() int32 { return g.End(AxisZ) }

// Translated returns g shifted by offset.
func (g Geom3) Translated(offset IVec3) Geom3 {
	return Geom3{Pos: g.Pos.Add(offset), Size: g.Size}
}

// Intersection returns the overlapping box of g and h, and whether that
// overlap has positive volume. A non-positive-volume result carries no
// useful position/size and should be treated as "no intersection".
func (g Geom3) Intersection(h Geom3) (Geom3, bool) {
	var pos IVec3
	var size UVec3
	for _, axis := range [3]Axis{AxisX, AxisY, AxisZ} {
		start := maxI32(g.Pos.On(axis), h.Pos.On(axis))
		end := minI32(g.End(axis), h.End(axis))
		pos = pos.WithOn(axis, start)
		size = size.WithOn(axis, NonNeg(end-start))
	}
	box := Geom3{Pos: pos, Size: size}
	return box, box.HasPositiveVolume()
}

// ContainsPoint reports whether the unit cube at p lies within g.
func (g Geom3) ContainsPoint(p IVec3) bool {
	return p.X >= g.Pos.X && p.X < g.XEnd() &&
		p.Y >= g.Pos.Y && p.Y < g.YEnd() &&
		p.Z >= g.Pos.Z && p.Z < g.ZEnd()
}

// subtractPrism subtracts operand from self, appending the resulting
// disjoint sub-prisms (each carrying color) to out. Only sub-prisms with
// positive volume are emitted.
//
// The decomposition order is fixed: top slab, +X slab, -X slab,
// +Y slab, -Y slab, bottom slab, each computed around
// the intersection region b = self ∩ operand. Grounded on
// original_source/lib/src/flat.rs's Prism::subtract_into, adapted from
// per-sub-prism visibility tracking (not needed here; welding is
// recomputed by FaceExtractor from shape containment) to a plain
// Geom3+color emission.
func subtractPrism(self prism, operand Geom3, out []prism) []prism {
	b, ok := self.geom.Intersection(operand)
	if !ok {
		return append(out, self)
	}
	color := self.color
	push := func(pos IVec3, sx, sy, sz uint32) []prism {
		if sx > 0 && sy > 0 && sz > 0 {
			out = append(out, prism{color: color, geom: Geom3{Pos: pos, Size: UVec3{X: sx, Y: sy, Z: sz}}})
		}
		return out
	}
	// top: z >= b.ZEnd()
	out = push(
		IVec3{X: self.geom.Pos.X, Y: self.geom.Pos.Y, Z: b.ZEnd()},
		self.geom.Size.X, self.geom.Size.Y, NonNeg(self.geom.ZEnd()-b.ZEnd()),
	)
	// +x
	out = push(
		IVec3{X: b.XEnd(), Y: self.geom.Pos.Y, Z: b.Pos.Z},
		NonNeg(self.geom.XEnd()-b.XEnd()), self.geom.Size.Y, b.Size.Z,
	)
	// -x
	out = push(
		IVec3{X: self.geom.Pos.X, Y: self.geom.Pos.Y, Z: b.Pos.Z},
		NonNeg(b.Pos.X-self.geom.Pos.X), self.geom.Size.Y, b.Size.Z,
	)
	// +y
	out = push(
		IVec3{X: b.Pos.X, Y: b.YEnd(), Z: b.Pos.Z},
		b.Size.X, NonNeg(self.geom.YEnd()-b.YEnd()), b.Size.Z,
	)
	// -y
	out = push(
		IVec3{X: b.Pos.X, Y: self.geom.Pos.Y, Z: b.Pos.Z},
		b.Size.X, NonNeg(b.Pos.Y-self.geom.Pos.Y), b.Size.Z,
	)
	// bottom: z < b.Pos.Z
	out = push(
		self.geom.Pos,
		self.geom.Size.X, self.geom.Size.Y, NonNeg(b.Pos.Z-self.geom.Pos.Z),
	)
	return out
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
