package prism

import "testing"

func box(px, py, pz int32, sx, sy, sz uint32) Geom3 {
	return Geom3{Pos: IVec3{X: px, Y: py, Z: pz}, Size: UVec3{X: sx, Y: sy, Z: sz}}
}

func TestGeom3HasPositiveVolume(t *testing.T) {
	if !box(0, 0, 0, 1, 1, 1).HasPositiveVolume() {
		t.Error("unit box should have positive volume")
	}
	if box(0, 0, 0, 0, 1, 1).HasPositiveVolume() {
		t.Error("zero-size box should not have positive volume")
	}
}

func TestGeom3EndAndContainsPoint(t *testing.T) {
	g := box(1, 2, 3, 4, 5, 6)
	if g.XEnd() != 5 || g.YEnd() != 7 || g.ZEnd() != 9 {
		t.Fatalf("end coordinates wrong: %d %d %d", g.XEnd(), g.YEnd(), g.ZEnd())
	}
	if !g.ContainsPoint(IVec3{X: 1, Y: 2, Z: 3}) {
		t.Error("min corner should be contained")
	}
	if g.ContainsPoint(IVec3{X: 5, Y: 2, Z: 3}) {
		t.Error("exclusive end on X should not be contained")
	}
	if g.ContainsPoint(IVec3{X: 0, Y: 2, Z: 3}) {
		t.Error("point outside box should not be contained")
	}
}

func TestGeom3Translated(t *testing.T) {
	g := box(0, 0, 0, 1, 1, 1)
	got := g.Translated(IVec3{X: 1, Y: 2, Z: 3})
	if got.Pos != (IVec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Translated position wrong: %+v", got.Pos)
	}
	if got.Size != g.Size {
		t.Error("Translated should not change size")
	}
}

func TestGeom3Intersection(t *testing.T) {
	a := box(0, 0, 0, 4, 4, 4)
	b := box(2, 2, 2, 4, 4, 4)
	got, ok := a.Intersection(b)
	if !ok {
		t.Fatal("overlapping boxes should intersect")
	}
	want := box(2, 2, 2, 2, 2, 2)
	if got != want {
		t.Errorf("Intersection = %+v, want %+v", got, want)
	}

	c := box(10, 10, 10, 1, 1, 1)
	if _, ok := a.Intersection(c); ok {
		t.Error("disjoint boxes should not intersect")
	}
}

func TestGeom3IntersectionTouchingFaces(t *testing.T) {
	a := box(0, 0, 0, 1, 1, 1)
	b := box(1, 0, 0, 1, 1, 1)
	if _, ok := a.Intersection(b); ok {
		t.Error("boxes touching only at a face boundary should not have positive-volume intersection")
	}
}

func TestSubtractPrismFullyContained(t *testing.T) {
	self := prism{color: OpaqueBlack, geom: box(0, 0, 0, 4, 4, 4)}
	cut := box(1, 1, 1, 2, 2, 2)
	out := subtractPrism(self, cut, nil)

	var total uint64
	for _, p := range out {
		total += uint64(p.geom.Size.X) * uint64(p.geom.Size.Y) * uint64(p.geom.Size.Z)
		if overlap, ok := p.geom.Intersection(cut); ok && overlap.HasPositiveVolume() {
			t.Errorf("sub-prism %+v overlaps the cut region", p.geom)
		}
	}
	if total != 4*4*4-2*2*2 {
		t.Errorf("total remaining volume = %d, want %d", total, 4*4*4-2*2*2)
	}
}

func TestSubtractPrismDisjointCut(t *testing.T) {
	self := prism{color: OpaqueBlack, geom: box(0, 0, 0, 2, 2, 2)}
	cut := box(10, 10, 10, 2, 2, 2)
	out := subtractPrism(self, cut, nil)
	if len(out) != 1 || out[0].geom != self.geom {
		t.Errorf("disjoint cut should leave self untouched, got %+v", out)
	}
}

func TestSubtractPrismFullyRemoved(t *testing.T) {
	self := prism{color: OpaqueBlack, geom: box(0, 0, 0, 2, 2, 2)}
	cut := box(0, 0, 0, 2, 2, 2)
	out := subtractPrism(self, cut, nil)
	if len(out) != 0 {
		t.Errorf("fully-covering cut should leave nothing, got %+v", out)
	}
}
