package prism

// Polygon is one connected region of a single-color layer, reduced to
// its minimal vertex outline.
type Polygon struct {
	Color Rgba
	Verts [][2]float64
}

func (uv UV) pointingLeft() bool { return (uv.U+uv.V)%2 == 0 }
func (uv UV) topUV() UV          { return UV{U: uv.U, V: uv.V - 1} }
func (uv UV) bottomUV() UV       { return UV{U: uv.U, V: uv.V + 1} }
func (uv UV) sideUV() UV {
	if uv.pointingLeft() {
		return UV{U: uv.U + 1, V: uv.V}
	}
	return UV{U: uv.U - 1, V: uv.V}
}

// tree3 is a spanning tree node over the triangular grid's adjacency,
// grounded on original_source/lib/src/render/poly.rs's Tree3.
type tree3 struct {
	uv                 UV
	top, bottom, side *tree3
}

// buildSpanningForest consumes cells, repeatedly popping the remaining
// cell with the smallest (u,v) as the root of a new spanning tree (so the
// same cell set always yields the same trees) and BFS-expanding to
// connected neighbors still present in the set. Each root yields one
// tree (and eventually one polygon).
func buildSpanningForest(cells map[UV]struct{}) []*tree3 {
	var trees []*tree3
	for len(cells) > 0 {
		var root UV
		first := true
		for k := range cells {
			if first || k.U < root.U || (k.U == root.U && k.V < root.V) {
				root = k
				first = false
			}
		}
		delete(cells, root)
		rootNode := &tree3{uv: root}
		queue := []*tree3{rootNode}
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]

			topUV := curr.uv.topUV()
			if _, ok := cells[topUV]; ok {
				delete(cells, topUV)
				child := &tree3{uv: topUV}
				curr.top = child
				queue = append(queue, child)
			}
			bottomUV := curr.uv.bottomUV()
			if _, ok := cells[bottomUV]; ok {
				delete(cells, bottomUV)
				child := &tree3{uv: bottomUV}
				curr.bottom = child
				queue = append(queue, child)
			}
			sideUV := curr.uv.sideUV()
			if _, ok := cells[sideUV]; ok {
				delete(cells, sideUV)
				child := &tree3{uv: sideUV}
				curr.side = child
				queue = append(queue, child)
			}
		}
		trees = append(trees, rootNode)
	}
	return trees
}

// seg is one boundary edge of a tree's outline.
type seg struct {
	uv       UV
	vertical bool
}

type segDir int

const (
	negV segDir = iota
	posV
)

type treeSide int

const (
	sideNone treeSide = iota
	sideTop
	sideBottom
	sideSide
)

// toSegments walks the tree's outer boundary in a deterministic order,
// following a fixed per-case visit-order table.
func (t *tree3) toSegments() []seg {
	var segs []seg
	t.addToSegments(&segs, sideNone)
	return segs
}

func (t *tree3) addToSegments(segs *[]seg, from treeSide) {
	pl := t.uv.pointingLeft()
	switch {
	case from == sideNone && pl:
		t.addTop(segs)
		t.addSide(segs)
		t.addBottom(segs)
	case from == sideNone && !pl:
		t.addTop(segs)
		t.addBottom(segs)
		t.addSide(segs)
	case from == sideTop && pl:
		t.addSide(segs)
		t.addBottom(segs)
	case from == sideTop && !pl:
		t.addBottom(segs)
		t.addSide(segs)
	case from == sideBottom && pl:
		t.addTop(segs)
		t.addSide(segs)
	case from == sideBottom && !pl:
		t.addSide(segs)
		t.addTop(segs)
	case from == sideSide && pl:
		t.addBottom(segs)
		t.addTop(segs)
	case from == sideSide && !pl:
		t.addTop(segs)
		t.addBottom(segs)
	}
}

func (t *tree3) addTop(segs *[]seg) {
	if t.top == nil {
		*segs = append(*segs, seg{uv: t.uv, vertical: false})
		return
	}
	t.top.addToSegments(segs, sideBottom)
}

func (t *tree3) addBottom(segs *[]seg) {
	if t.bottom == nil {
		*segs = append(*segs, seg{uv: UV{U: t.uv.U, V: t.uv.V + 1}, vertical: false})
		return
	}
	t.bottom.addToSegments(segs, sideTop)
}

func (t *tree3) addSide(segs *[]seg) {
	if t.side == nil {
		uv := t.uv
		if !t.uv.pointingLeft() {
			uv = UV{U: t.uv.U - 1, V: t.uv.V}
		}
		*segs = append(*segs, seg{uv: uv, vertical: true})
		return
	}
	t.side.addToSegments(segs, sideSide)
}

// resolveNextDirection checks whether next can follow self (currently
// tagged dir) in the boundary walk, returning the direction tag next
// should carry. It reports false if there is no entry for the observed
// (du,dv,next.vertical) delta, meaning next is self traversed backwards.
//
// Grounded verbatim on original_source/lib/src/render/poly.rs's
// Seg::resolve_next_direction lookup tables.
func resolveNextDirection(self seg, dir segDir, next seg) (segDir, bool) {
	du := next.uv.U - self.uv.U
	dv := next.uv.V - self.uv.V

	if self.vertical {
		switch dir {
		case negV:
			switch {
			case du == 0 && dv == 0 && !next.vertical:
				return posV, true
			case du == 0 && dv == -1 && !next.vertical:
				return negV, true
			case du == 0 && dv == -2 && next.vertical:
				return negV, true
			case du == 1 && dv == -1 && !next.vertical:
				return negV, true
			case du == 1 && dv == 0 && !next.vertical:
				return posV, true
			}
		case posV:
			switch {
			case du == 1 && dv == 1 && !next.vertical:
				return negV, true
			case du == 1 && dv == 2 && !next.vertical:
				return posV, true
			case du == 0 && dv == 2 && next.vertical:
				return posV, true
			case du == 0 && dv == 2 && !next.vertical:
				return posV, true
			case du == 0 && dv == 1 && !next.vertical:
				return negV, true
			}
		}
		return 0, false
	}

	pl := self.uv.pointingLeft()
	switch {
	case dir == negV && pl:
		switch {
		case du == 0 && dv == -1 && !next.vertical:
			return negV, true
		case du == 0 && dv == -2 && next.vertical:
			return negV, true
		case du == 1 && dv == -1 && !next.vertical:
			return negV, true
		case du == 1 && dv == 0 && !next.vertical:
			return posV, true
		case du == 0 && dv == 0 && next.vertical:
			return posV, true
		}
	case dir == negV && !pl:
		switch {
		case du == -1 && dv == 0 && next.vertical:
			return posV, true
		case du == -1 && dv == 0 && !next.vertical:
			return posV, true
		case du == -1 && dv == -1 && !next.vertical:
			return negV, true
		case du == -1 && dv == -2 && next.vertical:
			return negV, true
		case du == 0 && dv == -1 && !next.vertical:
			return negV, true
		}
	case dir == posV && pl:
		switch {
		case du == 0 && dv == 1 && !next.vertical:
			return posV, true
		case du == -1 && dv == 1 && next.vertical:
			return posV, true
		case du == -1 && dv == 1 && !next.vertical:
			return posV, true
		case du == -1 && dv == 0 && !next.vertical:
			return negV, true
		case du == -1 && dv == -1 && next.vertical:
			return negV, true
		}
	case dir == posV && !pl:
		switch {
		case du == 0 && dv == -1 && next.vertical:
			return negV, true
		case du == 1 && dv == 0 && !next.vertical:
			return negV, true
		case du == 1 && dv == 1 && !next.vertical:
			return posV, true
		case du == 0 && dv == 1 && next.vertical:
			return posV, true
		case du == 0 && dv == 1 && !next.vertical:
			return posV, true
		}
	}
	return 0, false
}

// colinear reports whether two adjacent segments run in the same
// direction and so should collapse to a single vertex.
func colinear(a, b seg) bool {
	if a.vertical != b.vertical {
		return false
	}
	if a.vertical {
		return true
	}
	return a.uv.pointingLeft() == b.uv.pointingLeft()
}

const (
	cos30 = 0.8660254037844386 // sqrt(3)/2
	sin30 = 0.5
)

// getVertice returns the (x,y) endpoint of seg in the tagged direction,
// handling all six pointing-left/direction combinations. The unit
// length is applied later, by SvgWriter.
func getVertice(s seg, dir segDir) (float64, float64) {
	uCos30 := float64(s.uv.U) * cos30
	uPlus1Cos30 := float64(s.uv.U+1) * cos30
	vSin30 := float64(s.uv.V) * sin30
	vPlus1Sin30 := float64(s.uv.V+1) * sin30

	if s.uv.pointingLeft() {
		switch dir {
		case negV:
			if s.vertical {
				return uPlus1Cos30, vSin30 + 1
			}
			return uCos30, vPlus1Sin30
		default: // posV, same point regardless of vertical
			return uPlus1Cos30, vSin30
		}
	}
	switch dir {
	case negV:
		return uPlus1Cos30, vPlus1Sin30
	default:
		return uCos30, vSin30
	}
}

type taggedSeg struct {
	s seg
	d segDir
}

// reduceSegments runs a two-pass reduction: direction tagging with
// pair-dropping of backwards-traversed edges, then colinear merging
// into a minimal vertex list.
func reduceSegments(segs []seg) [][2]float64 {
	if len(segs) < 3 {
		return nil
	}
	var optimized []taggedSeg
	skip := false
	for i, s := range segs {
		if skip {
			skip = false
			continue
		}
		if len(optimized) == 0 {
			if i+1 >= len(segs) {
				return nil
			}
			next := segs[i+1]
			if _, ok := resolveNextDirection(s, posV, next); ok {
				optimized = append(optimized, taggedSeg{s, posV})
			} else if _, ok := resolveNextDirection(s, negV, next); ok {
				optimized = append(optimized, taggedSeg{s, negV})
			} else {
				skip = true
			}
			continue
		}
		last := optimized[len(optimized)-1]
		if d, ok := resolveNextDirection(last.s, last.d, s); ok {
			optimized = append(optimized, taggedSeg{s, d})
		} else {
			optimized = optimized[:len(optimized)-1]
		}
	}
	return verticesFromTagged(optimized)
}

func verticesFromTagged(tagged []taggedSeg) [][2]float64 {
	var verts [][2]float64
	for i, t := range tagged {
		if i == 0 || !colinear(t.s, tagged[i-1].s) {
			x, y := getVertice(t.s, t.d)
			verts = append(verts, [2]float64{x, y})
		}
	}
	return verts
}

// BuildPolygons decomposes one color layer's triangle-cell set into
// its connected-component polygons.
func BuildPolygons(layer Layer) []Polygon {
	cells := make(map[UV]struct{}, len(layer.Cells))
	for _, c := range layer.Cells {
		cells[c] = struct{}{}
	}
	trees := buildSpanningForest(cells)
	out := make([]Polygon, 0, len(trees))
	for _, t := range trees {
		segs := t.toSegments()
		verts := reduceSegments(segs)
		out = append(out, Polygon{Color: layer.Color, Verts: verts})
	}
	return out
}
