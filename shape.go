package prism

import "sync"

// ShapeHandle identifies a shape held by a ShapeArena. Handle 0 always
// refers to the canonical empty shape.
type ShapeHandle int

// EmptyShape is the handle of the canonical empty shape, present in
// every arena from construction.
const EmptyShape ShapeHandle = 0

// prism is a single colored axis-aligned box, the unit of storage for
// an Arbitrary shape's prism list.
type prism struct {
	color Rgba
	geom  Geom3
}

// Prism is the exported, read-only view of one of a shape's constituent
// boxes, returned by ShapeArena.Prisms for face extraction.
type Prism struct {
	Color Rgba
	Geom  Geom3
}

type shapeKind int

const (
	shapeEmpty shapeKind = iota
	shapeArbitrary
	shapeTranslated
)

// shapeEntry is the tagged-union representation of one arena slot,
// grounded on original_source/lib/src/shape.rs's Shape enum (Empty /
// Arbitrary / Translated), adapted from the original's point-set
// Arbitrary to a prism-list-plus-bounding-box representation.
type shapeEntry struct {
	kind shapeKind

	// valid when kind == shapeArbitrary
	prisms []prism
	bound  Geom3

	// valid when kind == shapeTranslated
	target ShapeHandle
	offset IVec3
}

// ShapeArena owns every shape reachable from a rendering session. It is
// safe for concurrent use: reads take a shared lock, and flatten-in-place
// resolution of a Translated entry always releases its read access before
// recursing and only re-acquires the write lock to rewrite the single
// entry it resolved, never while holding a lock on another entry.
type ShapeArena struct {
	mu     sync.RWMutex
	shapes []shapeEntry
}

// NewShapeArena returns an arena pre-seeded with the canonical empty
// shape at handle 0.
func NewShapeArena() *ShapeArena {
	return &ShapeArena{shapes: []shapeEntry{{kind: shapeEmpty}}}
}

func (a *ShapeArena) entry(h ShapeHandle) (shapeEntry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if h < 0 || int(h) >= len(a.shapes) {
		return shapeEntry{}, ErrInvalidShapeHandle
	}
	return a.shapes[h], nil
}

func (a *ShapeArena) push(e shapeEntry) ShapeHandle {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shapes = append(a.shapes, e)
	return ShapeHandle(len(a.shapes) - 1)
}

// resolve flattens handle to its Arbitrary prism list and bounding box,
// applying any accumulated Translated offset along the way. Shapes whose
// kind is Empty resolve to a nil prism list and a zero-volume bound.
//
// Grounded on original_source/lib/src/shape.rs's make_arbitrary_internal,
// which recurses through a chain of Translated nodes, rewriting each one
// in place once its target resolves so later lookups are O(1). The read
// of a Translated entry and the recursive resolution of its target never
// happen under the same lock acquisition: the read lock is released
// before recursing, and the write lock taken afterward touches only the
// handle passed in, not any handle visited during the recursion.
func (a *ShapeArena) resolve(h ShapeHandle) ([]prism, Geom3, error) {
	e, err := a.entry(h)
	if err != nil {
		return nil, Geom3{}, err
	}
	switch e.kind {
	case shapeEmpty:
		return nil, Geom3{}, nil
	case shapeArbitrary:
		return e.prisms, e.bound, nil
	default: // shapeTranslated
		prisms, bound, err := a.resolve(e.target)
		if err != nil {
			return nil, Geom3{}, err
		}
		resolved := translatePrisms(prisms, e.offset)
		newBound := bound.Translated(e.offset)
		if len(resolved) == 0 {
			a.mu.Lock()
			a.shapes[h] = shapeEntry{kind: shapeEmpty}
			a.mu.Unlock()
			return nil, Geom3{}, nil
		}
		a.mu.Lock()
		a.shapes[h] = shapeEntry{kind: shapeArbitrary, prisms: resolved, bound: newBound}
		a.mu.Unlock()
		return resolved, newBound, nil
	}
}

func translatePrisms(prisms []prism, offset IVec3) []prism {
	if offset.IsZero() || len(prisms) == 0 {
		return prisms
	}
	out := make([]prism, len(prisms))
	for i, p := range prisms {
		out[i] = prism{color: p.color, geom: p.geom.Translated(offset)}
	}
	return out
}

func boundingBoxOf(prisms []prism) Geom3 {
	if len(prisms) == 0 {
		return Geom3{}
	}
	min := prisms[0].geom.Pos
	max := IVec3{X: prisms[0].geom.XEnd(), Y: prisms[0].geom.YEnd(), Z: prisms[0].geom.ZEnd()}
	for _, p := range prisms[1:] {
		min = IVec3{X: minI32(min.X, p.geom.Pos.X), Y: minI32(min.Y, p.geom.Pos.Y), Z: minI32(min.Z, p.geom.Pos.Z)}
		max = IVec3{X: maxI32(max.X, p.geom.XEnd()), Y: maxI32(max.Y, p.geom.YEnd()), Z: maxI32(max.Z, p.geom.ZEnd())}
	}
	return Geom3{Pos: min, Size: UVec3{X: NonNeg(max.X - min.X), Y: NonNeg(max.Y - min.Y), Z: NonNeg(max.Z - min.Z)}}
}

// AddPrism creates a new one-box Arbitrary shape with the given color
// and geometry and returns its handle.
func (a *ShapeArena) AddPrism(color Rgba, geom Geom3) ShapeHandle {
	return a.push(shapeEntry{kind: shapeArbitrary, prisms: []prism{{color: color, geom: geom}}, bound: geom})
}

// Prisms resolves handle and returns its constituent colored boxes for
// face extraction. An empty shape resolves to a nil slice.
func (a *ShapeArena) Prisms(handle ShapeHandle) ([]Prism, error) {
	prisms, _, err := a.resolve(handle)
	if err != nil {
		return nil, err
	}
	out := make([]Prism, len(prisms))
	for i, p := range prisms {
		out[i] = Prism{Color: p.color, Geom: p.geom}
	}
	return out, nil
}

// AddPrisms loads an already-assembled, disjoint list of colored boxes
// (such as the output of the declarative tree compiler) into the arena
// as a single new Arbitrary shape. An empty list returns EmptyShape.
func (a *ShapeArena) AddPrisms(prisms []Prism) ShapeHandle {
	if len(prisms) == 0 {
		return EmptyShape
	}
	internal := make([]prism, len(prisms))
	for i, p := range prisms {
		internal[i] = prism{color: p.Color, geom: p.Geom}
	}
	return a.push(shapeEntry{kind: shapeArbitrary, prisms: internal, bound: boundingBoxOf(internal)})
}

// IsEmpty reports whether handle resolves to the empty shape.
func (a *ShapeArena) IsEmpty(handle ShapeHandle) (bool, error) {
	prisms, _, err := a.resolve(handle)
	if err != nil {
		return false, err
	}
	return len(prisms) == 0, nil
}

// Size returns the shape's bounding-box size. An empty shape has size
// zero on every axis; unlike Min and Max, this does not error for the
// empty shape (an invalid handle still returns ErrInvalidShapeHandle).
func (a *ShapeArena) Size(handle ShapeHandle) (UVec3, error) {
	_, bound, err := a.resolve(handle)
	if err != nil {
		return UVec3{}, err
	}
	return bound.Size, nil
}

// Min returns the shape's bounding-box minimum corner. Returns
// ErrEmptyShapeMin for the empty shape, per
// original_source/lib/src/runtime/builtin.rs's MinOfEmptyShape.
func (a *ShapeArena) Min(handle ShapeHandle) (IVec3, error) {
	prisms, bound, err := a.resolve(handle)
	if err != nil {
		return IVec3{}, err
	}
	if len(prisms) == 0 {
		return IVec3{}, ErrEmptyShapeMin
	}
	return bound.Pos, nil
}

// Max returns the shape's bounding-box maximum corner (exclusive end).
// Returns ErrEmptyShapeMax for the empty shape, per
// original_source/lib/src/runtime/builtin.rs's MaxOfEmptyShape.
func (a *ShapeArena) Max(handle ShapeHandle) (IVec3, error) {
	prisms, bound, err := a.resolve(handle)
	if err != nil {
		return IVec3{}, err
	}
	if len(prisms) == 0 {
		return IVec3{}, ErrEmptyShapeMax
	}
	return IVec3{X: bound.XEnd(), Y: bound.YEnd(), Z: bound.ZEnd()}, nil
}

// WithMin returns a handle to handle translated so its bounding-box
// minimum on axis equals value.
func (a *ShapeArena) WithMin(handle ShapeHandle, axis Axis, value int32) (ShapeHandle, error) {
	min, err := a.Min(handle)
	if err != nil {
		return 0, err
	}
	return a.TranslateAxis(handle, axis, value-min.On(axis))
}

// Translate returns a handle to handle shifted by offset. Translating
// by the zero offset returns handle unchanged, and translating the
// empty shape always yields the empty shape, matching
// original_source/lib/src/shape.rs's Shape::translate short-circuits.
func (a *ShapeArena) Translate(handle ShapeHandle, offset IVec3) (ShapeHandle, error) {
	if offset.IsZero() {
		return handle, nil
	}
	e, err := a.entry(handle)
	if err != nil {
		return 0, err
	}
	if e.kind == shapeEmpty {
		return handle, nil
	}
	if e.kind == shapeTranslated {
		combined := e.offset.Add(offset)
		if combined.IsZero() {
			return e.target, nil
		}
		return a.push(shapeEntry{kind: shapeTranslated, target: e.target, offset: combined}), nil
	}
	return a.push(shapeEntry{kind: shapeTranslated, target: handle, offset: offset}), nil
}

// TranslateAxis translates handle by delta on a single axis.
func (a *ShapeArena) TranslateAxis(handle ShapeHandle, axis Axis, delta int32) (ShapeHandle, error) {
	if delta == 0 {
		return handle, nil
	}
	var offset IVec3
	offset = offset.WithOn(axis, delta)
	return a.Translate(handle, offset)
}

// Union returns a handle to the combination of x and y's volumes. The
// result's prism list is the concatenation of both operands' resolved
// prisms: overlapping regions are harmless because face extraction
// derives visibility from shape containment, not from prism-list
// disjointness.
func (a *ShapeArena) Union(x, y ShapeHandle) (ShapeHandle, error) {
	xEmpty, err := a.IsEmpty(x)
	if err != nil {
		return 0, err
	}
	if xEmpty {
		return y, nil
	}
	yEmpty, err := a.IsEmpty(y)
	if err != nil {
		return 0, err
	}
	if yEmpty {
		return x, nil
	}
	xp, xb, err := a.resolve(x)
	if err != nil {
		return 0, err
	}
	yp, _, err := a.resolve(y)
	if err != nil {
		return 0, err
	}
	combined := make([]prism, 0, len(xp)+len(yp))
	combined = append(combined, xp...)
	combined = append(combined, yp...)
	bound := boundingBoxOf(combined)
	_ = xb
	return a.push(shapeEntry{kind: shapeArbitrary, prisms: combined, bound: bound}), nil
}

// Intersection returns a handle to the overlap of x and y's volumes.
// Grounded on original_source/lib/src/shape.rs's Shape::intersection:
// every pair of prisms (one from each operand) is intersected, keeping
// the self (x) operand's color for any resulting overlap box, and
// boxes with no positive-volume overlap are dropped.
func (a *ShapeArena) Intersection(x, y ShapeHandle) (ShapeHandle, error) {
	xp, _, err := a.resolve(x)
	if err != nil {
		return 0, err
	}
	if len(xp) == 0 {
		return EmptyShape, nil
	}
	yp, _, err := a.resolve(y)
	if err != nil {
		return 0, err
	}
	if len(yp) == 0 {
		return EmptyShape, nil
	}
	var out []prism
	for _, xi := range xp {
		for _, yj := range yp {
			box, ok := xi.geom.Intersection(yj.geom)
			if !ok {
				continue
			}
			out = append(out, prism{color: xi.color, geom: box})
		}
	}
	if len(out) == 0 {
		return EmptyShape, nil
	}
	return a.push(shapeEntry{kind: shapeArbitrary, prisms: out, bound: boundingBoxOf(out)}), nil
}

// Difference returns a handle to x's volume with y's volume removed,
// via the six-slab decomposition in subtractPrism, applied once per
// prism of y against the running remainder of x's prisms.
func (a *ShapeArena) Difference(x, y ShapeHandle) (ShapeHandle, error) {
	xp, _, err := a.resolve(x)
	if err != nil {
		return 0, err
	}
	if len(xp) == 0 {
		return EmptyShape, nil
	}
	yp, _, err := a.resolve(y)
	if err != nil {
		return 0, err
	}
	if len(yp) == 0 {
		return x, nil
	}
	remainder := xp
	for _, cut := range yp {
		var next []prism
		for _, rp := range remainder {
			next = subtractPrism(rp, cut.geom, next)
		}
		remainder = next
	}
	if len(remainder) == 0 {
		return EmptyShape, nil
	}
	return a.push(shapeEntry{kind: shapeArbitrary, prisms: remainder, bound: boundingBoxOf(remainder)}), nil
}
