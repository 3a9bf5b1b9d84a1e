package prism

import "sort"

// FaceDir is the direction of a unit face on its cube, named for the
// positive axis it faces: Front is +X, Side is +Y, Top is +Z.
type FaceDir int

const (
	FaceFront FaceDir = iota
	FaceSide
	FaceTop
)

// Face is a single unit-size colored face of a shape's exterior,
// grounded on original_source/lib/src/render/face.rs's Face/Side.
type Face struct {
	Color  Rgba
	Pos    IVec3
	Dir    FaceDir
	IsBack bool
}

// Layer returns the painter's-order sort key for the face: higher layer
// renders earlier (on top).
//
// A +Z move is worth two layers because it is equivalent, on the
// isometric projection, to one +X move plus one +Y move; the +1 for
// back faces places a cube's back faces above its front faces at the
// same unit position.
func (f Face) Layer() int32 {
	base := f.Pos.X + f.Pos.Y + f.Pos.Z*2
	back := int32(0)
	if f.IsBack {
		back = 1
	}
	return base*2 + back
}

// SortFaces orders faces in descending layer order, so that faces
// earlier in the slice are painted first (i.e. end up on top once the
// Canvas composites later arrivals behind existing content).
func SortFaces(faces []Face) {
	sort.SliceStable(faces, func(i, j int) bool {
		return faces[i].Layer() > faces[j].Layer()
	})
}

// ExtractFaces computes the visible exterior faces of handle's shape
// when rendered in color.
//
// For a fully transparent color, no faces are emitted. For a
// translucent color (alpha < 1), back faces (the −X/−Y/−Z boundary of
// each prism) are also emitted, marked IsBack. For a fully opaque
// color, only the front/top/side faces are emitted.
//
// Containment is tested against every prism in the shape, not just the
// prism a given unit cube came from, so faces shared between
// overlapping prisms of the same shape are automatically welded away.
func ExtractFaces(arena *ShapeArena, handle ShapeHandle, color Rgba) ([]Face, error) {
	if color.IsTransparent() {
		return nil, nil
	}
	prisms, err := arena.Prisms(handle)
	if err != nil {
		return nil, err
	}
	contains := func(p IVec3) bool {
		for _, pr := range prisms {
			if pr.Geom.ContainsPoint(p) {
				return true
			}
		}
		return false
	}
	translucent := !color.IsOpaque()
	var faces []Face
	for _, pr := range prisms {
		x1, y1, z1 := pr.Geom.Pos.X, pr.Geom.Pos.Y, pr.Geom.Pos.Z
		x2, y2, z2 := pr.Geom.XEnd(), pr.Geom.YEnd(), pr.Geom.ZEnd()
		for x := x1; x < x2; x++ {
			for y := y1; y < y2; y++ {
				for z := z1; z < z2; z++ {
					pos := IVec3{X: x, Y: y, Z: z}
					if !contains(IVec3{X: x, Y: y, Z: z + 1}) {
						faces = append(faces, Face{Color: color, Pos: pos, Dir: FaceTop})
					}
					if !contains(IVec3{X: x + 1, Y: y, Z: z}) {
						faces = append(faces, Face{Color: color, Pos: pos, Dir: FaceFront})
					}
					if !contains(IVec3{X: x, Y: y + 1, Z: z}) {
						faces = append(faces, Face{Color: color, Pos: pos, Dir: FaceSide})
					}
					if translucent {
						// A back face is the +Z/+X/+Y face of the
						// neighbouring cube position, on this cube's
						// -Z/-X/-Y boundary.
						if below := (IVec3{X: x, Y: y, Z: z - 1}); !contains(below) {
							faces = append(faces, Face{Color: color, Pos: below, Dir: FaceTop, IsBack: true})
						}
						if behind := (IVec3{X: x - 1, Y: y, Z: z}); !contains(behind) {
							faces = append(faces, Face{Color: color, Pos: behind, Dir: FaceFront, IsBack: true})
						}
						if left := (IVec3{X: x, Y: y - 1, Z: z}); !contains(left) {
							faces = append(faces, Face{Color: color, Pos: left, Dir: FaceSide, IsBack: true})
						}
					}
				}
			}
		}
	}
	return faces, nil
}
