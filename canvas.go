package prism

// UV identifies a triangular grid cell by its integer coordinates.
type UV struct {
	U, V int32
}

// CanvasPoint is the composited record stored at one triangular grid
// cell. Grounded on original_source/lib/src/render/face.rs's
// CanvasPoint.
type CanvasPoint struct {
	OpaqueColor Rgba
	OpaqueFace  FaceDir
	AlphaColor  Rgba
	AlphaFace   FaceDir
	TopAlpha    float64
}

func newCanvasPoint(dir FaceDir, color Rgba) CanvasPoint {
	if color.IsOpaque() {
		return CanvasPoint{
			OpaqueColor: color,
			OpaqueFace:  dir,
			AlphaColor:  Transparent,
		}
	}
	return CanvasPoint{
		OpaqueColor: Transparent,
		AlphaColor:  color,
		AlphaFace:   dir,
		TopAlpha:    color.AlphaF(),
	}
}

// addColor composites a later (lower-layer, painted-behind) face's
// color into the point, per the canvas's compositing rule.
func (p *CanvasPoint) addColor(dir FaceDir, color Rgba, shader Rgba) {
	if p.OpaqueColor.IsOpaque() {
		return
	}
	if color.IsTransparent() {
		return
	}
	if !color.IsOpaque() {
		if shader.A() > 0 {
			shaderPrime := shader.withAlphaF(color.AlphaF())
			tinted := Over(shaderPrime, color)
			p.AlphaColor = Over(p.AlphaColor, tinted)
		} else {
			p.AlphaColor = Over(p.AlphaColor, color)
		}
		return
	}
	p.OpaqueColor = color
	p.OpaqueFace = dir
}

// Canvas is the sparse (u,v) grid that faces composite onto. Grounded
// on original_source/lib/src/render/face.rs's Canvas.
type Canvas struct {
	shaderFront Rgba // shader tint for +X (Front) faces
	shaderSide  Rgba // shader tint for +Y (Side) faces
	shaderTop   Rgba // shader tint for +Z (Top) faces

	points map[UV]*CanvasPoint
}

// NewCanvas returns an empty canvas with the given per-axis shader tints.
func NewCanvas(shaderFront, shaderSide, shaderTop Rgba) *Canvas {
	return &Canvas{
		shaderFront: shaderFront,
		shaderSide:  shaderSide,
		shaderTop:   shaderTop,
		points:      make(map[UV]*CanvasPoint),
	}
}

// SetShader replaces the canvas's per-axis shader tints.
func (c *Canvas) SetShader(front, side, top Rgba) {
	c.shaderFront, c.shaderSide, c.shaderTop = front, side, top
}

func (c *Canvas) shaderFor(dir FaceDir) Rgba {
	switch dir {
	case FaceFront:
		return c.shaderFront
	case FaceSide:
		return c.shaderSide
	default:
		return c.shaderTop
	}
}

// faceUVs computes the two triangular-grid cells a face projects
// onto, via the isometric projection formula.
func faceUVs(f Face) (u1, v1, u2, v2 int32) {
	ux, uy, uz := -f.Pos.X, f.Pos.Y, int32(0)
	vx, vy, vz := f.Pos.X, f.Pos.Y, -2*f.Pos.Z
	u := ux + uy + uz
	v := vx + vy + vz
	switch f.Dir {
	case FaceTop:
		return u, v, u + 1, v
	case FaceFront:
		return u, v + 1, u, v + 2
	default: // FaceSide
		return u + 1, v + 1, u + 1, v + 2
	}
}

// RenderFace writes one face onto the canvas, at both of its projected
// cells. Faces must be submitted in descending Layer() order (see
// SortFaces) so later writes into an already-occupied cell composite
// behind the existing content.
func (c *Canvas) RenderFace(f Face) {
	u1, v1, u2, v2 := faceUVs(f)
	c.renderAt(u1, v1, f)
	c.renderAt(u2, v2, f)
}

func (c *Canvas) renderAt(u, v int32, f Face) {
	key := UV{U: u, V: v}
	point, ok := c.points[key]
	if !ok {
		p := newCanvasPoint(f.Dir, f.Color)
		c.points[key] = &p
		return
	}
	point.addColor(f.Dir, f.Color, c.shaderFor(f.Dir))
}
