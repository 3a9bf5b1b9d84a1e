package prism

import "fmt"

// Builtin is the script-host API surface a rendering session exposes to
// its caller, grounded on
// original_source/lib/src/runtime/builtin.rs's Builtin struct and its
// bind_to_engine method. The original binds these operations to a
// boa_engine (embedded JS) global scope; embedding a script engine is
// out of scope here, so Builtin exposes the identical operation set as
// a plain Go API instead.
type Builtin struct {
	arena *ShapeArena
	unit  float64

	shaderFront Rgba
	shaderSide  Rgba
	shaderTop   Rgba

	faces []Face
	logs  []string
	objID uint64
}

// NewBuiltin returns a Builtin ready to accept shape and render calls,
// seeded with the default unit length and shader tints.
func NewBuiltin() *Builtin {
	return &Builtin{
		arena:       NewShapeArena(),
		unit:        defaultUnit,
		shaderFront: DefaultShaderX,
		shaderSide:  DefaultShaderY,
		shaderTop:   DefaultShaderZ,
		objID:       1,
	}
}

// Log appends a message to the session's log, mirroring the __builtin_log
// binding.
func (b *Builtin) Log(msg string) {
	b.logs = append(b.logs, msg)
}

// Debug logs the next object id that NextID would return, without
// consuming it, mirroring the __builtin_debug binding.
func (b *Builtin) Debug() {
	b.logs = append(b.logs, fmt.Sprintf("debug: next object id is %d", b.objID))
}

// NextID returns a fresh, session-unique id and advances the counter.
func (b *Builtin) NextID() uint64 {
	id := b.objID
	b.objID++
	return id
}

// SetUnit changes the SVG grid unit length.
func (b *Builtin) SetUnit(unit float64) {
	b.unit = unit
}

// SetShader changes the per-axis shader tints, parsing each as a CSS
// color string. An empty string resets that axis to its default tint.
func (b *Builtin) SetShader(front, side, top string) error {
	x, err := shaderOrDefault(front, DefaultShaderX)
	if err != nil {
		return err
	}
	y, err := shaderOrDefault(side, DefaultShaderY)
	if err != nil {
		return err
	}
	z, err := shaderOrDefault(top, DefaultShaderZ)
	if err != nil {
		return err
	}
	b.shaderFront, b.shaderSide, b.shaderTop = x, y, z
	return nil
}

func shaderOrDefault(s string, def Rgba) (Rgba, error) {
	if s == "" {
		return def, nil
	}
	c, err := ParseColor(s)
	if err != nil {
		return Transparent, &ErrInvalidColor{Input: s, Err: err}
	}
	return c, nil
}

// ShapeFromPrism adds a new one-box shape and returns its handle,
// mirroring the __builtin_shape_from_prism binding.
func (b *Builtin) ShapeFromPrism(pos IVec3, size UVec3) ShapeHandle {
	return b.arena.AddPrism(Transparent, Geom3{Pos: pos, Size: size})
}

// ShapeSize returns a shape's bounding-box size.
func (b *Builtin) ShapeSize(h ShapeHandle) (UVec3, error) {
	return b.arena.Size(h)
}

// ShapeMin returns a shape's bounding-box minimum corner.
func (b *Builtin) ShapeMin(h ShapeHandle) (IVec3, error) {
	return b.arena.Min(h)
}

// ShapeMax returns a shape's bounding-box maximum corner.
func (b *Builtin) ShapeMax(h ShapeHandle) (IVec3, error) {
	return b.arena.Max(h)
}

// ShapeAtPoint translates h so its bounding-box minimum corner is at
// point, mirroring the __builtin_shape_at_point binding (with_min).
func (b *Builtin) ShapeAtPoint(h ShapeHandle, point IVec3) (ShapeHandle, error) {
	res := h
	for _, axis := range [3]Axis{AxisX, AxisY, AxisZ} {
		var err error
		res, err = b.arena.WithMin(res, axis, point.On(axis))
		if err != nil {
			return 0, err
		}
	}
	return res, nil
}

// ShapeAtAxisOff translates h so its bounding-box minimum on axis is
// offset, mirroring the __builtin_shape_at_axis_off binding.
func (b *Builtin) ShapeAtAxisOff(h ShapeHandle, axis Axis, offset int32) (ShapeHandle, error) {
	return b.arena.WithMin(h, axis, offset)
}

// ShapeTranslate shifts h by offset.
func (b *Builtin) ShapeTranslate(h ShapeHandle, offset IVec3) (ShapeHandle, error) {
	return b.arena.Translate(h, offset)
}

// ShapeTranslateAxisOff shifts h by delta on a single axis.
func (b *Builtin) ShapeTranslateAxisOff(h ShapeHandle, axis Axis, delta int32) (ShapeHandle, error) {
	return b.arena.TranslateAxis(h, axis, delta)
}

// ShapeUnion, ShapeIntersection, and ShapeDifference expose the
// ShapeArena's CSG operations.
func (b *Builtin) ShapeUnion(x, y ShapeHandle) (ShapeHandle, error) {
	return b.arena.Union(x, y)
}

func (b *Builtin) ShapeIntersection(x, y ShapeHandle) (ShapeHandle, error) {
	return b.arena.Intersection(x, y)
}

func (b *Builtin) ShapeDifference(x, y ShapeHandle) (ShapeHandle, error) {
	return b.arena.Difference(x, y)
}

// Render extracts h's visible faces under colorStr and accumulates them
// into the session's face list, mirroring the __builtin_render binding.
// The accumulated faces are flat and take no part in further shape
// algebra; h itself stays in the arena unchanged and remains usable.
func (b *Builtin) Render(h ShapeHandle, colorStr string) error {
	color, err := ParseColor(colorStr)
	if err != nil {
		return &ErrInvalidColor{Input: colorStr, Err: err}
	}
	faces, err := ExtractFaces(b.arena, h, color)
	if err != nil {
		return err
	}
	b.faces = append(b.faces, faces...)
	return nil
}

// GetUnit returns the current grid unit length.
func (b *Builtin) GetUnit() float64 { return b.unit }

// GetLogs returns every message logged so far, in emission order.
func (b *Builtin) GetLogs() []string {
	return append([]string(nil), b.logs...)
}

// RenderLayers sorts the accumulated faces, composites them onto a
// fresh Canvas, and drains the canvas into its per-color layer bands.
func (b *Builtin) RenderLayers() []Layer {
	faces := append([]Face(nil), b.faces...)
	SortFaces(faces)
	canvas := NewCanvas(b.shaderFront, b.shaderSide, b.shaderTop)
	for _, f := range faces {
		canvas.RenderFace(f)
	}
	return canvas.BuildLayers()
}

// RunResult is the outcome of a rendering session, grounded on
// original_source/lib/src/runtime/mod.rs's ScriptResult.
type RunResult struct {
	Unit     float64
	HasError bool
	Layers   []Layer
	Messages []string
}

// Finish collects a session's result. runErr, if non-nil, is the error
// that aborted rendering (surfaced as a "runtime error: %s" message);
// pass nil for a clean run. Matches the "render ok" / "runtime error: %s"
// / "no layers rendered" sentinel messages of
// original_source/lib/src/runtime/mod.rs's execute_script.
func (b *Builtin) Finish(runErr error) RunResult {
	outcome := "render ok"
	hasError := false
	if runErr != nil {
		outcome = fmt.Sprintf("runtime error: %s", runErr)
		hasError = true
	}
	layers := b.RenderLayers()
	messages := append(b.GetLogs(), outcome)
	if len(layers) == 0 {
		messages = append(messages, "no layers rendered")
	}
	return RunResult{Unit: b.unit, HasError: hasError, Layers: layers, Messages: messages}
}
