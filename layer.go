package prism

import "sort"

// Layer is a single color's sparse set of triangular grid cells, the
// unit PolygonBuilder consumes. Grounded on
// original_source/lib/src/render/face.rs's Layer/LayerBuilder output.
type Layer struct {
	Color Rgba
	Cells []UV
}

// vecMap is an insertion-order-preserving map keyed by Rgba, mirroring
// original_source/lib/src/math.rs's VecMap: the same input must yield
// byte-identical output across runs, so iteration order is first-seen
// insertion order, not color value order.
type vecMap struct {
	order  []Rgba
	index  map[Rgba]int
	layers []*Layer
}

func newVecMap() *vecMap {
	return &vecMap{index: make(map[Rgba]int)}
}

func (m *vecMap) get(color Rgba) *Layer {
	if i, ok := m.index[color]; ok {
		return m.layers[i]
	}
	m.index[color] = len(m.layers)
	m.order = append(m.order, color)
	l := &Layer{Color: color}
	m.layers = append(m.layers, l)
	return l
}

func (m *vecMap) into() []Layer {
	out := make([]Layer, len(m.layers))
	for i, l := range m.layers {
		out[i] = *l
	}
	return out
}

// layerBuilder drains a Canvas into four ordered color bands: opaque,
// opaque shader overlay, alpha, alpha shader overlay.
type layerBuilder struct {
	shaderFront, shaderSide, shaderTop Rgba

	opaque        *vecMap
	opaqueShaders *vecMap
	alpha         *vecMap
	alphaShaders  *vecMap
}

func newLayerBuilder(shaderFront, shaderSide, shaderTop Rgba) *layerBuilder {
	return &layerBuilder{
		shaderFront:   shaderFront,
		shaderSide:    shaderSide,
		shaderTop:     shaderTop,
		opaque:        newVecMap(),
		opaqueShaders: newVecMap(),
		alpha:         newVecMap(),
		alphaShaders:  newVecMap(),
	}
}

func (b *layerBuilder) shaderFor(dir FaceDir) Rgba {
	switch dir {
	case FaceFront:
		return b.shaderFront
	case FaceSide:
		return b.shaderSide
	default:
		return b.shaderTop
	}
}

func (b *layerBuilder) render(u, v int32, p *CanvasPoint) {
	uv := UV{U: u, V: v}
	if p.OpaqueColor.IsOpaque() {
		l := b.opaque.get(p.OpaqueColor)
		l.Cells = append(l.Cells, uv)

		shaderColor := b.shaderFor(p.OpaqueFace)
		if shaderColor.A() > 0 {
			sl := b.opaqueShaders.get(shaderColor)
			sl.Cells = append(sl.Cells, uv)
		}
	}
	if p.TopAlpha > 0 {
		l := b.alpha.get(p.AlphaColor)
		l.Cells = append(l.Cells, uv)

		shaderColor := b.shaderFor(p.AlphaFace)
		if shaderColor.A() > 0 {
			tinted := shaderColor.withAlphaF(p.TopAlpha)
			sl := b.alphaShaders.get(tinted)
			sl.Cells = append(sl.Cells, uv)
		}
	}
}

func (b *layerBuilder) build() []Layer {
	out := make([]Layer, 0)
	out = append(out, b.opaque.into()...)
	out = append(out, b.opaqueShaders.into()...)
	out = append(out, b.alpha.into()...)
	out = append(out, b.alphaShaders.into()...)
	return out
}

// BuildLayers drains the canvas into its four ordered per-color layer
// bands, iterating grid cells in ascending (u,v) order so that the
// same set of rendered faces always yields byte-identical output.
func (c *Canvas) BuildLayers() []Layer {
	keys := make([]UV, 0, len(c.points))
	for k := range c.points {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].U != keys[j].U {
			return keys[i].U < keys[j].U
		}
		return keys[i].V < keys[j].V
	})
	b := newLayerBuilder(c.shaderFront, c.shaderSide, c.shaderTop)
	for _, k := range keys {
		b.render(k.U, k.V, c.points[k])
	}
	return b.build()
}
