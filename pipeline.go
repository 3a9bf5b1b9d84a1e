package prism

// RenderTree compiles a declarative tree straight through to an SVG
// document: it renders the tree's flat colored prism list, extracts
// welded faces for each distinct color, composites them onto a shared
// canvas, and reduces the result to polygons. Grounded on
// original_source/lib/src/lib.rs's PrismTree::render driver order
// (prisms → faces → sort → canvas → layers → polygons), adapted to
// route through the welding-aware FaceExtractor and the shader-tinted,
// four-band Canvas/LayerBuilder this module implements instead of
// the naive single-color renderer lib.rs uses.
func RenderTree(tree *PrismTree, forceSquare bool) (Svg, error) {
	prisms, err := tree.RenderPrisms()
	if err != nil {
		return Svg{}, err
	}
	shaderFront, shaderSide, shaderTop, err := tree.GetShader()
	if err != nil {
		return Svg{}, err
	}

	var faces []Face
	for _, group := range groupByColor(prisms) {
		arena := NewShapeArena()
		handle := arena.AddPrisms(group.prisms)
		groupFaces, err := ExtractFaces(arena, handle, group.color)
		if err != nil {
			return Svg{}, err
		}
		faces = append(faces, groupFaces...)
	}

	SortFaces(faces)
	canvas := NewCanvas(shaderFront, shaderSide, shaderTop)
	for _, f := range faces {
		canvas.RenderFace(f)
	}

	var polygons []Polygon
	for _, layer := range canvas.BuildLayers() {
		polygons = append(polygons, BuildPolygons(layer)...)
	}

	return BuildSvg(polygons, tree.GetUnit(), forceSquare), nil
}

type colorGroup struct {
	color  Rgba
	prisms []Prism
}

// groupByColor partitions prisms by color, preserving first-seen color
// order so that a given tree always compiles to the same face
// emission order (and therefore the same layer/polygon output).
func groupByColor(prisms []Prism) []colorGroup {
	index := make(map[Rgba]int)
	var groups []colorGroup
	for _, p := range prisms {
		i, ok := index[p.Color]
		if !ok {
			i = len(groups)
			index[p.Color] = i
			groups = append(groups, colorGroup{color: p.Color})
		}
		groups[i].prisms = append(groups[i].prisms, p)
	}
	return groups
}
