// Package prism renders isometric 2D vector art from 3D axis-aligned
// unit-cube shapes.
//
// # Overview
//
// A scene is built from rectangular prisms combined with union,
// intersection, and difference, then rendered: the visible unit faces
// of the resulting shape are extracted, projected onto a triangular
// isometric grid, alpha-composited with per-axis shader tints, and
// reduced to minimal-vertex polygons that serialize to SVG.
//
// # Quick Start
//
//	import "github.com/prismforge/prism"
//
//	tree, err := prism.ParsePrismTree(yamlSource)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg, err := prism.RenderTree(tree, true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(svg.Content)
//
// # Architecture
//
// The pipeline is organized into stages, each in its own file:
//   - ShapeArena (shape.go): CSG shape algebra over axis-aligned prisms
//   - FaceExtractor (face.go): visible unit faces of a shape's exterior
//   - Canvas (canvas.go): isometric projection and alpha compositing
//   - LayerBuilder (layer.go): per-color triangle-cell sets
//   - PolygonBuilder (polygon.go): triangle regions to minimal polygons
//   - SvgWriter (svg.go): polygon-to-SVG serialization
//   - DeclarativeTreeCompiler (decltree.go): YAML scene description to prisms
//   - Builtin (builtin.go): script-host API surface for shape/render calls
//
// # Coordinate System
//
// Integer 3D positions, +X/+Y/+Z axes, unit cubes. The isometric
// projection maps (x,y,z) onto a triangular (u,v) grid; see face.go and
// canvas.go for the exact formulas.
package prism
