package prism

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Default shader tints applied when a PrismTree's shader block omits a
// component, per original_source/lib/src/tree.rs's DEFAULT_SHADER_*.
var (
	DefaultShaderX = NewRgba(0, 0, 0, 38)  // rgba(0,0,0,0.15)
	DefaultShaderY = NewRgba(0, 0, 0, 102) // rgba(0,0,0,0.4)
	DefaultShaderZ = Transparent           // rgba(0,0,0,0)
)

// defaultUnit is the grid unit length used when a PrismTree omits one.
const defaultUnit = 20.0

// ShaderSpec holds the optional per-axis shader override colors of a
// PrismTree, each as a CSS color string to be parsed by ParseColor.
type ShaderSpec struct {
	X *string `yaml:"x,omitempty"`
	Y *string `yaml:"y,omitempty"`
	Z *string `yaml:"z,omitempty"`
}

// PrismTree is the root of a declarative rendering tree. Grounded on
// original_source/lib/src/tree.rs's PrismTree, with
// csscolorparser::Color strings kept as raw strings
// (parsed lazily via ParseColor) instead of a typed color field,
// since YAML decoding of an arbitrary CSS color syntax has no direct
// gopkg.in/yaml.v3 equivalent of serde_yaml_ng's Color deserializer.
type PrismTree struct {
	Unit   *float64    `yaml:"unit,omitempty"`
	Shader *ShaderSpec `yaml:"shader,omitempty"`
	Color  string      `yaml:"color"`
	Pos    [3]int32    `yaml:"pos,omitempty"`
	Prism  []Node      `yaml:"prism,omitempty"`
}

// Node is one entry in a PrismTree's prism list, either a leaf box
// (Size set) or a group (Children set). Grounded on
// original_source/lib/src/tree.rs's TreeNode/TreeType, folding the
// Rust enum's two variants into two optional Go fields.
type Node struct {
	Color    *string    `yaml:"color,omitempty"`
	Cut      bool       `yaml:"cut,omitempty"`
	Hidden   bool       `yaml:"hidden,omitempty"`
	Pos      [3]int32   `yaml:"pos,omitempty"`
	Size     *[3]uint32 `yaml:"size,omitempty"`
	Children []Node     `yaml:"children,omitempty"`
}

// ParsePrismTree decodes a declarative YAML document into a PrismTree.
// A decoding failure is returned as a *ParseError whose Line is taken
// from the YAML decoder's message when that message names a line.
func ParsePrismTree(data []byte) (*PrismTree, error) {
	var tree PrismTree
	if err := yaml.Unmarshal(data, &tree); err != nil {
		perr := &ParseError{Msg: err.Error()}
		fmt.Sscanf(perr.Msg, "yaml: line %d:", &perr.Line)
		return nil, perr
	}
	return &tree, nil
}

// GetUnit returns the tree's grid unit length, defaulting to 20.
func (t *PrismTree) GetUnit() float64 {
	if t.Unit != nil {
		return *t.Unit
	}
	return defaultUnit
}

// GetShader resolves the tree's per-axis shader colors, falling back
// to DefaultShaderX/Y/Z for any unset component.
func (t *PrismTree) GetShader() (x, y, z Rgba, err error) {
	x, y, z = DefaultShaderX, DefaultShaderY, DefaultShaderZ
	if t.Shader == nil {
		return x, y, z, nil
	}
	if t.Shader.X != nil {
		if x, err = ParseColor(*t.Shader.X); err != nil {
			return Transparent, Transparent, Transparent, err
		}
	}
	if t.Shader.Y != nil {
		if y, err = ParseColor(*t.Shader.Y); err != nil {
			return Transparent, Transparent, Transparent, err
		}
	}
	if t.Shader.Z != nil {
		if z, err = ParseColor(*t.Shader.Z); err != nil {
			return Transparent, Transparent, Transparent, err
		}
	}
	return x, y, z, nil
}

// RenderPrisms compiles the tree into a flat list of disjoint colored
// boxes.
func (t *PrismTree) RenderPrisms() ([]Prism, error) {
	rootColor, err := ParseColor(t.Color)
	if err != nil {
		return nil, err
	}
	rootOffset := IVec3{X: t.Pos[0], Y: t.Pos[1], Z: t.Pos[2]}
	var out []Prism
	for i := range t.Prism {
		if err := t.Prism[i].renderInto(rootOffset, rootColor, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// renderInto renders one node and its descendants into out.
//
// A group node builds a local output list: non-cut children render
// directly into it, but a cut child renders into a separate list whose
// prisms are then subtracted from every prism accumulated so far in the
// local list, before the local list is appended to the caller's out.
// Using a local list (rather than subtracting directly against out) is
// what keeps a cut scoped to its own siblings instead of reaching back
// into prisms contributed by earlier, unrelated parts of the tree.
func (n *Node) renderInto(offset IVec3, parentColor Rgba, out *[]Prism) error {
	if n.Hidden {
		return nil
	}
	color := parentColor
	if n.Color != nil {
		c, err := ParseColor(*n.Color)
		if err != nil {
			return err
		}
		color = c
	}
	absOffset := IVec3{X: n.Pos[0], Y: n.Pos[1], Z: n.Pos[2]}.Add(offset)

	if len(n.Children) > 0 {
		var local []Prism
		for i := range n.Children {
			child := &n.Children[i]
			if child.Cut {
				var cut []Prism
				if err := child.renderInto(absOffset, color, &cut); err != nil {
					return err
				}
				local = vecSubtract(local, cut)
			} else if err := child.renderInto(absOffset, color, &local); err != nil {
				return err
			}
		}
		*out = append(*out, local...)
		return nil
	}

	if n.Size != nil {
		size := UVec3{X: n.Size[0], Y: n.Size[1], Z: n.Size[2]}
		if size.AllPositive() {
			*out = append(*out, Prism{Color: color, Geom: Geom3{Pos: absOffset, Size: size}})
		}
	}
	return nil
}

// vecSubtract subtracts every box in cuts from every box in base,
// via the six-slab decomposition in subtractPrism.
func vecSubtract(base, cuts []Prism) []Prism {
	if len(cuts) == 0 {
		return base
	}
	remainder := make([]prism, len(base))
	for i, p := range base {
		remainder[i] = prism{color: p.Color, geom: p.Geom}
	}
	for _, cut := range cuts {
		var next []prism
		for _, rp := range remainder {
			next = subtractPrism(rp, cut.Geom, next)
		}
		remainder = next
	}
	out := make([]Prism, len(remainder))
	for i, p := range remainder {
		out[i] = Prism{Color: p.color, Geom: p.geom}
	}
	return out
}
