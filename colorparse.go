package prism

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/text/cases"
)

// foldCase normalizes a color keyword or hex digit string for
// case-insensitive lookup, e.g. "FireBrick" and "firebrick" must parse
// to the same color. cogentcore-core/colors/colors.go does the
// equivalent with a plain strings.ToLower, but declarative input here
// can carry arbitrary Unicode-adjacent casing from hand-written YAML,
// so we use the locale-independent case folder instead.
var foldCase = cases.Fold()

// ParseColor parses a CSS-syntax color string into an Rgba. It
// supports the subset of CSS color syntax the original Rust
// implementation exposed via csscolorparser: hex (#rgb, #rgba,
// #rrggbb, #rrggbbaa), the functional rgb()/rgba() and hsl()/hsla()
// notations, and the CSS3
// named-color keywords (via golang.org/x/image/colornames). Grounded on
// _examples/cogentcore-core/colors/colors.go's FromString, trimmed to
// the formats the rendering pipeline's declarative and script inputs
// actually use.
func ParseColor(s string) (Rgba, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Transparent, fmt.Errorf("prism: empty color string")
	}
	folded := foldCase.String(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(folded[1:])
	case strings.HasPrefix(folded, "rgb(") || strings.HasPrefix(folded, "rgba("):
		return parseFunctional(folded, "rgb")
	case strings.HasPrefix(folded, "hsl(") || strings.HasPrefix(folded, "hsla("):
		return parseFunctional(folded, "hsl")
	case folded == "transparent":
		return Transparent, nil
	default:
		if c, ok := colornames.Map[folded]; ok {
			return NewRgba(c.R, c.G, c.B, c.A), nil
		}
		return Transparent, fmt.Errorf("prism: invalid color: %q is not a recognized CSS color", s)
	}
}

func parseHexColor(hex string) (Rgba, error) {
	var r, g, b, a uint32
	a = 255
	switch len(hex) {
	case 3:
		parseHexDigits(hex[0:1], &r)
		parseHexDigits(hex[1:2], &g)
		parseHexDigits(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4:
		parseHexDigits(hex[0:1], &r)
		parseHexDigits(hex[1:2], &g)
		parseHexDigits(hex[2:3], &b)
		parseHexDigits(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6:
		parseHexDigits(hex[0:2], &r)
		parseHexDigits(hex[2:4], &g)
		parseHexDigits(hex[4:6], &b)
	case 8:
		parseHexDigits(hex[0:2], &r)
		parseHexDigits(hex[2:4], &g)
		parseHexDigits(hex[4:6], &b)
		parseHexDigits(hex[6:8], &a)
	default:
		return Transparent, fmt.Errorf("prism: invalid color: hex value %q has an unsupported length", hex)
	}
	return NewRgba(uint8(r), uint8(g), uint8(b), uint8(a)), nil
}

func parseHexDigits(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		}
	}
}

// parseFunctional parses "rgb(r,g,b[,a])" or "hsl(h,s%,l%[,a])" forms,
// already lowercased by the caller.
func parseFunctional(s string, kind string) (Rgba, error) {
	open := strings.Index(s, "(")
	close := strings.LastIndex(s, ")")
	if open < 0 || close < 0 || close < open {
		return Transparent, fmt.Errorf("prism: invalid color: malformed functional color %q", s)
	}
	body := s[open+1 : close]
	body = strings.ReplaceAll(body, "%", "")
	parts := strings.Split(body, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) != 3 && len(parts) != 4 {
		return Transparent, fmt.Errorf("prism: invalid color: %q needs 3 or 4 components", s)
	}
	nums := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return Transparent, fmt.Errorf("prism: invalid color: %q: %w", s, err)
		}
		nums[i] = v
	}
	alpha := 1.0
	if len(nums) == 4 {
		alpha = nums[3]
	}
	if kind == "hsl" {
		return hslToRgba(nums[0], nums[1]/100, nums[2]/100, alpha), nil
	}
	return NewRgba(uint8(clamp255(nums[0])), uint8(clamp255(nums[1])), uint8(clamp255(nums[2])), uint8(clamp255(alpha*255))), nil
}

// hslToRgba converts HSL (h in degrees, s/l in [0,1]) plus a straight
// alpha in [0,1] to a packed Rgba.
func hslToRgba(h, s, l, alpha float64) Rgba {
	h = mod(h, 360)
	hp := h / 60
	c := (1 - absf(2*l-1)) * s
	x := c * (1 - absf(mod(hp, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return NewRgba(
		uint8(clamp255((r+m)*255)),
		uint8(clamp255((g+m)*255)),
		uint8(clamp255((b+m)*255)),
		uint8(clamp255(alpha*255)),
	)
}

func mod(x, y float64) float64 {
	r := x - float64(int(x/y))*y
	if r < 0 {
		r += y
	}
	return r
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
