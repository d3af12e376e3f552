package svgstyle

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgmodel/svgunit"
	"golang.org/x/image/colornames"
)

var (
	errParamMismatch = errors.New("param mismatch")
	errInvalidColor  = errors.New("invalid color")
)

// parseHexColor reads #rgb, #rgba, #rrggbb and #rrggbbaa colors.
func parseHexColor(colorStr string) (color.NRGBA, error) {
	s := strings.TrimPrefix(colorStr, "#")
	switch len(s) {
	case 3, 4:
		// SVG specs say duplicate characters in case of 3 digit hex number
		long := make([]byte, 0, 2*len(s))
		for i := 0; i < len(s); i++ {
			long = append(long, s[i], s[i])
		}
		s = string(long)
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("%w: %q", errInvalidColor, colorStr)
	}
	out := color.NRGBA{A: 0xFF}
	for i, c := range []*uint8{&out.R, &out.G, &out.B, &out.A} {
		if 2*i+2 > len(s) {
			break
		}
		t, err := strconv.ParseUint(s[2*i:2*i+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", errInvalidColor, colorStr)
		}
		*c = uint8(t)
	}
	return out, nil
}

// splitArgs returns the comma or space separated arguments of a
// functional notation, such as rgb(...)
func splitArgs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '/' || r == '\t'
	})
}

// parseColorValue reads a channel value, either in [0, 255] or as a percentage
func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		f, err := svgunit.ParseNumber(v[:len(v)-1])
		if err != nil {
			return 0, err
		}
		return uint8(math.Round(clamp(f/100, 0, 1) * 0xFF)), nil
	}
	f, err := svgunit.ParseNumber(v)
	if err != nil {
		return 0, err
	}
	return uint8(math.Round(clamp(f, 0, 255))), nil
}

// parseAlphaValue reads an alpha value, as a number in [0,1] or a percentage
func parseAlphaValue(v string) (uint8, error) {
	f, err := svgunit.ParseFraction(v)
	if err != nil {
		return 0, err
	}
	return uint8(math.Round(clamp(f, 0, 1) * 0xFF)), nil
}

func clamp(f, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, f))
}

func functionArgs(v, name string) (string, bool) {
	if !strings.HasPrefix(v, name+"(") || !strings.HasSuffix(v, ")") {
		return "", false
	}
	return v[len(name)+1 : len(v)-1], true
}

// hslToRGB converts a color given by hue (degrees), saturation and lightness in [0,1]
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var rp, gp, bp float64
	switch {
	case h < 60:
		rp, gp, bp = c, x, 0
	case h < 120:
		rp, gp, bp = x, c, 0
	case h < 180:
		rp, gp, bp = 0, c, x
	case h < 240:
		rp, gp, bp = 0, x, c
	case h < 300:
		rp, gp, bp = x, 0, c
	default:
		rp, gp, bp = c, 0, x
	}
	conv := func(f float64) uint8 { return uint8(math.Round(clamp((f+m)*255, 0, 255))) }
	return conv(rp), conv(gp), conv(bp)
}

// ParseColor parses an SVG color string in all forms, including
// all SVG1.1 names, obtained from the colornames package.
// Paint keywords (none, currentColor, url(...)) are not accepted here.
func ParseColor(colorStr string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	if v == "" {
		return color.NRGBA{}, fmt.Errorf("%w: empty value", errInvalidColor)
	}
	if v == "transparent" {
		return color.NRGBA{}, nil
	}
	if cn, ok := colornames.Map[v]; ok {
		return color.NRGBA{cn.R, cn.G, cn.B, cn.A}, nil
	}
	if v[0] == '#' {
		return parseHexColor(v)
	}
	for _, name := range [...]string{"rgba", "rgb"} {
		args, ok := functionArgs(v, name)
		if !ok {
			continue
		}
		vals := splitArgs(args)
		if len(vals) != 3 && len(vals) != 4 {
			return color.NRGBA{}, fmt.Errorf("%w: %q", errParamMismatch, colorStr)
		}
		out := color.NRGBA{A: 0xFF}
		var err error
		for i, c := range []*uint8{&out.R, &out.G, &out.B} {
			*c, err = parseColorValue(vals[i])
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("%w: %q", errInvalidColor, colorStr)
			}
		}
		if len(vals) == 4 {
			if out.A, err = parseAlphaValue(vals[3]); err != nil {
				return color.NRGBA{}, fmt.Errorf("%w: %q", errInvalidColor, colorStr)
			}
		}
		return out, nil
	}
	for _, name := range [...]string{"hsla", "hsl"} {
		args, ok := functionArgs(v, name)
		if !ok {
			continue
		}
		vals := splitArgs(args)
		if len(vals) != 3 && len(vals) != 4 {
			return color.NRGBA{}, fmt.Errorf("%w: %q", errParamMismatch, colorStr)
		}
		h, err1 := svgunit.ParseNumber(strings.TrimSuffix(vals[0], "deg"))
		s, err2 := svgunit.ParseFraction(vals[1])
		l, err3 := svgunit.ParseFraction(vals[2])
		if err := errors.Join(err1, err2, err3); err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", errInvalidColor, colorStr)
		}
		out := color.NRGBA{A: 0xFF}
		out.R, out.G, out.B = hslToRGB(h, clamp(s, 0, 1), clamp(l, 0, 1))
		if len(vals) == 4 {
			var err error
			if out.A, err = parseAlphaValue(vals[3]); err != nil {
				return color.NRGBA{}, fmt.Errorf("%w: %q", errInvalidColor, colorStr)
			}
		}
		return out, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", errInvalidColor, colorStr)
}

// MultiplyAlpha returns `c` with its alpha channel scaled by `opacity`,
// clamped to [0,1].
func MultiplyAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * clamp(opacity, 0, 1)))
	return c
}
