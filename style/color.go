package style

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1] and is not premultiplied.
type RGBA struct {
	R, G, B, A float64
}

// RGBA implements color.Color, returning alpha-premultiplied components.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{
		R: uint8(clamp255(c.R*255 + 0.5)),
		G: uint8(clamp255(c.G*255 + 0.5)),
		B: uint8(clamp255(c.B*255 + 0.5)),
		A: uint8(clamp255(c.A*255 + 0.5)),
	}.RGBA()
}

// Hex parses "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA"; the leading '#'
// is optional.
func Hex(hex string) (RGBA, error) {
	hex = strings.TrimPrefix(hex, "#")

	var r, g, b, a uint32
	a = 255

	ok := true
	switch len(hex) {
	case 3: // RGB
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b) && parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
	case 8: // RRGGBBAA
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b) && parseHex(hex[6:8], &a)
	default:
		ok = false
	}
	if !ok {
		return RGBA{}, fmt.Errorf("%w: hex %q", ErrInvalidColor, hex)
	}

	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}

// parseHex parses s as a hexadecimal number, reporting false on a
// non-hex digit.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// extraNames holds CSS color keywords missing from the SVG 1.1 set.
var extraNames = map[string]color.RGBA{
	"rebeccapurple": {R: 0x66, G: 0x33, B: 0x99, A: 0xff},
}

// ParseColor parses a CSS color: hex notation, rgb()/rgba(), hsl()/hsla(),
// "transparent", or a CSS color keyword such as "rebeccapurple".
func ParseColor(s string) (RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return RGBA{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	case s[0] == '#':
		return Hex(s)
	case s == "transparent":
		return RGBA{}, nil
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	case strings.HasPrefix(s, "hsl"):
		return parseHSLFunc(s)
	}
	named, ok := colornames.Map[s]
	if !ok {
		named, ok = extraNames[s]
	}
	if ok {
		return RGBA{
			R: float64(named.R) / 255,
			G: float64(named.G) / 255,
			B: float64(named.B) / 255,
			A: float64(named.A) / 255,
		}, nil
	}
	return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// funcArgs splits "name(a, b, c)" or "name(a b c / d)" into its arguments.
func funcArgs(s string) (string, []string, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	name := strings.TrimSpace(s[:open])
	body := s[open+1 : len(s)-1]
	body = strings.ReplaceAll(body, "/", " ")
	body = strings.ReplaceAll(body, ",", " ")
	return name, strings.Fields(body), true
}

func parseRGBFunc(s string) (RGBA, error) {
	name, args, ok := funcArgs(s)
	if !ok || (name != "rgb" && name != "rgba") || (len(args) != 3 && len(args) != 4) {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var c [4]float64
	c[3] = 1
	for i, arg := range args {
		scale := 255.0
		if i == 3 {
			scale = 1
		}
		v, err := component(arg, scale)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q: %w", ErrInvalidColor, s, err)
		}
		c[i] = v
	}
	return RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
}

func parseHSLFunc(s string) (RGBA, error) {
	name, args, ok := funcArgs(s)
	if !ok || (name != "hsl" && name != "hsla") || (len(args) != 3 && len(args) != 4) {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	h, err := parseFinite(strings.TrimSuffix(args[0], "deg"))
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q: %w", ErrInvalidColor, s, err)
	}
	sat, err := component(args[1], 100)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q: %w", ErrInvalidColor, s, err)
	}
	light, err := component(args[2], 100)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q: %w", ErrInvalidColor, s, err)
	}
	alpha := 1.0
	if len(args) == 4 {
		if alpha, err = component(args[3], 1); err != nil {
			return RGBA{}, fmt.Errorf("%w: %q: %w", ErrInvalidColor, s, err)
		}
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsl(h, sat, light).Clamped()
	return RGBA{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// component parses a number or percentage and normalizes it to [0, 1],
// treating plain numbers as fractions of scale.
func component(arg string, scale float64) (float64, error) {
	if p, ok := strings.CutSuffix(arg, "%"); ok {
		v, err := parseFinite(p)
		if err != nil {
			return 0, err
		}
		return clamp01(v / 100), nil
	}
	v, err := parseFinite(arg)
	if err != nil {
		return 0, err
	}
	return clamp01(v / scale), nil
}

// parseFinite parses a float, rejecting NaN and infinities.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

// HexString formats any color as "#rrggbb", or "#rrggbbaa" when it is not
// fully opaque.
func HexString(c color.Color) string {
	_, _, _, a := c.RGBA()
	if a == 0 {
		return "#00000000"
	}
	cf, _ := colorful.MakeColor(c)
	hex := cf.Clamped().Hex()
	if a == 0xffff {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, uint8(a>>8))
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
