package css

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color interprets the values as a single color, either a hex literal
// (#rgb, #rgba, #rrggbb, #rrggbbaa) or a named CSS color.
// Color functions like rgba(…) are not supported, thus a list of more than
// one token never is a color.
func (v Values) Color() (color.RGBA, bool) {
	if len(v) != 1 {
		return color.RGBA{}, false
	}
	switch v[0].Kind {
	case HashToken:
		return ParseHexColor(v[0].Str)
	case IdentToken:
		return NamedColor(v[0].Str)
	}
	return color.RGBA{}, false
}

// NamedColor looks up a CSS color keyword, case-insensitively.
func NamedColor(name string) (color.RGBA, bool) {
	name = strings.ToLower(name)
	if name == "transparent" {
		return color.RGBA{}, true
	}
	c, ok := colornames.Map[name]
	return c, ok
}

// ParseHexColor parses the digits of a hex color literal, without the '#'.
func ParseHexColor(hex string) (color.RGBA, bool) {
	var digits [8]uint8
	switch len(hex) {
	case 3, 4:
		for i := 0; i < len(hex); i++ {
			d, ok := hexDigit(hex[i])
			if !ok {
				return color.RGBA{}, false
			}
			digits[2*i], digits[2*i+1] = d, d
		}
		if len(hex) == 3 {
			digits[6], digits[7] = 0xf, 0xf
		}
	case 6, 8:
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, false
		}
		if len(hex) == 6 {
			n = n<<8 | 0xff
		}
		return color.RGBA{
			R: uint8(n >> 24),
			G: uint8(n >> 16),
			B: uint8(n >> 8),
			A: uint8(n),
		}, true
	default:
		return color.RGBA{}, false
	}
	return color.RGBA{
		R: digits[0]<<4 | digits[1],
		G: digits[2]<<4 | digits[3],
		B: digits[4]<<4 | digits[5],
		A: digits[6]<<4 | digits[7],
	}, true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
