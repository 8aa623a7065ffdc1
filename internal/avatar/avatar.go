// Package avatar generates deterministic decorative SVG avatars. It is a pure
// function of its seed and has no effect on stored state.
package avatar

import (
	"encoding/base64"
	"fmt"
	"math"
	"unicode/utf16"
)

const size = 100

// Generate returns a data URI containing an SVG avatar derived from seed.
// The same seed always yields the same image.
func Generate(seed string) string {
	h := hash(seed)
	background := color(h, 0)
	shape1 := shape1Markup(h, color(h, 100))
	shape2 := shape2Markup(h, color(h, 200))

	svg := fmt.Sprintf(
		`<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg"><rect width="%d" height="%d" fill="%s" />%s%s</svg>`,
		size, size, size, size, size, size, background, shape1, shape2)

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

func hash(seed string) int {
	var h int32
	for _, unit := range utf16.Encode([]rune(seed)) {
		h = (h << 5) - h + int32(unit)
	}
	if h < 0 {
		h = -h
	}
	return int(h)
}

func color(h, offset int) string {
	hue := math.Mod(float64(h+offset)*137.508, 360)
	return fmt.Sprintf("hsl(%.3f, 50%%, 60%%)", hue)
}

func shape1Markup(h int, fill string) string {
	switch h % 3 {
	case 0:
		return fmt.Sprintf(`<circle cx="%d" cy="%d" r="%d" fill="%s" />`, size/2, size/2, size/4, fill)
	case 1:
		return fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" transform="rotate(%d %d %d)" />`,
			size/4, size/4, size/2, size/2, fill, h%90, size/2, size/2)
	default:
		return fmt.Sprintf(`<polygon points="%d,%d %d,%d %d,%d" fill="%s" />`,
			size/2, size/4, size*3/4, size*3/4, size/4, size*3/4, fill)
	}
}

func shape2Markup(h int, fill string) string {
	switch (h + 1) % 3 {
	case 0:
		cx := size / 3
		if h%2 != 0 {
			cx = size * 2 / 3
		}
		return fmt.Sprintf(`<circle cx="%d" cy="%d" r="%d" fill="%s" />`, cx, size/2, size/8, fill)
	case 1:
		return fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="5" />`,
			size/4, size/4, size*3/4, size*3/4, fill)
	default:
		return fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" />`,
			size/3, size/3, size/4, size/4, fill)
	}
}
