package grid

import (
	"fmt"
	"math/rand/v2"
)

// ColorFunc yields a fresh CSS color each time it is called.
type ColorFunc func() string

// HSL formats a CSS hsl() color.
func HSL(hue, saturation, lightness int) string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hue, saturation, lightness)
}

// RandomColors draws hue uniformly from [0,360), saturation from [60,80) and
// lightness from [45,55). A nil source uses the global generator.
func RandomColors(r *rand.Rand) ColorFunc {
	intn := rand.IntN
	if r != nil {
		intn = r.IntN
	}
	return func() string {
		return HSL(intn(360), 60+intn(20), 45+intn(10))
	}
}

// Palette cycles through a fixed list of colors. Useful for deterministic output.
func Palette(colors ...string) ColorFunc {
	i := 0
	return func() string {
		if len(colors) == 0 {
			return ""
		}
		c := colors[i%len(colors)]
		i++
		return c
	}
}
