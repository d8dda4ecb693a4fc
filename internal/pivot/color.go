package pivot

import (
	"hash/fnv"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette shape. Light, low-chroma colours keep dark card text readable.
const (
	paletteSize      = 12
	paletteChroma    = 0.22
	paletteLuminance = 0.88
)

var palette = buildPalette()

func buildPalette() []colorful.Color {
	colors := make([]colorful.Color, paletteSize)
	step := 360.0 / paletteSize
	for i := range colors {
		colors[i] = colorful.Hcl(float64(i)*step, paletteChroma, paletteLuminance).Clamped()
	}
	return colors
}

// ColorFor returns the card colour of a subject. The result depends on the
// subject text only, so it is stable across refreshes and lesson order.
func ColorFor(subject string) colorful.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subject))
	return palette[h.Sum32()%uint32(len(palette))]
}
