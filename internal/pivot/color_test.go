package pivot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/timetable-viewer/internal/model"
)

func TestColorFor_Deterministic(t *testing.T) {
	subjects := []string{"Math", "Physics", "Chemistry", "", "Biology"}
	for _, subject := range subjects {
		assert.Equal(t, ColorFor(subject), ColorFor(subject), "subject %q", subject)
	}
}

func TestColorFor_FromPalette(t *testing.T) {
	colors := palette
	require.Len(t, colors, paletteSize)

	for _, subject := range []string{"Math", "History", "Art", "Spanish", "French"} {
		assert.Contains(t, colors, ColorFor(subject))
	}
}

func TestPalette_Distinguishable(t *testing.T) {
	colors := palette
	for i := range colors {
		assert.True(t, colors[i].IsValid(), "palette entry %d out of gamut", i)
		for j := i + 1; j < len(colors); j++ {
			assert.NotEqual(t, colors[i].Hex(), colors[j].Hex(), "entries %d and %d", i, j)
		}
	}
}

func TestColorFor_IndependentOfLessonOrder(t *testing.T) {
	snapshot := sampleSnapshot()
	original := colorsBySubject(Build(snapshot))

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := *snapshot
		shuffled.Lessons = append([]model.Lesson(nil), snapshot.Lessons...)
		rng.Shuffle(len(shuffled.Lessons), func(a, b int) {
			shuffled.Lessons[a], shuffled.Lessons[b] = shuffled.Lessons[b], shuffled.Lessons[a]
		})

		assert.Equal(t, original, colorsBySubject(Build(&shuffled)))
	}
}

func colorsBySubject(tt *Timetable) map[string]string {
	out := make(map[string]string)
	collect := func(cards []Card) {
		for _, card := range cards {
			out[card.Subject] = card.Color.Hex()
		}
	}
	for _, grid := range tt.Grids() {
		for row := range grid.Rows {
			for col := range grid.Columns {
				collect(grid.Cell(row, col))
			}
		}
	}
	collect(tt.Unassigned)
	return out
}
