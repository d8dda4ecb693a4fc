package textview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ytget/timetable-viewer/internal/pivot"
)

// Tab titles, in pivot display order
var TabTitles = []string{"By room", "By teacher", "By student group", "Unassigned"}

// CardText returns the sanitized lines of a lesson card: subject with id,
// teacher, group.
func CardText(card pivot.Card) []string {
	return []string{
		Sanitize(card.Title() + " #" + card.LessonID.String()),
		Sanitize(card.Byline()),
		Sanitize(card.StudentGroup),
	}
}

// RenderCard renders one lesson card with its subject color.
func RenderCard(card pivot.Card, width int, styles Styles) string {
	style := styles.Card
	if styles.colorCards {
		style = style.Background(lipgloss.Color(card.Color.Hex()))
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(strings.Join(CardText(card), "\n"))
}

// RenderGrid renders a pivot grid as a table of timeslot rows and columns.
func RenderGrid(g *pivot.Grid, styles Styles) string {
	if g == nil || len(g.Rows) == 0 || len(g.Columns) == 0 {
		return styles.Muted.Render("(empty)")
	}

	rowLabels := make([]string, len(g.Rows))
	for r, row := range g.Rows {
		rowLabels[r] = Sanitize(row.Label)
	}
	columnLabels := make([]string, len(g.Columns))
	for c, column := range g.Columns {
		columnLabels[c] = Sanitize(column.Label)
	}

	// column 0 holds the timeslot labels
	widths := make([]int, len(g.Columns)+1)
	for _, label := range rowLabels {
		widths[0] = max(widths[0], lipgloss.Width(label))
	}
	for c, label := range columnLabels {
		widths[c+1] = lipgloss.Width(label)
		for r := range g.Rows {
			for _, card := range g.Cell(r, c) {
				for _, line := range CardText(card) {
					widths[c+1] = max(widths[c+1], lipgloss.Width(line))
				}
			}
		}
	}

	header := make([]string, 0, len(widths))
	header = append(header, styles.Cell.Render(padRight("", widths[0])))
	for c, label := range columnLabels {
		header = append(header, styles.Cell.Render(styles.Header.Render(padRight(label, widths[c+1]))))
	}

	lines := []string{joinCells(header, styles), divider(widths, styles)}
	for r, label := range rowLabels {
		cells := make([]string, 0, len(widths))
		cells = append(cells, styles.Cell.Render(styles.RowHeader.Render(padRight(label, widths[0]))))
		for c := range g.Columns {
			cards := g.Cell(r, c)
			rendered := make([]string, 0, len(cards))
			for _, card := range cards {
				rendered = append(rendered, RenderCard(card, widths[c+1], styles))
			}
			content := lipgloss.JoinVertical(lipgloss.Left, rendered...)
			if len(rendered) == 0 {
				content = padRight("", widths[c+1])
			}
			cells = append(cells, styles.Cell.Render(content))
		}
		lines = append(lines, joinCells(cells, styles), divider(widths, styles))
	}
	return strings.Join(lines, "\n")
}

// RenderUnassigned renders the lessons that have no timeslot or room.
func RenderUnassigned(cards []pivot.Card, styles Styles) string {
	if len(cards) == 0 {
		return styles.Muted.Render("(no unassigned lessons)")
	}
	width := 0
	for _, card := range cards {
		for _, line := range CardText(card) {
			width = max(width, lipgloss.Width(line))
		}
	}
	blocks := make([]string, 0, len(cards))
	for _, card := range cards {
		blocks = append(blocks, RenderCard(card, width, styles))
	}
	return strings.Join(blocks, "\n\n")
}

// RenderTimetable renders every pivot and the unassigned list one after another.
func RenderTimetable(t *pivot.Timetable, styles Styles) string {
	if t == nil {
		return styles.Muted.Render("(no timetable)")
	}
	sections := make([]string, 0, 4)
	for i, grid := range t.Grids() {
		sections = append(sections, styles.Title.Render(TabTitles[i])+"\n"+RenderGrid(grid, styles))
	}
	sections = append(sections, styles.Title.Render(TabTitles[3])+"\n"+RenderUnassigned(t.Unassigned, styles))
	return strings.Join(sections, "\n\n") + "\n"
}

func joinCells(cells []string, styles Styles) string {
	height := 0
	for _, cell := range cells {
		height = max(height, lipgloss.Height(cell))
	}
	sep := styles.Muted.Render(strings.TrimSuffix(strings.Repeat("|\n", height), "\n"))
	parts := make([]string, 0, len(cells)*2)
	for i, cell := range cells {
		if i > 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func divider(widths []int, styles Styles) string {
	total := len(widths) - 1
	for _, w := range widths {
		total += w + 2
	}
	return styles.Muted.Render(strings.Repeat("-", total))
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
