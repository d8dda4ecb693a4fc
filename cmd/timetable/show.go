package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/timetable-viewer/internal/cache"
	"github.com/ytget/timetable-viewer/internal/model"
	"github.com/ytget/timetable-viewer/internal/pivot"
	"github.com/ytget/timetable-viewer/internal/textview"
)

// Values of the show --pivot flag
const (
	pivotAll        = "all"
	pivotRoom       = "room"
	pivotTeacher    = "teacher"
	pivotGroup      = "group"
	pivotUnassigned = "unassigned"
)

func (c *cli) newShowCmd() *cobra.Command {
	var (
		which  string
		cached bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current timetable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cached {
				return c.showCached(cmd, which)
			}

			eng, err := c.newEngine(nil)
			if err != nil {
				return err
			}
			defer c.closeCache()
			defer eng.Close()

			if err := eng.Start(cmd.Context()); err != nil {
				return err
			}

			out, err := renderPivot(eng.Timetable(), which, c.styles())
			if err != nil {
				return err
			}
			styles := c.styles()
			printf(cmd.OutOrStdout(), "%s\n\n%s", statusLine(eng.Snapshot(), styles), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&which, "pivot", pivotAll, "what to print: all, room, teacher, group or unassigned")
	cmd.Flags().BoolVar(&cached, "cached", false, "print the last snapshot fetched from the server without contacting it")
	return cmd
}

func (c *cli) showCached(cmd *cobra.Command, which string) error {
	store := c.openCache()
	if store == nil {
		return fmt.Errorf("snapshot cache is not available")
	}
	defer c.closeCache()

	entry, err := store.Load(c.cacheKey())
	if errors.Is(err, cache.ErrNotFound) {
		if servers, _ := store.Servers(); len(servers) > 0 {
			return fmt.Errorf("%w (cached servers: %s)", err, strings.Join(servers, ", "))
		}
	}
	if err != nil {
		return err
	}

	styles := c.styles()
	out, err := renderPivot(pivot.Build(entry.Snapshot), which, styles)
	if err != nil {
		return err
	}
	fetched := styles.Muted.Render("cached " + entry.FetchedAt.Local().Format(time.DateTime))
	printf(cmd.OutOrStdout(), "%s  %s\n\n%s", statusLine(entry.Snapshot, styles), fetched, out)
	return nil
}

func renderPivot(t *pivot.Timetable, which string, styles textview.Styles) (string, error) {
	if t == nil {
		return "", fmt.Errorf("no timetable")
	}
	switch strings.ToLower(which) {
	case pivotAll:
		return textview.RenderTimetable(t, styles), nil
	case pivotRoom:
		return textview.RenderGrid(t.ByRoom, styles) + "\n", nil
	case pivotTeacher:
		return textview.RenderGrid(t.ByTeacher, styles) + "\n", nil
	case pivotGroup:
		return textview.RenderGrid(t.ByStudentGroup, styles) + "\n", nil
	case pivotUnassigned:
		return textview.RenderUnassigned(t.Unassigned, styles) + "\n", nil
	default:
		return "", fmt.Errorf("unknown pivot %q (valid: all, room, teacher, group, unassigned)", which)
	}
}

func statusLine(s *model.Snapshot, styles textview.Styles) string {
	status := styles.Muted.Render("idle")
	if s != nil && s.SolverStatus.IsSolving() {
		status = styles.Solving.Render("solving")
	}
	return styles.Score.Render(textview.Sanitize(s.ScoreText())) + "  " + status
}
