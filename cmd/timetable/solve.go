package main

import (
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/ytget/timetable-viewer/internal/pivot"
	"github.com/ytget/timetable-viewer/internal/textview"
)

func (c *cli) newSolveCmd() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Start the solver",
		Long: `Asks the server to start solving. With --wait the command polls the
server until the solver stops, printing every new score, and then prints
the final timetable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			styles := c.styles()
			eng, err := c.newEngine(nil)
			if err != nil {
				return err
			}
			defer c.closeCache()
			defer eng.Close()

			if err := eng.StartSolving(cmd.Context()); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s\n", styles.Solving.Render("solving started"))
			if !wait {
				return nil
			}

			view := newProgressView(cmd.OutOrStdout(), cmd.ErrOrStderr(), styles)
			view.solving = true
			eng.SetView(view)
			if !eng.Solving() {
				view.finish()
			}

			select {
			case <-view.done:
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}
			printf(cmd.OutOrStdout(), "\n%s", textview.RenderTimetable(eng.Timetable(), styles))
			return nil
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", false, "wait until the solver stops")
	return cmd
}

// progressView prints score changes and closes done once the solver stops
type progressView struct {
	out    io.Writer
	errOut io.Writer
	styles textview.Styles

	mu        sync.Mutex
	lastScore string
	solving   bool
	done      chan struct{}
	once      sync.Once
}

func newProgressView(out, errOut io.Writer, styles textview.Styles) *progressView {
	return &progressView{
		out:    out,
		errOut: errOut,
		styles: styles,
		done:   make(chan struct{}),
	}
}

func (v *progressView) ShowTimetable(*pivot.Timetable) {}

func (v *progressView) ShowScore(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if text == v.lastScore {
		return
	}
	v.lastScore = text
	printf(v.out, "%s\n", v.styles.Score.Render(textview.Sanitize(text)))
}

func (v *progressView) ShowSolving(solving bool) {
	v.mu.Lock()
	wasSolving := v.solving
	v.solving = solving
	v.mu.Unlock()

	if wasSolving && !solving {
		v.finish()
	}
}

func (v *progressView) finish() {
	v.once.Do(func() { close(v.done) })
}

func (v *progressView) ShowError(err error) {
	printf(v.errOut, "%s\n", v.styles.Error.Render("error: "+textview.Sanitize(err.Error())))
}
