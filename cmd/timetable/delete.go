package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ytget/timetable-viewer/internal/engine"
	"github.com/ytget/timetable-viewer/internal/model"
)

func (c *cli) newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a room, timeslot or lesson",
	}

	cmd.AddCommand(
		c.newDeleteEntityCmd(engine.EntityRoom, func(ctx context.Context, eng *engine.Engine, id model.ID) error {
			return eng.DeleteRoom(ctx, model.Room{ID: id})
		}),
		c.newDeleteEntityCmd(engine.EntityTimeslot, func(ctx context.Context, eng *engine.Engine, id model.ID) error {
			return eng.DeleteTimeslot(ctx, model.Timeslot{ID: id})
		}),
		c.newDeleteEntityCmd(engine.EntityLesson, func(ctx context.Context, eng *engine.Engine, id model.ID) error {
			return eng.DeleteLesson(ctx, model.Lesson{ID: id})
		}),
	)
	return cmd
}

func (c *cli) newDeleteEntityCmd(entity string, del func(ctx context.Context, eng *engine.Engine, id model.ID) error) *cobra.Command {
	return &cobra.Command{
		Use:   entity + " <id>",
		Short: "Delete a " + entity + " by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := c.newEngine(nil)
			if err != nil {
				return err
			}
			defer c.closeCache()
			defer eng.Close()

			id := model.ID(args[0])
			if err := del(cmd.Context(), eng, id); err != nil {
				return err
			}

			styles := c.styles()
			printf(cmd.OutOrStdout(), "deleted %s %s\n%s\n", entity, id, statusLine(eng.Snapshot(), styles))
			return nil
		},
	}
}
