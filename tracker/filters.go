package tracker

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FilterOptions holds the choices offered by the issue filters.
type FilterOptions struct {
	Components []Component
	Boards     []Board
	Sprints    []Sprint
}

// FilterOptions loads components, boards and the sprints of boardID
// concurrently. A source that fails is logged and left empty; the other
// sources are still returned.
func (c *Client) FilterOptions(ctx context.Context, boardID int) *FilterOptions {
	opts := &FilterOptions{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		components, err := c.Components(gctx)
		if err != nil {
			c.logger.Warn("Failed to load components", "error", err)
			return nil
		}
		opts.Components = components
		return nil
	})
	g.Go(func() error {
		boards, err := c.Boards(gctx)
		if err != nil {
			c.logger.Warn("Failed to load boards", "error", err)
			return nil
		}
		opts.Boards = boards
		return nil
	})
	g.Go(func() error {
		sprints, err := c.Sprints(gctx, boardID)
		if err != nil {
			c.logger.Warn("Failed to load sprints", "board_id", boardID, "error", err)
			return nil
		}
		opts.Sprints = sprints
		return nil
	})
	_ = g.Wait() // goroutines never return errors

	return opts
}

// ComponentNames returns the non-empty component names.
func (o *FilterOptions) ComponentNames() []string {
	names := make([]string, 0, len(o.Components))
	for _, comp := range o.Components {
		if comp.Name != "" {
			names = append(names, comp.Name)
		}
	}
	return names
}

// SprintNames returns the sprint names in tracker order.
func (o *FilterOptions) SprintNames() []string {
	names := make([]string, 0, len(o.Sprints))
	for _, s := range o.Sprints {
		if s.Name != "" {
			names = append(names, s.Name)
		}
	}
	return names
}
