package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/pkg/layout"
)

// layoutCommand creates the layout command for auto-arranging quest nodes.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		questRef string
		dryRun   bool
		measure  bool
	)
	opts := c.Config.layoutOptions()
	if opts.NodeWidth == 0 {
		opts.NodeWidth = layout.DefaultNodeWidth
	}
	if opts.NodeHeight == 0 {
		opts.NodeHeight = layout.DefaultNodeHeight
	}
	if opts.HorizontalSpacing == 0 {
		opts.HorizontalSpacing = layout.DefaultHorizontalSpacing
	}
	if opts.VerticalSpacing == 0 {
		opts.VerticalSpacing = layout.DefaultVerticalSpacing
	}
	direction := string(opts.Direction)
	if direction == "" {
		direction = string(layout.TopToBottom)
	}

	cmd := &cobra.Command{
		Use:   "layout [project.json]",
		Short: "Auto-arrange quest nodes into hierarchical levels",
		Long: `Auto-arrange quest nodes into hierarchical levels.

Nodes are grouped into levels by graph distance from the quest's roots and
centered around the canvas origin, top-to-bottom by default or left-to-right
with --direction LR. With --measure, per-node heights are estimated from
node content instead of using a uniform node size.

The project file is rewritten in place; use --dry-run to print the computed
positions without modifying the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Direction = layout.Direction(direction)
			return c.runAutoLayout(args[0], questRef, opts, measure, dryRun)
		},
	}

	cmd.Flags().StringVarP(&questRef, "quest", "q", "", "quest id or name (default: all quests)")
	cmd.Flags().StringVarP(&direction, "direction", "d", direction, "layout direction: TB (default), LR")
	cmd.Flags().BoolVar(&measure, "measure", false, "estimate per-node sizes from content")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print positions without writing the file")
	cmd.Flags().Float64Var(&opts.NodeWidth, "node-width", opts.NodeWidth, "uniform node width")
	cmd.Flags().Float64Var(&opts.NodeHeight, "node-height", opts.NodeHeight, "uniform node height")
	cmd.Flags().Float64Var(&opts.HorizontalSpacing, "hgap", opts.HorizontalSpacing, "horizontal gap between nodes")
	cmd.Flags().Float64Var(&opts.VerticalSpacing, "vgap", opts.VerticalSpacing, "vertical gap between levels")

	return cmd
}

func (c *CLI) runAutoLayout(path, questRef string, opts layout.Options, measure, dryRun bool) error {
	if d := opts.Direction; d != "" && d != layout.TopToBottom && d != layout.LeftToRight {
		return fmt.Errorf("unknown direction %q (want TB or LR)", d)
	}

	f, err := c.loadProject(path)
	if err != nil {
		return err
	}

	targets, err := f.quests(questRef)
	if err != nil {
		return err
	}

	for _, q := range targets {
		var sizes map[string]layout.Size
		if measure {
			sizes = make(map[string]layout.Size, len(q.Nodes))
			for i := range q.Nodes {
				n := &q.Nodes[i]
				sizes[n.ID] = layout.Size{Width: opts.NodeWidth, Height: layout.EstimateHeight(n)}
			}
		}

		positions := layout.Compute(q, sizes, opts)
		c.Logger.Debug("computed layout", "quest", q.Name, "nodes", len(positions))

		if dryRun {
			printInfo("%s", StyleHighlight.Render(q.Name))
			ids := make([]string, 0, len(positions))
			for id := range positions {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				p := positions[id]
				data, _ := json.Marshal(p)
				printDetail("%s %s", id, string(data))
			}
			continue
		}

		q.ApplyLayout(positions)
	}

	if dryRun {
		return nil
	}

	if err := f.Save(); err != nil {
		return err
	}

	printSuccess("Layout applied to %d quest(s)", len(targets))
	printFile(path)

	return nil
}
