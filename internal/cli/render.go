package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/pkg/render"
)

// renderCommand creates the render command for graphical quest output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		questRef string
		output   string
		format   string
		detailed bool
		lr       bool
	)

	cmd := &cobra.Command{
		Use:   "render [project.json]",
		Short: "Render a quest graph to DOT or SVG",
		Long: `Render a quest graph to DOT or SVG.

Nodes are colored by type and edges are labeled with the option or output
they leave through. DOT output can be fed to any Graphviz toolchain; SVG is
rendered directly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], questRef, output, format, detailed, lr)
		},
	}

	cmd.Flags().StringVarP(&questRef, "quest", "q", "", "quest id or name")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <quest>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include body text in node labels")
	cmd.Flags().BoolVar(&lr, "lr", false, "lay the graph out left-to-right")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path, questRef, output, format string, detailed, lr bool) error {
	if format != "svg" && format != "dot" {
		return fmt.Errorf("unknown format %q (want svg or dot)", format)
	}

	f, err := c.loadProject(path)
	if err != nil {
		return err
	}

	q, err := f.resolveQuest(questRef)
	if err != nil {
		return err
	}

	dot := render.ToDOT(q, render.Options{Detailed: detailed, LeftRight: lr})

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = render.SVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("render %s: %w", q.Name, err)
		}
	}

	if output == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		output = base + "." + format
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Rendered %q", q.Name)
	printFile(output)
	printQuestStats(len(q.Nodes), len(q.Connections))

	return nil
}
