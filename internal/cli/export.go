package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/pkg/shell"
	"github.com/questforge/questforge/pkg/transcode"
)

// exportCommand creates the export command for sharing quests and projects.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		questRef string
		output   string
		whole    bool
	)

	cmd := &cobra.Command{
		Use:   "export [project.json]",
		Short: "Export a quest or the whole project for sharing",
		Long: `Export a quest or the whole project for sharing.

A single quest is exported by default (pick one with --quest when the
project has several). With --project, the whole project is exported with
its global events. Export files carry a format version and timestamp and
can be brought into another project with 'import'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(args[0], questRef, output, whole)
		},
	}

	cmd.Flags().StringVarP(&questRef, "quest", "q", "", "quest id or name")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: derived from quest or project name)")
	cmd.Flags().BoolVar(&whole, "project", false, "export the whole project instead of one quest")

	return cmd
}

func (c *CLI) runExport(path, questRef, output string, whole bool) error {
	f, err := c.loadProject(path)
	if err != nil {
		return err
	}

	var (
		payload any
		name    string
	)
	if whole {
		payload = transcode.ExportProject(f.Project)
		name = f.Project.Name
	} else {
		q, err := f.resolveQuest(questRef)
		if err != nil {
			return err
		}
		payload = transcode.ExportQuest(q)
		name = q.Name
	}

	data, err := transcode.MarshalExport(payload)
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}

	if output == "" {
		output = exportFileName(name)
	}

	written, err := shell.WriteChosenFile(shell.FixedPath(output), data)
	if err != nil {
		return err
	}

	printSuccess("Exported %q", name)
	printFile(written)

	return nil
}

// exportFileName derives a safe file name from a quest or project name.
func exportFileName(name string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, name)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "export"
	}
	return filepath.Clean(slug + ".quest.json")
}
