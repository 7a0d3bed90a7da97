package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/pkg/shell"
)

// recentCommand creates the recent command for listing recently-opened projects.
func (c *CLI) recentCommand() *cobra.Command {
	var prune bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened project files",
		Long: `List recently opened project files, most recent first.

Entries whose files no longer exist are marked; use --prune to drop them
from the list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRecent(prune)
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "drop entries whose files are gone")

	return cmd
}

func (c *CLI) runRecent(prune bool) error {
	store, err := shell.NewRecentsStore("")
	if err != nil {
		return err
	}

	entries := store.List()
	if len(entries) == 0 {
		printInfo("No recent projects")
		return nil
	}

	for _, e := range entries {
		if _, err := os.Stat(e.Path); err != nil {
			if prune {
				if err := store.Remove(e.Path); err != nil {
					return err
				}
				printDetail("pruned %s", e.Path)
				continue
			}
			printWarning("%s %s", e.Name, StyleDim.Render(e.Path+" (missing)"))
			continue
		}
		printInfo("%s %s", StyleValue.Render(e.Name), StyleDim.Render(e.Path))
		printDetail("opened %s", e.OpenedAt.Local().Format("2006-01-02 15:04"))
	}

	return nil
}
