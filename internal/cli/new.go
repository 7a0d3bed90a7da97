package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/pkg/quest"
	"github.com/questforge/questforge/pkg/shell"
)

// newCommand creates the new command for scaffolding a project file.
func (c *CLI) newCommand() *cobra.Command {
	var (
		name  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "new [project.json]",
		Short: "Create a new quest project file",
		Long: `Create a new quest project file.

The project starts with a single quest containing a START node, ready to be
edited. Use --name to set the project name; it defaults to the file name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNew(args[0], name, force)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "project name (default: derived from file name)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func (c *CLI) runNew(path, name string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if name == "" {
		name = "New Project"
	}

	p := quest.NewProject(name)
	q := quest.NewQuest("Main Quest")
	start := quest.NewNode(quest.TypeStart, quest.Position{X: 250, Y: 50})
	if err := q.AddNode(start); err != nil {
		return err
	}
	p.AddQuest(q)
	c.Logger.Debug("created project", "name", name, "quests", len(p.Quests))

	if err := shell.SaveProject(path, p); err != nil {
		return err
	}

	printSuccess("Created project %q", name)
	printFile(path)
	printNewline()
	printNextStep("Validate", "questforge validate "+path)

	return nil
}
