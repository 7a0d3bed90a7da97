package cli

import (
	"github.com/spf13/cobra"

	"github.com/questforge/questforge/pkg/shell"
	"github.com/questforge/questforge/pkg/transcode"
)

// importCommand creates the import command for bringing quests into a project.
func (c *CLI) importCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [project.json] [quest-export.json]",
		Short: "Import an exported quest into a project",
		Long: `Import an exported quest into a project.

The quest's nodes, options, and connections are assigned fresh identifiers
so the import can never collide with existing content, and the quest is
renamed with an "(Imported)" suffix. The project file is rewritten in
place.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(args[0], args[1])
		},
	}

	return cmd
}

func (c *CLI) runImport(projectPath, questPath string) error {
	f, err := c.loadProject(projectPath)
	if err != nil {
		return err
	}

	res, err := shell.ReadChosenFile(shell.FixedPath(questPath))
	if err != nil {
		return err
	}

	q, err := transcode.ParseQuest(res.Data)
	if err != nil {
		return err
	}

	f.Project.AddQuest(*q)
	if err := f.Save(); err != nil {
		return err
	}

	printSuccess("Imported %q", q.Name)
	printQuestStats(len(q.Nodes), len(q.Connections))
	printFile(projectPath)
	printNewline()
	printNextStep("Validate", "questforge validate "+projectPath+" --quest "+q.ID)

	return nil
}
