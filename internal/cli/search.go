package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/pkg/search"
)

// searchCommand creates the search command for finding text in quests.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		questRef string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "search [project.json] [query]",
		Short: "Search quest content for a text fragment",
		Long: `Search quest content for a text fragment.

Matches are case-insensitive and cover node titles, speakers, dialogue and
prompt text, event names, and option labels. Each match reports the node it
was found in and which field matched.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(args[0], args[1], questRef, asJSON)
		},
	}

	cmd.Flags().StringVarP(&questRef, "quest", "q", "", "quest id or name (default: all quests)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit matches as JSON")

	return cmd
}

func (c *CLI) runSearch(path, query, questRef string, asJSON bool) error {
	f, err := c.loadProject(path)
	if err != nil {
		return err
	}

	targets, err := f.quests(questRef)
	if err != nil {
		return err
	}

	type questMatches struct {
		QuestID   string         `json:"questId"`
		QuestName string         `json:"questName"`
		Matches   []search.Match `json:"matches"`
	}

	var results []questMatches
	total := 0
	for _, q := range targets {
		matches := search.Search(q, query)
		if len(matches) == 0 {
			continue
		}
		total += len(matches)
		results = append(results, questMatches{QuestID: q.ID, QuestName: q.Name, Matches: matches})
	}

	if asJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if total == 0 {
		printInfo("No matches for %q", query)
		return nil
	}

	printSuccess("%d match(es) for %q", total, query)
	for _, r := range results {
		printInfo("%s", StyleHighlight.Render(r.QuestName))
		for _, m := range r.Matches {
			printDetail("%s %s %s", StyleDim.Render(string(m.Type)), m.Text, StyleDim.Render("["+m.NodeID+"]"))
		}
	}

	return nil
}
