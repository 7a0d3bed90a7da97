package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/questforge/questforge/pkg/quest"
	"github.com/questforge/questforge/pkg/validate"
)

// validateCommand creates the validate command for checking quest structure.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		questRef string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "validate [project.json]",
		Short: "Check quest graphs for structural problems",
		Long: `Check quest graphs for structural problems.

Reports errors (missing or duplicate start nodes, options without outgoing
connections, unreachable parts of the graph) and warnings (orphan nodes,
empty option labels, dead ends). Exits non-zero when any quest has errors,
so the command can gate a content pipeline.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0], questRef, asJSON)
		},
	}

	cmd.Flags().StringVarP(&questRef, "quest", "q", "", "quest id or name (default: all quests)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit issues as JSON")

	return cmd
}

// questReport is the validation outcome for one quest.
type questReport struct {
	QuestID   string           `json:"questId"`
	QuestName string           `json:"questName"`
	Issues    []validate.Issue `json:"issues"`
}

func (c *CLI) runValidate(ctx context.Context, path, questRef string, asJSON bool) error {
	f, err := c.loadProject(path)
	if err != nil {
		return err
	}

	targets, err := f.quests(questRef)
	if err != nil {
		return err
	}

	reports := make([]questReport, len(targets))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for i, q := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			issues := validate.Validate(q)
			mu.Lock()
			reports[i] = questReport{QuestID: q.ID, QuestName: q.Name, Issues: issues}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if asJSON {
		return printReportsJSON(reports)
	}
	return printReports(targets, reports)
}

func printReportsJSON(reports []questReport) error {
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	failed := 0
	for _, r := range reports {
		if validate.HasErrors(r.Issues) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d quest(s) failed validation", failed)
	}
	return nil
}

func printReports(targets []*quest.Quest, reports []questReport) error {
	failed := 0
	for i, r := range reports {
		q := targets[i]
		if len(r.Issues) == 0 {
			printSuccess("%s", q.Name)
			printQuestStats(len(q.Nodes), len(q.Connections))
			continue
		}

		if validate.HasErrors(r.Issues) {
			failed++
			printError("%s", q.Name)
		} else {
			printWarning("%s", q.Name)
		}
		printQuestStats(len(q.Nodes), len(q.Connections))

		// Errors first, then warnings.
		issues := append([]validate.Issue(nil), r.Issues...)
		sort.SliceStable(issues, func(a, b int) bool {
			return issues[a].Severity == validate.SeverityError && issues[b].Severity != validate.SeverityError
		})
		for _, issue := range issues {
			tag := StyleWarning.Render("warning")
			if issue.Severity == validate.SeverityError {
				tag = StyleError.Render("error")
			}
			detail := issue.Message
			if issue.NodeID != "" {
				detail += StyleDim.Render(" [" + issue.NodeID + "]")
			}
			printDetail("%s %s", tag, detail)
		}
	}

	if failed > 0 {
		printNewline()
		return fmt.Errorf("%d quest(s) failed validation", failed)
	}
	return nil
}
