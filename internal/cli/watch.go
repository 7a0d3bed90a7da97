package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/questforge/questforge/pkg/shell"
	"github.com/questforge/questforge/pkg/validate"
)

// debounceDelay coalesces bursts of write events from editors that save in
// multiple steps.
const debounceDelay = 200 * time.Millisecond

// watchCommand creates the watch command for continuous validation.
func (c *CLI) watchCommand() *cobra.Command {
	var questRef string

	cmd := &cobra.Command{
		Use:   "watch [project.json]",
		Short: "Re-validate the project whenever the file changes",
		Long: `Re-validate the project whenever the file changes.

Watches the project file and re-runs validation after every save, printing
a fresh report. Useful in a second terminal while editing quest content.
Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), args[0], questRef)
		},
	}

	cmd.Flags().StringVarP(&questRef, "quest", "q", "", "quest id or name (default: all quests)")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, path, questRef string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the directory rather than the file: editors that save via
	// rename replace the inode and would silently detach a file watch.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return err
	}
	target := filepath.Clean(path)

	c.Logger.Info("watching", "path", target)
	c.checkOnce(target, questRef)

	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			c.Logger.Info("watch stopped")
			return nil

		case <-fire:
			c.checkOnce(target, questRef)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			c.Logger.Debug("file changed", "op", ev.Op.String())
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
				fire = debounce.C
			} else {
				debounce.Reset(debounceDelay)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "error", err)
		}
	}
}

// checkOnce loads and validates the project, printing a report. Load
// failures are reported but do not stop the watch: a half-written file
// will settle on the next event.
func (c *CLI) checkOnce(path, questRef string) {
	p, err := shell.LoadProject(path)
	if err != nil {
		printError("%v", err)
		return
	}

	f := &projectFile{Path: path, Project: p}
	targets, err := f.quests(questRef)
	if err != nil {
		printError("%v", err)
		return
	}

	printNewline()
	printInfo("%s", StyleDim.Render(time.Now().Format("15:04:05")))

	reports := make([]questReport, len(targets))
	for i, q := range targets {
		reports[i] = questReport{QuestID: q.ID, QuestName: q.Name, Issues: validate.Validate(q)}
	}
	if err := printReports(targets, reports); err != nil {
		printError("%v", err)
	}
}
