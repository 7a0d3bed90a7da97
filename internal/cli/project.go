package cli

import (
	"fmt"

	qerrors "github.com/questforge/questforge/pkg/errors"
	"github.com/questforge/questforge/pkg/quest"
	"github.com/questforge/questforge/pkg/shell"
)

// projectFile pairs a loaded project with the path it came from.
type projectFile struct {
	Path    string
	Project *quest.Project
}

// Save writes the project back to its file.
func (f *projectFile) Save() error {
	return shell.SaveProject(f.Path, f.Project)
}

// resolveQuest finds a quest by id or by name, or returns the project's
// only quest when ref is empty.
func (f *projectFile) resolveQuest(ref string) (*quest.Quest, error) {
	if ref == "" {
		if len(f.Project.Quests) == 1 {
			return &f.Project.Quests[0], nil
		}
		return nil, qerrors.New(qerrors.ErrCodeQuestNotFound,
			"project has %d quests, specify one with --quest", len(f.Project.Quests))
	}
	if q := f.Project.Quest(ref); q != nil {
		return q, nil
	}
	if q := f.Project.QuestByName(ref); q != nil {
		return q, nil
	}
	return nil, qerrors.New(qerrors.ErrCodeQuestNotFound, "no quest %q in project", ref)
}

// quests returns the quests to operate on: the one quest ref names, or
// all of them when ref is empty.
func (f *projectFile) quests(ref string) ([]*quest.Quest, error) {
	if ref == "" {
		out := make([]*quest.Quest, 0, len(f.Project.Quests))
		for i := range f.Project.Quests {
			out = append(out, &f.Project.Quests[i])
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("project %q has no quests", f.Project.Name)
		}
		return out, nil
	}
	q, err := f.resolveQuest(ref)
	if err != nil {
		return nil, err
	}
	return []*quest.Quest{q}, nil
}
