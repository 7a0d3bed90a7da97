package validate

import (
	"testing"

	"github.com/questforge/questforge/pkg/quest"
)

// codes collects the issue type of every finding, as a multiset.
func codes(issues []Issue) map[string]int {
	m := make(map[string]int)
	for _, issue := range issues {
		m[issue.Type]++
	}
	return m
}

// connected builds a minimal valid quest: START -option-> DIALOGUE -option-> END.
func connected() *quest.Quest {
	q := quest.NewQuest("Main")
	start := quest.NewNode(quest.TypeStart, quest.Position{})
	dialogue := quest.NewNode(quest.TypeDialogue, quest.Position{})
	end := quest.NewNode(quest.TypeEnd, quest.Position{})
	q.Nodes = append(q.Nodes, start, dialogue, end)
	q.Connections = append(q.Connections,
		quest.Connection{ID: "c1", SourceNodeID: start.ID, SourceOptionID: start.Options[0].ID, TargetNodeID: dialogue.ID},
		quest.Connection{ID: "c2", SourceNodeID: dialogue.ID, SourceOptionID: dialogue.Options[0].ID, TargetNodeID: end.ID},
	)
	return &q
}

func TestValidateCleanQuest(t *testing.T) {
	q := connected()
	issues := Validate(q)
	if len(issues) != 0 {
		t.Errorf("Validate() = %v, want no issues", issues)
	}
	if !IsQuestValid(q) {
		t.Error("IsQuestValid() = false, want true")
	}
}

func TestValidateMissingStart(t *testing.T) {
	q := quest.NewQuest("Main")
	end := quest.NewNode(quest.TypeEnd, quest.Position{})
	q.Nodes = append(q.Nodes, end)

	got := codes(Validate(&q))
	if got[CodeMissingStart] != 1 {
		t.Errorf("MISSING_START count = %d, want 1", got[CodeMissingStart])
	}
	// No single START means no reachability pass.
	if got[CodeUnreachable] != 0 {
		t.Errorf("UNREACHABLE count = %d, want 0", got[CodeUnreachable])
	}
}

func TestValidateMultipleStart(t *testing.T) {
	q := connected()
	q.Nodes = append(q.Nodes, quest.NewNode(quest.TypeStart, quest.Position{}))

	got := codes(Validate(q))
	if got[CodeMultipleStart] != 1 {
		t.Errorf("MULTIPLE_START count = %d, want 1", got[CodeMultipleStart])
	}
}

func TestValidateOrphanAndUnreachable(t *testing.T) {
	q := connected()
	orphan := quest.NewNode(quest.TypeDialogue, quest.Position{})
	// Connect the orphan's option outward so only its lack of inbound
	// edges is reported.
	q.Nodes = append(q.Nodes, orphan)
	q.Connections = append(q.Connections, quest.Connection{
		ID: "c3", SourceNodeID: orphan.ID, SourceOptionID: orphan.Options[0].ID, TargetNodeID: q.Nodes[2].ID,
	})

	got := codes(Validate(q))
	if got[CodeOrphanNode] != 1 {
		t.Errorf("ORPHAN_NODE count = %d, want 1", got[CodeOrphanNode])
	}
	// An orphan is by definition also unreachable from START.
	if got[CodeUnreachable] != 1 {
		t.Errorf("UNREACHABLE count = %d, want 1", got[CodeUnreachable])
	}
}

func TestValidateUnconnectedOption(t *testing.T) {
	q := connected()
	choice := quest.NewNode(quest.TypeChoice, quest.Position{})
	q.Nodes = append(q.Nodes, choice)
	// Reach the choice from the dialogue but leave both options dangling.
	q.Connections = append(q.Connections, quest.Connection{
		ID: "c3", SourceNodeID: q.Nodes[1].ID, TargetNodeID: choice.ID,
	})

	issues := Validate(q)
	got := codes(issues)
	if got[CodeUnconnectedOption] != 2 {
		t.Errorf("UNCONNECTED_OPTION count = %d, want 2", got[CodeUnconnectedOption])
	}
	for _, issue := range issues {
		if issue.Type == CodeUnconnectedOption {
			if issue.Severity != SeverityError {
				t.Errorf("severity = %q, want error", issue.Severity)
			}
			if issue.NodeID != choice.ID {
				t.Errorf("NodeID = %q, want %q", issue.NodeID, choice.ID)
			}
			if issue.OptionID == "" {
				t.Error("OptionID is empty")
			}
		}
	}
}

func TestValidateEmptyOptionLabel(t *testing.T) {
	q := connected()
	dialogue := q.Node(q.Nodes[1].ID)
	dialogue.Options[0].Label = "   "

	got := codes(Validate(q))
	if got[CodeEmptyOption] != 1 {
		t.Errorf("EMPTY_OPTION count = %d, want 1", got[CodeEmptyOption])
	}
}

func TestValidateUnconnectedOutputs(t *testing.T) {
	tests := []struct {
		name string
		node func() quest.Node
	}{
		{"If", func() quest.Node { return quest.NewNode(quest.TypeIf, quest.Position{}) }},
		{"CheckingEvent", func() quest.Node {
			n := quest.NewNode(quest.TypeEvent, quest.Position{})
			n.Action = quest.ActionCheck
			return n
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := connected()
			branch := tt.node()
			q.Nodes = append(q.Nodes, branch)
			q.Connections = append(q.Connections, quest.Connection{
				ID: "c3", SourceNodeID: q.Nodes[1].ID, TargetNodeID: branch.ID,
			})

			got := codes(Validate(q))
			if got[CodeUnconnectedOutput] != 2 {
				t.Errorf("UNCONNECTED_OUTPUT count = %d, want 2 (true and false)", got[CodeUnconnectedOutput])
			}

			// Wire only the true output; the false side must still be flagged.
			q.Connections = append(q.Connections, quest.Connection{
				ID: "c4", SourceNodeID: branch.ID, SourceOutput: quest.OutputTrue, TargetNodeID: q.Nodes[2].ID,
			})
			got = codes(Validate(q))
			if got[CodeUnconnectedOutput] != 1 {
				t.Errorf("UNCONNECTED_OUTPUT count = %d, want 1 after wiring true", got[CodeUnconnectedOutput])
			}
		})
	}
}

func TestValidateDeadEndGate(t *testing.T) {
	q := connected()
	gate := quest.NewNode(quest.TypeAnd, quest.Position{})
	q.Nodes = append(q.Nodes, gate)
	q.Connections = append(q.Connections, quest.Connection{
		ID: "c3", SourceNodeID: q.Nodes[1].ID, TargetNodeID: gate.ID,
	})

	got := codes(Validate(q))
	if got[CodeDeadEnd] != 1 {
		t.Errorf("DEAD_END count = %d, want 1", got[CodeDeadEnd])
	}

	q.Connections = append(q.Connections, quest.Connection{
		ID: "c4", SourceNodeID: gate.ID, TargetNodeID: q.Nodes[2].ID,
	})
	got = codes(Validate(q))
	if got[CodeDeadEnd] != 0 {
		t.Errorf("DEAD_END count = %d, want 0 after wiring output", got[CodeDeadEnd])
	}
}

func TestValidateTriggeringEventIsTerminal(t *testing.T) {
	// A triggering EVENT requires an output but is a legal traversal leaf:
	// it must not make downstream nodes unreachable on its own.
	q := connected()
	ev := quest.NewNode(quest.TypeEvent, quest.Position{})
	q.Nodes = append(q.Nodes, ev)
	q.Connections = append(q.Connections,
		quest.Connection{ID: "c3", SourceNodeID: q.Nodes[1].ID, TargetNodeID: ev.ID},
	)

	got := codes(Validate(q))
	if got[CodeDeadEnd] != 1 {
		t.Errorf("DEAD_END count = %d, want 1 for trigger without output", got[CodeDeadEnd])
	}
}

func TestValidateCycleTerminates(t *testing.T) {
	q := quest.NewQuest("Loop")
	start := quest.NewNode(quest.TypeStart, quest.Position{})
	a := quest.NewNode(quest.TypeDialogue, quest.Position{})
	b := quest.NewNode(quest.TypeDialogue, quest.Position{})
	q.Nodes = append(q.Nodes, start, a, b)
	q.Connections = append(q.Connections,
		quest.Connection{ID: "c1", SourceNodeID: start.ID, SourceOptionID: start.Options[0].ID, TargetNodeID: a.ID},
		quest.Connection{ID: "c2", SourceNodeID: a.ID, SourceOptionID: a.Options[0].ID, TargetNodeID: b.ID},
		quest.Connection{ID: "c3", SourceNodeID: b.ID, SourceOptionID: b.Options[0].ID, TargetNodeID: a.ID},
	)

	issues := Validate(&q) // must terminate
	got := codes(issues)
	if got[CodeUnreachable] != 0 {
		t.Errorf("UNREACHABLE count = %d, want 0 inside the cycle", got[CodeUnreachable])
	}
}

func TestValidateDanglingConnectionSkipped(t *testing.T) {
	q := connected()
	q.Connections = append(q.Connections, quest.Connection{
		ID: "c9", SourceNodeID: q.Nodes[1].ID, TargetNodeID: "ghost",
	})

	issues := Validate(q) // must not panic
	for _, issue := range issues {
		if issue.NodeID == "ghost" {
			t.Errorf("issue reported for nonexistent node: %v", issue)
		}
	}
}

func TestIssueIDsSequential(t *testing.T) {
	q := quest.NewQuest("Empty")
	choice := quest.NewNode(quest.TypeChoice, quest.Position{})
	q.Nodes = append(q.Nodes, choice)

	issues := Validate(&q)
	if len(issues) < 2 {
		t.Fatalf("len(issues) = %d, want at least 2", len(issues))
	}
	for i, issue := range issues {
		want := "issue-" + string(rune('1'+i))
		if i < 9 && issue.ID != want {
			t.Errorf("issues[%d].ID = %q, want %q", i, issue.ID, want)
		}
	}
}

func TestHasErrors(t *testing.T) {
	if HasErrors([]Issue{{Severity: SeverityWarning}}) {
		t.Error("HasErrors(warnings) = true, want false")
	}
	if !HasErrors([]Issue{{Severity: SeverityWarning}, {Severity: SeverityError}}) {
		t.Error("HasErrors(mixed) = false, want true")
	}
	if HasErrors(nil) {
		t.Error("HasErrors(nil) = true, want false")
	}
}
