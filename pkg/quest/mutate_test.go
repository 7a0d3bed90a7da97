package quest

import (
	"errors"
	"testing"
)

// buildQuest creates a quest with a START -> DIALOGUE -> END chain.
func buildQuest(t *testing.T) (Quest, [3]Node) {
	t.Helper()
	q := NewQuest("Main")
	start := NewNode(TypeStart, Position{X: 0, Y: 0})
	dialogue := NewNode(TypeDialogue, Position{X: 0, Y: 200})
	end := NewNode(TypeEnd, Position{X: 0, Y: 400})
	for _, n := range []Node{start, dialogue, end} {
		if err := q.AddNode(n); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}
	if _, err := q.AddConnection(Connection{
		SourceNodeID: start.ID, SourceOptionID: start.Options[0].ID, TargetNodeID: dialogue.ID,
	}); err != nil {
		t.Fatalf("AddConnection: %v", err)
	}
	if _, err := q.AddConnection(Connection{
		SourceNodeID: dialogue.ID, SourceOptionID: dialogue.Options[0].ID, TargetNodeID: end.ID,
	}); err != nil {
		t.Fatalf("AddConnection: %v", err)
	}
	return q, [3]Node{start, dialogue, end}
}

func TestAddNodeDuplicate(t *testing.T) {
	q := NewQuest("Main")
	n := NewNode(TypeDialogue, Position{})
	if err := q.AddNode(n); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := q.AddNode(n); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(duplicate) = %v, want ErrDuplicateNodeID", err)
	}
}

func TestUpdateNodePartial(t *testing.T) {
	q := NewQuest("Main")
	n := NewNode(TypeDialogue, Position{})
	n.Speaker = "Guard"
	if err := q.AddNode(n); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	text := "Halt!"
	if err := q.UpdateNode(n.ID, NodeUpdate{Text: &text}); err != nil {
		t.Fatalf("UpdateNode: %v", err)
	}

	got := q.Node(n.ID)
	if got.Text != "Halt!" {
		t.Errorf("Text = %q, want %q", got.Text, "Halt!")
	}
	if got.Speaker != "Guard" {
		t.Errorf("Speaker = %q, want unchanged %q", got.Speaker, "Guard")
	}

	if err := q.UpdateNode("missing", NodeUpdate{Text: &text}); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("UpdateNode(missing) = %v, want ErrUnknownNode", err)
	}
}

func TestDeleteNodeCascades(t *testing.T) {
	q, nodes := buildQuest(t)

	if err := q.DeleteNode(nodes[1].ID); err != nil {
		t.Fatalf("DeleteNode: %v", err)
	}

	if len(q.Nodes) != 2 {
		t.Errorf("len(Nodes) = %d, want 2", len(q.Nodes))
	}
	if len(q.Connections) != 0 {
		t.Errorf("len(Connections) = %d, want 0 after cascade", len(q.Connections))
	}

	if err := q.DeleteNode("missing"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("DeleteNode(missing) = %v, want ErrUnknownNode", err)
	}
}

func TestAddConnection(t *testing.T) {
	q, nodes := buildQuest(t)

	c, err := q.AddConnection(Connection{SourceNodeID: nodes[0].ID, TargetNodeID: nodes[2].ID})
	if err != nil {
		t.Fatalf("AddConnection: %v", err)
	}
	if c.ID == "" {
		t.Error("connection id not assigned")
	}
	if q.Connection(c.ID) == nil {
		t.Error("connection not stored")
	}

	if _, err := q.AddConnection(Connection{SourceNodeID: nodes[0].ID, TargetNodeID: "missing"}); !errors.Is(err, ErrUnknownEndpoint) {
		t.Errorf("AddConnection(bad target) = %v, want ErrUnknownEndpoint", err)
	}
	if _, err := q.AddConnection(Connection{SourceNodeID: "missing", TargetNodeID: nodes[2].ID}); !errors.Is(err, ErrUnknownEndpoint) {
		t.Errorf("AddConnection(bad source) = %v, want ErrUnknownEndpoint", err)
	}
}

func TestDeleteConnection(t *testing.T) {
	q, _ := buildQuest(t)
	id := q.Connections[0].ID

	if err := q.DeleteConnection(id); err != nil {
		t.Fatalf("DeleteConnection: %v", err)
	}
	if len(q.Connections) != 1 {
		t.Errorf("len(Connections) = %d, want 1", len(q.Connections))
	}
	if err := q.DeleteConnection(id); !errors.Is(err, ErrUnknownConnection) {
		t.Errorf("DeleteConnection(gone) = %v, want ErrUnknownConnection", err)
	}
}

func TestApplyLayout(t *testing.T) {
	q, nodes := buildQuest(t)

	q.ApplyLayout(map[string]Position{
		nodes[0].ID: {X: 100, Y: 50},
		"missing":   {X: 9, Y: 9},
	})

	if got := q.Node(nodes[0].ID).Position; got.X != 100 || got.Y != 50 {
		t.Errorf("moved node position = %v, want {100 50}", got)
	}
	if got := q.Node(nodes[1].ID).Position; got.X != 0 || got.Y != 200 {
		t.Errorf("unlisted node position = %v, want unchanged {0 200}", got)
	}
}

func TestProjectQuestOps(t *testing.T) {
	p := NewProject("World")
	q := NewQuest("Main")
	p.AddQuest(q)

	if err := p.RenameQuest(q.ID, "Prologue"); err != nil {
		t.Fatalf("RenameQuest: %v", err)
	}
	if got := p.Quest(q.ID).Name; got != "Prologue" {
		t.Errorf("Name = %q, want Prologue", got)
	}

	if err := p.DeleteQuest(q.ID); err != nil {
		t.Fatalf("DeleteQuest: %v", err)
	}
	if len(p.Quests) != 0 {
		t.Errorf("len(Quests) = %d, want 0", len(p.Quests))
	}
	if err := p.DeleteQuest(q.ID); !errors.Is(err, ErrUnknownQuest) {
		t.Errorf("DeleteQuest(gone) = %v, want ErrUnknownQuest", err)
	}
}

func TestProjectEventOps(t *testing.T) {
	p := NewProject("World")
	e := NewEvent("gate_opened", "")
	p.AddEvent(e)

	desc := "the gate is now open"
	if err := p.UpdateEvent(e.ID, EventUpdate{Description: &desc}); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if got := p.Event(e.ID).Description; got != desc {
		t.Errorf("Description = %q, want %q", got, desc)
	}

	if err := p.DeleteEvent(e.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if err := p.DeleteEvent(e.ID); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("DeleteEvent(gone) = %v, want ErrUnknownEvent", err)
	}
}
