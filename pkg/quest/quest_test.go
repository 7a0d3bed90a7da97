package quest

import (
	"testing"
)

func TestNewNodeDefaults(t *testing.T) {
	tests := []struct {
		name  string
		typ   NodeType
		check func(t *testing.T, n Node)
	}{
		{
			name: "Start",
			typ:  TypeStart,
			check: func(t *testing.T, n Node) {
				if n.Title != "Quest Start" {
					t.Errorf("Title = %q, want %q", n.Title, "Quest Start")
				}
				if len(n.Options) != 1 || n.Options[0].Label != "Accept" {
					t.Errorf("Options = %v, want single Accept option", n.Options)
				}
			},
		},
		{
			name: "Dialogue",
			typ:  TypeDialogue,
			check: func(t *testing.T, n Node) {
				if len(n.Options) != 1 || n.Options[0].Label != "Continue" {
					t.Errorf("Options = %v, want single Continue option", n.Options)
				}
			},
		},
		{
			name: "Choice",
			typ:  TypeChoice,
			check: func(t *testing.T, n Node) {
				if n.Prompt != "What do you do?" {
					t.Errorf("Prompt = %q, want %q", n.Prompt, "What do you do?")
				}
				if len(n.Options) != 2 {
					t.Errorf("len(Options) = %d, want 2", len(n.Options))
				}
			},
		},
		{
			name: "Event",
			typ:  TypeEvent,
			check: func(t *testing.T, n Node) {
				if n.Action != ActionTrigger {
					t.Errorf("Action = %q, want %q", n.Action, ActionTrigger)
				}
			},
		},
		{
			name: "And",
			typ:  TypeAnd,
			check: func(t *testing.T, n Node) {
				if n.InputCount != 2 {
					t.Errorf("InputCount = %d, want 2", n.InputCount)
				}
			},
		},
		{
			name: "End",
			typ:  TypeEnd,
			check: func(t *testing.T, n Node) {
				if n.Outcome != OutcomeSuccess {
					t.Errorf("Outcome = %q, want %q", n.Outcome, OutcomeSuccess)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNode(tt.typ, Position{X: 10, Y: 20})
			if n.ID == "" {
				t.Error("ID is empty")
			}
			if n.Type != tt.typ {
				t.Errorf("Type = %q, want %q", n.Type, tt.typ)
			}
			if n.Position.X != 10 || n.Position.Y != 20 {
				t.Errorf("Position = %v, want {10 20}", n.Position)
			}
			tt.check(t, n)
		})
	}
}

func TestNewNodeUniqueIDs(t *testing.T) {
	a := NewNode(TypeChoice, Position{})
	b := NewNode(TypeChoice, Position{})
	if a.ID == b.ID {
		t.Errorf("two nodes share id %q", a.ID)
	}
	if a.Options[0].ID == b.Options[0].ID {
		t.Errorf("two options share id %q", a.Options[0].ID)
	}
}

func TestCloneNode(t *testing.T) {
	orig := NewNode(TypeChoice, Position{X: 1, Y: 2})
	orig.Prompt = "Fight or flee?"

	clone := CloneNode(orig, Position{X: 30, Y: 40})

	if clone.ID == orig.ID {
		t.Error("clone kept the original node id")
	}
	if clone.Position.X != 30 || clone.Position.Y != 40 {
		t.Errorf("clone.Position = %v, want {30 40}", clone.Position)
	}
	if clone.Prompt != orig.Prompt {
		t.Errorf("clone.Prompt = %q, want %q", clone.Prompt, orig.Prompt)
	}
	if len(clone.Options) != len(orig.Options) {
		t.Fatalf("len(clone.Options) = %d, want %d", len(clone.Options), len(orig.Options))
	}
	for i := range clone.Options {
		if clone.Options[i].ID == orig.Options[i].ID {
			t.Errorf("option %d kept its id", i)
		}
		if clone.Options[i].Label != orig.Options[i].Label {
			t.Errorf("option %d label = %q, want %q", i, clone.Options[i].Label, orig.Options[i].Label)
		}
	}
}

func TestNodeLabel(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"StartTitle", Node{Type: TypeStart, Title: "Opening"}, "Opening"},
		{"StartDefault", Node{Type: TypeStart}, "START"},
		{"DialogueSpeaker", Node{Type: TypeDialogue, Speaker: "Guard"}, "Dialogue: Guard"},
		{"DialogueDefault", Node{Type: TypeDialogue}, "Dialogue"},
		{"ChoicePrompt", Node{Type: TypeChoice, Prompt: "Fight?"}, "Choice: Fight?..."},
		{"ChoiceDefault", Node{Type: TypeChoice}, "Choice"},
		{"EventNamed", Node{Type: TypeEvent, EventName: "open_gate"}, "Event: open_gate"},
		{"EventDefault", Node{Type: TypeEvent}, "Event: unnamed"},
		{"IfCondition", Node{Type: TypeIf, Condition: "has_key"}, "IF: has_key..."},
		{"IfDefault", Node{Type: TypeIf}, "IF: no condition..."},
		{"And", Node{Type: TypeAnd}, "AND"},
		{"Or", Node{Type: TypeOr}, "OR"},
		{"EndTitle", Node{Type: TypeEnd, Title: "Victory"}, "Victory"},
		{"EndDefault", Node{Type: TypeEnd}, "END"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNodeCapabilities(t *testing.T) {
	tests := []struct {
		name      string
		node      Node
		options   bool
		binary    bool
		reqOutput bool
		terminal  bool
	}{
		{"Start", Node{Type: TypeStart}, true, false, false, false},
		{"Dialogue", Node{Type: TypeDialogue}, true, false, false, false},
		{"Choice", Node{Type: TypeChoice}, true, false, false, false},
		{"If", Node{Type: TypeIf}, false, true, false, false},
		{"EventCheck", Node{Type: TypeEvent, Action: ActionCheck}, false, true, false, false},
		{"EventTrigger", Node{Type: TypeEvent, Action: ActionTrigger}, false, false, true, true},
		{"And", Node{Type: TypeAnd}, false, false, true, false},
		{"Or", Node{Type: TypeOr}, false, false, true, false},
		{"End", Node{Type: TypeEnd}, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.HasOptions(); got != tt.options {
				t.Errorf("HasOptions() = %v, want %v", got, tt.options)
			}
			if got := tt.node.BranchesBinary(); got != tt.binary {
				t.Errorf("BranchesBinary() = %v, want %v", got, tt.binary)
			}
			if got := tt.node.RequiresOutput(); got != tt.reqOutput {
				t.Errorf("RequiresOutput() = %v, want %v", got, tt.reqOutput)
			}
			if got := tt.node.Terminal(); got != tt.terminal {
				t.Errorf("Terminal() = %v, want %v", got, tt.terminal)
			}
		})
	}
}

func TestConnectionPortKey(t *testing.T) {
	tests := []struct {
		name string
		conn Connection
		want string
	}{
		{"Option", Connection{SourceNodeID: "n1", SourceOptionID: "opt1"}, "opt1"},
		{"Output", Connection{SourceNodeID: "n1", SourceOutput: "true"}, "n1-true"},
		{"FalseOutput", Connection{SourceNodeID: "n1", SourceOutput: "false"}, "n1-false"},
		{"Plain", Connection{SourceNodeID: "n1"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conn.PortKey(); got != tt.want {
				t.Errorf("PortKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProjectLookups(t *testing.T) {
	p := NewProject("World")
	q := NewQuest("Main")
	p.AddQuest(q)
	e := NewEvent("gate_opened", "the gate opens")
	p.AddEvent(e)

	if got := p.Quest(q.ID); got == nil || got.Name != "Main" {
		t.Errorf("Quest(%q) = %v, want Main", q.ID, got)
	}
	if got := p.QuestByName("Main"); got == nil || got.ID != q.ID {
		t.Errorf("QuestByName(Main) = %v, want id %q", got, q.ID)
	}
	if got := p.Quest("missing"); got != nil {
		t.Errorf("Quest(missing) = %v, want nil", got)
	}
	if got := p.Event(e.ID); got == nil || got.Name != "gate_opened" {
		t.Errorf("Event(%q) = %v, want gate_opened", e.ID, got)
	}
}
