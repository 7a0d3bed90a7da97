package layout

import (
	"strings"
	"testing"

	"github.com/questforge/questforge/pkg/quest"
)

func TestEstimateHeight(t *testing.T) {
	tests := []struct {
		name string
		node quest.Node
		want float64
	}{
		{
			name: "EventFlat",
			node: quest.Node{Type: quest.TypeEvent, EventName: strings.Repeat("x", 500)},
			want: headerHeight + eventBodyHeight,
		},
		{
			name: "EmptyDialogueFloor",
			node: quest.Node{Type: quest.TypeDialogue},
			want: minNodeHeight,
		},
		{
			name: "DialogueWithSpeakerAndOption",
			// 44 header + 32 speaker + (1 line * 20 + 16) + 30 option = 142
			node: quest.Node{
				Type:    quest.TypeDialogue,
				Speaker: "Guard",
				Text:    "Halt!",
				Options: []quest.Option{{ID: "o1", Label: "Run"}},
			},
			want: 142,
		},
		{
			name: "ChoiceOptionsStack",
			// 44 header + (1*20 + 16) + 3*30 = 170
			node: quest.Node{
				Type:   quest.TypeChoice,
				Prompt: "Pick",
				Options: []quest.Option{
					{ID: "o1"}, {ID: "o2"}, {ID: "o3"},
				},
			},
			want: 170,
		},
		{
			name: "GateExtraInputs",
			// 44 header + (0 + 16) + (4-2)*20 = 100
			node: quest.Node{Type: quest.TypeAnd, InputCount: 4},
			want: 100,
		},
		{
			name: "GateDefaultInputs",
			// 44 + 16, below the 80 floor
			node: quest.Node{Type: quest.TypeOr},
			want: minNodeHeight,
		},
		{
			name: "EndWithRewards",
			// 44 header + 32 outcome + (0 + 16) + 2*24 = 140
			node: quest.Node{
				Type:    quest.TypeEnd,
				Outcome: quest.OutcomeSuccess,
				Rewards: []quest.Reward{{Type: "GOLD"}, {Type: "ITEM"}},
			},
			want: 140,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateHeight(&tt.node); got != tt.want {
				t.Errorf("EstimateHeight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimateHeightWrapsLongText(t *testing.T) {
	short := quest.Node{Type: quest.TypeDialogue, Text: "Hi."}
	long := quest.Node{Type: quest.TypeDialogue, Text: strings.Repeat("a very long line ", 30)}
	if EstimateHeight(&long) <= EstimateHeight(&short) {
		t.Errorf("long text height %v not greater than short %v",
			EstimateHeight(&long), EstimateHeight(&short))
	}
}

func TestEstimateTextLines(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  float64
	}{
		{"Empty", "", 236, 0},
		{"OneLine", "short", 236, 1},
		{"ExactFit", strings.Repeat("x", 39), 236, 1},
		{"Wraps", strings.Repeat("x", 40), 236, 2},
		{"TinyContainer", "abc", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimateTextLines(tt.text, tt.width); got != tt.want {
				t.Errorf("estimateTextLines(%d chars, %v) = %v, want %v",
					len(tt.text), tt.width, got, tt.want)
			}
		})
	}
}
