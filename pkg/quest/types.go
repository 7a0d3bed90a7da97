package quest

import "fmt"

// NodeType discriminates the node variants of a quest graph.
type NodeType string

// Node types.
const (
	TypeStart    NodeType = "START"
	TypeDialogue NodeType = "DIALOGUE"
	TypeChoice   NodeType = "CHOICE"
	TypeEvent    NodeType = "EVENT"
	TypeIf       NodeType = "IF"
	TypeAnd      NodeType = "AND"
	TypeOr       NodeType = "OR"
	TypeEnd      NodeType = "END"
)

// NodeTypes lists all valid node types in a stable order.
// Useful for CLI completion and exhaustiveness checks in tests.
var NodeTypes = []NodeType{
	TypeStart, TypeDialogue, TypeChoice, TypeEvent,
	TypeIf, TypeAnd, TypeOr, TypeEnd,
}

// EventAction selects how an EVENT node interacts with its global event.
type EventAction string

// Event actions. A TRIGGER fires the event and continues through a single
// unnamed port; a CHECK queries it and branches through "true"/"false" ports.
const (
	ActionTrigger EventAction = "TRIGGER"
	ActionCheck   EventAction = "CHECK"
)

// Outcome classifies how a quest ends at an END node.
type Outcome string

// Quest outcomes.
const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeFailure Outcome = "FAILURE"
	OutcomeNeutral Outcome = "NEUTRAL"
)

// Named output ports of binary-branching nodes (IF, EVENT/CHECK).
const (
	OutputTrue  = "true"
	OutputFalse = "false"
)

// Position is a canvas coordinate. No constraints; negative values are valid.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport is the canvas pan/zoom state stored per quest.
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// DefaultViewport returns the reset viewport state: origin, 1x zoom.
func DefaultViewport() Viewport { return Viewport{Zoom: 1} }

// Option is a labeled output port representing a player-facing choice.
// Option IDs are unique within their whole quest, not just within the
// owning node - connections reference them as port keys across the
// entire connection set.
type Option struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	ShortLabel string `json:"shortLabel,omitempty"`
}

// Location places a START node in the game world.
type Location struct {
	Name string   `json:"name,omitempty"`
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
	Z    *float64 `json:"z,omitempty"`
}

// NPC identifies the quest giver attached to a START node.
type NPC struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Reward is granted when a quest reaches an END node.
type Reward struct {
	Type     string `json:"type"` // ITEM, GOLD, EXPERIENCE, CUSTOM
	Value    any    `json:"value"`
	Quantity int    `json:"quantity,omitempty"`
}

// FactionChange adjusts faction standing at an END node.
type FactionChange struct {
	FactionID   string `json:"factionId"`
	FactionName string `json:"factionName"`
	Change      int    `json:"change"`
}

// Node is a vertex in a quest graph. It is a flat tagged record: Type
// selects the variant and which of the variant fields are meaningful.
// Engines must switch exhaustively on Type rather than probing fields.
//
//	START     Title, Description, Location, NPC, Options
//	DIALOGUE  Speaker, Text, Options
//	CHOICE    Prompt, Options
//	EVENT     EventID, EventName, Action, Parameters
//	IF        Condition (opaque text, never evaluated here)
//	AND/OR    InputCount (>= 2 input ports, single unnamed output)
//	END       Title, Outcome, Description, Rewards, FactionChanges, TriggeredEvents
//
// The zero value is not usable - create nodes with [NewNode].
type Node struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Position Position `json:"position"`

	// Measured on-screen size, provided by the rendering surface.
	// Transient layout hints; zero when the node was never rendered.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// START / END
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Location    *Location `json:"location,omitempty"`
	NPC         *NPC      `json:"npc,omitempty"`

	// DIALOGUE
	Speaker string `json:"speaker,omitempty"`
	Text    string `json:"text,omitempty"`

	// CHOICE
	Prompt string `json:"prompt,omitempty"`

	// START / DIALOGUE / CHOICE
	Options []Option `json:"options,omitempty"`

	// EVENT
	EventID    string         `json:"eventId,omitempty"`
	EventName  string         `json:"eventName,omitempty"`
	Action     EventAction    `json:"action,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`

	// IF
	Condition string `json:"condition,omitempty"`

	// AND / OR
	InputCount int `json:"inputCount,omitempty"`

	// END
	Outcome         Outcome         `json:"outcome,omitempty"`
	Rewards         []Reward        `json:"rewards,omitempty"`
	FactionChanges  []FactionChange `json:"factionChanges,omitempty"`
	TriggeredEvents []string        `json:"triggeredEvents,omitempty"`
}

// HasOptions reports whether the node's variant carries labeled option ports.
func (n *Node) HasOptions() bool {
	switch n.Type {
	case TypeStart, TypeDialogue, TypeChoice:
		return true
	}
	return false
}

// BranchesBinary reports whether the node exits through named
// "true"/"false" ports: IF nodes and EVENT nodes checking a condition.
func (n *Node) BranchesBinary() bool {
	return n.Type == TypeIf || (n.Type == TypeEvent && n.Action == ActionCheck)
}

// RequiresOutput reports whether the node must have at least one outgoing
// connection to be structurally complete: gates (AND/OR) and triggering
// EVENT nodes.
func (n *Node) RequiresOutput() bool {
	switch n.Type {
	case TypeAnd, TypeOr:
		return true
	case TypeEvent:
		return n.Action == ActionTrigger
	}
	return false
}

// Terminal reports whether the node is a valid traversal leaf: END nodes
// and triggering EVENT nodes may legitimately have no outgoing edges.
func (n *Node) Terminal() bool {
	return n.Type == TypeEnd || (n.Type == TypeEvent && n.Action == ActionTrigger)
}

// Label returns a short human-readable label for the node, used in
// validation messages and CLI output.
func (n *Node) Label() string {
	switch n.Type {
	case TypeStart:
		if n.Title != "" {
			return n.Title
		}
		return "START"
	case TypeDialogue:
		if n.Speaker != "" {
			return "Dialogue: " + n.Speaker
		}
		return "Dialogue"
	case TypeChoice:
		if n.Prompt != "" {
			return "Choice: " + truncate(n.Prompt, 20) + "..."
		}
		return "Choice"
	case TypeEvent:
		name := n.EventName
		if name == "" {
			name = n.EventID
		}
		if name == "" {
			name = "unnamed"
		}
		return "Event: " + name
	case TypeIf:
		cond := truncate(n.Condition, 20)
		if cond == "" {
			cond = "no condition"
		}
		return "IF: " + cond + "..."
	case TypeAnd:
		return "AND"
	case TypeOr:
		return "OR"
	case TypeEnd:
		if n.Title != "" {
			return n.Title
		}
		return "END"
	}
	return string(n.Type)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Connection is a directed edge between two nodes.
//
// Exactly one of SourceOptionID (the edge leaves through an option port)
// or SourceOutput (a named port such as "true"/"false") identifies the
// output port; both empty means the node's single unnamed port.
// TargetHandle optionally names the input slot on multi-input nodes
// (AND/OR) and is empty for single-input targets.
type Connection struct {
	ID             string `json:"id"`
	SourceNodeID   string `json:"sourceNodeId"`
	SourceOptionID string `json:"sourceOptionId,omitempty"`
	SourceOutput   string `json:"sourceOutput,omitempty"`
	TargetNodeID   string `json:"targetNodeId"`
	TargetHandle   string `json:"targetHandle,omitempty"`
}

// PortKey returns the key identifying the output port this connection
// leaves from: the option id for option ports, "nodeID-output" for named
// ports, or empty for the single unnamed port.
func (c *Connection) PortKey() string {
	if c.SourceOptionID != "" {
		return c.SourceOptionID
	}
	if c.SourceOutput != "" {
		return fmt.Sprintf("%s-%s", c.SourceNodeID, c.SourceOutput)
	}
	return ""
}

// EventParameter describes one typed parameter of a global event schema.
type EventParameter struct {
	Name         string `json:"name"`
	Type         string `json:"type"` // string, number, boolean
	DefaultValue any    `json:"defaultValue,omitempty"`
	Description  string `json:"description,omitempty"`
}
