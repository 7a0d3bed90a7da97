// Package quest defines the quest graph document model: projects, quests,
// typed nodes, connections, options, and global events.
//
// The model is the foundation for every engine in this module. A [Project]
// owns its quests and events exclusively; a [Quest] owns its nodes and
// connections. All entities are created through explicit constructors,
// mutated through partial-update operations that refresh the owner's
// UpdatedAt timestamp, and destroyed through delete operations with
// cascading cleanup (deleting a node removes every connection that
// references it).
//
// Engines (validation, search, layout, transcoding) take the document as
// an explicit input and return new data. Mutation lives here and only
// here; the document is otherwise treated as an immutable snapshot.
package quest

import (
	"time"

	"github.com/google/uuid"
)

// FormatVersion is the document format version written into new projects
// and interchange files.
const FormatVersion = "1.0.0"

// Quest is one quest graph: nodes, the connections between them, and the
// canvas viewport. Nodes and connections are owned exclusively by their
// quest.
type Quest struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
	Viewport    Viewport     `json:"viewport"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Tags        []string     `json:"tags,omitempty"`
}

// GlobalEvent is a project-wide named event definition with a typed
// parameter schema. EVENT nodes reference it by id and bind actual
// parameter values against the schema.
type GlobalEvent struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	Parameters   []EventParameter `json:"parameters,omitempty"`
	UsedInQuests []string         `json:"usedInQuests"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// Settings holds per-project editor preferences.
type Settings struct {
	AutoSave         bool `json:"autoSave"`
	AutoSaveInterval int  `json:"autoSaveInterval"`
	GridSnap         bool `json:"gridSnap"`
	GridSize         int  `json:"gridSize"`
}

// DefaultSettings returns the settings applied to new projects and to
// imported projects that carry none.
func DefaultSettings() Settings {
	return Settings{
		AutoSave:         false,
		AutoSaveInterval: 40,
		GridSnap:         true,
		GridSize:         20,
	}
}

// Project is the top-level persisted document. It owns all quests and
// global events.
type Project struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Version   string        `json:"version"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Quests    []Quest       `json:"quests"`
	Events    []GlobalEvent `json:"events"`
	Settings  Settings      `json:"settings"`
}

// NewID returns a fresh unique identifier for any quest entity.
func NewID() string { return uuid.NewString() }

// NewProject creates an empty project with default settings.
func NewProject(name string) *Project {
	now := time.Now()
	return &Project{
		ID:        NewID(),
		Name:      name,
		Version:   FormatVersion,
		CreatedAt: now,
		UpdatedAt: now,
		Quests:    []Quest{},
		Events:    []GlobalEvent{},
		Settings:  DefaultSettings(),
	}
}

// NewQuest creates an empty quest with a reset viewport.
func NewQuest(name string) Quest {
	now := time.Now()
	return Quest{
		ID:          NewID(),
		Name:        name,
		Nodes:       []Node{},
		Connections: []Connection{},
		Viewport:    DefaultViewport(),
		CreatedAt:   now,
		UpdatedAt:   now,
		Tags:        []string{},
	}
}

// NewEvent creates a global event with an empty usage list.
func NewEvent(name, description string) GlobalEvent {
	now := time.Now()
	return GlobalEvent{
		ID:           NewID(),
		Name:         name,
		Description:  description,
		UsedInQuests: []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewNode creates a node of the given type at the given position, filled
// with the same editable defaults the editor seeds when a node is dropped
// onto the canvas.
func NewNode(t NodeType, pos Position) Node {
	n := Node{ID: NewID(), Type: t, Position: pos}
	switch t {
	case TypeStart:
		n.Title = "Quest Start"
		n.Description = "Enter quest description..."
		n.Options = []Option{{ID: NewID(), Label: "Accept"}}
	case TypeDialogue:
		n.Text = "Enter dialogue text..."
		n.Options = []Option{{ID: NewID(), Label: "Continue"}}
	case TypeChoice:
		n.Prompt = "What do you do?"
		n.Options = []Option{
			{ID: NewID(), Label: "Option 1"},
			{ID: NewID(), Label: "Option 2"},
		}
	case TypeEvent:
		n.Action = ActionTrigger
	case TypeAnd, TypeOr:
		n.InputCount = 2
	case TypeEnd:
		n.Title = "Quest Complete"
		n.Outcome = OutcomeSuccess
	}
	return n
}

// CloneNode returns a copy of the node with a fresh id, a fresh id for
// every option, and the given position. Used by copy/paste so pasted
// ports never collide with the originals.
func CloneNode(n Node, pos Position) Node {
	clone := n
	clone.ID = NewID()
	clone.Position = pos
	if len(n.Options) > 0 {
		clone.Options = make([]Option, len(n.Options))
		for i, opt := range n.Options {
			opt.ID = NewID()
			clone.Options[i] = opt
		}
	}
	return clone
}

// Node returns the node with the given id, or nil if not found.
func (q *Quest) Node(id string) *Node {
	for i := range q.Nodes {
		if q.Nodes[i].ID == id {
			return &q.Nodes[i]
		}
	}
	return nil
}

// Connection returns the connection with the given id, or nil if not found.
func (q *Quest) Connection(id string) *Connection {
	for i := range q.Connections {
		if q.Connections[i].ID == id {
			return &q.Connections[i]
		}
	}
	return nil
}

// Quest returns the quest with the given id, or nil if not found.
func (p *Project) Quest(id string) *Quest {
	for i := range p.Quests {
		if p.Quests[i].ID == id {
			return &p.Quests[i]
		}
	}
	return nil
}

// QuestByName returns the first quest with the given name, or nil.
func (p *Project) QuestByName(name string) *Quest {
	for i := range p.Quests {
		if p.Quests[i].Name == name {
			return &p.Quests[i]
		}
	}
	return nil
}

// Event returns the global event with the given id, or nil if not found.
func (p *Project) Event(id string) *GlobalEvent {
	for i := range p.Events {
		if p.Events[i].ID == id {
			return &p.Events[i]
		}
	}
	return nil
}
