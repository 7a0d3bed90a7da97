package quest

import (
	"errors"
	"slices"
	"time"
)

var (
	// ErrUnknownQuest is returned when a quest id does not exist in the project.
	ErrUnknownQuest = errors.New("unknown quest")

	// ErrUnknownNode is returned when a node id does not exist in the quest.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownConnection is returned when a connection id does not exist.
	ErrUnknownConnection = errors.New("unknown connection")

	// ErrUnknownEvent is returned when a global event id does not exist.
	ErrUnknownEvent = errors.New("unknown event")

	// ErrDuplicateNodeID is returned by [Quest.AddNode] when a node with
	// the same id already exists. Node ids must be unique within a quest.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownEndpoint is returned by [Quest.AddConnection] when either
	// endpoint references a node that is not part of the quest.
	ErrUnknownEndpoint = errors.New("unknown connection endpoint")
)

// touch refreshes the quest's modification timestamp.
func (q *Quest) touch() { q.UpdatedAt = time.Now() }

// AddNode appends a node to the quest. Returns ErrDuplicateNodeID if a
// node with the same id already exists.
func (q *Quest) AddNode(n Node) error {
	if q.Node(n.ID) != nil {
		return ErrDuplicateNodeID
	}
	q.Nodes = append(q.Nodes, n)
	q.touch()
	return nil
}

// NodeUpdate carries a partial update for a node. Nil fields are left
// unchanged; non-nil fields replace the node's current values.
type NodeUpdate struct {
	Position    *Position
	Title       *string
	Description *string
	Speaker     *string
	Text        *string
	Prompt      *string
	Options     *[]Option
	EventID     *string
	EventName   *string
	Action      *EventAction
	Parameters  *map[string]any
	Condition   *string
	InputCount  *int
	Outcome     *Outcome
	Location    **Location
	NPC         **NPC
}

// UpdateNode applies a partial update to the node with the given id.
// Returns ErrUnknownNode if no such node exists. The node's type is never
// changed by an update.
func (q *Quest) UpdateNode(id string, u NodeUpdate) error {
	n := q.Node(id)
	if n == nil {
		return ErrUnknownNode
	}
	if u.Position != nil {
		n.Position = *u.Position
	}
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Description != nil {
		n.Description = *u.Description
	}
	if u.Speaker != nil {
		n.Speaker = *u.Speaker
	}
	if u.Text != nil {
		n.Text = *u.Text
	}
	if u.Prompt != nil {
		n.Prompt = *u.Prompt
	}
	if u.Options != nil {
		n.Options = *u.Options
	}
	if u.EventID != nil {
		n.EventID = *u.EventID
	}
	if u.EventName != nil {
		n.EventName = *u.EventName
	}
	if u.Action != nil {
		n.Action = *u.Action
	}
	if u.Parameters != nil {
		n.Parameters = *u.Parameters
	}
	if u.Condition != nil {
		n.Condition = *u.Condition
	}
	if u.InputCount != nil {
		n.InputCount = *u.InputCount
	}
	if u.Outcome != nil {
		n.Outcome = *u.Outcome
	}
	if u.Location != nil {
		n.Location = *u.Location
	}
	if u.NPC != nil {
		n.NPC = *u.NPC
	}
	q.touch()
	return nil
}

// MoveNode updates a node's canvas position. Returns ErrUnknownNode if no
// such node exists.
func (q *Quest) MoveNode(id string, pos Position) error {
	n := q.Node(id)
	if n == nil {
		return ErrUnknownNode
	}
	n.Position = pos
	q.touch()
	return nil
}

// DeleteNode removes the node and cascades: every connection referencing
// it as source or target is removed as well. Returns ErrUnknownNode if no
// such node exists.
func (q *Quest) DeleteNode(id string) error {
	if q.Node(id) == nil {
		return ErrUnknownNode
	}
	q.Nodes = slices.DeleteFunc(q.Nodes, func(n Node) bool { return n.ID == id })
	q.Connections = slices.DeleteFunc(q.Connections, func(c Connection) bool {
		return c.SourceNodeID == id || c.TargetNodeID == id
	})
	q.touch()
	return nil
}

// AddConnection adds a connection between two existing nodes, assigning it
// a fresh id. Returns ErrUnknownEndpoint if either endpoint is missing.
func (q *Quest) AddConnection(c Connection) (Connection, error) {
	if q.Node(c.SourceNodeID) == nil || q.Node(c.TargetNodeID) == nil {
		return Connection{}, ErrUnknownEndpoint
	}
	c.ID = NewID()
	q.Connections = append(q.Connections, c)
	q.touch()
	return c, nil
}

// DeleteConnection removes the connection with the given id. Returns
// ErrUnknownConnection if no such connection exists.
func (q *Quest) DeleteConnection(id string) error {
	if q.Connection(id) == nil {
		return ErrUnknownConnection
	}
	q.Connections = slices.DeleteFunc(q.Connections, func(c Connection) bool { return c.ID == id })
	q.touch()
	return nil
}

// ApplyLayout moves every node present in positions to its new position.
// Nodes absent from the map keep their current position.
func (q *Quest) ApplyLayout(positions map[string]Position) {
	for i := range q.Nodes {
		if pos, ok := positions[q.Nodes[i].ID]; ok {
			q.Nodes[i].Position = pos
		}
	}
	q.touch()
}

// AddQuest appends a quest to the project.
func (p *Project) AddQuest(q Quest) {
	p.Quests = append(p.Quests, q)
	p.UpdatedAt = time.Now()
}

// RenameQuest changes a quest's name. Returns ErrUnknownQuest if no such
// quest exists.
func (p *Project) RenameQuest(id, name string) error {
	q := p.Quest(id)
	if q == nil {
		return ErrUnknownQuest
	}
	q.Name = name
	q.touch()
	p.UpdatedAt = time.Now()
	return nil
}

// DeleteQuest removes the quest with the given id. Connections are nested
// inside the quest, so no further cascade is needed. Returns
// ErrUnknownQuest if no such quest exists.
func (p *Project) DeleteQuest(id string) error {
	if p.Quest(id) == nil {
		return ErrUnknownQuest
	}
	p.Quests = slices.DeleteFunc(p.Quests, func(q Quest) bool { return q.ID == id })
	p.UpdatedAt = time.Now()
	return nil
}

// AddEvent appends a global event to the project.
func (p *Project) AddEvent(e GlobalEvent) {
	p.Events = append(p.Events, e)
	p.UpdatedAt = time.Now()
}

// EventUpdate carries a partial update for a global event.
type EventUpdate struct {
	Name         *string
	Description  *string
	Parameters   *[]EventParameter
	UsedInQuests *[]string
}

// UpdateEvent applies a partial update to the event with the given id.
// Returns ErrUnknownEvent if no such event exists.
func (p *Project) UpdateEvent(id string, u EventUpdate) error {
	e := p.Event(id)
	if e == nil {
		return ErrUnknownEvent
	}
	if u.Name != nil {
		e.Name = *u.Name
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Parameters != nil {
		e.Parameters = *u.Parameters
	}
	if u.UsedInQuests != nil {
		e.UsedInQuests = *u.UsedInQuests
	}
	e.UpdatedAt = time.Now()
	p.UpdatedAt = time.Now()
	return nil
}

// DeleteEvent removes the global event with the given id. Returns
// ErrUnknownEvent if no such event exists. EVENT nodes referencing the
// deleted event keep their eventId; validation surfaces the dangling
// reference as user data to fix, not as a crash.
func (p *Project) DeleteEvent(id string) error {
	if p.Event(id) == nil {
		return ErrUnknownEvent
	}
	p.Events = slices.DeleteFunc(p.Events, func(e GlobalEvent) bool { return e.ID == id })
	p.UpdatedAt = time.Now()
	return nil
}

// Rename changes the project's name.
func (p *Project) Rename(name string) {
	p.Name = name
	p.UpdatedAt = time.Now()
}
