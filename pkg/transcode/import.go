package transcode

import (
	"encoding/json"
	"time"

	"github.com/questforge/questforge/pkg/errors"
	"github.com/questforge/questforge/pkg/quest"
)

// ParseQuest parses a quest interchange document. It accepts either the
// exported wrapper shape ({"quest": {...}}) or a bare quest-shaped
// object, and returns a quest that is safe to add to any project:
//
//   - the quest, every node, and every option receive fresh ids
//   - connection endpoints and sourceOptionId references are rewritten
//     through the remap table built during this call
//   - sourceOutput and targetHandle name fixed ports, not generated ids,
//     and pass through unchanged
//   - the quest is renamed to "<name> (Imported)" with a reset viewport
//     and fresh timestamps
//
// Malformed JSON or a document without the required quest shape yields a
// nil quest and a structured error; ParseQuest never panics.
func ParseQuest(data []byte) (*quest.Quest, error) {
	var wrapper struct {
		Quest json.RawMessage `json:"quest"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImport, err, "malformed quest file")
	}

	raw := data
	if len(wrapper.Quest) > 0 {
		raw = wrapper.Quest
	}

	var payload QuestPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImport, err, "malformed quest file")
	}
	if payload.Name == "" || payload.Nodes == nil {
		return nil, errors.New(errors.ErrCodeInvalidImport, "file does not contain quest data")
	}

	for i := range payload.Nodes {
		if err := payload.Nodes[i].Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidNode, err, "invalid node %q", payload.Nodes[i].ID)
		}
	}

	// Re-key every generated identifier so importing the same file twice
	// never collides with existing quests.
	idMap := make(map[string]string)
	nodes := make([]quest.Node, len(payload.Nodes))
	for i, n := range payload.Nodes {
		newID := quest.NewID()
		idMap[n.ID] = newID
		n.ID = newID
		if len(n.Options) > 0 {
			opts := make([]quest.Option, len(n.Options))
			for j, opt := range n.Options {
				newOptID := quest.NewID()
				idMap[opt.ID] = newOptID
				opt.ID = newOptID
				opts[j] = opt
			}
			n.Options = opts
		}
		nodes[i] = n
	}

	connections := make([]quest.Connection, len(payload.Connections))
	for i, c := range payload.Connections {
		c.ID = quest.NewID()
		if mapped, ok := idMap[c.SourceNodeID]; ok {
			c.SourceNodeID = mapped
		}
		if mapped, ok := idMap[c.TargetNodeID]; ok {
			c.TargetNodeID = mapped
		}
		if c.SourceOptionID != "" {
			if mapped, ok := idMap[c.SourceOptionID]; ok {
				c.SourceOptionID = mapped
			}
		}
		connections[i] = c
	}

	now := time.Now()
	return &quest.Quest{
		ID:          quest.NewID(),
		Name:        payload.Name + importedSuffix,
		Description: payload.Description,
		Nodes:       nodes,
		Connections: connections,
		Viewport:    quest.DefaultViewport(),
		CreatedAt:   now,
		UpdatedAt:   now,
		Tags:        []string{},
	}, nil
}

// ParseProject parses a whole-project document. It accepts both the
// exported wrapper shape ({"project": {name, quests, events}}) and the
// raw persisted-project shape written by save (top-level quests/events),
// dispatching on where the quests/events pair lives. Default settings and
// missing per-quest/per-event timestamps are reconstructed.
//
// Malformed JSON or a document matching neither shape yields a nil
// project and a structured error.
func ParseProject(data []byte) (*quest.Project, error) {
	var wrapper struct {
		Project json.RawMessage `json:"project"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "malformed project file")
	}

	if len(wrapper.Project) > 0 {
		return parseExportedProject(wrapper.Project)
	}
	return parsePersistedProject(data)
}

// parseExportedProject reconstructs a project from the interchange
// payload, which omits ids, settings, and timestamps.
func parseExportedProject(raw json.RawMessage) (*quest.Project, error) {
	var payload ProjectPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "malformed project file")
	}
	if payload.Name == "" || (payload.Quests == nil && payload.Events == nil) {
		return nil, errors.New(errors.ErrCodeInvalidProject, "file does not contain project data")
	}

	now := time.Now()
	p := &quest.Project{
		ID:        quest.NewID(),
		Name:      payload.Name,
		Version:   Version,
		CreatedAt: now,
		UpdatedAt: now,
		Quests:    make([]quest.Quest, len(payload.Quests)),
		Events:    make([]quest.GlobalEvent, len(payload.Events)),
		Settings:  quest.DefaultSettings(),
	}
	for i, qp := range payload.Quests {
		p.Quests[i] = quest.Quest{
			ID:          qp.ID,
			Name:        qp.Name,
			Description: qp.Description,
			Nodes:       qp.Nodes,
			Connections: qp.Connections,
			Viewport:    quest.DefaultViewport(),
			CreatedAt:   now,
			UpdatedAt:   now,
			Tags:        []string{},
		}
	}
	for i, ep := range payload.Events {
		p.Events[i] = quest.GlobalEvent{
			ID:           ep.ID,
			Name:         ep.Name,
			Description:  ep.Description,
			Parameters:   ep.Parameters,
			UsedInQuests: []string{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}
	return p, nil
}

// parsePersistedProject reads the raw saved-project shape, filling in
// defaults for fields older files may lack.
func parsePersistedProject(data []byte) (*quest.Project, error) {
	var p quest.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "malformed project file")
	}
	if p.Quests == nil && p.Events == nil {
		return nil, errors.New(errors.ErrCodeInvalidProject, "file does not contain project data")
	}

	now := time.Now()
	if p.ID == "" {
		p.ID = quest.NewID()
	}
	if p.Version == "" {
		p.Version = Version
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	if p.Settings == (quest.Settings{}) {
		p.Settings = quest.DefaultSettings()
	}
	if p.Quests == nil {
		p.Quests = []quest.Quest{}
	}
	if p.Events == nil {
		p.Events = []quest.GlobalEvent{}
	}
	for i := range p.Quests {
		if p.Quests[i].CreatedAt.IsZero() {
			p.Quests[i].CreatedAt = now
		}
		if p.Quests[i].UpdatedAt.IsZero() {
			p.Quests[i].UpdatedAt = now
		}
	}
	for i := range p.Events {
		if p.Events[i].CreatedAt.IsZero() {
			p.Events[i].CreatedAt = now
		}
		if p.Events[i].UpdatedAt.IsZero() {
			p.Events[i].UpdatedAt = now
		}
	}
	return &p, nil
}
