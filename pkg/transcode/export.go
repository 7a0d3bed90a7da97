// Package transcode converts between the in-memory quest document and the
// portable JSON interchange format.
//
// Export produces versioned wrapper documents ({version, exportedAt,
// quest|project}) that strip editor-internal fields but retain full node
// payloads and explicit positions. Import accepts both the wrapper shapes
// and bare documents, re-keys every generated identifier through a
// per-call remap table so the same file can be imported twice without
// collisions, and degrades to an explicit error on malformed input -
// never a panic.
package transcode

import (
	"encoding/json"
	"time"

	"github.com/questforge/questforge/pkg/quest"
)

// Version is the interchange format version written into exports.
const Version = "1.0.0"

// importedSuffix is appended to the name of every imported quest.
const importedSuffix = " (Imported)"

// QuestPayload is the quest shape embedded in interchange files: the
// graph itself without viewport or timestamps.
type QuestPayload struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Nodes       []quest.Node       `json:"nodes"`
	Connections []quest.Connection `json:"connections"`
}

// EventPayload is the global-event shape embedded in interchange files.
type EventPayload struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Parameters  []quest.EventParameter `json:"parameters,omitempty"`
}

// ExportedQuest is the single-quest interchange wrapper.
type ExportedQuest struct {
	Version    string       `json:"version"`
	ExportedAt time.Time    `json:"exportedAt"`
	Quest      QuestPayload `json:"quest"`
}

// ProjectPayload is the project shape embedded in interchange files.
type ProjectPayload struct {
	Name   string         `json:"name"`
	Quests []QuestPayload `json:"quests"`
	Events []EventPayload `json:"events"`
}

// ExportedProject is the whole-project interchange wrapper.
type ExportedProject struct {
	Version    string         `json:"version"`
	ExportedAt time.Time      `json:"exportedAt"`
	Project    ProjectPayload `json:"project"`
}

// ExportQuest converts a quest into its interchange wrapper. Measured
// size hints are editor-internal and stripped; positions are retained.
func ExportQuest(q *quest.Quest) ExportedQuest {
	return ExportedQuest{
		Version:    Version,
		ExportedAt: time.Now().UTC(),
		Quest:      questPayload(q),
	}
}

// ExportProject converts a whole project, including its global event
// definitions, into the interchange wrapper.
func ExportProject(p *quest.Project) ExportedProject {
	out := ExportedProject{
		Version:    Version,
		ExportedAt: time.Now().UTC(),
		Project: ProjectPayload{
			Name:   p.Name,
			Quests: make([]QuestPayload, len(p.Quests)),
			Events: make([]EventPayload, len(p.Events)),
		},
	}
	for i := range p.Quests {
		out.Project.Quests[i] = questPayload(&p.Quests[i])
	}
	for i, e := range p.Events {
		out.Project.Events[i] = EventPayload{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Parameters:  e.Parameters,
		}
	}
	return out
}

func questPayload(q *quest.Quest) QuestPayload {
	nodes := make([]quest.Node, len(q.Nodes))
	for i, n := range q.Nodes {
		n.Width = 0
		n.Height = 0
		nodes[i] = n
	}
	return QuestPayload{
		ID:          q.ID,
		Name:        q.Name,
		Description: q.Description,
		Nodes:       nodes,
		Connections: append([]quest.Connection(nil), q.Connections...),
	}
}

// MarshalExport pretty-prints an interchange document with two-space
// indentation, matching the files the editor writes.
func MarshalExport(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
