// Package search implements full-text scanning over quest nodes.
//
// Search is a pure function: it never mutates the quest and holds no
// index. Matching is case-insensitive substring containment, and each
// type-relevant text field of a node is tested independently, so a single
// node can contribute several matches for one query.
package search

import (
	"strings"

	"github.com/questforge/questforge/pkg/quest"
)

// MatchType names the field category a match was found in.
type MatchType string

// Match types.
const (
	MatchName      MatchType = "name"
	MatchSpeaker   MatchType = "speaker"
	MatchContent   MatchType = "content"
	MatchEventName MatchType = "eventName"
	MatchChoice    MatchType = "choice"
	MatchOption    MatchType = "option"
)

// Match is one field hit. Text carries the original, non-lowercased field
// value so callers can display it verbatim.
type Match struct {
	NodeID string    `json:"nodeId"`
	Type   MatchType `json:"matchType"`
	Text   string    `json:"matchedText"`
}

// Search scans every node of the quest for the query. An empty or
// whitespace-only query matches nothing.
//
// Field-to-match-type mapping per node type:
//
//	START/END  title -> name, description -> content
//	DIALOGUE   speaker -> speaker, text -> content, option labels -> option
//	CHOICE     prompt -> content, option labels -> choice
//	EVENT      eventName -> eventName
//	IF         condition -> content
//	AND/OR     no searchable fields
func Search(q *quest.Quest, query string) []Match {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	var matches []Match
	for i := range q.Nodes {
		matches = append(matches, nodeMatches(&q.Nodes[i], needle)...)
	}
	return matches
}

func nodeMatches(n *quest.Node, needle string) []Match {
	var matches []Match
	hit := func(t MatchType, text string) {
		if text != "" && strings.Contains(strings.ToLower(text), needle) {
			matches = append(matches, Match{NodeID: n.ID, Type: t, Text: text})
		}
	}

	switch n.Type {
	case quest.TypeStart, quest.TypeEnd:
		hit(MatchName, n.Title)
		hit(MatchContent, n.Description)

	case quest.TypeDialogue:
		hit(MatchSpeaker, n.Speaker)
		hit(MatchContent, n.Text)
		for _, opt := range n.Options {
			hit(MatchOption, opt.Label)
		}

	case quest.TypeChoice:
		hit(MatchContent, n.Prompt)
		for _, opt := range n.Options {
			hit(MatchChoice, opt.Label)
		}

	case quest.TypeEvent:
		hit(MatchEventName, n.EventName)

	case quest.TypeIf:
		hit(MatchContent, n.Condition)

	case quest.TypeAnd, quest.TypeOr:
		// Gate nodes carry no searchable text.
	}

	return matches
}

// UniqueNodeIDs collapses matches to the distinct node ids, in order of
// first appearance.
func UniqueNodeIDs(matches []Match) []string {
	seen := make(map[string]bool, len(matches))
	var ids []string
	for _, m := range matches {
		if !seen[m.NodeID] {
			seen[m.NodeID] = true
			ids = append(ids, m.NodeID)
		}
	}
	return ids
}
