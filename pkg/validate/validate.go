// Package validate implements structural validation of quest graphs.
//
// Validate is a pure function from a quest to a list of issues describing
// problems in the user's data: missing or duplicated START nodes,
// unconnected ports, dead ends, and unreachable branches. Issues are the
// engine's normal output, not failures of the engine itself - a malformed
// quest (such as a connection referencing a node that no longer exists)
// causes the affected check to skip that record, never to crash.
//
// All checks are independent and the result order is not part of the
// contract; compare issue sets, not sequences. The traversal-based checks
// use explicit visited tracking and terminate on cyclic graphs.
package validate

import (
	"fmt"
	"strings"

	"github.com/questforge/questforge/pkg/quest"
)

// Severity classifies an issue. Errors make the quest unplayable;
// warnings are cosmetic or reachability concerns.
type Severity string

// Severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue codes.
const (
	CodeMissingStart      = "MISSING_START"
	CodeMultipleStart     = "MULTIPLE_START"
	CodeOrphanNode        = "ORPHAN_NODE"
	CodeUnconnectedOption = "UNCONNECTED_OPTION"
	CodeEmptyOption       = "EMPTY_OPTION"
	CodeUnconnectedOutput = "UNCONNECTED_OUTPUT"
	CodeDeadEnd           = "DEAD_END"
	CodeUnreachable       = "UNREACHABLE"
)

// Issue is one validation finding. IDs are assigned sequentially per
// Validate call and are not stable across calls; only the content is
// semantically meaningful.
type Issue struct {
	ID       string   `json:"id"`
	Severity Severity `json:"severity"`
	Type     string   `json:"type"`
	Message  string   `json:"message"`
	NodeID   string   `json:"nodeId,omitempty"`
	OptionID string   `json:"optionId,omitempty"`
}

// issueList collects issues and assigns per-call sequential ids.
type issueList struct {
	issues []Issue
	nextID int
}

func (l *issueList) add(sev Severity, code, message, nodeID, optionID string) {
	l.nextID++
	l.issues = append(l.issues, Issue{
		ID:       fmt.Sprintf("issue-%d", l.nextID),
		Severity: sev,
		Type:     code,
		Message:  message,
		NodeID:   nodeID,
		OptionID: optionID,
	})
}

// Validate checks the structural correctness of a quest graph and returns
// every issue found. It is deterministic and always terminates, including
// on graphs that contain cycles.
func Validate(q *quest.Quest) []Issue {
	list := &issueList{}

	startNodes := make([]*quest.Node, 0, 1)
	for i := range q.Nodes {
		if q.Nodes[i].Type == quest.TypeStart {
			startNodes = append(startNodes, &q.Nodes[i])
		}
	}
	switch {
	case len(startNodes) == 0:
		list.add(SeverityError, CodeMissingStart, "Quest has no START node", "", "")
	case len(startNodes) > 1:
		list.add(SeverityError, CodeMultipleStart, "Quest has multiple START nodes", "", "")
	}

	// Connection indexes. Port keys cover both option ports (option id)
	// and named outputs ("nodeID-true"/"nodeID-false").
	outgoing := make(map[string]map[string]bool) // source node id -> target node ids
	incoming := make(map[string]bool)            // target node ids with any inbound edge
	connectedPorts := make(map[string]bool)      // port key -> has a connection
	for i := range q.Connections {
		c := &q.Connections[i]
		if outgoing[c.SourceNodeID] == nil {
			outgoing[c.SourceNodeID] = make(map[string]bool)
		}
		outgoing[c.SourceNodeID][c.TargetNodeID] = true
		incoming[c.TargetNodeID] = true
		if key := c.PortKey(); key != "" {
			connectedPorts[key] = true
		}
	}

	for i := range q.Nodes {
		n := &q.Nodes[i]

		if n.Type != quest.TypeStart && !incoming[n.ID] {
			list.add(SeverityWarning, CodeOrphanNode,
				fmt.Sprintf("Node %q has no incoming connections", n.Label()), n.ID, "")
		}

		if n.HasOptions() {
			for _, opt := range n.Options {
				if !connectedPorts[opt.ID] {
					list.add(SeverityError, CodeUnconnectedOption,
						fmt.Sprintf("Option %q in node %q has no connection", opt.Label, n.Label()),
						n.ID, opt.ID)
				}
				if isBlank(opt.Label) {
					list.add(SeverityWarning, CodeEmptyOption,
						fmt.Sprintf("Option in node %q has no label", n.Label()), n.ID, opt.ID)
				}
			}
		}

		if n.BranchesBinary() {
			if !connectedPorts[n.ID+"-"+quest.OutputTrue] {
				list.add(SeverityError, CodeUnconnectedOutput,
					fmt.Sprintf("\"True\" output of %q has no connection", n.Label()), n.ID, "")
			}
			if !connectedPorts[n.ID+"-"+quest.OutputFalse] {
				list.add(SeverityError, CodeUnconnectedOutput,
					fmt.Sprintf("\"False\" output of %q has no connection", n.Label()), n.ID, "")
			}
		}

		if n.RequiresOutput() && len(outgoing[n.ID]) == 0 {
			list.add(SeverityError, CodeDeadEnd,
				fmt.Sprintf("Node %q has no outgoing connection", n.Label()), n.ID, "")
		}
	}

	if len(startNodes) == 1 {
		reachable := reachableFrom(q, startNodes[0].ID, outgoing)
		for i := range q.Nodes {
			n := &q.Nodes[i]
			if n.Type != quest.TypeStart && !reachable[n.ID] {
				list.add(SeverityWarning, CodeUnreachable,
					fmt.Sprintf("Node %q cannot be reached from START", n.Label()), n.ID, "")
			}
		}
	}

	return list.issues
}

// reachableFrom performs a depth-first traversal from the start node,
// following outgoing connections. END nodes and triggering EVENT nodes
// are valid terminal leaves. The visited set both records the result and
// guards against cycles.
func reachableFrom(q *quest.Quest, startID string, outgoing map[string]map[string]bool) map[string]bool {
	visited := make(map[string]bool)

	var dfs func(id string)
	dfs = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true

		n := q.Node(id)
		if n == nil {
			// Dangling connection target; nothing to traverse.
			return
		}
		if n.Terminal() {
			return
		}
		for target := range outgoing[id] {
			dfs(target)
		}
	}

	dfs(startID)
	return visited
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// IsQuestValid reports whether the quest validates without errors.
// Warnings do not make a quest invalid.
func IsQuestValid(q *quest.Quest) bool {
	return !HasErrors(Validate(q))
}
