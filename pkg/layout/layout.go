// Package layout implements hierarchical auto-layout for quest graphs.
//
// Compute assigns each node a level via multi-source breadth-first
// traversal from the graph's roots, then places the nodes of each level
// on a shared horizontal (or, in left-to-right mode, vertical) band.
// Band extents come from DOM-measured node sizes when the rendering
// surface supplies them, falling back to a per-type content estimator.
//
// The whole computation is pure and deterministic for identical inputs:
// it never mutates the quest and returns a fresh position map. Level
// assignment is first-visit BFS - a node reachable through both a short
// and a long path keeps the level of whichever path dequeues it first,
// which in level-order traversal is the shorter one. Cyclic graphs are
// safe: the visited set guarantees termination.
package layout

import (
	"github.com/questforge/questforge/pkg/quest"
)

// Direction selects the layout orientation.
type Direction string

// Layout directions.
const (
	TopToBottom Direction = "TB"
	LeftToRight Direction = "LR"
)

// Size is a node's rendered extent as measured by the canvas layer.
type Size struct {
	Width  float64
	Height float64
}

// Options configures a layout run. Zero-valued fields fall back to the
// defaults below.
type Options struct {
	Direction         Direction
	NodeWidth         float64
	NodeHeight        float64
	HorizontalSpacing float64
	VerticalSpacing   float64
}

// Default layout parameters.
const (
	DefaultNodeWidth         = 300.0
	DefaultNodeHeight        = 150.0
	DefaultHorizontalSpacing = 80.0
	DefaultVerticalSpacing   = 60.0

	// minBandExtent is the floor for a level's rendering height (or width
	// in LR mode), so levels of tiny nodes still get a visible band.
	minBandExtent = 80.0

	// originMargin pushes all coordinates away from the canvas origin.
	originMargin = 50.0
)

func (o Options) withDefaults() Options {
	if o.Direction == "" {
		o.Direction = TopToBottom
	}
	if o.NodeWidth == 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodeHeight == 0 {
		o.NodeHeight = DefaultNodeHeight
	}
	if o.HorizontalSpacing == 0 {
		o.HorizontalSpacing = DefaultHorizontalSpacing
	}
	if o.VerticalSpacing == 0 {
		o.VerticalSpacing = DefaultVerticalSpacing
	}
	return o
}

// layoutNode is the per-node working state of one layout run.
type layoutNode struct {
	id       string
	level    int
	index    int
	width    float64
	height   float64
	children []string
	parents  []string
}

// Compute returns new canvas positions for every node of the quest.
// Nodes present in sizes use their measured extents; all others fall back
// to the default width and the type-specific height estimate. An empty
// node set yields an empty map.
func Compute(q *quest.Quest, sizes map[string]Size, opts Options) map[string]quest.Position {
	o := opts.withDefaults()

	positions := make(map[string]quest.Position, len(q.Nodes))
	if len(q.Nodes) == 0 {
		return positions
	}

	// Working nodes in quest order; order determines within-level
	// placement, so it must be stable.
	order := make([]string, 0, len(q.Nodes))
	nodes := make(map[string]*layoutNode, len(q.Nodes))
	for i := range q.Nodes {
		n := &q.Nodes[i]
		ln := &layoutNode{id: n.ID, level: -1, width: o.NodeWidth, height: EstimateHeight(n)}
		if s, ok := sizes[n.ID]; ok {
			if s.Width > 0 {
				ln.width = s.Width
			}
			if s.Height > 0 {
				ln.height = s.Height
			}
		}
		order = append(order, n.ID)
		nodes[n.ID] = ln
	}

	for i := range q.Connections {
		c := &q.Connections[i]
		src, okSrc := nodes[c.SourceNodeID]
		dst, okDst := nodes[c.TargetNodeID]
		if okSrc && okDst {
			src.children = append(src.children, c.TargetNodeID)
			dst.parents = append(dst.parents, c.SourceNodeID)
		}
	}

	assignLevels(order, nodes)

	// Group by level, preserving quest order within each level.
	maxLevel := 0
	levels := make(map[int][]string)
	for _, id := range order {
		ln := nodes[id]
		ln.index = len(levels[ln.level])
		levels[ln.level] = append(levels[ln.level], id)
		if ln.level > maxLevel {
			maxLevel = ln.level
		}
	}

	// Per-level band extent along the flow axis, and cumulative offsets.
	bandExtent := make([]float64, maxLevel+1)
	bandOffset := make([]float64, maxLevel+1)
	spacing := o.VerticalSpacing
	cumulative := 0.0
	for lvl := 0; lvl <= maxLevel; lvl++ {
		extent := 0.0
		for _, id := range levels[lvl] {
			e := nodes[id].height
			if o.Direction == LeftToRight {
				e = nodes[id].width
			}
			if e > extent {
				extent = e
			}
		}
		if extent < minBandExtent {
			extent = minBandExtent
		}
		bandExtent[lvl] = extent
		bandOffset[lvl] = cumulative
		cumulative += extent + spacing
	}

	// Per-level total cross-axis span, for centering around a shared axis.
	span := func(ln *layoutNode) float64 {
		if o.Direction == LeftToRight {
			return ln.height
		}
		return ln.width
	}
	crossSpacing := o.HorizontalSpacing
	if o.Direction == LeftToRight {
		crossSpacing = o.VerticalSpacing
	}
	levelSpan := make([]float64, maxLevel+1)
	maxSpan := 0.0
	for lvl := 0; lvl <= maxLevel; lvl++ {
		total := 0.0
		for _, id := range levels[lvl] {
			total += span(nodes[id])
		}
		if n := len(levels[lvl]); n > 1 {
			total += float64(n-1) * crossSpacing
		}
		levelSpan[lvl] = total
		if total > maxSpan {
			maxSpan = total
		}
	}

	crossOffset := maxSpan/2 + originMargin

	for _, id := range order {
		ln := nodes[id]
		start := -levelSpan[ln.level] / 2

		// Cross-axis position: widths of the level's earlier nodes plus gaps.
		cross := 0.0
		for i := 0; i < ln.index; i++ {
			cross += span(nodes[levels[ln.level][i]]) + crossSpacing
		}

		if o.Direction == LeftToRight {
			positions[id] = quest.Position{
				X: bandOffset[ln.level] + originMargin,
				Y: start + cross + crossOffset,
			}
		} else {
			positions[id] = quest.Position{
				X: start + cross + crossOffset,
				Y: bandOffset[ln.level] + originMargin,
			}
		}
	}

	return positions
}

// assignLevels runs multi-source BFS from the root set. Roots are nodes
// with no parents; a fully cyclic graph falls back to the first node so
// every node still receives a level. A node's level is fixed the first
// time it is dequeued; disconnected remainders default to level 0.
func assignLevels(order []string, nodes map[string]*layoutNode) {
	var roots []string
	for _, id := range order {
		if len(nodes[id].parents) == 0 {
			roots = append(roots, id)
		}
	}
	if len(roots) == 0 {
		roots = order[:1]
	}

	type entry struct {
		id    string
		level int
	}
	visited := make(map[string]bool, len(nodes))
	queue := make([]entry, 0, len(nodes))
	for _, id := range roots {
		queue = append(queue, entry{id: id})
	}

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if visited[e.id] {
			continue
		}
		visited[e.id] = true

		ln := nodes[e.id]
		if e.level > ln.level {
			ln.level = e.level
		}
		for _, child := range ln.children {
			if !visited[child] {
				queue = append(queue, entry{id: child, level: e.level + 1})
			}
		}
	}

	for _, ln := range nodes {
		if ln.level < 0 {
			ln.level = 0
		}
	}
}
