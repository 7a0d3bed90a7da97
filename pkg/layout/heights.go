package layout

import (
	"math"

	"github.com/questforge/questforge/pkg/quest"
)

// Content-box constants mirroring the rendered node cards: a 44px header
// (title bar plus border overhead), 236px of usable text width, 20px line
// height, and fixed per-row heights for options, meta lines, and inputs.
const (
	headerHeight     = 44.0
	contentWidth     = 236.0
	lineHeight       = 20.0
	optionRowHeight  = 30.0
	textPadding      = 16.0
	minNodeHeight    = 80.0
	avgCharWidth     = 6.0
	speakerRowHeight = 32.0
	outcomeRowHeight = 32.0
	detailRowHeight  = 24.0
	inputRowHeight   = 20.0
	metaRowHeight    = 20.0
	eventBodyHeight  = 40.0
)

// estimateTextLines estimates how many lines a text block wraps to at the
// given container width, assuming ~6px average glyph width. Deliberately
// conservative so layout overestimates rather than underestimates.
func estimateTextLines(text string, containerWidth float64) float64 {
	if text == "" {
		return 0
	}
	charsPerLine := math.Max(1, math.Floor(containerWidth/avgCharWidth))
	return math.Ceil(float64(len(text)) / charsPerLine)
}

// EstimateHeight returns the estimated rendered height for a node based
// on its type and content. Used when no measured size is available.
func EstimateHeight(n *quest.Node) float64 {
	h := headerHeight

	switch n.Type {
	case quest.TypeStart:
		if locName(n) != "" || npcName(n) != "" {
			meta := textPadding
			if locName(n) != "" {
				meta += metaRowHeight
			}
			if npcName(n) != "" {
				meta += metaRowHeight
			}
			h += meta
		}
		h += estimateTextLines(n.Description, contentWidth)*lineHeight + textPadding
		h += float64(len(n.Options)) * optionRowHeight

	case quest.TypeDialogue:
		if n.Speaker != "" {
			h += speakerRowHeight
		}
		h += estimateTextLines(n.Text, contentWidth)*lineHeight + textPadding
		h += float64(len(n.Options)) * optionRowHeight

	case quest.TypeChoice:
		h += estimateTextLines(n.Prompt, contentWidth)*lineHeight + textPadding
		h += float64(len(n.Options)) * optionRowHeight

	case quest.TypeIf, quest.TypeAnd, quest.TypeOr:
		h += estimateTextLines(n.Condition, contentWidth)*lineHeight + textPadding
		inputs := n.InputCount
		if inputs == 0 {
			inputs = 2
		}
		h += math.Max(0, float64(inputs-2)) * inputRowHeight

	case quest.TypeEvent:
		return headerHeight + eventBodyHeight

	case quest.TypeEnd:
		h += outcomeRowHeight
		h += estimateTextLines(n.Description, contentWidth)*lineHeight + textPadding
		h += float64(len(n.Rewards)) * detailRowHeight
		h += float64(len(n.FactionChanges)) * detailRowHeight
	}

	return math.Max(minNodeHeight, h)
}

func locName(n *quest.Node) string {
	if n.Location == nil {
		return ""
	}
	return n.Location.Name
}

func npcName(n *quest.Node) string {
	if n.NPC == nil {
		return ""
	}
	return n.NPC.Name
}
