package analysis

import (
	"github.com/bennypn/ai-kop-indosat/service/inference"
)

// GroupCorrelation records which leaf regions fall inside one group region,
// plus the crop boxes that still need OCR.
type GroupCorrelation struct {
	Box          inference.BoundingBox
	HasPole      bool
	HasTimestamp bool
	HasDetail    bool
	TimestampBox inference.BoundingBox
	DetailBox    inference.BoundingBox
}

// CorrelateGroups assigns leaf regions to group regions. A leaf belongs to a
// group when its top-left corner lies inside the group box, bounds inclusive.
// This is deliberately a point test, not full rectangle containment; the
// decisioning behavior near box edges depends on it and must not change.
// When several leaves of one label land in the same group, the last one in
// detector output order wins.
//
// The returned slice preserves detector output order of the group regions,
// which defines the persisted 1-based group index.
func CorrelateGroups(regions []inference.Region) []GroupCorrelation {
	var groups []GroupCorrelation
	for _, r := range regions {
		if r.Label != inference.LabelGroup {
			continue
		}

		g := GroupCorrelation{Box: r.Box}
		for _, leaf := range regions {
			if !r.Box.ContainsPoint(leaf.Box.X1, leaf.Box.Y1) {
				continue
			}
			switch leaf.Label {
			case inference.LabelPole:
				g.HasPole = true
			case inference.LabelTimestamp:
				g.HasTimestamp = true
				g.TimestampBox = leaf.Box
			case inference.LabelDetail:
				g.HasDetail = true
				g.DetailBox = leaf.Box
			}
		}
		groups = append(groups, g)
	}
	return groups
}
