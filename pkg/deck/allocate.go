package deck

import (
	"slices"

	"github.com/matzehuels/roadmapper/pkg/config"
	"github.com/matzehuels/roadmapper/pkg/roadmap"
)

// Placement is the resolved (column, x, y) assignment of one issue on one
// slide.
type Placement struct {
	Issue  roadmap.Issue
	Column int
	X, Y   float64
}

// BoxWidth returns the width shared by all item boxes: the timeline width
// minus one padding gap per column plus one, divided across the columns.
func BoxWidth(cfg config.DeckConfig) float64 {
	n := float64(len(cfg.Columns))
	return (cfg.TimelineArrow.Width - cfg.RoadmapBox.XPadding*(n+1)) / n
}

// Allocate computes the placements for one slide's category.
//
// An issue is placed when its category set contains the slide's category and
// its time bucket is accepted by some column; the first accepting column in
// configured order wins. Issues matching no column are omitted. Within a
// column, issues stack top to bottom in input order, each box one
// height-plus-padding step below the previous.
//
// The per-column occupancy counters live only for this call; every slide
// gets a fresh set.
func Allocate(category string, issues []roadmap.Issue, cfg config.DeckConfig) []Placement {
	boxWidth := BoxWidth(cfg)
	baseX := cfg.LeftHeader.X + cfg.LeftHeader.Width + cfg.RoadmapBox.XPadding
	baseY := cfg.LeftHeader.Y + cfg.LeftHeader.Height

	counts := make([]int, len(cfg.Columns))
	var placements []Placement

	for _, issue := range issues {
		if !slices.Contains(issue.Categories, category) {
			continue
		}
		for col, column := range cfg.Columns {
			if !column.Accepts(issue.TimeBucket) {
				continue
			}
			placements = append(placements, Placement{
				Issue:  issue,
				Column: col,
				X:      baseX + (boxWidth+cfg.RoadmapBox.XPadding)*float64(col),
				Y:      baseY + (cfg.RoadmapBox.Height+cfg.RoadmapBox.YPadding)*float64(counts[col]),
			})
			counts[col]++
			break
		}
	}
	return placements
}
