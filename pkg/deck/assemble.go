package deck

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadmapper/pkg/config"
	"github.com/matzehuels/roadmapper/pkg/roadmap"
	"github.com/matzehuels/roadmapper/pkg/slides"
)

// Executor applies one ordered operation batch to a presentation. Each call
// is atomic on the service side: all operations succeed or the call fails as
// a whole.
type Executor interface {
	BatchUpdate(ctx context.Context, presentationID string, requests []slides.Request) error
}

// Slide records one roadmap slide created in the skeleton phase. It is only
// read afterwards.
type Slide struct {
	Title    string `json:"title"`
	ObjectID string `json:"objectId"`
	Category string `json:"category"`
}

// Summary reports what a run produced.
type Summary struct {
	Slides     int // header + skeleton slides created
	Categories int
	Issues     int // normalized issues processed
}

// Builder assembles a deck in two strictly sequential phases: slide skeletons
// first, then issue boxes. It is stateless apart from its config and logger;
// all per-run state is local to Run.
type Builder struct {
	cfg    config.DeckConfig
	logger *log.Logger
}

// NewBuilder creates a Builder. A nil logger falls back to log.Default().
func NewBuilder(cfg config.DeckConfig, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{cfg: cfg, logger: logger}
}

// BuildSkeleton builds the phase-one batch: per category one header slide and
// one roadmap skeleton slide, in the given category order. It returns the
// batch and the slide records the population phase places issues on.
func (b *Builder) BuildSkeleton(categories []string) ([]slides.Request, []Slide) {
	var batch []slides.Request
	created := make([]Slide, 0, len(categories))

	for _, category := range categories {
		headerBatch, _ := NewHeaderSlide(category)
		batch = append(batch, headerBatch...)

		slideBatch, slideID := NewRoadmapSlide(category, b.cfg)
		batch = append(batch, slideBatch...)

		created = append(created, Slide{
			Title:    category,
			ObjectID: slideID,
			Category: category,
		})
	}
	return batch, created
}

// BuildPlacements builds the phase-two batch: for every slide, the item boxes
// of all issues the column allocator placed on it. Descriptions are truncated
// to the configured length here, at placement time.
func (b *Builder) BuildPlacements(created []Slide, issues []roadmap.Issue) []slides.Request {
	boxWidth := BoxWidth(b.cfg)

	var batch []slides.Request
	for _, slide := range created {
		for _, p := range Allocate(slide.Category, issues, b.cfg) {
			boxBatch, _ := NewItemBox(slide.ObjectID, ItemBox{
				X:           p.X,
				Y:           p.Y,
				Width:       boxWidth,
				Tagline:     p.Issue.Summary,
				Description: truncate(p.Issue.Description, b.cfg.RoadmapBox.DescriptionLength),
				Link:        p.Issue.Link,
				Beta:        p.Issue.Beta,
			}, b.cfg.RoadmapBox)
			batch = append(batch, boxBatch...)
		}
	}
	return batch
}

// Run executes the full two-phase assembly against the presentation.
//
// Population never starts before the skeleton batch succeeded, since item
// boxes reference the skeleton slides' IDs. Any execute failure aborts the
// run; slides already created stay in place (no rollback, no retry) and a
// rerun recreates the deck from scratch.
func (b *Builder) Run(ctx context.Context, exec Executor, presentationID string, issues []roadmap.Issue) (Summary, error) {
	categories := roadmap.Categories(issues)

	start := time.Now()
	skeleton, created := b.BuildSkeleton(categories)
	if len(skeleton) > 0 {
		if err := exec.BatchUpdate(ctx, presentationID, skeleton); err != nil {
			return Summary{}, fmt.Errorf("skeleton phase: %w", err)
		}
	}
	b.logger.Info("created slide skeletons",
		"categories", len(categories),
		"slides", 2*len(created),
		"operations", len(skeleton),
		"duration", time.Since(start).Round(time.Millisecond))

	start = time.Now()
	population := b.BuildPlacements(created, issues)
	if len(population) > 0 {
		if err := exec.BatchUpdate(ctx, presentationID, population); err != nil {
			return Summary{}, fmt.Errorf("population phase: %w", err)
		}
	}
	b.logger.Info("placed roadmap items",
		"operations", len(population),
		"duration", time.Since(start).Round(time.Millisecond))

	return Summary{
		Slides:     2 * len(created),
		Categories: len(categories),
		Issues:     len(issues),
	}, nil
}

// truncate shortens s to at most n runes, never splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
