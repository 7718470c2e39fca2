// Package config loads and validates the roadmapper configuration file.
//
// The configuration is a single TOML document with two top-level tables:
//
//	[tracker]   issue-source settings (project, issue type, category mode)
//	[deck]      sizing, colors and fonts for every visual element
//
// Each visual element gets its own typed sub-struct so that layout code never
// threads untyped maps around. Presence and sanity of required keys is checked
// once, in [Config.Validate], before any geometry is computed.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/roadmapper/pkg/errors"
)

// Category extraction modes for the tracker.
const (
	ModeComponents = "components"
	ModeLabels     = "labels"
)

// DefaultFontFamily is applied to every text element unless overridden.
const DefaultFontFamily = "Manrope"

// Config is the root configuration document.
type Config struct {
	Tracker TrackerConfig `toml:"tracker"`
	Deck    DeckConfig    `toml:"deck"`
}

// TrackerConfig selects which issues become roadmap items and how their
// category and beta flag are derived.
type TrackerConfig struct {
	BaseURL        string `toml:"base_url"`
	Project        string `toml:"project"`
	IssueType      string `toml:"issue_type"`
	CategoryMode   string `toml:"category_mode"`   // "components" or "labels"
	CategoryPrefix string `toml:"category_prefix"` // kept entries have this stripped
	IncludeBeta    bool   `toml:"include_beta"`
	BetaAttribute  string `toml:"beta_attribute"` // custom field holding the "Beta" sentinel
}

// DeckConfig holds the per-element styling for the roadmap slides.
type DeckConfig struct {
	LeftHeader    Panel         `toml:"left_header"`
	LeftMain      Panel         `toml:"left_main"`
	TimelineArrow TimelineArrow `toml:"timeline_arrow"`
	QuarterMarker QuarterMarker `toml:"quarter_marker"`
	Columns       []Column      `toml:"columns"`
	RoadmapBox    RoadmapBox    `toml:"roadmap_box"`
}

// Panel describes a rectangular text panel on the left side of a slide.
type Panel struct {
	ShapeType string  `toml:"shape_type"`
	X         float64 `toml:"x"`
	Y         float64 `toml:"y"`
	Width     float64 `toml:"width"`
	Height    float64 `toml:"height"`
	Color     string  `toml:"color"` // theme color of the background fill
	FontSize  float64 `toml:"font_size"`
	Text      string  `toml:"text"` // static body text (left main panel only)
}

// TimelineArrow describes the horizontal arrow spanning the time columns.
type TimelineArrow struct {
	Width  float64 `toml:"width"`
	Color  string  `toml:"color"`
	Weight float64 `toml:"weight"`
}

// QuarterMarker describes the marker shape and label drawn per time column.
type QuarterMarker struct {
	ShapeType string  `toml:"shape_type"`
	Width     float64 `toml:"width"`
	Height    float64 `toml:"height"`
	Color     string  `toml:"color"`
	Font      string  `toml:"font"`
	FontSize  float64 `toml:"font_size"`
	FontColor string  `toml:"font_color"`
}

// Column defines one timeline column: its label and the set of tracker
// workflow states that route an issue into it.
type Column struct {
	Label    string   `toml:"label"`
	Statuses []string `toml:"statuses"`
}

// Accepts reports whether the column accepts the given time bucket.
func (c Column) Accepts(bucket string) bool {
	for _, s := range c.Statuses {
		if s == bucket {
			return true
		}
	}
	return false
}

// RoadmapBox describes one roadmap item box and its beta badge.
type RoadmapBox struct {
	ShapeType         string    `toml:"shape_type"`
	Height            float64   `toml:"height"`
	XPadding          float64   `toml:"x_padding"`
	YPadding          float64   `toml:"y_padding"`
	DescriptionLength int       `toml:"description_length"`
	FontSize          float64   `toml:"font_size"`
	FillColor         string    `toml:"fill_color"`
	OutlineColor      string    `toml:"outline_color"`
	BetaLabel         BetaLabel `toml:"beta_label"`
}

// BetaLabel styles the small "beta" badge on beta initiatives.
type BetaLabel struct {
	FillColor    string  `toml:"fill_color"`
	OutlineColor string  `toml:"outline_color"`
	FontSize     float64 `toml:"font_size"`
	FontColor    string  `toml:"font_color"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Deck.LeftHeader.ShapeType == "" {
		c.Deck.LeftHeader.ShapeType = "RECTANGLE"
	}
	if c.Deck.LeftMain.ShapeType == "" {
		c.Deck.LeftMain.ShapeType = "RECTANGLE"
	}
	if c.Deck.QuarterMarker.ShapeType == "" {
		c.Deck.QuarterMarker.ShapeType = "ELLIPSE"
	}
	if c.Deck.QuarterMarker.Font == "" {
		c.Deck.QuarterMarker.Font = DefaultFontFamily
	}
	if c.Deck.RoadmapBox.ShapeType == "" {
		c.Deck.RoadmapBox.ShapeType = "ROUND_RECTANGLE"
	}
}

// Validate checks that every key the layout engine depends on is present and
// sane. It returns an INVALID_CONFIG error naming the first offending key.
func (c *Config) Validate() error {
	switch c.Tracker.CategoryMode {
	case ModeComponents, ModeLabels:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"tracker.category_mode: %q is not valid, choose from either %q or %q",
			c.Tracker.CategoryMode, ModeComponents, ModeLabels)
	}
	if c.Tracker.BaseURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "tracker.base_url is required")
	}
	if c.Tracker.Project == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "tracker.project is required")
	}
	if c.Tracker.IssueType == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "tracker.issue_type is required")
	}
	if c.Tracker.IncludeBeta && c.Tracker.BetaAttribute == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "tracker.beta_attribute is required when include_beta is set")
	}

	if c.Deck.LeftHeader.Width <= 0 || c.Deck.LeftHeader.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "deck.left_header: width and height must be positive")
	}
	if c.Deck.LeftMain.Width <= 0 || c.Deck.LeftMain.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "deck.left_main: width and height must be positive")
	}
	if c.Deck.TimelineArrow.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "deck.timeline_arrow.width must be positive")
	}
	if c.Deck.QuarterMarker.Width <= 0 || c.Deck.QuarterMarker.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "deck.quarter_marker: width and height must be positive")
	}
	if len(c.Deck.Columns) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "deck.columns: at least one column is required")
	}
	for i, col := range c.Deck.Columns {
		if col.Label == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "deck.columns[%d].label is required", i)
		}
		if len(col.Statuses) == 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "deck.columns[%d].statuses: at least one status is required", i)
		}
	}
	if c.Deck.RoadmapBox.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "deck.roadmap_box.height must be positive")
	}
	if c.Deck.RoadmapBox.XPadding < 0 || c.Deck.RoadmapBox.YPadding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "deck.roadmap_box: paddings must not be negative")
	}
	if c.Deck.RoadmapBox.DescriptionLength <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "deck.roadmap_box.description_length must be positive")
	}
	return nil
}
