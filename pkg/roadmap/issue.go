// Package roadmap turns raw tracker records into the uniform issue
// representation the layout engine consumes.
//
// Normalization derives each issue's product categories (from components or
// labels, prefix-stripped), its time bucket (the workflow state name) and its
// beta flag. Issues marked beta are dropped entirely when the configuration
// excludes beta initiatives.
package roadmap

import (
	"strings"

	"github.com/matzehuels/roadmapper/pkg/config"
	"github.com/matzehuels/roadmapper/pkg/errors"
	"github.com/matzehuels/roadmapper/pkg/tracker"
)

// BetaSentinel is the literal custom-field value marking a beta initiative.
const BetaSentinel = "Beta"

// Issue is one normalized roadmap initiative. Immutable after normalization.
type Issue struct {
	ID          string
	Categories  []string // prefix-stripped category labels
	TimeBucket  string   // workflow state name, routes the issue into a column
	Summary     string
	Description string
	Link        string
	Beta        bool
}

// NormalizeOptions control how raw records are normalized.
type NormalizeOptions struct {
	Mode          string // config.ModeComponents or config.ModeLabels
	Prefix        string // only categories with this prefix are kept
	IncludeBeta   bool
	BetaAttribute string // custom field compared against BetaSentinel
}

// Normalize converts raw tracker records into roadmap issues.
//
// It fails with NOT_FOUND when the query matched nothing (an empty deck is
// never emitted silently) and with INVALID_CONFIG when the category mode is
// unrecognized. Beta issues are dropped, not emitted, when IncludeBeta is
// false. Input order is preserved; it governs vertical stacking later.
func Normalize(raw []tracker.RawIssue, opts NormalizeOptions) ([]Issue, error) {
	if opts.Mode != config.ModeComponents && opts.Mode != config.ModeLabels {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"category mode %q is not valid, choose from either %q or %q",
			opts.Mode, config.ModeComponents, config.ModeLabels)
	}
	if len(raw) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no issues matched the roadmap filter")
	}

	issues := make([]Issue, 0, len(raw))
	for _, r := range raw {
		beta := r.Custom[opts.BetaAttribute] == BetaSentinel
		if beta && !opts.IncludeBeta {
			continue
		}

		var source []string
		if opts.Mode == config.ModeComponents {
			source = r.Components
		} else {
			source = r.Labels
		}

		var categories []string
		for _, c := range source {
			if strings.HasPrefix(c, opts.Prefix) {
				categories = append(categories, c[len(opts.Prefix):])
			}
		}

		issues = append(issues, Issue{
			ID:          r.ID,
			Categories:  categories,
			TimeBucket:  r.Status,
			Summary:     r.Summary,
			Description: r.Description, // absent descriptions arrive as ""
			Link:        r.Link,
			Beta:        beta,
		})
	}
	return issues, nil
}
