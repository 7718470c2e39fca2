package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadmapper/pkg/config"
	"github.com/matzehuels/roadmapper/pkg/deck"
	"github.com/matzehuels/roadmapper/pkg/errors"
	"github.com/matzehuels/roadmapper/pkg/roadmap"
	"github.com/matzehuels/roadmapper/pkg/slides"
	"github.com/matzehuels/roadmapper/pkg/tracker"
)

// Environment variables holding credentials. Secrets stay out of the config
// file and out of flags (which leak into shell history).
const (
	envTrackerEmail = "ROADMAPPER_TRACKER_EMAIL"
	envTrackerToken = "ROADMAPPER_TRACKER_TOKEN"
	envSlidesToken  = "ROADMAPPER_SLIDES_TOKEN"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	configPath     string // path to the TOML configuration
	presentationID string // target presentation document
}

// newGenerateCmd creates the generate command: the full two-phase run that
// fetches roadmap issues and builds the deck in the remote presentation.
func newGenerateCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the roadmap deck in a presentation",
		Long: `Fetch roadmap initiatives from the issue tracker and build the deck:
per product category a section-header slide plus a timeline slide, then every
initiative placed as a box into its time column.

Credentials are read from the environment:
  ROADMAPPER_TRACKER_EMAIL   issue-tracker account email
  ROADMAPPER_TRACKER_TOKEN   issue-tracker API token
  ROADMAPPER_SLIDES_TOKEN    presentation-service OAuth token`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "roadmapper.toml", "configuration file")
	cmd.Flags().StringVarP(&opts.presentationID, "presentation", "p", "", "presentation document ID (required)")
	_ = cmd.MarkFlagRequired("presentation")

	return cmd
}

func runGenerate(ctx context.Context, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	issues, err := fetchIssues(ctx, cfg)
	if err != nil {
		printError("Failed to load roadmap issues: %s", errors.UserMessage(err))
		return err
	}
	printSuccess("Loaded %d roadmap issues", len(issues))

	sink := slides.NewClient("", os.Getenv(envSlidesToken))
	builder := deck.NewBuilder(cfg.Deck, logger)

	spinner := newSpinnerWithContext(ctx, "Building roadmap deck...")
	spinner.Start()
	summary, err := builder.Run(ctx, sink, opts.presentationID, issues)
	spinner.Stop()
	if err != nil {
		printError("Deck generation aborted: %s", errors.UserMessage(err))
		return err
	}

	printSuccess("Roadmap deck generated")
	printStat("slides", summary.Slides)
	printStat("categories", summary.Categories)
	printStat("issues", summary.Issues)
	return nil
}

// fetchIssues queries the tracker and normalizes the result. It is shared by
// generate and plan.
func fetchIssues(ctx context.Context, cfg *config.Config) ([]roadmap.Issue, error) {
	logger := loggerFromContext(ctx)

	client := tracker.NewClient(
		cfg.Tracker.BaseURL,
		os.Getenv(envTrackerEmail),
		os.Getenv(envTrackerToken),
	)

	jql := tracker.SearchQuery(cfg.Tracker.Project, cfg.Tracker.IssueType)
	logger.Debug("querying issue tracker", "jql", jql)

	spinner := newSpinnerWithContext(ctx, "Fetching roadmap issues...")
	spinner.Start()
	raw, err := client.Search(ctx, jql)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	logger.Debug("fetched raw issues", "count", len(raw))

	return roadmap.Normalize(raw, roadmap.NormalizeOptions{
		Mode:          cfg.Tracker.CategoryMode,
		Prefix:        cfg.Tracker.CategoryPrefix,
		IncludeBeta:   cfg.Tracker.IncludeBeta,
		BetaAttribute: cfg.Tracker.BetaAttribute,
	})
}
