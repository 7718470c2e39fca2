package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadmapper/pkg/config"
	"github.com/matzehuels/roadmapper/pkg/deck"
	"github.com/matzehuels/roadmapper/pkg/errors"
	"github.com/matzehuels/roadmapper/pkg/roadmap"
	"github.com/matzehuels/roadmapper/pkg/slides"
)

// planOpts holds the command-line flags for the plan command.
type planOpts struct {
	configPath string
	output     string // output file, "-" for stdout
}

// planDocument is the JSON shape written by the plan command: both phase
// batches plus the slide records linking them, so the population requests'
// page IDs can be resolved against the skeleton.
type planDocument struct {
	Slides     []deck.Slide     `json:"slides"`
	Skeleton   []slides.Request `json:"skeleton"`
	Population []slides.Request `json:"population"`
}

// newPlanCmd creates the plan command: a dry run that builds both operation
// batches and writes them as JSON without touching the presentation.
func newPlanCmd() *cobra.Command {
	var opts planOpts

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview the drawing operations without executing them",
		Long: `Fetch roadmap initiatives and build both operation batches (skeleton and
population), then write them as JSON instead of executing them. Useful for
inspecting geometry and for diffing layout changes before a real run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "roadmapper.toml", "configuration file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "output file (\"-\" for stdout)")

	return cmd
}

func runPlan(ctx context.Context, opts *planOpts) error {
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

	builder := deck.NewBuilder(cfg.Deck, logger)
	skeleton, created := builder.BuildSkeleton(roadmap.Categories(issues))
	population := builder.BuildPlacements(created, issues)

	doc := planDocument{
		Slides:     created,
		Skeleton:   skeleton,
		Population: population,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode plan")
	}
	data = append(data, '\n')

	if opts.output == "-" {
		_, err = os.Stdout.Write(data)
	} else {
		err = os.WriteFile(opts.output, data, 0o644)
	}
	if err != nil {
		return fmt.Errorf("write plan: %w", err)
	}

	printSuccess("Planned %d slides, %d operations",
		2*len(created), len(skeleton)+len(population))
	return nil
}
