package roadmap_test

import (
	"fmt"

	"github.com/matzehuels/roadmapper/pkg/config"
	"github.com/matzehuels/roadmapper/pkg/roadmap"
	"github.com/matzehuels/roadmapper/pkg/tracker"
)

func ExampleNormalize() {
	raw := []tracker.RawIssue{
		{
			ID:         "10001",
			Summary:    "Faceted search",
			Status:     "In Progress",
			Components: []string{"Product: Search", "Internal"},
		},
		{
			ID:         "10002",
			Summary:    "Usage-based billing",
			Status:     "Planned",
			Components: []string{"Product: Billing"},
			Custom:     map[string]string{"customfield_10042": "Beta"},
		},
	}

	issues, err := roadmap.Normalize(raw, roadmap.NormalizeOptions{
		Mode:          config.ModeComponents,
		Prefix:        "Product: ",
		IncludeBeta:   true,
		BetaAttribute: "customfield_10042",
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, i := range issues {
		fmt.Printf("%s %v bucket=%s beta=%v\n", i.Summary, i.Categories, i.TimeBucket, i.Beta)
	}
	// Output:
	// Faceted search [Search] bucket=In Progress beta=false
	// Usage-based billing [Billing] bucket=Planned beta=true
}

func ExampleCategories() {
	issues := []roadmap.Issue{
		{Categories: []string{"Search", "Billing"}},
		{Categories: []string{"Platform"}},
		{Categories: []string{"Billing"}},
	}

	// One deck slide is created per distinct category, in first-seen order.
	fmt.Println(roadmap.Categories(issues))
	// Output:
	// [Search Billing Platform]
}
