package roadmap

// Categories returns the deduplicated product categories across all issues.
// Order is first-seen, so the resulting slide order is reproducible for the
// same issue list.
func Categories(issues []Issue) []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, issue := range issues {
		for _, c := range issue.Categories {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			categories = append(categories, c)
		}
	}
	return categories
}
