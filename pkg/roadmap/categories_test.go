package roadmap

import (
	"slices"
	"sort"
	"testing"
)

func issueWith(categories ...string) Issue {
	return Issue{Categories: categories}
}

func TestCategories_FirstSeenOrder(t *testing.T) {
	issues := []Issue{
		issueWith("Search", "Billing"),
		issueWith("Platform"),
		issueWith("Billing", "Search"),
	}

	got := Categories(issues)
	want := []string{"Search", "Billing", "Platform"}
	if !slices.Equal(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestCategories_OrderIndependentAsSet(t *testing.T) {
	issues := []Issue{
		issueWith("A"),
		issueWith("B", "C"),
		issueWith("C", "A"),
	}
	shuffled := []Issue{issues[2], issues[0], issues[1]}

	a := Categories(issues)
	b := Categories(shuffled)
	sort.Strings(a)
	sort.Strings(b)
	if !slices.Equal(a, b) {
		t.Errorf("category sets differ: %v vs %v", a, b)
	}
}

func TestCategories_Empty(t *testing.T) {
	if got := Categories(nil); len(got) != 0 {
		t.Errorf("Categories(nil) = %v, want empty", got)
	}
	if got := Categories([]Issue{issueWith()}); len(got) != 0 {
		t.Errorf("Categories(no categories) = %v, want empty", got)
	}
}

func TestCategories_Idempotent(t *testing.T) {
	issues := []Issue{issueWith("X", "Y"), issueWith("Y")}
	first := Categories(issues)
	second := Categories(issues)
	if !slices.Equal(first, second) {
		t.Errorf("Categories() not deterministic: %v vs %v", first, second)
	}
}
