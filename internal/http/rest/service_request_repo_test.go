package rest

import (
	"strings"
	"testing"
)

func TestAnnouncementBudgetPredicate(t *testing.T) {
	testCases := []struct {
		name         string
		filter       string
		wantEmpty    bool
		wantContains []string
	}{
		{"Low Tier", "low", false, []string{"budget_max IS NOT NULL", "<= 1000"}},
		{"Medium Tier", "medium", false, []string{"budget_max IS NOT NULL", "<= 5000"}},
		{"High Tier Uncapped", "high", true, nil},
		{"No Filter", "", true, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			predicate := announcementBudgetPredicate(tc.filter)
			if tc.wantEmpty {
				if predicate != "" {
					t.Fatalf("predicate = %q; want empty", predicate)
				}
				return
			}
			if predicate == "" {
				t.Fatal("predicate is empty; want a filter")
			}
			for _, fragment := range tc.wantContains {
				if !strings.Contains(predicate, fragment) {
					t.Errorf("predicate %q missing fragment %q", predicate, fragment)
				}
			}
		})
	}
}

// A listing with no declared ceiling must be excluded by the capped tiers:
// the predicate has to require budget_max to exist before comparing it.
func TestCappedTiersExcludeNullBudgets(t *testing.T) {
	for _, filter := range []string{"low", "medium"} {
		predicate := announcementBudgetPredicate(filter)
		if !strings.Contains(predicate, "IS NOT NULL") {
			t.Errorf("%s tier predicate %q does not exclude null budgets", filter, predicate)
		}
	}
}

func TestValidBudgetFilter(t *testing.T) {
	for _, filter := range []string{"low", "medium", "high"} {
		if !validBudgetFilter(filter) {
			t.Errorf("validBudgetFilter(%q) = false; want true", filter)
		}
	}
	for _, filter := range []string{"", "LOW", "huge", "0"} {
		if validBudgetFilter(filter) {
			t.Errorf("validBudgetFilter(%q) = true; want false", filter)
		}
	}
}
