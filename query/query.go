// Package query filters and orders issues for the explore view.
package query

import (
	"sort"
	"strings"
	"time"

	"civiconnect-be/models"
)

// All is the wildcard value for the status and category filters.
const All = "all"

// SortKey selects the single key the filtered issues are ordered by.
type SortKey string

const (
	SortRecent   SortKey = "recent"
	SortLikes    SortKey = "likes"
	SortComments SortKey = "comments"
)

// ParseSortKey maps a request value to a SortKey. Anything unrecognised,
// including "nearby", sorts by recency.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortLikes:
		return SortLikes
	case SortComments:
		return SortComments
	default:
		return SortRecent
	}
}

// Criteria describes one explore query. Empty Status and Category behave
// like All.
type Criteria struct {
	SearchTerm string
	Status     string
	Category   string
	SortBy     SortKey
}

// Matches reports whether issue passes every filter in c.
func Matches(issue models.Issue, c Criteria) bool {
	return matchesSearch(issue, strings.ToLower(c.SearchTerm)) &&
		matchesExact(string(issue.Status), c.Status) &&
		matchesExact(string(issue.Category), c.Category)
}

func matchesSearch(issue models.Issue, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(issue.Title), term) ||
		strings.Contains(strings.ToLower(issue.Description), term)
}

func matchesExact(value, want string) bool {
	return want == "" || want == All || value == want
}

// Query returns the issues matching c ordered by c.SortBy. Filtering happens
// first, then a stable sort, so equal keys keep their input order. The
// input slice is left untouched.
func Query(issues []models.Issue, c Criteria) []models.Issue {
	result := make([]models.Issue, 0, len(issues))
	for _, issue := range issues {
		if Matches(issue, c) {
			result = append(result, issue)
		}
	}

	switch ParseSortKey(string(c.SortBy)) {
	case SortLikes:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Likes > result[j].Likes
		})
	case SortComments:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Comments > result[j].Comments
		})
	default:
		sortByCreated(result)
	}
	return result
}

// sortByCreated orders newest first. Unparseable timestamps sink to the end.
func sortByCreated(issues []models.Issue) {
	keys := make(map[string]time.Time, len(issues))
	valid := make(map[string]bool, len(issues))
	for _, issue := range issues {
		if _, seen := keys[issue.CreatedAt]; seen {
			continue
		}
		t, ok := models.ParseTimestamp(issue.CreatedAt)
		keys[issue.CreatedAt] = t
		valid[issue.CreatedAt] = ok
	}

	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i].CreatedAt, issues[j].CreatedAt
		if valid[a] != valid[b] {
			return valid[a]
		}
		if !valid[a] {
			return false
		}
		return keys[a].After(keys[b])
	})
}

// Recent returns at most limit issues, newest first.
func Recent(issues []models.Issue, limit int) []models.Issue {
	sorted := Query(issues, Criteria{SortBy: SortRecent})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// ByUser returns the issues reported by userID, newest first.
func ByUser(issues []models.Issue, userID string) []models.Issue {
	var mine []models.Issue
	for _, issue := range issues {
		if issue.UserID == userID {
			mine = append(mine, issue)
		}
	}
	return Query(mine, Criteria{SortBy: SortRecent})
}

// Page slices issues for the 1-based page of the given size and reports the
// page count.
func Page(issues []models.Issue, page, limit int) ([]models.Issue, int) {
	totalPages := (len(issues) + limit - 1) / limit
	start := (page - 1) * limit
	if start >= len(issues) {
		return []models.Issue{}, totalPages
	}
	end := start + limit
	if end > len(issues) {
		end = len(issues)
	}
	return issues[start:end], totalPages
}
