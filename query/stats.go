package query

import "civiconnect-be/models"

// Stats holds the counts behind the status filter chips and the category
// breakdown.
type Stats struct {
	Total      int                          `json:"total"`
	ByStatus   map[models.IssueStatus]int   `json:"byStatus"`
	ByCategory map[models.IssueCategory]int `json:"byCategory"`
}

// Count tallies issues per status and per category. Every known status and
// category is present even when its count is zero; unknown values are
// counted under their own key.
func Count(issues []models.Issue) Stats {
	stats := Stats{
		Total:      len(issues),
		ByStatus:   make(map[models.IssueStatus]int, len(models.Statuses)),
		ByCategory: make(map[models.IssueCategory]int, len(models.Categories)),
	}
	for _, s := range models.Statuses {
		stats.ByStatus[s] = 0
	}
	for _, c := range models.Categories {
		stats.ByCategory[c] = 0
	}
	for _, issue := range issues {
		stats.ByStatus[issue.Status]++
		stats.ByCategory[issue.Category]++
	}
	return stats
}

// Suggestions returns the suggestions attached to issueID, or all of them
// when issueID is empty or All.
func Suggestions(suggestions []models.Suggestion, issueID string) []models.Suggestion {
	if issueID == "" || issueID == All {
		return suggestions
	}
	filtered := make([]models.Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if s.IssueID == issueID {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
