package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"civiconnect-be/models"
	"civiconnect-be/query"
	"civiconnect-be/session"
	"civiconnect-be/store"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const unknownIssueTitle = "Unknown Issue"

// SuggestionView is a suggestion with the title of the issue it addresses.
type SuggestionView struct {
	models.Suggestion
	IssueTitle string `json:"issueTitle"`
	Age        string `json:"age"`
}

type SuggestionController struct {
	suggestions store.SuggestionStore
	issues      store.IssueStore
	users       store.UserStore
	now         func() time.Time
}

func NewSuggestionController(suggestions store.SuggestionStore, issues store.IssueStore, users store.UserStore) *SuggestionController {
	return &SuggestionController{suggestions: suggestions, issues: issues, users: users, now: time.Now}
}

func (sc *SuggestionController) view(s models.Suggestion, titles map[string]string) SuggestionView {
	v := SuggestionView{Suggestion: s, IssueTitle: unknownIssueTitle}
	if title, ok := titles[s.IssueID]; ok {
		v.IssueTitle = title
	}
	if created, ok := models.ParseTimestamp(s.CreatedAt); ok {
		v.Age = humanize.RelTime(created, sc.now(), "ago", "from now")
	}
	return v
}

func (sc *SuggestionController) issueTitles(ctx context.Context) (map[string]string, error) {
	issues, err := sc.issues.ListIssues(ctx)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(issues))
	for _, issue := range issues {
		titles[issue.ID] = issue.Title
	}
	return titles, nil
}

// GetSuggestions lists suggestions, optionally for a single issue. Signed-in
// viewers see which ones they voted for.
func (sc *SuggestionController) GetSuggestions(c *gin.Context) {
	viewer, _ := session.FromGin(c).CurrentUser()

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	all, err := sc.suggestions.ListSuggestions(ctx, viewer.ID)
	if err != nil {
		log.Printf("Failed to list suggestions: %v", err)
		c.JSON(statusFor(err), gin.H{"error": "Failed to retrieve suggestions"})
		return
	}
	titles, err := sc.issueTitles(ctx)
	if err != nil {
		log.Printf("Failed to list issues: %v", err)
		c.JSON(statusFor(err), gin.H{"error": "Failed to retrieve suggestions"})
		return
	}

	filtered := query.Suggestions(all, c.DefaultQuery("issue", query.All))
	views := make([]SuggestionView, 0, len(filtered))
	for _, s := range filtered {
		views = append(views, sc.view(s, titles))
	}
	c.JSON(http.StatusOK, gin.H{
		"suggestions": views,
		"total":       len(views),
	})
}

// CreateSuggestion proposes a solution for an existing issue
func (sc *SuggestionController) CreateSuggestion(c *gin.Context) {
	user, ok := session.FromGin(c).CurrentUser()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		IssueID     string `json:"issueId" binding:"required"`
		Title       string `json:"title" binding:"required,max=200"`
		Description string `json:"description" binding:"required,max=2000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	issue, err := sc.issues.GetIssue(ctx, input.IssueID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			log.Printf("Failed to retrieve issue %s: %v", input.IssueID, err)
			c.JSON(statusFor(err), gin.H{"error": "Failed to create suggestion"})
		}
		return
	}

	suggestion := models.Suggestion{
		ID:          uuid.NewString(),
		IssueID:     issue.ID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		UserID:      user.ID,
		UserName:    user.Name,
		CreatedAt:   models.FormatTimestamp(sc.now()),
	}
	if err := sc.suggestions.CreateSuggestion(ctx, suggestion); err != nil {
		log.Printf("Failed to create suggestion: %v", err)
		c.JSON(statusFor(err), gin.H{"error": "Failed to create suggestion"})
		return
	}
	if err := sc.users.IncrementUserCounter(ctx, user.ID, store.SuggestionsSubmitted, 1); err != nil {
		log.Printf("Failed to update suggestion count for %s: %v", user.ID, err)
	}

	c.JSON(http.StatusCreated, sc.view(suggestion, map[string]string{issue.ID: issue.Title}))
}

// HandleVoteOnSuggestion toggles the user's vote (vote if not voted, unvote if already voted)
func (sc *SuggestionController) HandleVoteOnSuggestion(c *gin.Context) {
	user, ok := session.FromGin(c).CurrentUser()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	suggestion, err := sc.suggestions.ToggleVote(ctx, c.Param("id"), user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Suggestion not found"})
		} else {
			log.Printf("Failed to toggle vote on %s: %v", c.Param("id"), err)
			c.JSON(statusFor(err), gin.H{"error": "Failed to update vote"})
		}
		return
	}

	delta, message := -1, "Vote removed successfully"
	if suggestion.UserHasVoted {
		delta, message = 1, "Vote cast successfully"
	}
	if err := sc.users.IncrementUserCounter(ctx, user.ID, store.VotesGiven, delta); err != nil {
		log.Printf("Failed to update vote count for %s: %v", user.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      message,
		"votes":        suggestion.Votes,
		"userHasVoted": suggestion.UserHasVoted,
	})
}
