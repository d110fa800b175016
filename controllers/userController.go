package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"civiconnect-be/models"
	"civiconnect-be/query"
	"civiconnect-be/session"
	"civiconnect-be/store"

	"github.com/gin-gonic/gin"
)

// Achievement thresholds shown on the profile page.
const (
	reporterIssues      = 10
	advocateVotes       = 100
	solutionSuggestions = 5
	championMonths      = 6
)

type Achievement struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

// Impact summarises how the community responded to a user's reports.
type Impact struct {
	IssuesResolved   int `json:"issuesResolved"`
	LikesReceived    int `json:"likesReceived"`
	CommentsReceived int `json:"commentsReceived"`
	VotesReceived    int `json:"votesReceived"`
}

type Profile struct {
	User         models.User   `json:"user"`
	Issues       []IssueView   `json:"issues"`
	Impact       Impact        `json:"impact"`
	Achievements []Achievement `json:"achievements"`
}

func impactOf(userID string, issues []models.Issue, suggestions []models.Suggestion) Impact {
	var impact Impact
	for _, issue := range issues {
		if issue.UserID != userID {
			continue
		}
		if issue.Status == models.Resolved {
			impact.IssuesResolved++
		}
		impact.LikesReceived += issue.Likes
		impact.CommentsReceived += issue.Comments
	}
	for _, s := range suggestions {
		if s.UserID == userID {
			impact.VotesReceived += s.Votes
		}
	}
	// Likes on reports count as community votes too.
	impact.VotesReceived += impact.LikesReceived
	return impact
}

func achievementsOf(user models.User, impact Impact, now time.Time) []Achievement {
	champion := false
	if joined, ok := models.ParseTimestamp(user.JoinedAt); ok {
		champion = !joined.AddDate(0, championMonths, 0).After(now)
	}
	return []Achievement{
		{Label: "Issue Reporter", Description: "Reported 10+ issues", Earned: user.IssuesSubmitted >= reporterIssues},
		{Label: "Community Advocate", Description: "Received 100+ votes", Earned: impact.VotesReceived >= advocateVotes},
		{Label: "Solution Finder", Description: "Suggested 5+ solutions", Earned: user.SuggestionsSubmitted >= solutionSuggestions},
		{Label: "Civic Champion", Description: "Active for 6+ months", Earned: champion},
	}
}

type UserController struct {
	store store.Store
	now   func() time.Time
}

func NewUserController(s store.Store) *UserController {
	return &UserController{store: s, now: time.Now}
}

// GetProfile returns the signed-in user's profile page data
func (uc *UserController) GetProfile(c *gin.Context) {
	current, ok := session.FromGin(c).CurrentUser()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	// The session holds a snapshot; counters come from the store.
	user, err := uc.store.FindUserByID(ctx, current.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			log.Printf("Failed to load user %s: %v", current.ID, err)
			c.JSON(statusFor(err), gin.H{"error": "Failed to load profile"})
		}
		return
	}
	user.Password = ""

	issues, err := uc.store.ListIssues(ctx)
	if err != nil {
		log.Printf("Failed to list issues: %v", err)
		c.JSON(statusFor(err), gin.H{"error": "Failed to load profile"})
		return
	}
	suggestions, err := uc.store.ListSuggestions(ctx, user.ID)
	if err != nil {
		log.Printf("Failed to list suggestions: %v", err)
		c.JSON(statusFor(err), gin.H{"error": "Failed to load profile"})
		return
	}

	now := uc.now()
	impact := impactOf(user.ID, issues, suggestions)
	c.JSON(http.StatusOK, Profile{
		User:         user,
		Issues:       issueViews(query.ByUser(issues, user.ID), now),
		Impact:       impact,
		Achievements: achievementsOf(user, impact, now),
	})
}
