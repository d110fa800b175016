// Package store supplies issues, suggestions and users to the handlers.
package store

import (
	"context"
	"errors"

	"civiconnect-be/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	// ErrUnavailable wraps failures to reach the backing database.
	ErrUnavailable = errors.New("data source unavailable")
)

// Counter names a per-user activity counter.
type Counter string

const (
	IssuesSubmitted      Counter = "issuesSubmitted"
	SuggestionsSubmitted Counter = "suggestionsSubmitted"
	VotesGiven           Counter = "votesGiven"
)

type IssueStore interface {
	ListIssues(ctx context.Context) ([]models.Issue, error)
	GetIssue(ctx context.Context, id string) (models.Issue, error)
	CreateIssue(ctx context.Context, issue models.Issue) error
	// ToggleLike likes the issue for userID, or removes an existing like.
	ToggleLike(ctx context.Context, issueID, userID string) (likes int, liked bool, err error)
}

type SuggestionStore interface {
	// ListSuggestions returns every suggestion with UserHasVoted set for
	// viewerID. An empty viewerID never has votes.
	ListSuggestions(ctx context.Context, viewerID string) ([]models.Suggestion, error)
	CreateSuggestion(ctx context.Context, s models.Suggestion) error
	// ToggleVote votes for the suggestion, or removes an existing vote, and
	// returns it as seen by userID.
	ToggleVote(ctx context.Context, suggestionID, userID string) (models.Suggestion, error)
}

type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	CreateUser(ctx context.Context, user models.User) error
	IncrementUserCounter(ctx context.Context, userID string, counter Counter, delta int) error
}

// Store is everything the service reads and writes.
type Store interface {
	IssueStore
	SuggestionStore
	UserStore
}
