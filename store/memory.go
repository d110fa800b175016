package store

import (
	"context"
	"strings"
	"sync"

	"civiconnect-be/models"
)

// MemoryStore keeps everything in process memory. It backs the fixture data
// source and the tests.
type MemoryStore struct {
	mu          sync.RWMutex
	issues      []models.Issue
	suggestions []models.Suggestion
	users       map[string]models.User
	votes       map[string]map[string]bool // suggestion -> user
	likes       map[string]map[string]bool // issue -> user
}

// NewMemoryStore seeds a store from f.
func NewMemoryStore(f Fixtures) (*MemoryStore, error) {
	users, err := hashFixturePasswords(f.Users)
	if err != nil {
		return nil, err
	}

	s := &MemoryStore{
		issues:      append([]models.Issue(nil), f.Issues...),
		suggestions: append([]models.Suggestion(nil), f.Suggestions...),
		users:       make(map[string]models.User, len(users)),
		votes:       make(map[string]map[string]bool),
		likes:       make(map[string]map[string]bool),
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	for _, v := range f.Votes {
		if s.votes[v.Suggestion] == nil {
			s.votes[v.Suggestion] = make(map[string]bool)
		}
		s.votes[v.Suggestion][v.User] = true
	}
	return s, nil
}

// hashFixturePasswords hashes plain-text fixture passwords. Values that are
// already bcrypt hashes are kept.
func hashFixturePasswords(users []models.User) ([]models.User, error) {
	out := make([]models.User, len(users))
	for i, u := range users {
		if u.Password != "" && !strings.HasPrefix(u.Password, "$2") {
			if err := u.HashPassword(); err != nil {
				return nil, err
			}
		}
		out[i] = u
	}
	return out, nil
}

func (s *MemoryStore) ListIssues(_ context.Context) ([]models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Issue(nil), s.issues...), nil
}

func (s *MemoryStore) GetIssue(_ context.Context, id string) (models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, issue := range s.issues {
		if issue.ID == id {
			return issue, nil
		}
	}
	return models.Issue{}, ErrNotFound
}

func (s *MemoryStore) CreateIssue(_ context.Context, issue models.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.issues {
		if existing.ID == issue.ID {
			return ErrDuplicate
		}
	}
	s.issues = append(s.issues, issue)
	return nil
}

func (s *MemoryStore) ToggleLike(_ context.Context, issueID, userID string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.issues {
		if s.issues[i].ID == issueID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, false, ErrNotFound
	}

	liked := toggle(s.likes, issueID, userID)
	if liked {
		s.issues[idx].Likes++
	} else if s.issues[idx].Likes > 0 {
		s.issues[idx].Likes--
	}
	return s.issues[idx].Likes, liked, nil
}

// toggle flips set[key][user] and returns the new value.
func toggle(set map[string]map[string]bool, key, user string) bool {
	if set[key][user] {
		delete(set[key], user)
		return false
	}
	if set[key] == nil {
		set[key] = make(map[string]bool)
	}
	set[key][user] = true
	return true
}

func (s *MemoryStore) ListSuggestions(_ context.Context, viewerID string) ([]models.Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Suggestion, len(s.suggestions))
	for i, sug := range s.suggestions {
		sug.UserHasVoted = viewerID != "" && s.votes[sug.ID][viewerID]
		out[i] = sug
	}
	return out, nil
}

func (s *MemoryStore) CreateSuggestion(_ context.Context, sug models.Suggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.suggestions {
		if existing.ID == sug.ID {
			return ErrDuplicate
		}
	}
	sug.UserHasVoted = false
	s.suggestions = append(s.suggestions, sug)
	return nil
}

func (s *MemoryStore) ToggleVote(_ context.Context, suggestionID, userID string) (models.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.suggestions {
		if s.suggestions[i].ID != suggestionID {
			continue
		}
		voted := toggle(s.votes, suggestionID, userID)
		if voted {
			s.suggestions[i].Votes++
		} else if s.suggestions[i].Votes > 0 {
			s.suggestions[i].Votes--
		}
		sug := s.suggestions[i]
		sug.UserHasVoted = voted
		return sug, nil
	}
	return models.Suggestion{}, ErrNotFound
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryStore) FindUserByID(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return ErrDuplicate
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrDuplicate
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *MemoryStore) IncrementUserCounter(_ context.Context, userID string, counter Counter, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	switch counter {
	case IssuesSubmitted:
		u.IssuesSubmitted = max(0, u.IssuesSubmitted+delta)
	case SuggestionsSubmitted:
		u.SuggestionsSubmitted = max(0, u.SuggestionsSubmitted+delta)
	case VotesGiven:
		u.VotesGiven = max(0, u.VotesGiven+delta)
	}
	s.users[userID] = u
	return nil
}
