package store

import (
	"fmt"
	"os"

	"civiconnect-be/models"

	"gopkg.in/yaml.v3"
)

// Fixtures is the seed data for a fresh store. Passwords are plain text and
// hashed when seeded.
type Fixtures struct {
	Users       []models.User       `yaml:"users"`
	Issues      []models.Issue      `yaml:"issues"`
	Suggestions []models.Suggestion `yaml:"suggestions"`
	Votes       []FixtureVote       `yaml:"votes"`
}

type FixtureVote struct {
	Suggestion string `yaml:"suggestion"`
	User       string `yaml:"user"`
}

// LoadFixtures reads fixtures from a YAML file.
func LoadFixtures(path string) (Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("failed to read fixtures: %w", err)
	}
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixtures{}, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}
	return f, nil
}

func strPtr(s string) *string { return &s }

// DefaultFixtures is the demo data set: one signed-up resident, four issues
// and three suggestions.
func DefaultFixtures() Fixtures {
	return Fixtures{
		Users: []models.User{
			{
				ID:                   "1",
				Name:                 "Sarah Chen",
				Email:                "sarah@example.com",
				Avatar:               strPtr("https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&dpr=2"),
				JoinedAt:             "2024-01-15",
				IssuesSubmitted:      12,
				VotesGiven:           45,
				SuggestionsSubmitted: 8,
				Location:             "Downtown District",
				Password:             "civiconnect",
			},
			{ID: "2", Name: "Mike Rodriguez", Email: "mike@example.com", JoinedAt: "2024-02-03"},
			{ID: "3", Name: "Emma Thompson", Email: "emma@example.com", JoinedAt: "2024-03-21"},
			{ID: "4", Name: "David Kim", Email: "david@example.com", JoinedAt: "2024-05-09"},
		},
		Issues: []models.Issue{
			{
				ID:          "1",
				Title:       "Large pothole on Main Street blocking traffic",
				Description: "Deep pothole near the intersection causing damage to vehicles and creating safety hazard during rush hour.",
				ImageURL:    strPtr("https://images.pexels.com/photos/163064/play-stone-network-networked-interactive-163064.jpeg?auto=compress&cs=tinysrgb&w=600"),
				Location:    models.Location{Lat: 40.7128, Lng: -74.0060, Address: "123 Main Street, Downtown"},
				Category:    models.Pothole,
				Status:      models.InProgress,
				UserID:      "1",
				UserName:    "Sarah Chen",
				UserAvatar:  strPtr("https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=50&h=50&dpr=2"),
				Likes:       24,
				Comments:    8,
				CreatedAt:   "2024-12-20T10:30:00Z",
				UpdatedAt:   "2024-12-21T14:20:00Z",
				Tags:        []string{"urgent", "traffic", "safety"},
			},
			{
				ID:          "2",
				Title:       "Overflowing garbage bins in Central Park",
				Description: "Multiple bins are overflowing attracting pests and creating unsanitary conditions for families.",
				ImageURL:    strPtr("https://images.pexels.com/photos/2827392/pexels-photo-2827392.jpeg?auto=compress&cs=tinysrgb&w=600"),
				Location:    models.Location{Lat: 40.7829, Lng: -73.9654, Address: "Central Park, Recreation Area"},
				Category:    models.Garbage,
				Status:      models.Open,
				UserID:      "2",
				UserName:    "Mike Rodriguez",
				UserAvatar:  strPtr("https://images.pexels.com/photos/1043471/pexels-photo-1043471.jpeg?auto=compress&cs=tinysrgb&w=50&h=50&dpr=2"),
				Likes:       18,
				Comments:    5,
				CreatedAt:   "2024-12-19T15:45:00Z",
				UpdatedAt:   "2024-12-19T15:45:00Z",
				Tags:        []string{"sanitation", "park", "health"},
			},
			{
				ID:          "3",
				Title:       "Water leak flooding Oak Avenue sidewalk",
				Description: "Major water main break causing flooding and making the sidewalk impassable for pedestrians.",
				ImageURL:    strPtr("https://images.pexels.com/photos/1684187/pexels-photo-1684187.jpeg?auto=compress&cs=tinysrgb&w=600"),
				Location:    models.Location{Lat: 40.7589, Lng: -73.9851, Address: "456 Oak Avenue, Residential District"},
				Category:    models.Water,
				Status:      models.Resolved,
				UserID:      "3",
				UserName:    "Emma Thompson",
				UserAvatar:  strPtr("https://images.pexels.com/photos/1130626/pexels-photo-1130626.jpeg?auto=compress&cs=tinysrgb&w=50&h=50&dpr=2"),
				Likes:       31,
				Comments:    12,
				CreatedAt:   "2024-12-18T09:15:00Z",
				UpdatedAt:   "2024-12-21T11:30:00Z",
				Tags:        []string{"emergency", "water", "resolved"},
			},
			{
				ID:          "4",
				Title:       "Broken streetlight creating safety concern",
				Description: "Street lamp has been out for weeks making the intersection dangerous for evening commuters.",
				ImageURL:    strPtr("https://images.pexels.com/photos/327933/pexels-photo-327933.jpeg?auto=compress&cs=tinysrgb&w=600"),
				Location:    models.Location{Lat: 40.7505, Lng: -73.9934, Address: "789 Elm Street, Business District"},
				Category:    models.Lighting,
				Status:      models.Open,
				UserID:      "4",
				UserName:    "David Kim",
				UserAvatar:  strPtr("https://images.pexels.com/photos/1681010/pexels-photo-1681010.jpeg?auto=compress&cs=tinysrgb&w=50&h=50&dpr=2"),
				Likes:       15,
				Comments:    6,
				CreatedAt:   "2024-12-17T18:20:00Z",
				UpdatedAt:   "2024-12-17T18:20:00Z",
				Tags:        []string{"safety", "lighting", "pedestrian"},
			},
		},
		Suggestions: []models.Suggestion{
			{
				ID:          "1",
				IssueID:     "1",
				Title:       "Temporary traffic diversion with clear signage",
				Description: "Set up proper warning signs and traffic cones to guide vehicles around the pothole while repairs are scheduled.",
				UserID:      "2",
				UserName:    "Mike Rodriguez",
				Votes:       12,
				CreatedAt:   "2024-12-20T12:00:00Z",
			},
			{
				ID:          "2",
				IssueID:     "1",
				Title:       "Quick concrete patch as interim solution",
				Description: "Apply a temporary concrete patch to make the road safer until a permanent repair can be completed.",
				UserID:      "3",
				UserName:    "Emma Thompson",
				Votes:       8,
				CreatedAt:   "2024-12-20T14:30:00Z",
			},
			{
				ID:          "3",
				IssueID:     "2",
				Title:       "Install additional recycling bins",
				Description: "Add more bins and improve recycling options to reduce overall waste volume in the park.",
				UserID:      "1",
				UserName:    "Sarah Chen",
				Votes:       15,
				CreatedAt:   "2024-12-19T16:15:00Z",
			},
		},
		Votes: []FixtureVote{{Suggestion: "2", User: "1"}},
	}
}
