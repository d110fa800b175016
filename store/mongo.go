package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"civiconnect-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const queryTimeout = 10 * time.Second

// MongoStore reads and writes the civiconnect collections.
type MongoStore struct {
	issues      *mongo.Collection
	suggestions *mongo.Collection
	users       *mongo.Collection
	votes       *mongo.Collection
	likes       *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		issues:      db.Collection("issues"),
		suggestions: db.Collection("suggestions"),
		users:       db.Collection("users"),
		votes:       db.Collection("suggestion_votes"),
		likes:       db.Collection("issue_likes"),
	}
}

// EnsureIndexes creates the unique indexes the toggles and sign-up rely on.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	if err := models.EnsureVoteIndex(ctx, s.votes); err != nil {
		return fmt.Errorf("failed to create vote index: %w", err)
	}
	if err := models.EnsureLikeIndex(ctx, s.likes); err != nil {
		return fmt.Errorf("failed to create like index: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

// SeedIfEmpty loads f when the issues collection has no documents.
func (s *MongoStore) SeedIfEmpty(ctx context.Context, f Fixtures) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	count, err := s.issues.CountDocuments(ctx, bson.M{})
	if err != nil {
		return classify(err)
	}
	if count > 0 {
		return nil
	}

	users, err := hashFixturePasswords(f.Users)
	if err != nil {
		return err
	}
	for _, u := range users {
		if _, err := s.users.InsertOne(ctx, u); err != nil && !mongo.IsDuplicateKeyError(err) {
			return classify(err)
		}
	}
	for _, issue := range f.Issues {
		if _, err := s.issues.InsertOne(ctx, issue); err != nil {
			return classify(err)
		}
	}
	for _, sug := range f.Suggestions {
		if _, err := s.suggestions.InsertOne(ctx, sug); err != nil {
			return classify(err)
		}
	}
	for _, v := range f.Votes {
		vote := models.Vote{Suggestion: v.Suggestion, User: v.User, CreatedAt: time.Now()}
		if _, err := s.votes.InsertOne(ctx, vote); err != nil && !mongo.IsDuplicateKeyError(err) {
			return classify(err)
		}
	}

	log.Printf("Seeded %d issues and %d suggestions", len(f.Issues), len(f.Suggestions))
	return nil
}

// classify maps driver errors onto the store sentinels.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	case mongo.IsNetworkError(err), mongo.IsTimeout(err):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return err
	}
}

func (s *MongoStore) ListIssues(ctx context.Context) ([]models.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.issues.Find(ctx, bson.M{})
	if err != nil {
		return nil, classify(err)
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, classify(err)
	}
	return issues, nil
}

func (s *MongoStore) GetIssue(ctx context.Context, id string) (models.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var issue models.Issue
	if err := s.issues.FindOne(ctx, bson.M{"_id": id}).Decode(&issue); err != nil {
		return models.Issue{}, classify(err)
	}
	return issue, nil
}

func (s *MongoStore) CreateIssue(ctx context.Context, issue models.Issue) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.issues.InsertOne(ctx, issue)
	return classify(err)
}

func (s *MongoStore) ToggleLike(ctx context.Context, issueID, userID string) (int, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	count, err := s.issues.CountDocuments(ctx, bson.M{"_id": issueID})
	if err != nil {
		return 0, false, classify(err)
	}
	if count == 0 {
		return 0, false, ErrNotFound
	}

	liked, err := togglePair(ctx, s.likes, "issue", issueID, userID, func() any {
		return models.Like{Issue: issueID, User: userID, CreatedAt: time.Now()}
	})
	if err != nil {
		return 0, false, err
	}

	delta := 1
	if !liked {
		delta = -1
	}
	var issue models.Issue
	err = s.issues.FindOneAndUpdate(ctx,
		bson.M{"_id": issueID},
		bson.M{"$inc": bson.M{"likes": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&issue)
	if err != nil {
		return 0, false, classify(err)
	}
	return issue.Likes, liked, nil
}

// togglePair removes the (key, user) document from coll if present, or
// inserts newDoc otherwise. It reports whether the pair now exists.
func togglePair(ctx context.Context, coll *mongo.Collection, key, id, userID string, newDoc func() any) (bool, error) {
	filter := bson.M{key: id, "user": userID}

	// Check if the user has already voted
	count, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, classify(err)
	}

	if count > 0 {
		if _, err := coll.DeleteOne(ctx, filter); err != nil {
			return false, classify(err)
		}
		return false, nil
	}

	if _, err := coll.InsertOne(ctx, newDoc()); err != nil {
		return false, classify(err)
	}
	return true, nil
}

func (s *MongoStore) ListSuggestions(ctx context.Context, viewerID string) ([]models.Suggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.suggestions.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, classify(err)
	}
	defer cursor.Close(ctx)

	suggestions := []models.Suggestion{}
	if err := cursor.All(ctx, &suggestions); err != nil {
		return nil, classify(err)
	}
	if viewerID == "" {
		return suggestions, nil
	}

	voteCursor, err := s.votes.Find(ctx, bson.M{"user": viewerID})
	if err != nil {
		return nil, classify(err)
	}
	defer voteCursor.Close(ctx)

	var votes []models.Vote
	if err := voteCursor.All(ctx, &votes); err != nil {
		return nil, classify(err)
	}
	voted := make(map[string]bool, len(votes))
	for _, v := range votes {
		voted[v.Suggestion] = true
	}
	for i := range suggestions {
		suggestions[i].UserHasVoted = voted[suggestions[i].ID]
	}
	return suggestions, nil
}

func (s *MongoStore) CreateSuggestion(ctx context.Context, sug models.Suggestion) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.suggestions.InsertOne(ctx, sug)
	return classify(err)
}

func (s *MongoStore) ToggleVote(ctx context.Context, suggestionID, userID string) (models.Suggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// Check if the suggestion exists
	count, err := s.suggestions.CountDocuments(ctx, bson.M{"_id": suggestionID})
	if err != nil {
		return models.Suggestion{}, classify(err)
	}
	if count == 0 {
		return models.Suggestion{}, ErrNotFound
	}

	voted, err := togglePair(ctx, s.votes, "suggestion", suggestionID, userID, func() any {
		return models.Vote{Suggestion: suggestionID, User: userID, CreatedAt: time.Now()}
	})
	if err != nil {
		return models.Suggestion{}, err
	}

	delta := 1
	if !voted {
		delta = -1
	}
	var sug models.Suggestion
	err = s.suggestions.FindOneAndUpdate(ctx,
		bson.M{"_id": suggestionID},
		bson.M{"$inc": bson.M{"votes": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&sug)
	if err != nil {
		return models.Suggestion{}, classify(err)
	}
	sug.UserHasVoted = voted
	return sug, nil
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return models.User{}, classify(err)
	}
	return user, nil
}

func (s *MongoStore) FindUserByID(ctx context.Context, id string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return models.User{}, classify(err)
	}
	return user, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user models.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.users.InsertOne(ctx, user)
	return classify(err)
}

func (s *MongoStore) IncrementUserCounter(ctx context.Context, userID string, counter Counter, delta int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$inc": bson.M{string(counter): delta}},
	)
	if err != nil {
		return classify(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
