package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Vote represents a user's vote on a suggestion
type Vote struct {
	Suggestion string    `bson:"suggestion" json:"suggestion"`
	User       string    `bson:"user" json:"user"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// Like represents a user's like on an issue
type Like struct {
	Issue     string    `bson:"issue" json:"issue"`
	User      string    `bson:"user" json:"user"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// EnsureVoteIndex creates a unique compound index for (suggestion, user)
func EnsureVoteIndex(ctx context.Context, collection *mongo.Collection) error {
	return ensureUniquePair(ctx, collection, "suggestion", "user")
}

// EnsureLikeIndex creates a unique compound index for (issue, user)
func EnsureLikeIndex(ctx context.Context, collection *mongo.Collection) error {
	return ensureUniquePair(ctx, collection, "issue", "user")
}

func ensureUniquePair(ctx context.Context, collection *mongo.Collection, first, second string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: first, Value: 1}, {Key: second, Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
