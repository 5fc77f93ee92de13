// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mongostore

import (
	"context"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/danielhkuo/labdesk/models"
)

type userScoreDoc struct {
	UserID    string    `bson:"userId"`
	Score     int64     `bson:"score"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type ScoreCollection struct {
	coll  *mongo.Collection
	clock clock.Clock
}

// Get returns the user's score. Users without a document score zero.
func (c *ScoreCollection) Get(ctx context.Context, userID string) (models.UserScore, error) {
	var doc userScoreDoc
	err := c.coll.FindOne(ctx, bson.D{{Key: "userId", Value: userID}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.UserScore{UserID: userID}, nil
	}
	if err != nil {
		return models.UserScore{}, errors.Annotatef(err, "getting score for %q", userID)
	}
	return models.UserScore{UserID: doc.UserID, Score: doc.Score, UpdatedAt: doc.UpdatedAt.UTC()}, nil
}

// Add atomically increments the user's score, creating the document if needed.
// Concurrent first upserts can collide on the unique userId index; the loser
// retries once and then matches the winner's document.
func (c *ScoreCollection) Add(ctx context.Context, userID string, points int64) (models.UserScore, error) {
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "score", Value: points}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: c.clock.Now().UTC()}}},
	}
	var doc userScoreDoc
	err := c.upsert(ctx, userID, update, &doc)
	if mongo.IsDuplicateKeyError(err) {
		err = c.upsert(ctx, userID, update, &doc)
	}
	if err != nil {
		return models.UserScore{}, errors.Annotatef(err, "adding score for %q", userID)
	}
	return models.UserScore{UserID: doc.UserID, Score: doc.Score, UpdatedAt: doc.UpdatedAt.UTC()}, nil
}

func (c *ScoreCollection) upsert(ctx context.Context, userID string, update bson.D, doc *userScoreDoc) error {
	return c.coll.FindOneAndUpdate(ctx, bson.D{{Key: "userId", Value: userID}}, update,
		returnAfter().SetUpsert(true)).Decode(doc)
}
