// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mongostore

import (
	"context"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/danielhkuo/labdesk/store"
)

// Collection names
const (
	requestsC          = "requests"
	equipmentRequestsC = "equipmentrequests"
	samplesC           = "samples"
	userScoresC        = "userscores"
)

// Open connects to MongoDB, ensures indexes and returns a backend that
// disconnects the client on Close.
func Open(ctx context.Context, uri, dbName string, clk clock.Clock) (*store.Backend, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Annotate(err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Annotate(err, "pinging mongodb")
	}

	database := client.Database(dbName)
	if err := EnsureIndexes(ctx, database); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Trace(err)
	}

	b := newBackend(database, clk, client.Disconnect)
	return b, nil
}

// New builds a backend over an existing database handle. Closing it is a no-op.
func New(database *mongo.Database, clk clock.Clock) *store.Backend {
	return newBackend(database, clk, nil)
}

func newBackend(database *mongo.Database, clk clock.Clock, closer func(context.Context) error) *store.Backend {
	if clk == nil {
		clk = clock.WallClock
	}
	return store.NewBackend(
		&RequestCollection{coll: database.Collection(requestsC), clock: clk},
		&EquipmentCollection{coll: database.Collection(equipmentRequestsC), clock: clk},
		&SampleCollection{coll: database.Collection(samplesC), clock: clk},
		&ScoreCollection{coll: database.Collection(userScoresC), clock: clk},
		closer,
	)
}

// EnsureIndexes creates the unique indexes the stores rely on.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	indexes := []struct {
		collection string
		field      string
	}{
		{requestsC, "requestNumber"},
		{equipmentRequestsC, "requestNumber"},
		{samplesC, "sampleCode"},
		{userScoresC, "userId"},
	}
	for _, idx := range indexes {
		_, err := database.Collection(idx.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: idx.field, Value: 1}},
			Options: unique,
		})
		if err != nil {
			return errors.Annotatef(err, "creating %s index on %s", idx.field, idx.collection)
		}
	}
	return nil
}

// identifierFilter matches field == identifier, or _id when identifier is a
// valid ObjectID.
func identifierFilter(field, identifier string) bson.D {
	clauses := bson.A{bson.D{{Key: field, Value: identifier}}}
	if oid, err := primitive.ObjectIDFromHex(identifier); err == nil {
		clauses = append(bson.A{bson.D{{Key: "_id", Value: oid}}}, clauses...)
	}
	return bson.D{{Key: "$or", Value: clauses}}
}

// optionalEq matches field == value, or everything when value is empty.
func optionalEq(field, value string) bson.D {
	if value == "" {
		return bson.D{}
	}
	return bson.D{{Key: field, Value: value}}
}

func returnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}
