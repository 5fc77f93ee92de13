// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mongostore

import (
	"context"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/danielhkuo/labdesk/models"
)

type sampleDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	SampleCode  string             `bson:"sampleCode"`
	Name        string             `bson:"name"`
	SampleType  string             `bson:"sampleType"`
	Owner       string             `bson:"owner"`
	Location    string             `bson:"location"`
	CollectedAt *time.Time         `bson:"collectedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *sampleDoc) model() *models.Sample {
	return &models.Sample{
		ID:          d.ID.Hex(),
		SampleCode:  d.SampleCode,
		Name:        d.Name,
		SampleType:  d.SampleType,
		Owner:       d.Owner,
		Location:    d.Location,
		CollectedAt: utcPtr(d.CollectedAt),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type SampleCollection struct {
	coll  *mongo.Collection
	clock clock.Clock
}

func (c *SampleCollection) Create(ctx context.Context, s *models.Sample) error {
	now := c.clock.Now().UTC()
	doc := sampleDoc{
		ID:          primitive.NewObjectID(),
		SampleCode:  s.SampleCode,
		Name:        s.Name,
		SampleType:  s.SampleType,
		Owner:       s.Owner,
		Location:    s.Location,
		CollectedAt: s.CollectedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := c.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return errors.AlreadyExistsf("sample code %q", s.SampleCode)
	}
	if err != nil {
		return errors.Annotate(err, "inserting sample")
	}
	*s = *doc.model()
	return nil
}

func (c *SampleCollection) Get(ctx context.Context, identifier string) (*models.Sample, error) {
	var doc sampleDoc
	err := c.coll.FindOne(ctx, identifierFilter("sampleCode", identifier)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.NotFoundf("sample %q", identifier)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "getting sample %q", identifier)
	}
	return doc.model(), nil
}

func (c *SampleCollection) List(ctx context.Context, owner string) ([]models.Sample, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := c.coll.Find(ctx, optionalEq("owner", owner), opts)
	if err != nil {
		return nil, errors.Annotate(err, "listing samples")
	}
	var docs []sampleDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Annotate(err, "reading samples")
	}

	samples := make([]models.Sample, 0, len(docs))
	for i := range docs {
		samples = append(samples, *docs[i].model())
	}
	return samples, nil
}
