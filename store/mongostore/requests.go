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

type requestDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	RequestNumber string             `bson:"requestNumber"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description"`
	RequestedBy   string             `bson:"requestedBy"`
	RequestStatus string             `bson:"requestStatus"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
	CompleteDate  *time.Time         `bson:"completeDate,omitempty"`
}

func (d *requestDoc) model() *models.GenericRequest {
	return &models.GenericRequest{
		ID:            d.ID.Hex(),
		RequestNumber: d.RequestNumber,
		Title:         d.Title,
		Description:   d.Description,
		RequestedBy:   d.RequestedBy,
		RequestStatus: d.RequestStatus,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
		CompleteDate:  utcPtr(d.CompleteDate),
	}
}

// statusUpdate is the $set document shared by both request collections.
func statusUpdate(u models.StatusUpdate) bson.D {
	set := bson.D{
		{Key: "requestStatus", Value: u.Status},
		{Key: "updatedAt", Value: u.UpdatedAt},
	}
	if u.CompleteDate != nil {
		set = append(set, bson.E{Key: "completeDate", Value: *u.CompleteDate})
	}
	return bson.D{{Key: "$set", Value: set}}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// RequestCollection stores general requests.
type RequestCollection struct {
	coll  *mongo.Collection
	clock clock.Clock
}

func (c *RequestCollection) Kind() models.RecordKind { return models.KindGeneric }

func (c *RequestCollection) Create(ctx context.Context, req *models.GenericRequest) error {
	now := c.clock.Now().UTC()
	doc := requestDoc{
		ID:            primitive.NewObjectID(),
		RequestNumber: req.RequestNumber,
		Title:         req.Title,
		Description:   req.Description,
		RequestedBy:   req.RequestedBy,
		RequestStatus: req.RequestStatus,
		CreatedAt:     now,
		UpdatedAt:     now,
		CompleteDate:  req.CompleteDate,
	}
	if doc.RequestStatus == "" {
		doc.RequestStatus = models.StatusPending
	}

	_, err := c.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return errors.AlreadyExistsf("request number %q", req.RequestNumber)
	}
	if err != nil {
		return errors.Annotate(err, "inserting request")
	}
	*req = *doc.model()
	return nil
}

func (c *RequestCollection) Find(ctx context.Context, identifier string) (models.Record, error) {
	var doc requestDoc
	err := c.coll.FindOne(ctx, identifierFilter("requestNumber", identifier)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.NotFoundf("request %q", identifier)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "getting request %q", identifier)
	}
	return doc.model(), nil
}

func (c *RequestCollection) FindAndUpdateStatus(ctx context.Context, identifier string, u models.StatusUpdate) (models.Record, error) {
	var doc requestDoc
	err := c.coll.FindOneAndUpdate(ctx, identifierFilter("requestNumber", identifier), statusUpdate(u), returnAfter()).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.NotFoundf("request %q", identifier)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "updating request %q", identifier)
	}
	return doc.model(), nil
}

func (c *RequestCollection) List(ctx context.Context, status string) ([]models.GenericRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := c.coll.Find(ctx, optionalEq("requestStatus", status), opts)
	if err != nil {
		return nil, errors.Annotate(err, "listing requests")
	}
	var docs []requestDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Annotate(err, "reading requests")
	}

	requests := make([]models.GenericRequest, 0, len(docs))
	for i := range docs {
		requests = append(requests, *docs[i].model())
	}
	return requests, nil
}
