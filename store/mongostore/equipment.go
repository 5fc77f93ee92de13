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

type equipmentRequestDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	RequestNumber string             `bson:"requestNumber"`
	EquipmentName string             `bson:"equipmentName"`
	RequestedBy   string             `bson:"requestedBy"`
	Purpose       string             `bson:"purpose"`
	StartTime     time.Time          `bson:"startTime"`
	EndTime       time.Time          `bson:"endTime"`
	RequestStatus string             `bson:"requestStatus"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
	CompleteDate  *time.Time         `bson:"completeDate,omitempty"`
}

func (d *equipmentRequestDoc) model() *models.EquipmentRequest {
	return &models.EquipmentRequest{
		ID:            d.ID.Hex(),
		RequestNumber: d.RequestNumber,
		EquipmentName: d.EquipmentName,
		RequestedBy:   d.RequestedBy,
		Purpose:       d.Purpose,
		StartTime:     d.StartTime.UTC(),
		EndTime:       d.EndTime.UTC(),
		RequestStatus: d.RequestStatus,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
		CompleteDate:  utcPtr(d.CompleteDate),
	}
}

// EquipmentCollection stores equipment reservation requests.
type EquipmentCollection struct {
	coll  *mongo.Collection
	clock clock.Clock
}

func (c *EquipmentCollection) Kind() models.RecordKind { return models.KindEquipment }

func (c *EquipmentCollection) Create(ctx context.Context, req *models.EquipmentRequest) error {
	now := c.clock.Now().UTC()
	doc := equipmentRequestDoc{
		ID:            primitive.NewObjectID(),
		RequestNumber: req.RequestNumber,
		EquipmentName: req.EquipmentName,
		RequestedBy:   req.RequestedBy,
		Purpose:       req.Purpose,
		StartTime:     req.StartTime.UTC(),
		EndTime:       req.EndTime.UTC(),
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
		return errors.AlreadyExistsf("equipment request number %q", req.RequestNumber)
	}
	if err != nil {
		return errors.Annotate(err, "inserting equipment request")
	}
	*req = *doc.model()
	return nil
}

func (c *EquipmentCollection) Find(ctx context.Context, identifier string) (models.Record, error) {
	var doc equipmentRequestDoc
	err := c.coll.FindOne(ctx, identifierFilter("requestNumber", identifier)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.NotFoundf("equipment request %q", identifier)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "getting equipment request %q", identifier)
	}
	return doc.model(), nil
}

func (c *EquipmentCollection) FindAndUpdateStatus(ctx context.Context, identifier string, u models.StatusUpdate) (models.Record, error) {
	var doc equipmentRequestDoc
	err := c.coll.FindOneAndUpdate(ctx, identifierFilter("requestNumber", identifier), statusUpdate(u), returnAfter()).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.NotFoundf("equipment request %q", identifier)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "updating equipment request %q", identifier)
	}
	return doc.model(), nil
}

func (c *EquipmentCollection) List(ctx context.Context, status string) ([]models.EquipmentRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cur, err := c.coll.Find(ctx, optionalEq("requestStatus", status), opts)
	if err != nil {
		return nil, errors.Annotate(err, "listing equipment requests")
	}
	var docs []equipmentRequestDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Annotate(err, "reading equipment requests")
	}

	requests := make([]models.EquipmentRequest, 0, len(docs))
	for i := range docs {
		requests = append(requests, *docs[i].model())
	}
	return requests, nil
}
