// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request status constants
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// RecordKind names the collection a request record lives in.
type RecordKind string

const (
	KindGeneric   RecordKind = "request"
	KindEquipment RecordKind = "equipment-request"
)

// Record is a request document whose status can be reconciled.
type Record interface {
	Kind() RecordKind
	RecordID() string
	Number() string
	Status() string
}

// StatusUpdate is the payload written by a status transition.
// CompleteDate is nil when the completion timestamp must be left untouched.
type StatusUpdate struct {
	Status       string
	UpdatedAt    time.Time
	CompleteDate *time.Time
}

// Request types

type UpdateStatusRequest struct {
	RequestStatus string `json:"requestStatus"`
	CompleteDate  string `json:"completeDate,omitempty"`
}

type CreateRequestRequest struct {
	RequestNumber string `json:"requestNumber,omitempty"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	RequestedBy   string `json:"requestedBy"`
}

type CreateEquipmentRequestRequest struct {
	RequestNumber string    `json:"requestNumber,omitempty"`
	EquipmentName string    `json:"equipmentName"`
	RequestedBy   string    `json:"requestedBy"`
	Purpose       string    `json:"purpose"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
}

type CreateSampleRequest struct {
	SampleCode  string     `json:"sampleCode,omitempty"`
	Name        string     `json:"name"`
	SampleType  string     `json:"sampleType"`
	Owner       string     `json:"owner"`
	Location    string     `json:"location"`
	CollectedAt *time.Time `json:"collectedAt,omitempty"`
}

type AddScoreRequest struct {
	Points int64 `json:"points"`
}

// Response types

// Envelope is the uniform JSON wrapper for every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type ResolvedRequest struct {
	Kind   RecordKind `json:"kind"`
	Record Record     `json:"record"`
}

// Domain types

type GenericRequest struct {
	ID            string     `json:"_id"`
	RequestNumber string     `json:"requestNumber"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	RequestedBy   string     `json:"requestedBy"`
	RequestStatus string     `json:"requestStatus"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	CompleteDate  *time.Time `json:"completeDate,omitempty"`
}

func (r *GenericRequest) Kind() RecordKind { return KindGeneric }
func (r *GenericRequest) RecordID() string { return r.ID }
func (r *GenericRequest) Number() string   { return r.RequestNumber }
func (r *GenericRequest) Status() string   { return r.RequestStatus }

type EquipmentRequest struct {
	ID            string     `json:"_id"`
	RequestNumber string     `json:"requestNumber"`
	EquipmentName string     `json:"equipmentName"`
	RequestedBy   string     `json:"requestedBy"`
	Purpose       string     `json:"purpose"`
	StartTime     time.Time  `json:"startTime"`
	EndTime       time.Time  `json:"endTime"`
	RequestStatus string     `json:"requestStatus"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	CompleteDate  *time.Time `json:"completeDate,omitempty"`
}

func (r *EquipmentRequest) Kind() RecordKind { return KindEquipment }
func (r *EquipmentRequest) RecordID() string { return r.ID }
func (r *EquipmentRequest) Number() string   { return r.RequestNumber }
func (r *EquipmentRequest) Status() string   { return r.RequestStatus }

type Sample struct {
	ID          string     `json:"_id"`
	SampleCode  string     `json:"sampleCode"`
	Name        string     `json:"name"`
	SampleType  string     `json:"sampleType"`
	Owner       string     `json:"owner"`
	Location    string     `json:"location"`
	CollectedAt *time.Time `json:"collectedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type UserScore struct {
	UserID    string    `json:"userId"`
	Score     int64     `json:"score"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Attachment struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"requestId"`
	FileName    string    `json:"fileName"`
	Size        int64     `json:"size"`
	HumanSize   string    `json:"humanSize"`
	ContentType string    `json:"contentType"`
	UploadedAt  time.Time `json:"uploadedAt"`
	Key         string    `json:"key"`
}
