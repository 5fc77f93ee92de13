// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - UpdateStatusRequest: requestStatus, completeDate
  - CreateRequestRequest: requestNumber, title, description, requestedBy
  - CreateEquipmentRequestRequest: equipmentName, requestedBy, purpose, startTime, endTime
  - CreateSampleRequest: sampleCode, name, sampleType, owner, location, collectedAt
  - AddScoreRequest: points

# Response Types

Every response is wrapped in an Envelope:

	{"success": true, "data": {...}, "message": "..."}
	{"success": false, "error": "..."}

ResolvedRequest carries a record together with the collection it came from.

# Domain Types

  - GenericRequest: general-purpose request with a status lifecycle
  - EquipmentRequest: equipment reservation, kept in its own collection
  - Sample: laboratory sample record
  - UserScore: accumulated points per user
  - Attachment: file stored against a request

GenericRequest and EquipmentRequest both implement Record, which is all the
status reconciler needs to know about them.

# Constants

Status values:

	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"

Record kinds:

	KindGeneric   = "request"
	KindEquipment = "equipment-request"
*/
package models
