// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package attachments

import (
	"context"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/juju/errors"

	"github.com/danielhkuo/labdesk/models"
)

// Store keeps files attached to request records.
type Store interface {
	Put(ctx context.Context, requestID, fileName, contentType string, size int64, r io.Reader) (models.Attachment, error)
	List(ctx context.Context, requestID string) ([]models.Attachment, error)
}

// CleanFileName reduces name to a safe base name.
func CleanFileName(name string) (string, error) {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	name = path.Base(name)
	if name == "" || name == "." || name == ".." || name == "/" {
		return "", errors.NewNotValid(nil, "file name is required")
	}
	return name, nil
}

// validRequestID rejects ids that could escape the attachment namespace.
func validRequestID(requestID string) error {
	if requestID == "" || strings.ContainsAny(requestID, `/\`) || strings.Contains(requestID, "..") {
		return errors.NotValidf("request id %q", requestID)
	}
	return nil
}

// objectName is "<uuid>-<file name>", unique per upload.
func objectName(id, fileName string) string {
	return id + "-" + fileName
}

// parseObjectName splits an object name produced by objectName.
func parseObjectName(name string) (id, fileName string, ok bool) {
	const idLen = 36
	if len(name) < idLen+2 || name[idLen] != '-' {
		return "", "", false
	}
	if _, err := uuid.Parse(name[:idLen]); err != nil {
		return "", "", false
	}
	return name[:idLen], name[idLen+1:], true
}

// resolveContentType falls back to the file extension, then to octet-stream.
func resolveContentType(fileName, contentType string) string {
	if contentType = strings.TrimSpace(contentType); contentType != "" {
		return contentType
	}
	if contentType = mime.TypeByExtension(filepath.Ext(fileName)); contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}

func newAttachment(id, requestID, fileName, contentType, key string, size int64, uploadedAt time.Time) models.Attachment {
	contentType = resolveContentType(fileName, contentType)
	return models.Attachment{
		ID:          id,
		RequestID:   requestID,
		FileName:    fileName,
		Size:        size,
		HumanSize:   humanize.Bytes(uint64(size)),
		ContentType: contentType,
		UploadedAt:  uploadedAt.UTC(),
		Key:         key,
	}
}
