// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package attachments

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/juju/errors"

	"github.com/danielhkuo/labdesk/models"
)

// FSStore keeps attachments on the local filesystem, one directory per request.
// Each upload's content type sits next to it in a hidden ".<uuid>.type" file.
type FSStore struct {
	root string
}

func NewFSStore(root string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Annotatef(err, "creating attachment directory %q", root)
	}
	return &FSStore{root: root}, nil
}

func (s *FSStore) Put(ctx context.Context, requestID, fileName, contentType string, size int64, r io.Reader) (models.Attachment, error) {
	if err := validRequestID(requestID); err != nil {
		return models.Attachment{}, err
	}
	fileName, err := CleanFileName(fileName)
	if err != nil {
		return models.Attachment{}, err
	}

	dir := filepath.Join(s.root, requestID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return models.Attachment{}, errors.Annotatef(err, "creating directory for %q", requestID)
	}

	id := uuid.NewString()
	name := objectName(id, fileName)
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return models.Attachment{}, errors.Annotate(err, "creating attachment file")
	}
	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return models.Attachment{}, errors.Annotate(err, "writing attachment")
	}

	contentType = resolveContentType(fileName, contentType)
	if err := os.WriteFile(filepath.Join(dir, typeFileName(id)), []byte(contentType), 0o644); err != nil {
		_ = os.Remove(f.Name())
		return models.Attachment{}, errors.Annotate(err, "writing attachment content type")
	}

	info, err := os.Stat(f.Name())
	if err != nil {
		return models.Attachment{}, errors.Annotate(err, "reading attachment info")
	}
	return newAttachment(id, requestID, fileName, contentType, requestID+"/"+name, written, info.ModTime()), nil
}

func typeFileName(id string) string {
	return "." + id + ".type"
}

// storedContentType returns "" when the upload has no type file.
func (s *FSStore) storedContentType(requestID, id string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.root, requestID, typeFileName(id)))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Annotatef(err, "reading content type of %q", id)
	}
	return strings.TrimSpace(string(data)), nil
}

// List returns a request's attachments oldest first. A request without
// attachments yields an empty slice.
func (s *FSStore) List(ctx context.Context, requestID string) ([]models.Attachment, error) {
	if err := validRequestID(requestID); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.root, requestID))
	if os.IsNotExist(err) {
		return []models.Attachment{}, nil
	}
	if err != nil {
		return nil, errors.Annotatef(err, "listing attachments for %q", requestID)
	}

	list := []models.Attachment{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		id, fileName, ok := parseObjectName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, errors.Annotatef(err, "reading %q", entry.Name())
		}
		contentType, err := s.storedContentType(requestID, id)
		if err != nil {
			return nil, err
		}
		list = append(list, newAttachment(id, requestID, fileName, contentType, requestID+"/"+entry.Name(), info.Size(), info.ModTime()))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UploadedAt.Before(list[j].UploadedAt) })
	return list, nil
}
