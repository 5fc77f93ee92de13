// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package attachments

import (
	"context"
	"io"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/danielhkuo/labdesk/models"
)

// MinioConfig holds S3-compatible object storage settings.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

// MinioStore keeps attachments in an S3-compatible bucket under
// "<requestID>/<uuid>-<file name>".
type MinioStore struct {
	client *minio.Client
	bucket string
}

// contentTypeMeta is the user metadata key holding the upload's content type.
const contentTypeMeta = "Labdesk-Content-Type"

// validate checks the settings and splits the endpoint into the host the
// client dials and whether it uses TLS. Endpoints may be "host:port" or a
// bare http(s) URL.
func (c MinioConfig) validate() (host string, secure bool, err error) {
	if c.Endpoint == "" || c.AccessKey == "" || c.SecretKey == "" || c.Bucket == "" {
		return "", false, errors.NewNotValid(nil, "incomplete object storage configuration")
	}
	raw := strings.TrimSpace(c.Endpoint)
	if !strings.Contains(raw, "://") {
		if raw == "" {
			return "", false, errors.NotValidf("blank object storage endpoint")
		}
		return raw, false, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false, errors.NewNotValid(err, "malformed object storage endpoint")
	}
	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return "", false, errors.NotValidf("object storage scheme %q", u.Scheme)
	case u.Host == "":
		return "", false, errors.NotValidf("object storage endpoint %q without host", raw)
	case strings.Trim(u.Path, "/") != "":
		return "", false, errors.NotValidf("object storage endpoint path %q", u.Path)
	}
	return u.Host, u.Scheme == "https", nil
}

// NewMinioStore connects to the endpoint and creates the bucket if missing.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	endpoint, secure, err := cfg.validate()
	if err != nil {
		return nil, errors.Trace(err)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, errors.Annotate(err, "creating object storage client")
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Annotatef(err, "checking bucket %q", cfg.Bucket)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Annotatef(err, "creating bucket %q", cfg.Bucket)
		}
	}
	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioStore) Put(ctx context.Context, requestID, fileName, contentType string, size int64, r io.Reader) (models.Attachment, error) {
	if err := validRequestID(requestID); err != nil {
		return models.Attachment{}, err
	}
	fileName, err := CleanFileName(fileName)
	if err != nil {
		return models.Attachment{}, err
	}

	id := uuid.NewString()
	key := requestID + "/" + objectName(id, fileName)
	contentType = resolveContentType(fileName, contentType)
	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{contentTypeMeta: contentType},
	})
	if err != nil {
		return models.Attachment{}, errors.Annotatef(err, "uploading %q", key)
	}

	uploadedAt := info.LastModified
	if uploadedAt.IsZero() {
		stat, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
		if err != nil {
			return models.Attachment{}, errors.Annotatef(err, "reading %q", key)
		}
		uploadedAt = stat.LastModified
	}
	return newAttachment(id, requestID, fileName, contentType, key, info.Size, uploadedAt), nil
}

func (s *MinioStore) List(ctx context.Context, requestID string) ([]models.Attachment, error) {
	if err := validRequestID(requestID); err != nil {
		return nil, err
	}

	list := []models.Attachment{}
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    requestID + "/",
		Recursive: true,
	})
	for obj := range objects {
		if obj.Err != nil {
			return nil, errors.Annotatef(obj.Err, "listing attachments for %q", requestID)
		}
		id, fileName, ok := parseObjectName(path.Base(obj.Key))
		if !ok {
			continue
		}
		contentType, err := s.storedContentType(ctx, obj.Key)
		if err != nil {
			return nil, err
		}
		list = append(list, newAttachment(id, requestID, fileName, contentType, obj.Key, obj.Size, obj.LastModified))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UploadedAt.Before(list[j].UploadedAt) })
	return list, nil
}

// storedContentType reads the type recorded at upload. Listings do not carry
// object metadata, so each object is stat'ed.
func (s *MinioStore) storedContentType(ctx context.Context, key string) (string, error) {
	stat, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return "", errors.Annotatef(err, "reading %q", key)
	}
	for k, v := range stat.UserMetadata {
		if strings.EqualFold(k, contentTypeMeta) && v != "" {
			return v, nil
		}
	}
	return stat.ContentType, nil
}
