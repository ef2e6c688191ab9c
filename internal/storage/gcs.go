package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"herbalgarden/internal/logger"
)

// GCSStore keeps models as objects in a Cloud Storage bucket, optionally
// under a key prefix.
type GCSStore struct {
	log    *logger.Logger
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSStore connects with application default credentials.
func NewGCSStore(ctx context.Context, log *logger.Logger, bucket, prefix string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	log.Info("Model storage initialized", "bucket", bucket, "prefix", prefix)
	return &GCSStore{
		log:    log.With("service", "GCSStore"),
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

func (s *GCSStore) object(key string) (*storage.ObjectHandle, error) {
	clean := CleanKey(key)
	if clean == "" {
		return nil, fmt.Errorf("invalid key %q: %w", key, ErrObjectNotFound)
	}
	if s.prefix != "" {
		clean = s.prefix + "/" + clean
	}
	return s.client.Bucket(s.bucket).Object(clean), nil
}

func (s *GCSStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.object(key)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	r, err := obj.NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("model %s: %w", key, ErrObjectNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open model %s: %w", key, err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", key, err)
	}
	return data, nil
}

func (s *GCSStore) Put(ctx context.Context, key string, data []byte) error {
	obj, err := s.object(key)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	w := obj.NewWriter(ctx)
	w.ContentType = ModelContentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write model %s to GCS: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (s *GCSStore) Delete(ctx context.Context, key string) error {
	obj, err := s.object(key)
	if err != nil {
		return err
	}
	err = obj.Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("model %s: %w", key, ErrObjectNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete model %s: %w", key, err)
	}
	return nil
}

func (s *GCSStore) List(ctx context.Context) ([]ObjectInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	query := &storage.Query{}
	if s.prefix != "" {
		query.Prefix = s.prefix + "/"
	}
	it := s.client.Bucket(s.bucket).Objects(ctx, query)
	out := []ObjectInfo{}
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		out = append(out, ObjectInfo{
			Key:     strings.TrimPrefix(attrs.Name, query.Prefix),
			Size:    attrs.Size,
			Updated: attrs.Updated,
		})
	}
	return out, nil
}

// Close releases the storage client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
