package filestore

import (
	"context"
	"io"
	"path"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/rentify/internal/domain/repository"
	"github.com/oksasatya/rentify/pkg/helpers"
)

// GCS stores uploads as objects under Prefix in Bucket.
type GCS struct {
	Client *storage.Client
	Bucket string
	Prefix string
}

func NewGCS(client *storage.Client, bucket, prefix string) *GCS {
	return &GCS{Client: client, Bucket: bucket, Prefix: prefix}
}

func (s *GCS) object(name string) string {
	return path.Join(s.Prefix, name)
}

func (s *GCS) Save(ctx context.Context, name, contentType string, r io.Reader) (repository.StoredFile, error) {
	if name == "" || name != path.Base(name) {
		return repository.StoredFile{}, ErrInvalidName
	}
	url, err := helpers.UploadObject(ctx, s.Client, s.Bucket, s.object(name), contentType, r)
	if err != nil {
		return repository.StoredFile{}, err
	}
	return repository.StoredFile{Name: name, Path: url}, nil
}

func (s *GCS) Delete(ctx context.Context, name string) error {
	return helpers.DeleteObject(ctx, s.Client, s.Bucket, s.object(name))
}

var _ repository.FileStore = (*GCS)(nil)
