package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type gcsStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore uses application default credentials unless credentialsJSON
// is provided.
func NewGCSStore(ctx context.Context, bucket, credentialsJSON string) (FileStore, func() error, error) {
	var opts []option.ClientOption
	if strings.TrimSpace(credentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, nil, err
	}
	return &gcsStore{client: client, bucket: bucket}, client.Close, nil
}

func (s *gcsStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	wc := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return key, nil
}

func (s *gcsStore) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	r, err := s.client.Bucket(s.bucket).Object(ref).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrFileNotFound
	}
	return r, err
}

func (s *gcsStore) Delete(ctx context.Context, ref string) error {
	err := s.client.Bucket(s.bucket).Object(ref).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}
