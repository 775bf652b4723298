// Package s3bucket provides an S3 document backend for the store package.
package s3bucket

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hengadev/serx/store"
)

const (
	documentSuffix      = ".json"
	documentContentType = "application/json"
)

// S3API is the subset of the S3 client used by the backend.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Backend stores each document as the object prefix/collection/id.json.
type Backend struct {
	client S3API
	bucket string
	prefix string
}

var _ store.Backend = (*Backend)(nil)

// New creates a backend on bucket. prefix may be empty.
func New(client S3API, bucket, prefix string) (*Backend, error) {
	if client == nil {
		return nil, fmt.Errorf("s3 client cannot be nil")
	}
	if bucket == "" {
		return nil, fmt.Errorf("bucket cannot be empty")
	}
	return &Backend{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

// NewFromDefaultConfig creates a backend using the default AWS credential chain.
func NewFromDefaultConfig(ctx context.Context, bucket, prefix string) (*Backend, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return New(s3.NewFromConfig(cfg), bucket, prefix)
}

func (b *Backend) collectionPrefix(collection string) string {
	return path.Join(b.prefix, collection) + "/"
}

func (b *Backend) objectKey(collection, id string) string {
	return b.collectionPrefix(collection) + id + documentSuffix
}

// Put uploads a document.
func (b *Backend) Put(ctx context.Context, collection, id string, doc []byte) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(b.objectKey(collection, id)),
		Body:        bytes.NewReader(doc),
		ContentType: aws.String(documentContentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

// Get downloads a document or returns store.ErrNotFound.
func (b *Backend) Get(ctx context.Context, collection, id string) ([]byte, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.objectKey(collection, id)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to download from S3: %w", err)
	}
	defer out.Body.Close()

	doc, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object: %w", err)
	}
	return doc, nil
}

// Delete removes a document or returns store.ErrNotFound.
func (b *Backend) Delete(ctx context.Context, collection, id string) error {
	key := aws.String(b.objectKey(collection, id))
	_, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    key,
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return store.ErrNotFound
		}
		return fmt.Errorf("failed to stat S3 object: %w", err)
	}

	if _, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    key,
	}); err != nil {
		return fmt.Errorf("failed to delete S3 object: %w", err)
	}
	return nil
}

// List returns the ids of a collection in ascending order, following pagination.
func (b *Backend) List(ctx context.Context, collection string) ([]string, error) {
	prefix := b.collectionPrefix(collection)
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(b.bucket),
		Prefix: aws.String(prefix),
	}

	ids := []string{}
	for {
		out, err := b.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to list S3 objects: %w", err)
		}
		for _, obj := range out.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if strings.Contains(name, "/") || !strings.HasSuffix(name, documentSuffix) {
				continue
			}
			ids = append(ids, strings.TrimSuffix(name, documentSuffix))
		}
		if !aws.ToBool(out.IsTruncated) || out.NextContinuationToken == nil {
			break
		}
		input.ContinuationToken = out.NextContinuationToken
	}
	sort.Strings(ids)
	return ids, nil
}

// Close is a no-op; the S3 client holds no resources to release.
func (b *Backend) Close() error {
	return nil
}
