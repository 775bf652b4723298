// Package store persists serialized records as JSON documents grouped in collections.
//
// The storage itself is provided by a Backend; see providers/sqlite and providers/s3.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hengadev/serx"
)

// ErrNotFound is returned by backends when no document exists for a collection and id.
var ErrNotFound = errors.New("document not found")

// Backend stores opaque documents addressed by collection and id.
type Backend interface {
	Put(ctx context.Context, collection, id string, doc []byte) error
	Get(ctx context.Context, collection, id string) ([]byte, error)
	Delete(ctx context.Context, collection, id string) error
	List(ctx context.Context, collection string) ([]string, error)
	Close() error
}

// Store encodes records with a serializer and keeps them in a backend.
type Store struct {
	backend    Backend
	serializer *serx.Serializer
}

// New creates a store. A nil serializer falls back to serx.NewDefault().
func New(backend Backend, serializer *serx.Serializer) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend cannot be nil")
	}
	if serializer == nil {
		serializer = serx.NewDefault()
	}
	return &Store{backend: backend, serializer: serializer}, nil
}

// Save encodes record under a freshly generated id and returns that id.
func (s *Store) Save(ctx context.Context, collection string, record any, opts ...serx.EncodeOption) (string, error) {
	id := uuid.New().String()
	if err := s.SaveWithID(ctx, collection, id, record, opts...); err != nil {
		return "", err
	}
	return id, nil
}

// SaveWithID encodes record under id, replacing any existing document.
func (s *Store) SaveWithID(ctx context.Context, collection, id string, record any, opts ...serx.EncodeOption) error {
	if err := validateAddress(collection, id); err != nil {
		return err
	}
	text, err := s.serializer.ToJSON(record, opts...)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", collection, id, err)
	}
	if err := s.backend.Put(ctx, collection, id, []byte(text)); err != nil {
		return fmt.Errorf("failed to store %s/%s: %w", collection, id, err)
	}
	return nil
}

// Load reads a document and assigns its scalar properties to record.
func (s *Store) Load(ctx context.Context, collection, id string, record any) error {
	doc, err := s.get(ctx, collection, id)
	if err != nil {
		return err
	}
	if _, err := s.serializer.FromJSON(record, string(doc)); err != nil {
		return fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
	}
	return nil
}

// LoadDict reads a document as a generic map.
func (s *Store) LoadDict(ctx context.Context, collection, id string) (map[string]any, error) {
	doc, err := s.get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	data, err := s.serializer.ParseDict(string(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
	}
	return data, nil
}

// Delete removes a document. Deleting a missing document returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := validateAddress(collection, id); err != nil {
		return err
	}
	return s.backend.Delete(ctx, collection, id)
}

// List returns the ids of a collection in ascending order.
func (s *Store) List(ctx context.Context, collection string) ([]string, error) {
	if collection == "" {
		return nil, fmt.Errorf("collection cannot be empty")
	}
	return s.backend.List(ctx, collection)
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) get(ctx context.Context, collection, id string) ([]byte, error) {
	if err := validateAddress(collection, id); err != nil {
		return nil, err
	}
	doc, err := s.backend.Get(ctx, collection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

func validateAddress(collection, id string) error {
	if collection == "" {
		return fmt.Errorf("collection cannot be empty")
	}
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}
	return nil
}
