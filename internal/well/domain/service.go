package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrInvalidID marks an empty or malformed record identifier.
	ErrInvalidID = errors.New("invalid_id")
	// ErrInvalidWell marks a body without a usable MetaInfo envelope.
	ErrInvalidWell = errors.New("invalid_well")
	// ErrIDMismatch marks an update whose body id differs from the path id.
	ErrIDMismatch = errors.New("id_mismatch")
	// ErrNotFound marks a valid request with no matching record.
	ErrNotFound = errors.New("not_found")
	// ErrConflict marks a create for an identifier that already exists.
	ErrConflict = errors.New("conflict")
	// ErrCorrupted marks a stored body whose embedded identifiers disagree
	// with the indexed columns. The store's consistency invariant is broken;
	// callers must not treat this as not-found.
	ErrCorrupted = errors.New("store_corrupted")
)

// Service is the record-store boundary consumed by the HTTP layer.
type Service interface {
	Count(ctx context.Context) int64
	Clear(ctx context.Context) error
	Contains(ctx context.Context, id uuid.UUID) bool
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	ListMetaInfo(ctx context.Context) ([]MetaInfo, error)
	GetByID(ctx context.Context, id string) (*Well, error)
	ListAll(ctx context.Context) ([]*Well, error)
	ListUsedSlotIDsByCluster(ctx context.Context, clusterID string) ([]uuid.UUID, error)
	Add(ctx context.Context, well *Well) error
	UpdateByID(ctx context.Context, id string, well *Well) error
	DeleteByID(ctx context.Context, id string) error
}
