package domain

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the single-table store for Well records. Mutating methods
// expect to run inside a transaction owned by the caller.
type Repository interface {
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	Clear(ctx context.Context, db *gorm.DB) error
	Contains(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error)
	ListIDs(ctx context.Context, db *gorm.DB) ([]uuid.UUID, error)
	ListMetaInfo(ctx context.Context, db *gorm.DB) ([]MetaInfo, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Well, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]*Well, error)
	ListUsedSlotIDsByCluster(ctx context.Context, db *gorm.DB, clusterID uuid.UUID) ([]uuid.UUID, error)
	Insert(ctx context.Context, db *gorm.DB, well *Well) error
	Update(ctx context.Context, db *gorm.DB, id uuid.UUID, well *Well) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
