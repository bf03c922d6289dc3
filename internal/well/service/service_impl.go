package service

import (
	"context"
	"errors"
	"strings"

	"github.com/drillops/wellsvc/internal/well/domain"
	pkgdb "github.com/drillops/wellsvc/pkg/db"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("well.service"),
		repo: p.Repo,
	}
}

// Count never fails the caller; a store failure is logged and counted as zero.
func (s *Service) Count(ctx context.Context) int64 {
	count, err := s.repo.Count(ctx, s.db)
	if err != nil {
		s.log.Warn("impossible to count records in the well table", zap.Error(err))
		return 0
	}
	return count
}

func (s *Service) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Clear(ctx, tx)
	})
	if err != nil {
		s.log.Error("impossible to clear the well table", zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) Contains(ctx context.Context, id uuid.UUID) bool {
	ok, err := s.repo.Contains(ctx, s.db, id)
	if err != nil {
		s.log.Warn("impossible to count rows in the well table", zap.Error(err))
		return false
	}
	return ok
}

func (s *Service) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	ids, err := s.repo.ListIDs(ctx, s.db)
	if err != nil {
		s.log.Error("impossible to list well ids", zap.Error(err))
		return nil, err
	}
	return ids, nil
}

func (s *Service) ListMetaInfo(ctx context.Context) ([]domain.MetaInfo, error) {
	metaInfos, err := s.repo.ListMetaInfo(ctx, s.db)
	if err != nil {
		s.logReadFailure("impossible to list well meta info", err)
		return nil, err
	}
	return metaInfos, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Well, error) {
	recordID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	well, err := s.repo.FindByID(ctx, s.db, recordID)
	if err != nil {
		s.logReadFailure("impossible to get the well with the given id", err)
		return nil, err
	}
	if well == nil {
		return nil, domain.ErrNotFound
	}
	return well, nil
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.Well, error) {
	wells, err := s.repo.ListAll(ctx, s.db)
	if err != nil {
		s.logReadFailure("impossible to list wells", err)
		return nil, err
	}
	return wells, nil
}

func (s *Service) ListUsedSlotIDsByCluster(ctx context.Context, clusterID string) ([]uuid.UUID, error) {
	id, err := parseID(clusterID)
	if err != nil {
		return nil, err
	}

	slotIDs, err := s.repo.ListUsedSlotIDsByCluster(ctx, s.db, id)
	if err != nil {
		s.logReadFailure("impossible to list used slots for the given cluster", err)
		return nil, err
	}
	return slotIDs, nil
}

// Add stores a new record. The existence pre-check keeps the original
// controller contract; the primary key still rejects a duplicate atomically
// should a concurrent writer slip between check and insert.
func (s *Service) Add(ctx context.Context, well *domain.Well) error {
	if well.ID() == uuid.Nil {
		return domain.ErrInvalidWell
	}

	if s.Contains(ctx, well.MetaInfo.ID) {
		s.log.Warn("the given well already exists and will not be added",
			zap.String("id", well.MetaInfo.ID.String()))
		return domain.ErrConflict
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Insert(ctx, tx, well)
	})
	if err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.ErrConflict
		}
		s.log.Error("impossible to add the given well", zap.Error(err))
		return err
	}

	s.log.Info("added the given well", zap.String("id", well.MetaInfo.ID.String()))
	return nil
}

func (s *Service) UpdateByID(ctx context.Context, id string, well *domain.Well) error {
	recordID, err := parseID(id)
	if err != nil {
		return err
	}
	if well == nil || well.MetaInfo == nil {
		return domain.ErrInvalidWell
	}
	if well.MetaInfo.ID != recordID {
		return domain.ErrIDMismatch
	}

	if !s.Contains(ctx, recordID) {
		return domain.ErrNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Update(ctx, tx, recordID, well)
	})
	if err != nil {
		s.log.Error("impossible to update the well", zap.Error(err), zap.String("id", id))
		return err
	}

	s.log.Info("updated the given well", zap.String("id", id))
	return nil
}

func (s *Service) DeleteByID(ctx context.Context, id string) error {
	recordID, err := parseID(id)
	if err != nil {
		return err
	}

	if !s.Contains(ctx, recordID) {
		return domain.ErrNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Delete(ctx, tx, recordID)
	})
	if err != nil {
		s.log.Error("impossible to delete the well with the given id", zap.Error(err), zap.String("id", id))
		return err
	}

	s.log.Info("removed the well with the given id", zap.String("id", id))
	return nil
}

// logReadFailure surfaces corruption loudly; ordinary store failures are
// logged at error level without the alarm.
func (s *Service) logReadFailure(msg string, err error) {
	if errors.Is(err, domain.ErrCorrupted) {
		s.log.Error("well store corrupted", zap.Error(err))
		return
	}
	s.log.Error(msg, zap.Error(err))
}

func parseID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, domain.ErrInvalidID
	}
	return id, nil
}
