package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/drillops/wellsvc/internal/well/domain"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// wellRow mirrors the WellTable schema: indexed identifier columns written
// redundantly alongside the JSON body so filters avoid deserializing every row.
type wellRow struct {
	ID        string         `gorm:"column:ID;primaryKey"`
	MetaInfo  datatypes.JSON `gorm:"column:MetaInfo"`
	ClusterID string         `gorm:"column:ClusterID"`
	SlotID    string         `gorm:"column:SlotID"`
	Well      datatypes.JSON `gorm:"column:Well"`
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM WellTable`).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) Clear(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Exec(`DELETE FROM WellTable`).Error
}

func (r *repo) Contains(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM WellTable WHERE ID = ?`, id.String(),
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count >= 1, nil
}

func (r *repo) ListIDs(ctx context.Context, db *gorm.DB) ([]uuid.UUID, error) {
	var raw []string
	err := db.WithContext(ctx).Raw(`SELECT ID FROM WellTable`).Scan(&raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("%w: row has malformed ID %q", domain.ErrCorrupted, value)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *repo) ListMetaInfo(ctx context.Context, db *gorm.DB) ([]domain.MetaInfo, error) {
	var blobs []string
	err := db.WithContext(ctx).Raw(`SELECT MetaInfo FROM WellTable`).Scan(&blobs).Error
	if err != nil {
		return nil, err
	}

	metaInfos := make([]domain.MetaInfo, 0, len(blobs))
	for _, blob := range blobs {
		var metaInfo domain.MetaInfo
		if err := json.Unmarshal([]byte(blob), &metaInfo); err != nil {
			return nil, fmt.Errorf("%w: unparseable MetaInfo column: %v", domain.ErrCorrupted, err)
		}
		metaInfos = append(metaInfos, metaInfo)
	}
	return metaInfos, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.Well, error) {
	var row wellRow
	err := db.WithContext(ctx).Raw(
		`SELECT ID, MetaInfo, ClusterID, SlotID, Well FROM WellTable WHERE ID = ?`, id.String(),
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == "" {
		return nil, nil
	}

	var well domain.Well
	if err := json.Unmarshal(row.Well, &well); err != nil {
		return nil, fmt.Errorf("%w: unparseable Well body for ID %s: %v", domain.ErrCorrupted, id, err)
	}
	if well.MetaInfo == nil || well.MetaInfo.ID != id {
		return nil, fmt.Errorf("%w: Well body for ID %s carries the wrong identifier", domain.ErrCorrupted, id)
	}
	return &well, nil
}

func (r *repo) ListAll(ctx context.Context, db *gorm.DB) ([]*domain.Well, error) {
	var blobs []string
	err := db.WithContext(ctx).Raw(`SELECT Well FROM WellTable`).Scan(&blobs).Error
	if err != nil {
		return nil, err
	}

	wells := make([]*domain.Well, 0, len(blobs))
	for _, blob := range blobs {
		var well domain.Well
		if err := json.Unmarshal([]byte(blob), &well); err != nil {
			return nil, fmt.Errorf("%w: unparseable Well body: %v", domain.ErrCorrupted, err)
		}
		wells = append(wells, &well)
	}
	return wells, nil
}

func (r *repo) ListUsedSlotIDsByCluster(ctx context.Context, db *gorm.DB, clusterID uuid.UUID) ([]uuid.UUID, error) {
	var blobs []string
	err := db.WithContext(ctx).Raw(
		`SELECT Well FROM WellTable WHERE ClusterID = ?`, clusterID.String(),
	).Scan(&blobs).Error
	if err != nil {
		return nil, err
	}

	slotIDs := make([]uuid.UUID, 0, len(blobs))
	for _, blob := range blobs {
		var well domain.Well
		if err := json.Unmarshal([]byte(blob), &well); err != nil {
			return nil, fmt.Errorf("%w: unparseable Well body: %v", domain.ErrCorrupted, err)
		}
		if well.ClusterID != nil && *well.ClusterID != clusterID {
			return nil, fmt.Errorf("%w: Well body in cluster %s carries cluster %s", domain.ErrCorrupted, clusterID, *well.ClusterID)
		}
		if well.SlotID != nil && *well.SlotID != uuid.Nil {
			slotIDs = append(slotIDs, *well.SlotID)
		}
	}
	return slotIDs, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, well *domain.Well) error {
	metaInfo, body, err := serialize(well)
	if err != nil {
		return err
	}

	result := db.WithContext(ctx).Exec(
		`INSERT INTO WellTable (ID, MetaInfo, ClusterID, SlotID, Well) VALUES (?, ?, ?, ?, ?)`,
		well.MetaInfo.ID.String(),
		metaInfo,
		idColumn(well.ClusterID),
		idColumn(well.SlotID),
		body,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("insert affected %d rows, want 1", result.RowsAffected)
	}
	return nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id uuid.UUID, well *domain.Well) error {
	metaInfo, body, err := serialize(well)
	if err != nil {
		return err
	}

	result := db.WithContext(ctx).Exec(
		`UPDATE WellTable SET MetaInfo = ?, ClusterID = ?, SlotID = ?, Well = ? WHERE ID = ?`,
		metaInfo,
		idColumn(well.ClusterID),
		idColumn(well.SlotID),
		body,
		id.String(),
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("update affected %d rows, want 1", result.RowsAffected)
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM WellTable WHERE ID = ?`, id.String()).Error
}

func serialize(well *domain.Well) (datatypes.JSON, datatypes.JSON, error) {
	metaInfo, err := json.Marshal(well.MetaInfo)
	if err != nil {
		return nil, nil, fmt.Errorf("serialize MetaInfo: %w", err)
	}
	body, err := json.Marshal(well)
	if err != nil {
		return nil, nil, fmt.Errorf("serialize Well: %w", err)
	}
	return metaInfo, body, nil
}

// idColumn renders an optional identifier for storage. Absent identifiers are
// stored as the empty string, never NULL.
func idColumn(id *uuid.UUID) string {
	if id == nil || *id == uuid.Nil {
		return ""
	}
	return id.String()
}
