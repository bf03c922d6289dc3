package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/drillops/wellsvc/internal/well/domain"
	pkgdb "github.com/drillops/wellsvc/pkg/db"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const testSchema = `
CREATE TABLE IF NOT EXISTS WellTable (
    ID TEXT PRIMARY KEY,
    MetaInfo TEXT NOT NULL,
    ClusterID TEXT NOT NULL DEFAULT '',
    SlotID TEXT NOT NULL DEFAULT '',
    Well TEXT NOT NULL
);
`

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec(testSchema).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

func newWell(t *testing.T, id string, clusterID, slotID *uuid.UUID) *domain.Well {
	t.Helper()

	recordID, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("parse id: %v", err)
	}
	created := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	return &domain.Well{
		MetaInfo:     &domain.MetaInfo{ID: recordID},
		Name:         "well " + id[:8],
		Description:  "test well",
		CreationDate: &created,
		ClusterID:    clusterID,
		SlotID:       slotID,
	}
}

func uuidPtr(value string) *uuid.UUID {
	id := uuid.MustParse(value)
	return &id
}

func asJSON(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(raw)
}

func TestInsertFindRoundtrip(t *testing.T) {
	db := setupDB(t)
	r := Provide()
	ctx := context.Background()

	well := newWell(t, "11111111-2222-3333-4444-555555555555",
		uuidPtr("aaaaaaaa-0000-0000-0000-000000000001"),
		uuidPtr("bbbbbbbb-0000-0000-0000-000000000001"))

	if err := r.Insert(ctx, db, well); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := r.FindByID(ctx, db, well.MetaInfo.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got == nil {
		t.Fatal("expected a record, got none")
	}
	if asJSON(t, got) != asJSON(t, well) {
		t.Fatalf("roundtrip mismatch:\n got %s\nwant %s", asJSON(t, got), asJSON(t, well))
	}
}

func TestFindByIDAbsent(t *testing.T) {
	db := setupDB(t)
	r := Provide()

	got, err := r.FindByID(context.Background(), db, uuid.New())
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent record, got %+v", got)
	}
}

func TestInsertDuplicateID(t *testing.T) {
	db := setupDB(t)
	r := Provide()
	ctx := context.Background()

	well := newWell(t, "11111111-2222-3333-4444-555555555555", nil, nil)
	if err := r.Insert(ctx, db, well); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	err := r.Insert(ctx, db, well)
	if err == nil {
		t.Fatal("expected duplicate insert to fail")
	}
	if !pkgdb.IsDuplicateKeyErr(err) {
		t.Fatalf("expected duplicate-key error, got %v", err)
	}

	count, err := r.Count(ctx, db)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one record after duplicate insert, got %d", count)
	}
}

func TestUpdateChangesOnlyTargetRecord(t *testing.T) {
	db := setupDB(t)
	r := Provide()
	ctx := context.Background()

	a := newWell(t, "11111111-0000-0000-0000-000000000001", nil, nil)
	b := newWell(t, "11111111-0000-0000-0000-000000000002", nil, nil)
	for _, w := range []*domain.Well{a, b} {
		if err := r.Insert(ctx, db, w); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	updated := newWell(t, a.MetaInfo.ID.String(), nil, nil)
	updated.Name = "renamed"
	if err := r.Update(ctx, db, a.MetaInfo.ID, updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	gotA, err := r.FindByID(ctx, db, a.MetaInfo.ID)
	if err != nil {
		t.Fatalf("find a: %v", err)
	}
	if gotA.Name != "renamed" {
		t.Fatalf("expected updated name, got %q", gotA.Name)
	}

	gotB, err := r.FindByID(ctx, db, b.MetaInfo.ID)
	if err != nil {
		t.Fatalf("find b: %v", err)
	}
	if asJSON(t, gotB) != asJSON(t, b) {
		t.Fatal("untouched record changed by update")
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	db := setupDB(t)
	r := Provide()

	well := newWell(t, "11111111-0000-0000-0000-000000000001", nil, nil)
	err := r.Update(context.Background(), db, well.MetaInfo.ID, well)
	if err == nil {
		t.Fatal("expected update of a missing record to fail")
	}
}

func TestDeleteRemovesRecord(t *testing.T) {
	db := setupDB(t)
	r := Provide()
	ctx := context.Background()

	well := newWell(t, "11111111-0000-0000-0000-000000000001", nil, nil)
	if err := r.Insert(ctx, db, well); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := r.Delete(ctx, db, well.MetaInfo.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := r.FindByID(ctx, db, well.MetaInfo.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != nil {
		t.Fatal("expected record to be gone after delete")
	}
}

func TestListIDsAndContains(t *testing.T) {
	db := setupDB(t)
	r := Provide()
	ctx := context.Background()

	want := map[uuid.UUID]bool{}
	for i := 0; i < 3; i++ {
		well := newWell(t, fmt.Sprintf("11111111-0000-0000-0000-00000000000%d", i+1), nil, nil)
		if err := r.Insert(ctx, db, well); err != nil {
			t.Fatalf("insert: %v", err)
		}
		want[well.MetaInfo.ID] = true
	}

	ids, err := r.ListIDs(ctx, db)
	if err != nil {
		t.Fatalf("list ids: %v", err)
	}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for _, id := range ids {
		if !want[id] {
			t.Fatalf("unexpected id %s", id)
		}
		ok, err := r.Contains(ctx, db, id)
		if err != nil || !ok {
			t.Fatalf("contains(%s) = %v, %v", id, ok, err)
		}
	}

	ok, err := r.Contains(ctx, db, uuid.New())
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if ok {
		t.Fatal("contains reported an absent record")
	}
}

func TestListMetaInfo(t *testing.T) {
	db := setupDB(t)
	r := Provide()
	ctx := context.Background()

	well := newWell(t, "11111111-0000-0000-0000-000000000001", nil, nil)
	if err := r.Insert(ctx, db, well); err != nil {
		t.Fatalf("insert: %v", err)
	}

	metaInfos, err := r.ListMetaInfo(ctx, db)
	if err != nil {
		t.Fatalf("list metainfo: %v", err)
	}
	if len(metaInfos) != 1 || metaInfos[0].ID != well.MetaInfo.ID {
		t.Fatalf("unexpected metainfo list: %+v", metaInfos)
	}
}

func TestUsedSlotIDsByCluster(t *testing.T) {
	db := setupDB(t)
	r := Provide()
	ctx := context.Background()

	cluster := uuidPtr("cccccccc-0000-0000-0000-000000000001")
	otherCluster := uuidPtr("cccccccc-0000-0000-0000-000000000002")
	slot1 := uuidPtr("dddddddd-0000-0000-0000-000000000001")
	slot2 := uuidPtr("dddddddd-0000-0000-0000-000000000002")

	wells := []*domain.Well{
		newWell(t, "11111111-0000-0000-0000-000000000001", cluster, slot1),
		newWell(t, "11111111-0000-0000-0000-000000000002", cluster, slot2),
		newWell(t, "11111111-0000-0000-0000-000000000003", otherCluster, slot1),
		newWell(t, "11111111-0000-0000-0000-000000000004", cluster, nil),
		newWell(t, "11111111-0000-0000-0000-000000000005", nil, slot2),
	}
	for _, w := range wells {
		if err := r.Insert(ctx, db, w); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	slotIDs, err := r.ListUsedSlotIDsByCluster(ctx, db, *cluster)
	if err != nil {
		t.Fatalf("used slots: %v", err)
	}

	got := map[uuid.UUID]bool{}
	for _, id := range slotIDs {
		got[id] = true
	}
	if len(got) != 2 || !got[*slot1] || !got[*slot2] {
		t.Fatalf("expected exactly {%s, %s}, got %v", slot1, slot2, slotIDs)
	}
}

func TestClearEmptiesStore(t *testing.T) {
	db := setupDB(t)
	r := Provide()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		well := newWell(t, fmt.Sprintf("11111111-0000-0000-0000-00000000000%d", i+1), nil, nil)
		if err := r.Insert(ctx, db, well); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	if err := r.Clear(ctx, db); err != nil {
		t.Fatalf("clear: %v", err)
	}

	count, err := r.Count(ctx, db)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty store, got %d records", count)
	}

	ids, err := r.ListIDs(ctx, db)
	if err != nil {
		t.Fatalf("list ids: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no ids, got %v", ids)
	}
}

func TestFindByIDDetectsWrongBodyID(t *testing.T) {
	db := setupDB(t)
	r := Provide()
	ctx := context.Background()

	rowID := uuid.MustParse("11111111-0000-0000-0000-000000000001")
	bodyID := uuid.MustParse("11111111-0000-0000-0000-000000000002")
	body := newWell(t, bodyID.String(), nil, nil)

	err := db.Exec(
		`INSERT INTO WellTable (ID, MetaInfo, ClusterID, SlotID, Well) VALUES (?, ?, '', '', ?)`,
		rowID.String(), asJSON(t, body.MetaInfo), asJSON(t, body),
	).Error
	if err != nil {
		t.Fatalf("seed row: %v", err)
	}

	_, err = r.FindByID(ctx, db, rowID)
	if !errors.Is(err, domain.ErrCorrupted) {
		t.Fatalf("expected corruption error, got %v", err)
	}
}

func TestUsedSlotsDetectClusterMismatch(t *testing.T) {
	db := setupDB(t)
	r := Provide()
	ctx := context.Background()

	columnCluster := uuid.MustParse("cccccccc-0000-0000-0000-000000000001")
	bodyCluster := uuidPtr("cccccccc-0000-0000-0000-000000000002")
	body := newWell(t, "11111111-0000-0000-0000-000000000001", bodyCluster,
		uuidPtr("dddddddd-0000-0000-0000-000000000001"))

	err := db.Exec(
		`INSERT INTO WellTable (ID, MetaInfo, ClusterID, SlotID, Well) VALUES (?, ?, ?, ?, ?)`,
		body.MetaInfo.ID.String(), asJSON(t, body.MetaInfo),
		columnCluster.String(), body.SlotID.String(), asJSON(t, body),
	).Error
	if err != nil {
		t.Fatalf("seed row: %v", err)
	}

	_, err = r.ListUsedSlotIDsByCluster(ctx, db, columnCluster)
	if !errors.Is(err, domain.ErrCorrupted) {
		t.Fatalf("expected corruption error, got %v", err)
	}
}

func TestListMetaInfoDetectsUnparseableBlob(t *testing.T) {
	db := setupDB(t)
	r := Provide()

	err := db.Exec(
		`INSERT INTO WellTable (ID, MetaInfo, ClusterID, SlotID, Well) VALUES (?, ?, '', '', ?)`,
		uuid.NewString(), "{not json", "{}",
	).Error
	if err != nil {
		t.Fatalf("seed row: %v", err)
	}

	_, err = r.ListMetaInfo(context.Background(), db)
	if !errors.Is(err, domain.ErrCorrupted) {
		t.Fatalf("expected corruption error, got %v", err)
	}
}
