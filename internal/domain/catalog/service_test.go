package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hms/hms/internal/platform/apperr"
)

// -- Mock Repository --

type mockRepo struct {
	bedTypes  map[uuid.UUID]*BedType
	illnesses map[uuid.UUID]*Illness
	// bed type ids that beds still reference; deletes fail with a FK error
	referenced map[uuid.UUID]bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		bedTypes:   make(map[uuid.UUID]*BedType),
		illnesses:  make(map[uuid.UUID]*Illness),
		referenced: make(map[uuid.UUID]bool),
	}
}

func (m *mockRepo) CreateBedType(_ context.Context, bt *BedType) error {
	bt.ID = uuid.New()
	m.bedTypes[bt.ID] = bt
	return nil
}

func (m *mockRepo) GetBedType(_ context.Context, id uuid.UUID) (*BedType, error) {
	bt, ok := m.bedTypes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return bt, nil
}

func (m *mockRepo) UpdateBedType(_ context.Context, bt *BedType) error {
	m.bedTypes[bt.ID] = bt
	return nil
}

func (m *mockRepo) DeleteBedType(_ context.Context, id uuid.UUID) error {
	if m.referenced[id] {
		return &pgconn.PgError{Code: "23503"}
	}
	if _, ok := m.bedTypes[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.bedTypes, id)
	return nil
}

func (m *mockRepo) ListBedTypes(_ context.Context) ([]*BedType, error) {
	var result []*BedType
	for _, bt := range m.bedTypes {
		result = append(result, bt)
	}
	return result, nil
}

func (m *mockRepo) CreateIllness(_ context.Context, il *Illness) error {
	il.ID = uuid.New()
	m.illnesses[il.ID] = il
	return nil
}

func (m *mockRepo) UpdateIllness(_ context.Context, il *Illness) error {
	m.illnesses[il.ID] = il
	return nil
}

func (m *mockRepo) DeleteIllness(_ context.Context, id uuid.UUID) error {
	if m.referenced[id] {
		return &pgconn.PgError{Code: "23503"}
	}
	if _, ok := m.illnesses[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.illnesses, id)
	return nil
}

func (m *mockRepo) ListIllnesses(_ context.Context) ([]*Illness, error) {
	var result []*Illness
	for _, il := range m.illnesses {
		result = append(result, il)
	}
	return result, nil
}

// -- Tests --

func TestCreateBedType(t *testing.T) {
	svc := NewService(newMockRepo())

	bt := &BedType{Name: "ICU", PricePerDay: 1500}
	if err := svc.CreateBedType(context.Background(), bt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bt.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
}

func TestCreateBedType_NameRequired(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.CreateBedType(context.Background(), &BedType{PricePerDay: 100})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateBedType_NegativePrice(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.CreateBedType(context.Background(), &BedType{Name: "General", PricePerDay: -1})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetBedType_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.GetBedType(context.Background(), uuid.New())
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDeleteBedType_Referenced(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	bt := &BedType{Name: "General", PricePerDay: 800}
	if err := svc.CreateBedType(context.Background(), bt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.referenced[bt.ID] = true

	err := svc.DeleteBedType(context.Background(), bt.ID)
	if !apperr.IsKind(err, apperr.KindResourceInUse) {
		t.Fatalf("expected resource-in-use error, got %v", err)
	}
	// The catalog row must be left intact.
	if _, ok := repo.bedTypes[bt.ID]; !ok {
		t.Error("expected bed type row to remain after rejected delete")
	}
}

func TestDeleteBedType_Unreferenced(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	bt := &BedType{Name: "Deluxe", PricePerDay: 2500}
	if err := svc.CreateBedType(context.Background(), bt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeleteBedType(context.Background(), bt.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.bedTypes[bt.ID]; ok {
		t.Error("expected bed type to be deleted")
	}
}

func TestDeleteIllness_Referenced(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	il := &Illness{Name: "Influenza"}
	if err := svc.CreateIllness(context.Background(), il); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.referenced[il.ID] = true

	err := svc.DeleteIllness(context.Background(), il.ID)
	if !apperr.IsKind(err, apperr.KindResourceInUse) {
		t.Fatalf("expected resource-in-use error, got %v", err)
	}
}

func TestCreateIllness_NameRequired(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.CreateIllness(context.Background(), &Illness{})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
