package doctor

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/apperr"
)

type mockRepo struct {
	doctors        map[uuid.UUID]*Doctor
	activePatients map[uuid.UUID]int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		doctors:        make(map[uuid.UUID]*Doctor),
		activePatients: make(map[uuid.UUID]int),
	}
}

func (m *mockRepo) Create(_ context.Context, d *Doctor) error {
	d.ID = uuid.New()
	cp := *d
	m.doctors[d.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *d
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, d *Doctor) error {
	if _, ok := m.doctors[d.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *d
	m.doctors[d.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.doctors[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.doctors, id)
	return nil
}

func (m *mockRepo) List(_ context.Context) ([]*Doctor, error) {
	var out []*Doctor
	for _, d := range m.doctors {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockRepo) ActivePatientCount(_ context.Context, id uuid.UUID) (int, error) {
	return m.activePatients[id], nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, zerolog.Nop())
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(newMockRepo())

	err := svc.Create(context.Background(), &Doctor{Name: "  ", ConsultationFee: 100})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	err = svc.Create(context.Background(), &Doctor{Name: "Dr. House", ConsultationFee: -1})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDelete_WithActivePatients(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	d := &Doctor{Name: "Dr. House", ConsultationFee: 1000}
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.activePatients[d.ID] = 2

	err := svc.Delete(context.Background(), d.ID)
	if !apperr.IsKind(err, apperr.KindResourceInUse) {
		t.Fatalf("expected resource-in-use error, got %v", err)
	}
	if _, ok := repo.doctors[d.ID]; !ok {
		t.Error("expected the doctor row to remain")
	}
}

func TestDelete_NoActivePatients(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	d := &Doctor{Name: "Dr. House", ConsultationFee: 1000}
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), d.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.doctors) != 0 {
		t.Error("expected the doctor row to be gone")
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestService(newMockRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
