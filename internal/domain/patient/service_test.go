package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/apperr"
)

// -- Mock Repository --

type mockRepo struct {
	patients map[uuid.UUID]*Patient
	billed   map[uuid.UUID]bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		patients: make(map[uuid.UUID]*Patient),
		billed:   make(map[uuid.UUID]bool),
	}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	cp := *p
	m.patients[p.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *p
	m.patients[p.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.patients[id]; !ok {
		return pgx.ErrNoRows
	}
	if m.billed[id] {
		return &pgconn.PgError{Code: "23503"}
	}
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) ListAdmitted(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var out []*Patient
	for _, p := range m.patients {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	var out []*Patient
	for _, p := range m.patients {
		if p.Active() && p.DoctorID != nil && *p.DoctorID == doctorID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

// -- Mock Allocator --

type mockAllocator struct {
	calls  int
	free   int
	failed error
}

func (m *mockAllocator) Allocate(_ context.Context, patientID, bedTypeID uuid.UUID) (*AllocationResult, error) {
	m.calls++
	if m.failed != nil {
		return nil, m.failed
	}
	if m.free == 0 {
		return &AllocationResult{Assigned: false}, nil
	}
	m.free--
	id := uuid.New()
	return &AllocationResult{Assigned: true, BedID: &id}, nil
}

func (m *mockAllocator) Release(_ context.Context, patientID uuid.UUID) (bool, error) {
	return true, nil
}

// -- Tests --

func strPtr(s string) *string { return &s }

func draft(severity string) *Patient {
	bt := uuid.New()
	return &Patient{
		Name:               "John Doe",
		Age:                42,
		Gender:             "M",
		DiseaseSeverity:    severity,
		OtherIllnessText:   strPtr("fever"),
		RequestedBedTypeID: &bt,
	}
}

func newTestService(repo Repository, beds BedAllocator) *Service {
	return NewService(repo, beds, zerolog.Nop())
}

func TestAdmit_Validation(t *testing.T) {
	svc := newTestService(newMockRepo(), &mockAllocator{})

	cases := []struct {
		name   string
		mutate func(p *Patient)
	}{
		{"empty name", func(p *Patient) { p.Name = "  " }},
		{"negative age", func(p *Patient) { p.Age = -1 }},
		{"bad severity", func(p *Patient) { p.DiseaseSeverity = "Critical" }},
		{"no illness", func(p *Patient) { p.IllnessID = nil; p.OtherIllnessText = nil }},
		{"no bed type above mild", func(p *Patient) { p.RequestedBedTypeID = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := draft(SeverityModerate)
			tc.mutate(p)
			_, err := svc.Admit(context.Background(), p)
			if !apperr.IsKind(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAdmit_MildSkipsAllocation(t *testing.T) {
	alloc := &mockAllocator{free: 5}
	svc := newTestService(newMockRepo(), alloc)

	p := draft(SeverityMild)
	p.RequestedBedTypeID = nil
	resp, err := svc.Admit(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alloc.calls != 0 {
		t.Errorf("mild admission must not touch the allocator, got %d calls", alloc.calls)
	}
	if resp.Allocation != nil {
		t.Error("expected no allocation result for mild severity")
	}
}

func TestAdmit_ModerateAllocatesBed(t *testing.T) {
	alloc := &mockAllocator{free: 1}
	svc := newTestService(newMockRepo(), alloc)

	resp, err := svc.Admit(context.Background(), draft(SeverityModerate))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alloc.calls != 1 {
		t.Fatalf("expected one allocator call, got %d", alloc.calls)
	}
	if resp.Allocation == nil || !resp.Allocation.Assigned {
		t.Fatal("expected an assigned bed")
	}
	if resp.Patient.BedID == nil {
		t.Error("expected bed id on the admitted patient")
	}
}

func TestAdmit_FullWardStillAdmits(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockAllocator{free: 0})

	resp, err := svc.Admit(context.Background(), draft(SeveritySevere))
	if err != nil {
		t.Fatalf("a full ward must not block admission, got %v", err)
	}
	if resp.Allocation == nil || resp.Allocation.Assigned {
		t.Fatal("expected an unassigned allocation result")
	}
	if _, ok := repo.patients[resp.Patient.ID]; !ok {
		t.Error("expected the patient record to be persisted")
	}
}

func TestAdmit_AllocatorErrorStillAdmits(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockAllocator{failed: apperr.Storage("claim bed", pgx.ErrTxClosed)})

	resp, err := svc.Admit(context.Background(), draft(SeveritySevere))
	if err != nil {
		t.Fatalf("allocator failure must not roll back admission, got %v", err)
	}
	if resp.Allocation == nil || resp.Allocation.Assigned {
		t.Fatal("expected an unassigned allocation result")
	}
	if len(repo.patients) != 1 {
		t.Error("expected the patient record to survive")
	}
}

func TestAllocateBed_DischargedPatient(t *testing.T) {
	repo := newMockRepo()
	alloc := &mockAllocator{free: 1}
	svc := newTestService(repo, alloc)

	resp, err := svc.Admit(context.Background(), draft(SeverityMild))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	now := time.Now().UTC()
	repo.patients[resp.Patient.ID].DischargedDate = &now

	_, err = svc.AllocateBed(context.Background(), resp.Patient.ID, uuid.New())
	if !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	if alloc.calls != 0 {
		t.Error("allocator must not run for a discharged patient")
	}
}

func TestDelete_WithBillingRecords(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockAllocator{})

	resp, err := svc.Admit(context.Background(), draft(SeverityMild))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.billed[resp.Patient.ID] = true

	err = svc.Delete(context.Background(), resp.Patient.ID)
	if !apperr.IsKind(err, apperr.KindResourceInUse) {
		t.Fatalf("expected resource-in-use error, got %v", err)
	}
	if _, ok := repo.patients[resp.Patient.ID]; !ok {
		t.Error("expected the patient row to remain")
	}
}

func TestDelete_Unbilled(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockAllocator{})

	resp, err := svc.Admit(context.Background(), draft(SeverityMild))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), resp.Patient.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.patients) != 0 {
		t.Error("expected the patient row to be gone")
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestService(newMockRepo(), &mockAllocator{})

	_, err := svc.Get(context.Background(), uuid.New())
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
