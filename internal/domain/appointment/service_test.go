package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/apperr"
)

type mockRepo struct {
	appointments map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{appointments: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	cp := *a
	m.appointments[a.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.appointments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	a, ok := m.appointments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	a.Status = status
	return nil
}

func (m *mockRepo) ListByDate(_ context.Context, date time.Time) ([]*Appointment, error) {
	var out []*Appointment
	for _, a := range m.appointments {
		if a.Date.Equal(date) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockRepo) ListByDoctorAndDate(_ context.Context, doctorID uuid.UUID, date time.Time) ([]*Appointment, error) {
	var out []*Appointment
	for _, a := range m.appointments {
		if a.DoctorID == doctorID && a.Date.Equal(date) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockRepo) BookedSlots(_ context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	var slots []string
	for _, a := range m.appointments {
		if a.DoctorID == doctorID && a.Date.Equal(date) && a.Status == StatusScheduled {
			slots = append(slots, a.Slot)
		}
	}
	return slots, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, zerolog.Nop())
}

func booking(doctorID uuid.UUID, date time.Time, slot string) *Appointment {
	return &Appointment{
		PatientName: "Walk In",
		Phone:       "555-0101",
		DoctorID:    doctorID,
		Date:        date,
		Slot:        slot,
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(newMockRepo())
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		mutate func(a *Appointment)
	}{
		{"empty name", func(a *Appointment) { a.PatientName = " " }},
		{"missing doctor", func(a *Appointment) { a.DoctorID = uuid.Nil }},
		{"missing date", func(a *Appointment) { a.Date = time.Time{} }},
		{"missing slot", func(a *Appointment) { a.Slot = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := booking(uuid.New(), date, "10:00")
			tc.mutate(a)
			if err := svc.Create(context.Background(), a); !apperr.IsKind(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreate_SetsScheduled(t *testing.T) {
	svc := newTestService(newMockRepo())
	a := booking(uuid.New(), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "10:00")

	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusScheduled {
		t.Errorf("expected status %s, got %s", StatusScheduled, a.Status)
	}
}

func TestCancel(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	a := booking(uuid.New(), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "10:00")
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Cancel(context.Background(), a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.appointments[a.ID].Status != StatusCancelled {
		t.Error("expected the appointment to be cancelled")
	}

	err := svc.Cancel(context.Background(), a.ID)
	if !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Fatalf("expected invalid state on double cancel, got %v", err)
	}
}

func TestBookedSlots_ExcludesCancelled(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	doctorID := uuid.New()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	first := booking(doctorID, date, "10:00")
	second := booking(doctorID, date, "11:00")
	for _, a := range []*Appointment{first, second} {
		if err := svc.Create(context.Background(), a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := svc.Cancel(context.Background(), second.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slots, err := svc.BookedSlots(context.Background(), doctorID, date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 || slots[0] != "10:00" {
		t.Errorf("expected only the live booking, got %v", slots)
	}
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(newMockRepo())

	err := svc.Cancel(context.Background(), uuid.New())
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
