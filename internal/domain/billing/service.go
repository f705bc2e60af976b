package billing

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/apperr"
)

// totalTolerance absorbs float representation noise when comparing the
// client's previewed total against the recomputed one.
const totalTolerance = 0.01

// BedReleaser is the slice of the bed service the discharge flow depends on.
type BedReleaser interface {
	Release(ctx context.Context, patientID uuid.UUID) (bool, error)
}

type Service struct {
	repo          Repository
	beds          BedReleaser
	serviceCharge float64
	logger        zerolog.Logger
}

func NewService(repo Repository, beds BedReleaser, serviceCharge float64, logger zerolog.Logger) *Service {
	return &Service{
		repo:          repo,
		beds:          beds,
		serviceCharge: serviceCharge,
		logger:        logger.With().Str("component", "billing").Logger(),
	}
}

// chargeableDays counts the billed days for a stay: any started day is
// charged in full, and even a same-hour discharge bills one day.
func chargeableDays(admitted, until time.Time) int {
	days := int(math.Ceil(until.Sub(admitted).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

func (s *Service) compute(a *Admission, until time.Time) *Preview {
	p := &Preview{
		PatientID:     a.PatientID,
		Days:          chargeableDays(a.AdmittedDate, until),
		ServiceCharge: s.serviceCharge,
	}
	if a.BedPricePerDay != nil {
		p.BedCharge = float64(p.Days) * *a.BedPricePerDay
	}
	if a.DoctorFee != nil {
		p.DoctorFee = *a.DoctorFee
	}
	p.Total = p.BedCharge + p.ServiceCharge + p.DoctorFee
	return p
}

// Preview computes the bill as it would settle right now. It reads current
// state only and writes nothing, so repeated calls for an unchanged patient
// return the same figures apart from the day count rolling over.
func (s *Service) Preview(ctx context.Context, patientID uuid.UUID) (*Preview, error) {
	a, err := s.repo.GetAdmission(ctx, patientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("patient %s not found", patientID)
		}
		return nil, apperr.Storage("load admission", err)
	}
	if a.DischargedDate != nil {
		return nil, apperr.InvalidState("patient %s is already discharged", patientID)
	}
	return s.compute(a, time.Now().UTC()), nil
}

// Discharge settles the stay in one transaction: recompute the bill, verify
// it against the total the client previewed, write the invoice, free the
// bed and stamp the discharge date. Any failure rolls the whole thing back,
// so a patient is never discharged without a bill or billed without a
// discharge.
func (s *Service) Discharge(ctx context.Context, patientID uuid.UUID, req *DischargeRequest) (*Bill, error) {
	var bill *Bill
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetAdmission(ctx, patientID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound("patient %s not found", patientID)
			}
			return apperr.Storage("load admission", err)
		}
		if a.DischargedDate != nil {
			return apperr.InvalidState("patient %s is already discharged", patientID)
		}

		now := time.Now().UTC()
		preview := s.compute(a, now)
		if math.Abs(preview.Total-req.ExpectedTotal) > totalTolerance {
			return apperr.Validation(
				"bill total changed: previewed %.2f, current %.2f; fetch a fresh preview",
				req.ExpectedTotal, preview.Total)
		}

		bill = &Bill{
			PatientID:     a.PatientID,
			PatientName:   a.PatientName,
			Days:          preview.Days,
			BedCharge:     preview.BedCharge,
			ServiceCharge: preview.ServiceCharge,
			DoctorFee:     preview.DoctorFee,
			Total:         preview.Total,
			CreatedAt:     now,
		}
		if err := s.repo.InsertBill(ctx, bill); err != nil {
			return apperr.Storage("insert bill", err)
		}
		if _, err := s.beds.Release(ctx, patientID); err != nil {
			return apperr.Storage("release bed", err)
		}
		if err := s.repo.MarkDischarged(ctx, patientID, now); err != nil {
			return apperr.Storage("mark discharged", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("patient_id", patientID.String()).
		Float64("total", bill.Total).
		Msg("patient discharged")
	return bill, nil
}

func (s *Service) ListHistory(ctx context.Context, limit, offset int) ([]*Bill, int, error) {
	bills, total, err := s.repo.ListHistory(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperr.Storage("list billing history", err)
	}
	return bills, total, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Bill, error) {
	bills, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperr.Storage("list bills by patient", err)
	}
	return bills, nil
}
