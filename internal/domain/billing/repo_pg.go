package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func (r *repoPG) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.RunInTx(ctx, r.pool, fn)
}

// GetAdmission joins the patient with the held bed's rate and the attending
// doctor's fee. FOR UPDATE OF p locks only the patient row; the nullable
// join sides cannot be locked and do not need to be.
func (r *repoPG) GetAdmission(ctx context.Context, patientID uuid.UUID) (*Admission, error) {
	var a Admission
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT p.id, p.name, p.admitted_date, p.discharged_date, p.doctor_id,
		       d.consultation_fee, bt.price_per_day
		FROM patients p
		LEFT JOIN doctors d ON d.id = p.doctor_id
		LEFT JOIN beds b ON b.patient_id = p.id
		LEFT JOIN bed_types bt ON bt.id = b.bed_type_id
		WHERE p.id = $1
		FOR UPDATE OF p`, patientID).
		Scan(&a.PatientID, &a.PatientName, &a.AdmittedDate, &a.DischargedDate,
			&a.DoctorID, &a.DoctorFee, &a.BedPricePerDay)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) InsertBill(ctx context.Context, b *Bill) error {
	b.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO billing (id, patient_id, days, bed_charge, service_charge, doctor_fee, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.PatientID, b.Days, b.BedCharge, b.ServiceCharge, b.DoctorFee, b.Total,
	)
	return err
}

func (r *repoPG) MarkDischarged(ctx context.Context, patientID uuid.UUID, at time.Time) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET discharged_date = $2, updated_at = NOW()
		WHERE id = $1 AND discharged_date IS NULL`, patientID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) ListHistory(ctx context.Context, limit, offset int) ([]*Bill, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM billing`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT bl.id, bl.patient_id, bl.days, bl.bed_charge, bl.service_charge,
		       bl.doctor_fee, bl.total, bl.created_at, p.name AS patient_name
		FROM billing bl
		JOIN patients p ON p.id = bl.patient_id
		ORDER BY bl.created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bills, err := collectBills(rows)
	return bills, total, err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Bill, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT bl.id, bl.patient_id, bl.days, bl.bed_charge, bl.service_charge,
		       bl.doctor_fee, bl.total, bl.created_at, p.name AS patient_name
		FROM billing bl
		JOIN patients p ON p.id = bl.patient_id
		WHERE bl.patient_id = $1
		ORDER BY bl.created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBills(rows)
}

func collectBills(rows pgx.Rows) ([]*Bill, error) {
	var bills []*Bill
	for rows.Next() {
		var b Bill
		if err := rows.Scan(&b.ID, &b.PatientID, &b.Days, &b.BedCharge, &b.ServiceCharge,
			&b.DoctorFee, &b.Total, &b.CreatedAt, &b.PatientName); err != nil {
			return nil, err
		}
		bills = append(bills, &b)
	}
	return bills, rows.Err()
}
