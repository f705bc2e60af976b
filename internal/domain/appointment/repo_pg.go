package appointment

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

const appointmentCols = `
	a.id, a.patient_name, a.phone, a.doctor_id, a.date, a.slot, a.status,
	a.created_at, d.name AS doctor_name`

const appointmentJoins = `
	FROM appointments a
	JOIN doctors d ON d.id = a.doctor_id`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientName, &a.Phone, &a.DoctorID, &a.Date,
		&a.Slot, &a.Status, &a.CreatedAt, &a.DoctorName)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointments (id, patient_name, phone, doctor_id, date, slot, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.PatientName, a.Phone, a.DoctorID, a.Date, a.Slot, a.Status,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.conn(ctx).QueryRow(ctx,
		`SELECT`+appointmentCols+appointmentJoins+` WHERE a.id = $1`, id)
	return scanAppointment(row)
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE appointments SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) ListByDate(ctx context.Context, date time.Time) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT`+appointmentCols+appointmentJoins+`
		WHERE a.date = $1
		ORDER BY a.slot`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *repoPG) ListByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT`+appointmentCols+appointmentJoins+`
		WHERE a.doctor_id = $1 AND a.date = $2
		ORDER BY a.slot`, doctorID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *repoPG) BookedSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT slot FROM appointments
		WHERE doctor_id = $1 AND date = $2 AND status = $3
		ORDER BY slot`, doctorID, date, StatusScheduled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func collectAppointments(rows pgx.Rows) ([]*Appointment, error) {
	var appts []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}
