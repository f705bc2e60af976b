package doctor

import (
	"context"

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

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctors (id, name, specialization, phone, email, consultation_fee, available_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.Name, d.Specialization, d.Phone, d.Email, d.ConsultationFee, d.AvailableDays,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	var d Doctor
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, name, specialization, phone, email, consultation_fee, available_days, created_at, updated_at
		FROM doctors WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Specialization, &d.Phone, &d.Email,
			&d.ConsultationFee, &d.AvailableDays, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctors SET name = $2, specialization = $3, phone = $4, email = $5,
			consultation_fee = $6, available_days = $7, updated_at = NOW()
		WHERE id = $1`,
		d.ID, d.Name, d.Specialization, d.Phone, d.Email, d.ConsultationFee, d.AvailableDays,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) List(ctx context.Context) ([]*Doctor, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, name, specialization, phone, email, consultation_fee, available_days, created_at, updated_at
		FROM doctors ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []*Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialization, &d.Phone, &d.Email,
			&d.ConsultationFee, &d.AvailableDays, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		doctors = append(doctors, &d)
	}
	return doctors, rows.Err()
}

func (r *repoPG) ActivePatientCount(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM patients
		WHERE doctor_id = $1 AND discharged_date IS NULL`, id).Scan(&count)
	return count, err
}
