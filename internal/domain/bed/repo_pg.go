package bed

import (
	"context"
	"errors"

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

// Claim collapses find-and-assign into one statement. SKIP LOCKED keeps
// concurrent claims from queueing on the same candidate row; the lowest bed
// id wins so selection is deterministic. The NOT EXISTS guard rejects a
// patient that already holds a bed, even under concurrent admissions.
func (r *repoPG) Claim(ctx context.Context, patientID, bedTypeID uuid.UUID) (*uuid.UUID, error) {
	var bedID uuid.UUID
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE beds SET status = $3, patient_id = $1, updated_at = NOW()
		WHERE id = (
			SELECT id FROM beds
			WHERE status = $4 AND bed_type_id = $2
			ORDER BY id
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		AND NOT EXISTS (SELECT 1 FROM beds WHERE patient_id = $1)
		RETURNING id`,
		patientID, bedTypeID, StatusOccupied, StatusAvailable,
	).Scan(&bedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &bedID, nil
}

func (r *repoPG) Release(ctx context.Context, patientID uuid.UUID) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE beds SET status = $2, patient_id = NULL, updated_at = NOW()
		WHERE patient_id = $1`,
		patientID, StatusAvailable,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const bedCols = `b.id, b.ward, b.floor, b.bed_type_id, b.status, b.patient_id,
	b.created_at, b.updated_at, bt.name AS bed_type_name, bt.price_per_day, p.name AS patient_name`

const bedJoins = `FROM beds b
	JOIN bed_types bt ON bt.id = b.bed_type_id
	LEFT JOIN patients p ON p.id = b.patient_id`

func (r *repoPG) GetByPatient(ctx context.Context, patientID uuid.UUID) (*Bed, error) {
	return scanBed(r.conn(ctx).QueryRow(ctx,
		`SELECT `+bedCols+` `+bedJoins+` WHERE b.patient_id = $1`, patientID))
}

func (r *repoPG) List(ctx context.Context) ([]*Bed, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+bedCols+` `+bedJoins+` ORDER BY b.floor, b.ward, b.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var beds []*Bed
	for rows.Next() {
		var b Bed
		err := rows.Scan(&b.ID, &b.Ward, &b.Floor, &b.BedTypeID, &b.Status, &b.PatientID,
			&b.CreatedAt, &b.UpdatedAt, &b.BedTypeName, &b.PricePerDay, &b.PatientName)
		if err != nil {
			return nil, err
		}
		beds = append(beds, &b)
	}
	return beds, rows.Err()
}

func (r *repoPG) BedTypeExists(ctx context.Context, bedTypeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bed_types WHERE id = $1)`, bedTypeID).Scan(&exists)
	return exists, err
}

func scanBed(row pgx.Row) (*Bed, error) {
	var b Bed
	err := row.Scan(&b.ID, &b.Ward, &b.Floor, &b.BedTypeID, &b.Status, &b.PatientID,
		&b.CreatedAt, &b.UpdatedAt, &b.BedTypeName, &b.PricePerDay, &b.PatientName)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
