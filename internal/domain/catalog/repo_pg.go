package catalog

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

func (r *repoPG) CreateBedType(ctx context.Context, bt *BedType) error {
	bt.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bed_types (id, name, price_per_day) VALUES ($1, $2, $3)`,
		bt.ID, bt.Name, bt.PricePerDay,
	)
	return err
}

func (r *repoPG) GetBedType(ctx context.Context, id uuid.UUID) (*BedType, error) {
	var bt BedType
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, name, price_per_day, created_at, updated_at
		FROM bed_types WHERE id = $1`, id).
		Scan(&bt.ID, &bt.Name, &bt.PricePerDay, &bt.CreatedAt, &bt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &bt, nil
}

func (r *repoPG) UpdateBedType(ctx context.Context, bt *BedType) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE bed_types SET name = $2, price_per_day = $3, updated_at = NOW()
		WHERE id = $1`,
		bt.ID, bt.Name, bt.PricePerDay,
	)
	return err
}

func (r *repoPG) DeleteBedType(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM bed_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) ListBedTypes(ctx context.Context) ([]*BedType, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, name, price_per_day, created_at, updated_at
		FROM bed_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*BedType
	for rows.Next() {
		var bt BedType
		if err := rows.Scan(&bt.ID, &bt.Name, &bt.PricePerDay, &bt.CreatedAt, &bt.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, &bt)
	}
	return types, rows.Err()
}

func (r *repoPG) CreateIllness(ctx context.Context, il *Illness) error {
	il.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO illnesses (id, name) VALUES ($1, $2)`, il.ID, il.Name)
	return err
}

func (r *repoPG) UpdateIllness(ctx context.Context, il *Illness) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE illnesses SET name = $2 WHERE id = $1`, il.ID, il.Name)
	return err
}

func (r *repoPG) DeleteIllness(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM illnesses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) ListIllnesses(ctx context.Context) ([]*Illness, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, name, created_at FROM illnesses ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var illnesses []*Illness
	for rows.Next() {
		var il Illness
		if err := rows.Scan(&il.ID, &il.Name, &il.CreatedAt); err != nil {
			return nil, err
		}
		illnesses = append(illnesses, &il)
	}
	return illnesses, rows.Err()
}
