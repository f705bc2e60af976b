package identity

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

const employeeCols = `id, name, email, password_hash, role, created_at, updated_at`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.Role, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repoPG) Create(ctx context.Context, e *Employee) error {
	e.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO employees (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Name, e.Email, e.PasswordHash, e.Role,
	)
	return err
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Employee, error) {
	row := r.conn(ctx).QueryRow(ctx,
		`SELECT `+employeeCols+` FROM employees WHERE LOWER(email) = LOWER($1)`, email)
	return scanEmployee(row)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	row := r.conn(ctx).QueryRow(ctx,
		`SELECT `+employeeCols+` FROM employees WHERE id = $1`, id)
	return scanEmployee(row)
}

func (r *repoPG) List(ctx context.Context) ([]*Employee, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+employeeCols+` FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
