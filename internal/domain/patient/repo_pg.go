package patient

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

const patientCols = `
	p.id, p.name, p.age, p.gender, p.admitted_date, p.discharged_date,
	p.doctor_id, p.disease_severity, p.illness_id, p.other_illness_text,
	p.requested_bed_type_id, p.created_at, p.updated_at,
	d.name AS doctor_name, i.name AS illness_name, b.id AS bed_id`

const patientJoins = `
	FROM patients p
	LEFT JOIN doctors d ON d.id = p.doctor_id
	LEFT JOIN illnesses i ON i.id = p.illness_id
	LEFT JOIN beds b ON b.patient_id = p.id`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID, &p.Name, &p.Age, &p.Gender, &p.AdmittedDate, &p.DischargedDate,
		&p.DoctorID, &p.DiseaseSeverity, &p.IllnessID, &p.OtherIllnessText,
		&p.RequestedBedTypeID, &p.CreatedAt, &p.UpdatedAt,
		&p.DoctorName, &p.IllnessName, &p.BedID,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients (
			id, name, age, gender, admitted_date, doctor_id,
			disease_severity, illness_id, other_illness_text, requested_bed_type_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Name, p.Age, p.Gender, p.AdmittedDate, p.DoctorID,
		p.DiseaseSeverity, p.IllnessID, p.OtherIllnessText, p.RequestedBedTypeID,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	row := r.conn(ctx).QueryRow(ctx,
		`SELECT`+patientCols+patientJoins+` WHERE p.id = $1`, id)
	return scanPatient(row)
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET
			name = $2, age = $3, gender = $4, doctor_id = $5,
			disease_severity = $6, illness_id = $7, other_illness_text = $8,
			requested_bed_type_id = $9, updated_at = NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Age, p.Gender, p.DoctorID,
		p.DiseaseSeverity, p.IllnessID, p.OtherIllnessText, p.RequestedBedTypeID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete frees the patient's bed and removes the record in one transaction.
// The billing foreign key is left to the database: a referenced patient fails
// the DELETE with a constraint violation and the transaction rolls back.
func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return db.RunInTx(ctx, r.pool, func(ctx context.Context) error {
		q := r.conn(ctx)
		if _, err := q.Exec(ctx, `
			UPDATE beds SET status = 'Available', patient_id = NULL
			WHERE patient_id = $1`, id); err != nil {
			return err
		}
		tag, err := q.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

func (r *repoPG) ListAdmitted(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM patients WHERE discharged_date IS NULL`).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT`+patientCols+patientJoins+`
		WHERE p.discharged_date IS NULL
		ORDER BY p.admitted_date DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	patients, err := collectPatients(rows)
	return patients, total, err
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	var total int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM patients
		WHERE doctor_id = $1 AND discharged_date IS NULL`, doctorID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT`+patientCols+patientJoins+`
		WHERE p.doctor_id = $1 AND p.discharged_date IS NULL
		ORDER BY p.admitted_date DESC
		LIMIT $2 OFFSET $3`, doctorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	patients, err := collectPatients(rows)
	return patients, total, err
}

func collectPatients(rows pgx.Rows) ([]*Patient, error) {
	var patients []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}
