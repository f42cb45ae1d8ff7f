package remoteRepo

import (
	"context"
	"errors"
	"fmt"

	"pathlab/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when an update or delete matched no row.
var ErrNotFound = errors.New("record not found")

// MigrationSQL creates both tables. Safe to run repeatedly.
const MigrationSQL = `
CREATE TABLE IF NOT EXISTS tests (
    id              TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    price           INTEGER NOT NULL CHECK (price > 0),
    preparation     TEXT NOT NULL DEFAULT '',
    turnaround_time TEXT NOT NULL DEFAULT '',
    category        TEXT NOT NULL,
    popular         BOOLEAN
);

CREATE TABLE IF NOT EXISTS appointments (
    id              TEXT PRIMARY KEY,
    test_id         TEXT NOT NULL,
    test_name       TEXT NOT NULL,
    price           INTEGER NOT NULL,
    date            TEXT NOT NULL,
    time_slot       TEXT NOT NULL,
    status          TEXT NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    patient_name    TEXT NOT NULL,
    patient_age     TEXT,
    patient_phone   TEXT NOT NULL,
    patient_email   TEXT,
    patient_address TEXT NOT NULL,
    report_url      TEXT
);

CREATE INDEX IF NOT EXISTS idx_appointments_created_at ON appointments (created_at DESC);
`

// pgDB is the subset of *pgxpool.Pool used by the repository.
type pgDB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Ping(ctx context.Context) error
}

type postgresRepo struct {
	pool *pgxpool.Pool
	db   pgDB
}

// NewPostgresRepo wraps a pgx pool.
func NewPostgresRepo(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool, db: pool}
}

// Migrate applies MigrationSQL.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, MigrationSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const testColumns = `id, name, description, price, preparation, turnaround_time, category, popular`

func (r *postgresRepo) ListTests(ctx context.Context) ([]models.LabTest, error) {
	rows, err := r.db.Query(ctx, `SELECT `+testColumns+` FROM tests ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select tests: %w", err)
	}
	defer rows.Close()

	var tests []models.LabTest
	for rows.Next() {
		var (
			t        models.LabTest
			category string
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Price, &t.Preparation, &t.TurnaroundTime, &category, &t.Popular); err != nil {
			return nil, fmt.Errorf("scan test: %w", err)
		}
		t.Category = models.Category(category)
		tests = append(tests, t)
	}
	return tests, rows.Err()
}

// insertTestSQL fails on an existing id so the caller can roll back.
const insertTestSQL = `INSERT INTO tests (` + testColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// upsertTestSQL is only used for seeding.
const upsertTestSQL = `INSERT INTO tests (` + testColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    preparation = EXCLUDED.preparation,
    turnaround_time = EXCLUDED.turnaround_time,
    category = EXCLUDED.category,
    popular = EXCLUDED.popular`

func testArgs(t models.LabTest) []any {
	return []any{t.ID, t.Name, t.Description, t.Price, t.Preparation, t.TurnaroundTime, string(t.Category), t.Popular}
}

func (r *postgresRepo) InsertTests(ctx context.Context, tests []models.LabTest) error {
	batch := &pgx.Batch{}
	for _, t := range tests {
		batch.Queue(upsertTestSQL, testArgs(t)...)
	}
	br := r.db.SendBatch(ctx, batch)
	defer br.Close()
	for range tests {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("seed tests: %w", err)
		}
	}
	return nil
}

func (r *postgresRepo) InsertTest(ctx context.Context, t models.LabTest) error {
	if _, err := r.db.Exec(ctx, insertTestSQL, testArgs(t)...); err != nil {
		return fmt.Errorf("insert test %s: %w", t.ID, err)
	}
	return nil
}

func (r *postgresRepo) UpdateTest(ctx context.Context, t models.LabTest) error {
	tag, err := r.db.Exec(ctx, `UPDATE tests SET name = $2, description = $3, price = $4,
preparation = $5, turnaround_time = $6, category = $7, popular = $8 WHERE id = $1`, testArgs(t)...)
	if err != nil {
		return fmt.Errorf("update test %s: %w", t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteTest(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete test %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	rows, err := r.db.Query(ctx, `SELECT id, test_id, test_name, price, date, time_slot, status, created_at,
patient_name, COALESCE(patient_age, ''), patient_phone, COALESCE(patient_email, ''), patient_address,
COALESCE(report_url, '')
FROM appointments ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select appointments: %w", err)
	}
	defer rows.Close()

	var out []models.Appointment
	for rows.Next() {
		var row appointmentRow
		if err := rows.Scan(&row.ID, &row.TestID, &row.TestName, &row.Price, &row.Date, &row.TimeSlot,
			&row.Status, &row.CreatedAt, &row.PatientName, &row.PatientAge, &row.PatientPhone,
			&row.PatientEmail, &row.PatientAddress, &row.ReportURL); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, row.toModel())
	}
	return out, rows.Err()
}

func (r *postgresRepo) InsertAppointment(ctx context.Context, a models.Appointment) error {
	row := toAppointmentRow(a)
	_, err := r.db.Exec(ctx, `INSERT INTO appointments (id, test_id, test_name, price, date, time_slot, status,
created_at, patient_name, patient_age, patient_phone, patient_email, patient_address, report_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NULLIF($14, ''))`,
		row.ID, row.TestID, row.TestName, row.Price, row.Date, row.TimeSlot, row.Status, row.CreatedAt,
		row.PatientName, row.PatientAge, row.PatientPhone, row.PatientEmail, row.PatientAddress, row.ReportURL)
	if err != nil {
		return fmt.Errorf("insert appointment %s: %w", a.ID, err)
	}
	return nil
}

func (r *postgresRepo) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE appointments SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update appointment %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepo) UpdateReportURL(ctx context.Context, id, url string) error {
	tag, err := r.db.Exec(ctx, `UPDATE appointments SET report_url = $2 WHERE id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("update report url %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *postgresRepo) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}
