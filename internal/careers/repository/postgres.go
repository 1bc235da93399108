package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/globalsolutions/website/backend/internal/careers"
	"github.com/globalsolutions/website/backend/pkg/logger"
	"github.com/lib/pq"
)

// PostgresRepo reads and writes the jobs and job_applications tables of
// the hosted database. The schema is owned by the database project.
type PostgresRepo struct {
	DB *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

const jobColumns = `id, title, department, location, employment_type, description, requirements, active, created_at, updated_at`

func scanJob(row interface{ Scan(...interface{}) error }) (careers.Job, error) {
	var j careers.Job
	err := row.Scan(&j.ID, &j.Title, &j.Department, &j.Location, &j.EmploymentType, &j.Description,
		pq.Array(&j.Requirements), &j.Active, &j.CreatedAt, &j.UpdatedAt)
	return j, err
}

func (r *PostgresRepo) ListJobs(ctx context.Context, activeOnly bool) ([]careers.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		logger.Errorf("careers: list jobs: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []careers.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetJob(ctx context.Context, id string) (*careers.Job, error) {
	j, err := scanJob(r.DB.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, careers.ErrNotFound
		}
		logger.Errorf("careers: get job %s: %v", id, err)
		return nil, err
	}
	return &j, nil
}

func (r *PostgresRepo) CreateJob(ctx context.Context, j *careers.Job) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO jobs (`+jobColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		j.ID, j.Title, j.Department, j.Location, j.EmploymentType, j.Description,
		pq.Array(j.Requirements), j.Active, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		logger.Errorf("careers: create job: %v", err)
	}
	return err
}

func (r *PostgresRepo) UpdateJob(ctx context.Context, j *careers.Job) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE jobs SET title = $1, department = $2, location = $3, employment_type = $4,
		description = $5, requirements = $6, active = $7, updated_at = $8 WHERE id = $9`,
		j.Title, j.Department, j.Location, j.EmploymentType, j.Description,
		pq.Array(j.Requirements), j.Active, j.UpdatedAt, j.ID)
	if err != nil {
		logger.Errorf("careers: update job %s: %v", j.ID, err)
		return err
	}
	return requireRow(res)
}

func (r *PostgresRepo) DeleteJob(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		logger.Errorf("careers: delete job %s: %v", id, err)
		return err
	}
	return requireRow(res)
}

func (r *PostgresRepo) CreateApplication(ctx context.Context, a *careers.Application) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO job_applications (id, job_id, full_name, email, phone, resume_url, cover_letter, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.JobID, a.FullName, a.Email, a.Phone, a.ResumeURL, a.CoverLetter, a.CreatedAt)
	if err != nil {
		logger.Errorf("careers: create application for job %s: %v", a.JobID, err)
	}
	return err
}

func (r *PostgresRepo) ListApplications(ctx context.Context, jobID string) ([]careers.Application, error) {
	query := `SELECT id, job_id, full_name, email, phone, resume_url, cover_letter, created_at FROM job_applications`
	var args []interface{}
	if jobID != "" {
		query += ` WHERE job_id = $1`
		args = append(args, jobID)
	}
	query += ` ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Errorf("careers: list applications: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []careers.Application{}
	for rows.Next() {
		var a careers.Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.FullName, &a.Email, &a.Phone, &a.ResumeURL, &a.CoverLetter, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return careers.ErrNotFound
	}
	return nil
}
