package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/globalsolutions/website/backend/internal/careers"
	"github.com/stretchr/testify/require"
)

var jobCols = []string{"id", "title", "department", "location", "employment_type", "description", "requirements", "active", "created_at", "updated_at"}

func TestPostgresListActiveJobs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM jobs WHERE active = TRUE ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows(jobCols).
			AddRow("j1", "Customs Broker", "Operations", "Lagos", "full-time", "Clear shipments", "{licence,\"3 years\"}", true, now, now))

	jobs, err := NewPostgresRepo(db).ListJobs(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, "Customs Broker", jobs[0].Title)
	require.Equal(t, []string{"licence", "3 years"}, jobs[0].Requirements)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetJobMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM jobs WHERE id = \$1`).WithArgs("nope").WillReturnRows(sqlmock.NewRows(jobCols))
	_, err = NewPostgresRepo(db).GetJob(context.Background(), "nope")
	require.ErrorIs(t, err, careers.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateJob(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectExec(`INSERT INTO jobs`).
		WithArgs("j1", "Driver", "", "Accra", "contract", "Drive", sqlmock.AnyArg(), true, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewPostgresRepo(db).CreateJob(context.Background(), &careers.Job{
		ID: "j1", Title: "Driver", Location: "Accra", EmploymentType: "contract", Description: "Drive",
		Requirements: []string{"licence"}, Active: true, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateAndDeleteMissingRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE jobs SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM jobs WHERE id = \$1`).WithArgs("j9").WillReturnResult(sqlmock.NewResult(0, 0))

	r := NewPostgresRepo(db)
	require.ErrorIs(t, r.UpdateJob(context.Background(), &careers.Job{ID: "j9"}), careers.ErrNotFound)
	require.ErrorIs(t, r.DeleteJob(context.Background(), "j9"), careers.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresApplications(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectExec(`INSERT INTO job_applications`).
		WithArgs("a1", "j1", "Ada", "ada@example.com", "", "", "Hello", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM job_applications WHERE job_id = \$1 ORDER BY created_at DESC`).
		WithArgs("j1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "full_name", "email", "phone", "resume_url", "cover_letter", "created_at"}).
			AddRow("a1", "j1", "Ada", "ada@example.com", "", "", "Hello", now))

	r := NewPostgresRepo(db)
	require.NoError(t, r.CreateApplication(context.Background(), &careers.Application{
		ID: "a1", JobID: "j1", FullName: "Ada", Email: "ada@example.com", CoverLetter: "Hello", CreatedAt: now,
	}))
	apps, err := r.ListApplications(context.Background(), "j1")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.Equal(t, "Ada", apps[0].FullName)
	require.NoError(t, mock.ExpectationsWereMet())
}
