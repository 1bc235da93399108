package repository

import (
	"context"

	"github.com/globalsolutions/website/backend/internal/careers"
)

// Repository persists jobs and applications. Missing rows are careers.ErrNotFound.
type Repository interface {
	ListJobs(ctx context.Context, activeOnly bool) ([]careers.Job, error)
	GetJob(ctx context.Context, id string) (*careers.Job, error)
	CreateJob(ctx context.Context, j *careers.Job) error
	UpdateJob(ctx context.Context, j *careers.Job) error
	DeleteJob(ctx context.Context, id string) error
	CreateApplication(ctx context.Context, a *careers.Application) error
	// ListApplications returns applications for jobID, or all when jobID is empty.
	ListApplications(ctx context.Context, jobID string) ([]careers.Application, error)
}
