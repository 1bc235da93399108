package service

import (
	"context"
	"time"

	"github.com/globalsolutions/website/backend/internal/careers"
	"github.com/globalsolutions/website/backend/internal/careers/repository"
	"github.com/globalsolutions/website/backend/internal/validation"
	"github.com/globalsolutions/website/backend/pkg/logger"
	"github.com/google/uuid"
)

var jobMessages = validation.Messages{
	"title.required":          "Title is required",
	"location.required":       "Location is required",
	"employmentType.required": "Employment type is required",
	"employmentType.oneof":    "Employment type must be one of: full-time, part-time, contract, internship",
	"description.required":    "Description is required",
	"requirements[].required": "Requirements cannot be empty",
}

var applicationMessages = validation.Messages{
	"fullName.required": "Full name is required",
	"email.required":    "Email is required",
	"email.email":       "Email must be a valid email address",
	"resumeUrl.url":     "Resume link must be a valid URL",
	"coverLetter.max":   "Cover letter must be at most 5000 characters",
}

type Service struct {
	repo repository.Repository
	now  func() time.Time
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) ListJobs(ctx context.Context, activeOnly bool) ([]careers.Job, error) {
	return s.repo.ListJobs(ctx, activeOnly)
}

func (s *Service) GetJob(ctx context.Context, id string) (*careers.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, careers.ErrNotFound
	}
	return s.repo.GetJob(ctx, id)
}

func (s *Service) CreateJob(ctx context.Context, in careers.JobInput) (*careers.Job, error) {
	if err := checkJob(&in); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	j := &careers.Job{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now, Active: true}
	applyJob(j, in)
	if err := s.repo.CreateJob(ctx, j); err != nil {
		return nil, err
	}
	logger.Infof("careers: job %s created (%s)", j.ID, j.Title)
	return j, nil
}

// UpdateJob replaces the editable fields of a job. Active is kept unless set.
func (s *Service) UpdateJob(ctx context.Context, id string, in careers.JobInput) (*careers.Job, error) {
	if err := checkJob(&in); err != nil {
		return nil, err
	}
	j, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	applyJob(j, in)
	j.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdateJob(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *Service) DeleteJob(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return careers.ErrNotFound
	}
	return s.repo.DeleteJob(ctx, id)
}

// Apply records an application for an active job.
func (s *Service) Apply(ctx context.Context, jobID string, in careers.ApplicationInput) (*careers.Application, error) {
	validation.TrimStrings(&in)
	if err := validation.Struct("application", in, applicationMessages); err != nil {
		return nil, err
	}
	j, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !j.Active {
		return nil, careers.ErrJobClosed
	}
	a := &careers.Application{
		ID:          uuid.NewString(),
		JobID:       j.ID,
		FullName:    in.FullName,
		Email:       in.Email,
		Phone:       in.Phone,
		ResumeURL:   in.ResumeURL,
		CoverLetter: in.CoverLetter,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.CreateApplication(ctx, a); err != nil {
		return nil, err
	}
	logger.Infof("careers: application %s received for job %s", a.ID, j.ID)
	return a, nil
}

func (s *Service) ListApplications(ctx context.Context, jobID string) ([]careers.Application, error) {
	if jobID != "" {
		if _, err := uuid.Parse(jobID); err != nil {
			return []careers.Application{}, nil
		}
	}
	return s.repo.ListApplications(ctx, jobID)
}

func checkJob(in *careers.JobInput) error {
	validation.TrimStrings(in)
	return validation.Struct("job", *in, jobMessages)
}

func applyJob(j *careers.Job, in careers.JobInput) {
	j.Title = in.Title
	j.Department = in.Department
	j.Location = in.Location
	j.EmploymentType = in.EmploymentType
	j.Description = in.Description
	j.Requirements = append([]string{}, in.Requirements...)
	if in.Active != nil {
		j.Active = *in.Active
	}
}
