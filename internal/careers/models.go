// Package careers holds job listings and the applications sent for them.
package careers

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrJobClosed = errors.New("job is not accepting applications")
)

type Job struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Department     string    `json:"department"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employmentType"`
	Description    string    `json:"description"`
	Requirements   []string  `json:"requirements"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// JobInput is the editable part of a Job.
type JobInput struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Department     string   `json:"department" validate:"max=100"`
	Location       string   `json:"location" validate:"required,max=200"`
	EmploymentType string   `json:"employmentType" validate:"required,oneof=full-time part-time contract internship"`
	Description    string   `json:"description" validate:"required"`
	Requirements   []string `json:"requirements" validate:"dive,required"`
	Active         *bool    `json:"active"`
}

type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	ResumeURL   string    `json:"resumeUrl"`
	CoverLetter string    `json:"coverLetter"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ApplicationInput struct {
	FullName    string `json:"fullName" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"max=50"`
	ResumeURL   string `json:"resumeUrl" validate:"omitempty,url"`
	CoverLetter string `json:"coverLetter" validate:"max=5000"`
}
