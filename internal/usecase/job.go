package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"applytrack/api/internal/domain"
	"applytrack/api/internal/repository"
)

type JobUsecase struct {
	repo repository.JobRepository
}

func NewJobUsecase(repo repository.JobRepository) *JobUsecase {
	return &JobUsecase{repo: repo}
}

type CreateJobInput struct {
	UserID       string
	Company      string
	Title        string
	Status       string
	Fit          int
	Progress     int
	NextAction   string
	HighPriority bool
	AppliedAt    *time.Time
}

func (u *JobUsecase) Create(ctx context.Context, input CreateJobInput) (*domain.Job, error) {
	appliedAt := time.Now()
	if input.AppliedAt != nil {
		appliedAt = *input.AppliedAt
	}

	job := &domain.Job{
		UserID:       input.UserID,
		Company:      strings.TrimSpace(input.Company),
		Title:        strings.TrimSpace(input.Title),
		Status:       domain.NormalizeJobStatus(input.Status),
		Fit:          domain.ClampScore(input.Fit),
		Progress:     domain.ClampScore(input.Progress),
		NextAction:   input.NextAction,
		HighPriority: input.HighPriority,
		AppliedAt:    appliedAt,
	}

	created, err := u.repo.Create(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return created, nil
}

func (u *JobUsecase) List(ctx context.Context, userID string) ([]*domain.Job, error) {
	jobs, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (u *JobUsecase) GetByID(ctx context.Context, jobID, userID string) (*domain.Job, error) {
	return u.repo.GetByID(ctx, jobID, userID)
}

type UpdateJobInput struct {
	Company      *string
	Title        *string
	Status       *string
	Fit          *int
	Progress     *int
	NextAction   *string
	HighPriority *bool
	AppliedAt    *time.Time
}

// Update applies a partial update: nil fields keep their stored values,
// provided fields go through the same normalization as Create.
func (u *JobUsecase) Update(ctx context.Context, jobID, userID string, input UpdateJobInput) (*domain.Job, error) {
	job, err := u.repo.GetByID(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}

	if input.Company != nil {
		job.Company = strings.TrimSpace(*input.Company)
	}
	if input.Title != nil {
		job.Title = strings.TrimSpace(*input.Title)
	}
	if input.Status != nil {
		job.Status = domain.NormalizeJobStatus(*input.Status)
	}
	if input.Fit != nil {
		job.Fit = domain.ClampScore(*input.Fit)
	}
	if input.Progress != nil {
		job.Progress = domain.ClampScore(*input.Progress)
	}
	if input.NextAction != nil {
		job.NextAction = *input.NextAction
	}
	if input.HighPriority != nil {
		job.HighPriority = *input.HighPriority
	}
	if input.AppliedAt != nil {
		job.AppliedAt = *input.AppliedAt
	}

	return u.repo.Update(ctx, job)
}

func (u *JobUsecase) Delete(ctx context.Context, jobID, userID string) (*domain.Job, error) {
	return u.repo.Delete(ctx, jobID, userID)
}
