package repository

import (
	"context"

	"applytrack/api/internal/domain"
)

// Every operation is scoped to the owning user; a job that exists but
// belongs to someone else behaves exactly like a missing job.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Job, error)
	GetByID(ctx context.Context, jobID, userID string) (*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) (*domain.Job, error)
	Delete(ctx context.Context, jobID, userID string) (*domain.Job, error)
}
