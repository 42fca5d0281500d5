package postgres

import (
	"context"
	"errors"
	"fmt"

	"applytrack/api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

const jobColumns = `id, user_id, company, title, status, fit, progress,
	next_action, high_priority, applied_at, created_at, updated_at`

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	query := `INSERT INTO jobs
		(id, user_id, company, title, status, fit, progress, next_action, high_priority, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + jobColumns

	row := r.pool.QueryRow(ctx, query,
		uuid.NewString(), job.UserID, job.Company, job.Title, job.Status,
		job.Fit, job.Progress, job.NextAction, job.HighPriority, job.AppliedAt)

	created, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return created, nil
}

func (r *JobRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) GetByID(ctx context.Context, jobID, userID string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 AND user_id = $2`
	return scanJob(r.pool.QueryRow(ctx, query, jobID, userID))
}

func (r *JobRepository) Update(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	query := `UPDATE jobs
		SET company = $3, title = $4, status = $5, fit = $6, progress = $7,
		    next_action = $8, high_priority = $9, applied_at = $10, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + jobColumns

	row := r.pool.QueryRow(ctx, query,
		job.ID, job.UserID, job.Company, job.Title, job.Status,
		job.Fit, job.Progress, job.NextAction, job.HighPriority, job.AppliedAt)

	return scanJob(row)
}

func (r *JobRepository) Delete(ctx context.Context, jobID, userID string) (*domain.Job, error) {
	query := `DELETE FROM jobs WHERE id = $1 AND user_id = $2 RETURNING ` + jobColumns
	return scanJob(r.pool.QueryRow(ctx, query, jobID, userID))
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.ID, &j.UserID, &j.Company, &j.Title, &j.Status, &j.Fit, &j.Progress,
		&j.NextAction, &j.HighPriority, &j.AppliedAt, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("scan job: %w", err)
	}
	return &j, nil
}
