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

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = `id, user_id, professional_title, location, summary, phone,
	website, linkedin, github, twitter, skills, experiences, educations, certificates,
	created_at, updated_at`

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	query := `INSERT INTO profiles
		(id, user_id, professional_title, location, summary, phone,
		 website, linkedin, github, twitter, skills, experiences, educations, certificates)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + profileColumns

	row := r.pool.QueryRow(ctx, query,
		uuid.NewString(), profile.UserID,
		profile.ProfessionalTitle, profile.Location, profile.Summary, profile.Phone,
		profile.Website, profile.LinkedIn, profile.GitHub, profile.Twitter,
		profile.Skills, sliceOrEmpty(profile.Experiences), sliceOrEmpty(profile.Educations),
		sliceOrEmpty(profile.Certificates))

	created, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return created, nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.pool.QueryRow(ctx, query, id))
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	return scanProfile(r.pool.QueryRow(ctx, query, userID))
}

func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	query := `UPDATE profiles
		SET professional_title = $2, location = $3, summary = $4, phone = $5,
		    website = $6, linkedin = $7, github = $8, twitter = $9,
		    skills = $10, experiences = $11, educations = $12, certificates = $13,
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + profileColumns

	row := r.pool.QueryRow(ctx, query,
		profile.ID,
		profile.ProfessionalTitle, profile.Location, profile.Summary, profile.Phone,
		profile.Website, profile.LinkedIn, profile.GitHub, profile.Twitter,
		profile.Skills, sliceOrEmpty(profile.Experiences), sliceOrEmpty(profile.Educations),
		sliceOrEmpty(profile.Certificates))

	return scanProfile(row)
}

const documentColumns = `id, profile_id, file_name, original_name, mime_type,
	size_bytes, doc_type, url, created_at`

// AddDocument inserts the row under the caller-minted doc.ID so the
// stored url can embed the ID it was derived from.
func (r *ProfileRepository) AddDocument(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	query := `INSERT INTO documents
		(id, profile_id, file_name, original_name, mime_type, size_bytes, doc_type, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + documentColumns

	row := r.pool.QueryRow(ctx, query,
		doc.ID, doc.ProfileID, doc.FileName, doc.OriginalName,
		doc.MimeType, doc.SizeBytes, doc.DocType, doc.URL)

	created, err := scanDocument(row)
	if err != nil {
		return nil, fmt.Errorf("add document: %w", err)
	}
	return created, nil
}

func (r *ProfileRepository) ListDocuments(ctx context.Context, profileID string) ([]*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE profile_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []*domain.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (r *ProfileRepository) GetDocument(ctx context.Context, docID, profileID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND profile_id = $2`
	return scanDocument(r.pool.QueryRow(ctx, query, docID, profileID))
}

func (r *ProfileRepository) DeleteDocument(ctx context.Context, docID, profileID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM documents WHERE id = $1 AND profile_id = $2`, docID, profileID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// sliceOrEmpty keeps jsonb columns as [] instead of null when the Go slice
// is nil.
func sliceOrEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.ProfessionalTitle, &p.Location, &p.Summary, &p.Phone,
		&p.Website, &p.LinkedIn, &p.GitHub, &p.Twitter,
		&p.Skills, &p.Experiences, &p.Educations, &p.Certificates,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &p, nil
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var d domain.Document
	err := row.Scan(
		&d.ID, &d.ProfileID, &d.FileName, &d.OriginalName, &d.MimeType,
		&d.SizeBytes, &d.DocType, &d.URL, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &d, nil
}
