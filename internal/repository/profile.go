package repository

import (
	"context"

	"applytrack/api/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)

	AddDocument(ctx context.Context, doc *domain.Document) (*domain.Document, error)
	ListDocuments(ctx context.Context, profileID string) ([]*domain.Document, error)
	GetDocument(ctx context.Context, docID, profileID string) (*domain.Document, error)
	DeleteDocument(ctx context.Context, docID, profileID string) error
}
