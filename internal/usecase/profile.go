package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"applytrack/api/internal/domain"
	"applytrack/api/internal/metrics"
	"applytrack/api/internal/repository"
	"applytrack/api/internal/storage"
	"github.com/google/uuid"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

type ProfileUsecase struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
	store    storage.Store
	logger   *slog.Logger
}

func NewProfileUsecase(
	profiles repository.ProfileRepository,
	users repository.UserRepository,
	store storage.Store,
	logger *slog.Logger,
) *ProfileUsecase {
	return &ProfileUsecase{
		profiles: profiles,
		users:    users,
		store:    store,
		logger:   logger.With("component", "profile_usecase"),
	}
}

// Get returns the user's profile, creating a blank one when missing so
// the endpoint never 404s for a valid user.
func (u *ProfileUsecase) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := u.ensureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.withDocuments(ctx, profile)
}

type UpdateProfileInput struct {
	ProfessionalTitle *string
	Location          *string
	Summary           *string
	Phone             *string
	Website           *string
	LinkedIn          *string
	GitHub            *string
	Twitter           *string
	Skills            *domain.Skills
	Experiences       *[]domain.Experience
	Educations        *[]domain.Education
	Certificates      *[]domain.Certificate
}

// Update applies a partial update over the stored profile.
func (u *ProfileUsecase) Update(ctx context.Context, userID string, input UpdateProfileInput) (*domain.Profile, error) {
	profile, err := u.ensureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&profile.ProfessionalTitle, input.ProfessionalTitle)
	setString(&profile.Location, input.Location)
	setString(&profile.Summary, input.Summary)
	setString(&profile.Phone, input.Phone)
	setString(&profile.Website, input.Website)
	setString(&profile.LinkedIn, input.LinkedIn)
	setString(&profile.GitHub, input.GitHub)
	setString(&profile.Twitter, input.Twitter)

	if input.Skills != nil {
		profile.Skills = normalizeSkills(*input.Skills)
	}
	if input.Experiences != nil {
		profile.Experiences = *input.Experiences
	}
	if input.Educations != nil {
		profile.Educations = *input.Educations
	}
	if input.Certificates != nil {
		profile.Certificates = *input.Certificates
	}

	updated, err := u.profiles.Update(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return u.withDocuments(ctx, updated)
}

type UploadDocumentInput struct {
	UserID       string
	OriginalName string
	ContentType  string
	SizeBytes    int64
	DocType      string
	Content      io.Reader
}

// UploadDocument stores the blob under a per-user key and records its
// metadata on the profile.
func (u *ProfileUsecase) UploadDocument(ctx context.Context, input UploadDocumentInput) (*domain.Document, error) {
	profile, err := u.ensureProfile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s-%d-%s", input.UserID, time.Now().UnixMilli(), SanitizeFilename(input.OriginalName))

	if err := u.store.Save(ctx, key, input.Content, input.SizeBytes, input.ContentType); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}

	// The advertised URL is the authenticated download route, so it works
	// the same for the disk and S3 backends. The ID is minted here because
	// the URL embeds it.
	docID := uuid.NewString()
	doc, err := u.profiles.AddDocument(ctx, &domain.Document{
		ID:           docID,
		ProfileID:    profile.ID,
		FileName:     key,
		OriginalName: input.OriginalName,
		MimeType:     input.ContentType,
		SizeBytes:    input.SizeBytes,
		DocType:      domain.NormalizeDocType(input.DocType, input.OriginalName),
		URL:          DocumentURL(docID),
	})
	if err != nil {
		// The blob is orphaned if this delete also fails; the row is the
		// source of truth, so an orphaned blob is only wasted space.
		if derr := u.store.Delete(ctx, key); derr != nil {
			u.logger.Warn("remove orphaned blob", "key", key, "error", derr)
		}
		return nil, fmt.Errorf("record document: %w", err)
	}

	metrics.DocumentUploadsTotal.Inc()
	return doc, nil
}

// DownloadDocument opens the stored blob for streaming. The caller closes
// the reader.
func (u *ProfileUsecase) DownloadDocument(ctx context.Context, userID, docID string) (*domain.Document, io.ReadCloser, int64, error) {
	profile, err := u.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, nil, 0, err
	}

	doc, err := u.profiles.GetDocument(ctx, docID, profile.ID)
	if err != nil {
		return nil, nil, 0, err
	}

	rc, size, err := u.store.Open(ctx, doc.FileName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, 0, domain.ErrDocumentNotFound
		}
		return nil, nil, 0, fmt.Errorf("open document: %w", err)
	}
	return doc, rc, size, nil
}

// DeleteDocument removes the metadata row and, best effort, the blob.
func (u *ProfileUsecase) DeleteDocument(ctx context.Context, userID, docID string) (*domain.Profile, error) {
	profile, err := u.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc, err := u.profiles.GetDocument(ctx, docID, profile.ID)
	if err != nil {
		return nil, err
	}

	if derr := u.store.Delete(ctx, doc.FileName); derr != nil && !errors.Is(derr, storage.ErrNotFound) {
		u.logger.Warn("delete blob", "key", doc.FileName, "error", derr)
	}

	if err := u.profiles.DeleteDocument(ctx, docID, profile.ID); err != nil {
		return nil, err
	}

	return u.withDocuments(ctx, profile)
}

func (u *ProfileUsecase) ensureProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := u.profiles.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	profile, err = u.profiles.Create(ctx, &domain.Profile{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	if lerr := u.users.LinkProfile(ctx, userID, profile.ID); lerr != nil {
		u.logger.Warn("link profile", "user_id", userID, "error", lerr)
	}
	return profile, nil
}

func (u *ProfileUsecase) withDocuments(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	docs, err := u.profiles.ListDocuments(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	profile.Documents = docs
	return profile, nil
}

func normalizeSkills(s domain.Skills) domain.Skills {
	emptyIfNil := func(v []string) []string {
		if v == nil {
			return []string{}
		}
		return v
	}
	return domain.Skills{
		Technical: emptyIfNil(s.Technical),
		Soft:      emptyIfNil(s.Soft),
		Languages: emptyIfNil(s.Languages),
	}
}

// DocumentURL is the path a client fetches to download the document with
// the given ID. Stored on the row and returned by every profile read.
func DocumentURL(docID string) string {
	return "/api/profile/document/" + docID + "/download"
}

// SanitizeFilename makes an uploaded filename safe to use as part of a
// storage key: whitespace collapses to underscores and anything outside
// [a-zA-Z0-9_.-] is dropped.
func SanitizeFilename(name string) string {
	s := strings.Join(strings.Fields(name), "_")
	s = unsafeFilenameChars.ReplaceAllString(s, "")
	if s == "" {
		return "file"
	}
	return s
}
