package handler

import (
	"time"

	"applytrack/api/internal/domain"
)

// userResponse is the redacted user projection: no password hash, no
// verification token fields.
type userResponse struct {
	ID         string           `json:"id"`
	Email      string           `json:"email"`
	FirstName  string           `json:"first_name"`
	LastName   string           `json:"last_name"`
	IsVerified bool             `json:"is_verified"`
	CreatedAt  time.Time        `json:"created_at"`
	Profile    *profileResponse `json:"profile,omitempty"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

type profileResponse struct {
	ID                string               `json:"id"`
	ProfessionalTitle string               `json:"professional_title"`
	Location          string               `json:"location"`
	Summary           string               `json:"summary"`
	Phone             string               `json:"phone"`
	Website           string               `json:"website"`
	LinkedIn          string               `json:"linkedin"`
	GitHub            string               `json:"github"`
	Twitter           string               `json:"twitter"`
	Skills            domain.Skills        `json:"skills"`
	Experiences       []domain.Experience  `json:"experiences"`
	Educations        []domain.Education   `json:"educations"`
	Certificates      []domain.Certificate `json:"certificates"`
	Documents         []documentResponse   `json:"documents"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

func newProfileResponse(p *domain.Profile) *profileResponse {
	if p == nil {
		return nil
	}
	docs := make([]documentResponse, 0, len(p.Documents))
	for _, d := range p.Documents {
		docs = append(docs, newDocumentResponse(d))
	}
	return &profileResponse{
		ID:                p.ID,
		ProfessionalTitle: p.ProfessionalTitle,
		Location:          p.Location,
		Summary:           p.Summary,
		Phone:             p.Phone,
		Website:           p.Website,
		LinkedIn:          p.LinkedIn,
		GitHub:            p.GitHub,
		Twitter:           p.Twitter,
		Skills:            p.Skills,
		Experiences:       p.Experiences,
		Educations:        p.Educations,
		Certificates:      p.Certificates,
		Documents:         docs,
		UpdatedAt:         p.UpdatedAt,
	}
}

type documentResponse struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	DocType      string    `json:"doc_type"`
	URL          string    `json:"url"`
	CreatedAt    time.Time `json:"created_at"`
}

func newDocumentResponse(d *domain.Document) documentResponse {
	return documentResponse{
		ID:           d.ID,
		OriginalName: d.OriginalName,
		MimeType:     d.MimeType,
		SizeBytes:    d.SizeBytes,
		DocType:      string(d.DocType),
		URL:          d.URL,
		CreatedAt:    d.CreatedAt,
	}
}

type jobResponse struct {
	ID           string    `json:"id"`
	Company      string    `json:"company"`
	Title        string    `json:"title"`
	Status       string    `json:"status"`
	Fit          int       `json:"fit"`
	Progress     int       `json:"progress"`
	NextAction   string    `json:"next_action"`
	HighPriority bool      `json:"high_priority"`
	AppliedAt    time.Time `json:"applied_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:           j.ID,
		Company:      j.Company,
		Title:        j.Title,
		Status:       string(j.Status),
		Fit:          j.Fit,
		Progress:     j.Progress,
		NextAction:   j.NextAction,
		HighPriority: j.HighPriority,
		AppliedAt:    j.AppliedAt,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}
