package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrDocumentNotFound = errors.New("document not found")
)

type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Languages []string `json:"languages"`
}

type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type Education struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	GPA          string `json:"gpa"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

type Certificate struct {
	Name         string `json:"name"`
	IssuingOrg   string `json:"issuing_org"`
	IssueDate    string `json:"issue_date"`
	ExpiryDate   string `json:"expiry_date"`
	CredentialID string `json:"credential_id"`
}

// Profile extends a user with resume-style data. Documents are loaded
// separately and attached before the profile is returned to a caller.
type Profile struct {
	ID                string
	UserID            string
	ProfessionalTitle string
	Location          string
	Summary           string
	Phone             string
	Website           string
	LinkedIn          string
	GitHub            string
	Twitter           string
	Skills            Skills
	Experiences       []Experience
	Educations        []Education
	Certificates      []Certificate
	Documents         []*Document
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type DocType string

const (
	DocTypeResume      DocType = "resume"
	DocTypeCoverLetter DocType = "cover-letter"
	DocTypeOther       DocType = "other"
)

// NormalizeDocType resolves a document type from the client-provided value,
// falling back to a guess from the filename when the value is unusable.
func NormalizeDocType(val, filename string) DocType {
	v := strings.ToLower(strings.TrimSpace(val))
	if v != "" {
		switch {
		case strings.Contains(v, "cover") || strings.Contains(v, "letter"):
			return DocTypeCoverLetter
		case strings.Contains(v, "resume") || strings.Contains(v, "cv"):
			return DocTypeResume
		case v == string(DocTypeOther):
			return DocTypeOther
		}
	}

	n := strings.ToLower(filename)
	switch {
	case strings.Contains(n, "resume") || strings.Contains(n, "cv"):
		return DocTypeResume
	case strings.Contains(n, "cover") || strings.Contains(n, "letter"):
		return DocTypeCoverLetter
	default:
		return DocTypeOther
	}
}

// Document is metadata for an uploaded file. FileName doubles as the key
// in the blob store.
type Document struct {
	ID           string
	ProfileID    string
	FileName     string
	OriginalName string
	MimeType     string
	SizeBytes    int64
	DocType      DocType
	URL          string
	CreatedAt    time.Time
}
