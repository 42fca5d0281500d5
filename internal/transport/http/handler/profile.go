package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"applytrack/api/internal/domain"
	"applytrack/api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUsecase *usecase.ProfileUsecase
	logger         *slog.Logger
	maxUploadBytes int64
}

func NewProfileHandler(profileUsecase *usecase.ProfileUsecase, logger *slog.Logger, maxUploadBytes int64) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
		logger:         logger.With("component", "profile_handler"),
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileUsecase.Get(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logger.Error("get profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": newProfileResponse(profile)})
}

type updateProfileRequest struct {
	ProfessionalTitle *string               `json:"professional_title"`
	Location          *string               `json:"location"`
	Summary           *string               `json:"summary"`
	Phone             *string               `json:"phone"`
	Website           *string               `json:"website"`
	LinkedIn          *string               `json:"linkedin"`
	GitHub            *string               `json:"github"`
	Twitter           *string               `json:"twitter"`
	Skills            *domain.Skills        `json:"skills"`
	Experiences       *[]domain.Experience  `json:"experiences"`
	Educations        *[]domain.Education   `json:"educations"`
	Certificates      *[]domain.Certificate `json:"certificates"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profileUsecase.Update(c.Request.Context(), c.GetString("userID"), usecase.UpdateProfileInput{
		ProfessionalTitle: req.ProfessionalTitle,
		Location:          req.Location,
		Summary:           req.Summary,
		Phone:             req.Phone,
		Website:           req.Website,
		LinkedIn:          req.LinkedIn,
		GitHub:            req.GitHub,
		Twitter:           req.Twitter,
		Skills:            req.Skills,
		Experiences:       req.Experiences,
		Educations:        req.Educations,
		Certificates:      req.Certificates,
	})
	if err != nil {
		h.logger.Error("update profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "profile": newProfileResponse(profile)})
}

// POST /api/profile/document (multipart: file, doc_type)
func (h *ProfileHandler) UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errNoFileUploaded})
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": errFileTooLarge})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("open upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	defer file.Close()

	doc, err := h.profileUsecase.UploadDocument(c.Request.Context(), usecase.UploadDocumentInput{
		UserID:       c.GetString("userID"),
		OriginalName: fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		SizeBytes:    fileHeader.Size,
		DocType:      c.PostForm("doc_type"),
		Content:      file,
	})
	if err != nil {
		h.logger.Error("upload document", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Document uploaded", "document": newDocumentResponse(doc)})
}

// GET /api/profile/document/:docId/download
func (h *ProfileHandler) DownloadDocument(c *gin.Context) {
	docID := c.Param("docId")

	doc, rc, size, err := h.profileUsecase.DownloadDocument(c.Request.Context(), c.GetString("userID"), docID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDocumentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errDocumentNotFound})
		case errors.Is(err, domain.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errProfileNotFound})
		default:
			h.logger.Error("download document", "doc_id", docID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}
	defer rc.Close()

	contentType := doc.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", doc.OriginalName),
	}
	c.DataFromReader(http.StatusOK, size, contentType, rc, extraHeaders)
}

// DELETE /api/profile/document/:docId
func (h *ProfileHandler) DeleteDocument(c *gin.Context) {
	docID := c.Param("docId")

	profile, err := h.profileUsecase.DeleteDocument(c.Request.Context(), c.GetString("userID"), docID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDocumentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errDocumentNotFound})
		case errors.Is(err, domain.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errProfileNotFound})
		default:
			h.logger.Error("delete document", "doc_id", docID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted", "profile": newProfileResponse(profile)})
}
