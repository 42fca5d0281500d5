package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"applytrack/api/internal/domain"
	"applytrack/api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUsecase *usecase.JobUsecase
	logger     *slog.Logger
}

func NewJobHandler(jobUsecase *usecase.JobUsecase, logger *slog.Logger) *JobHandler {
	return &JobHandler{jobUsecase: jobUsecase, logger: logger.With("component", "job_handler")}
}

type createJobRequest struct {
	Company      string     `json:"company" binding:"required"`
	Title        string     `json:"title"   binding:"required"`
	Status       string     `json:"status"`
	Fit          int        `json:"fit"`
	Progress     int        `json:"progress"`
	NextAction   string     `json:"next_action"`
	HighPriority bool       `json:"high_priority"`
	AppliedAt    *time.Time `json:"applied_at"`
}

func (h *JobHandler) Create(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.jobUsecase.Create(c.Request.Context(), usecase.CreateJobInput{
		UserID:       c.GetString("userID"),
		Company:      req.Company,
		Title:        req.Title,
		Status:       req.Status,
		Fit:          req.Fit,
		Progress:     req.Progress,
		NextAction:   req.NextAction,
		HighPriority: req.HighPriority,
		AppliedAt:    req.AppliedAt,
	})
	if err != nil {
		h.logger.Error("create job", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Job created", "job": newJobResponse(job)})
}

func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobUsecase.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logger.Error("list jobs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	resp := make([]jobResponse, 0, len(jobs))
	for _, job := range jobs {
		resp = append(resp, newJobResponse(job))
	}
	c.JSON(http.StatusOK, gin.H{"jobs": resp})
}

func (h *JobHandler) GetByID(c *gin.Context) {
	jobID := c.Param("id")

	job, err := h.jobUsecase.GetByID(c.Request.Context(), jobID, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errJobNotFound})
			return
		}
		h.logger.Error("get job", "job_id", jobID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": newJobResponse(job)})
}

type updateJobRequest struct {
	Company      *string    `json:"company"`
	Title        *string    `json:"title"`
	Status       *string    `json:"status"`
	Fit          *int       `json:"fit"`
	Progress     *int       `json:"progress"`
	NextAction   *string    `json:"next_action"`
	HighPriority *bool      `json:"high_priority"`
	AppliedAt    *time.Time `json:"applied_at"`
}

func (h *JobHandler) Update(c *gin.Context) {
	jobID := c.Param("id")

	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.jobUsecase.Update(c.Request.Context(), jobID, c.GetString("userID"), usecase.UpdateJobInput{
		Company:      req.Company,
		Title:        req.Title,
		Status:       req.Status,
		Fit:          req.Fit,
		Progress:     req.Progress,
		NextAction:   req.NextAction,
		HighPriority: req.HighPriority,
		AppliedAt:    req.AppliedAt,
	})
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errJobNotFound})
			return
		}
		h.logger.Error("update job", "job_id", jobID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Updated", "job": newJobResponse(job)})
}

func (h *JobHandler) Delete(c *gin.Context) {
	jobID := c.Param("id")

	job, err := h.jobUsecase.Delete(c.Request.Context(), jobID, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errJobNotFound})
			return
		}
		h.logger.Error("delete job", "job_id", jobID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted", "job": newJobResponse(job)})
}
