package httptransport

import (
	"log/slog"
	"net/http"

	"applytrack/api/internal/token"
	"applytrack/api/internal/transport/http/handler"
	"applytrack/api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	codec *token.Codec,
	authHandler *handler.AuthHandler,
	jobHandler *handler.JobHandler,
	profileHandler *handler.ProfileHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMW := middleware.Auth(codec)

	auth := r.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.GET("/verify", authHandler.Verify)
	auth.POST("/resend-verification", authHandler.ResendVerification)
	auth.GET("/me", authMW, authHandler.Me)
	auth.POST("/logout", authHandler.Logout)

	// Protected job routes
	jobs := r.Group("/api/jobs", authMW)
	jobs.POST("", jobHandler.Create)
	jobs.GET("", jobHandler.List)
	jobs.GET("/:id", jobHandler.GetByID)
	jobs.PUT("/:id", jobHandler.Update)
	jobs.DELETE("/:id", jobHandler.Delete)

	// Protected profile routes
	profile := r.Group("/api/profile", authMW)
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Update)
	profile.POST("/document", profileHandler.UploadDocument)
	profile.GET("/document/:docId/download", profileHandler.DownloadDocument)
	profile.DELETE("/document/:docId", profileHandler.DeleteDocument)

	return r
}
