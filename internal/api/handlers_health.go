// internal/api/handlers_health.go
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/VivekSamant23/Gate-Reassignment/internal/common/errors"
)

// handleHealth reports service liveness and per-dependency status.
// Degraded dependencies flip the overall status but still return 200;
// orchestrators probing for liveness should not restart the service
// because Elasticsearch is slow.
func (s *Server) handleHealth(c *gin.Context) {
	status := "ok"
	components := map[string]string{}

	for name, dep := range s.dependencies {
		pingCtx, pingCancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		err := dep.Ping(pingCtx)
		pingCancel()

		if err != nil {
			components[name] = "down"
			status = "degraded"
		} else {
			components[name] = "ok"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     status,
		"app":        s.cfg.App.Name,
		"version":    s.cfg.App.Version,
		"components": components,
		"time":       time.Now().UTC().Format(time.RFC3339),
	})
}

// handleUpload ingests a multipart CSV schedule.
func (s *Server) handleUpload(c *gin.Context) {
	if s.uploader == nil {
		respondError(c, apperrors.NewUploadParseError("upload is not enabled"))
		return
	}

	if max := s.cfg.Server.MaxUploadBytes; max > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperrors.NewUploadParseError("multipart field 'file' is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, apperrors.NewUploadParseError(err.Error()))
		return
	}
	defer file.Close()

	result, err := s.uploader.Process(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upload": result})
}
