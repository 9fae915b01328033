// Package upload receives multipart files and stores them in the
// appropriate object storage bucket.
package upload

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/eduflow/eduflow-server/internal/middleware"
	"github.com/eduflow/eduflow-server/pkg/response"
	"github.com/eduflow/eduflow-server/pkg/storage"
	"github.com/eduflow/eduflow-server/pkg/types"
)

// Handler processes upload HTTP requests.
type Handler struct {
	storage *storage.Client
	logger  *slog.Logger
}

// NewHandler constructs an upload handler instance.
func NewHandler(storageClient *storage.Client, logger *slog.Logger) *Handler {
	return &Handler{storage: storageClient, logger: logger}
}

type uploadResult struct {
	URL    string `json:"url"`
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

// Upload stores a multipart file in the named bucket and returns its
// public URL. A failed store aborts with an error; there is no retry.
func (h *Handler) Upload(c *gin.Context) {
	current, ok := middleware.GetProfileFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	bucket := c.Param("bucket")
	if !storage.IsValidBucket(bucket) {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "unknown upload bucket", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "file is required", err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "failed to read file", err)
		return
	}
	defer file.Close()

	objectName := storage.ObjectName(current.ID.String(), fileHeader.Filename, time.Now())
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.storage.Upload(c.Request.Context(), bucket, objectName, file, fileHeader.Size, contentType)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to store file", err)
		return
	}

	response.Created(c, uploadResult{URL: url, Bucket: bucket, Name: objectName}, "File uploaded.")
}

// Remove deletes a stored object. Object names embed the uploader's id,
// so callers may only remove their own uploads; admins may remove any.
func (h *Handler) Remove(c *gin.Context) {
	current, ok := middleware.GetProfileFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	bucket := c.Param("bucket")
	if !storage.IsValidBucket(bucket) {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "unknown upload bucket", nil)
		return
	}

	objectName := c.Param("object")
	if current.Role != types.RoleAdmin && !storage.OwnsObject(current.ID.String(), objectName) {
		response.ErrorWithLog(h.logger, c, http.StatusForbidden, "not authorized", nil)
		return
	}

	if err := h.storage.Delete(c.Request.Context(), bucket, objectName); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to delete file", err)
		return
	}

	response.Success(c, http.StatusOK, true, "File deleted.", nil)
}
