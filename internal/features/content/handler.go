package content

import (
	"context"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduflow/eduflow-server/internal/features/category"
	"github.com/eduflow/eduflow-server/internal/features/history"
	"github.com/eduflow/eduflow-server/internal/middleware"
	"github.com/eduflow/eduflow-server/pkg/metrics"
	"github.com/eduflow/eduflow-server/pkg/pagination"
	"github.com/eduflow/eduflow-server/pkg/response"
	"github.com/eduflow/eduflow-server/pkg/types"
)

const recommendationLimit = 4

// Handler processes content HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a content handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

type saveRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	ContentType  string `json:"contentType" binding:"required"`
	ContentURL   string `json:"contentUrl"`
	PreviewURL   string `json:"previewUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Tags         string `json:"tags"`
	Status       string `json:"status" binding:"required"`
	CategoryID   string `json:"categoryId" binding:"required"`
}

func (r saveRequest) toInput() (SaveInput, error) {
	categoryID, err := uuid.Parse(r.CategoryID)
	if err != nil {
		return SaveInput{}, err
	}

	return SaveInput{
		Title:        r.Title,
		Description:  r.Description,
		ContentType:  types.ContentType(r.ContentType),
		ContentURL:   r.ContentURL,
		PreviewURL:   r.PreviewURL,
		ThumbnailURL: r.ThumbnailURL,
		Tags:         r.Tags,
		Status:       types.ContentStatus(r.Status),
		CategoryID:   categoryID,
	}, nil
}

// Create inserts a new content row authored by the current user.
func (h *Handler) Create(c *gin.Context) {
	current, ok := middleware.GetProfileFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid content payload", err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid category id", err)
		return
	}

	row, err := Create(h.db, current.ID, input)
	if err != nil {
		h.respondError(c, err, "failed to create content")
		return
	}

	response.Created(c, row, "Content created.")
}

// Update rewrites an owned content row.
func (h *Handler) Update(c *gin.Context) {
	current, ok := middleware.GetProfileFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid content id", err)
		return
	}

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid content payload", err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid category id", err)
		return
	}

	row, err := Update(h.db, id, current.ID, input)
	if err != nil {
		h.respondError(c, err, "failed to update content")
		return
	}

	response.Success(c, http.StatusOK, row, "Content updated.", nil)
}

// Publish flips an owned row to published immediately.
func (h *Handler) Publish(c *gin.Context) {
	current, ok := middleware.GetProfileFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid content id", err)
		return
	}

	row, err := Publish(h.db, id, current.ID)
	if err != nil {
		h.respondError(c, err, "failed to publish content")
		return
	}

	response.Success(c, http.StatusOK, row, "Content published.", nil)
}

// Delete removes an owned row.
func (h *Handler) Delete(c *gin.Context) {
	current, ok := middleware.GetProfileFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid content id", err)
		return
	}

	if err := Delete(h.db, id, current.ID); err != nil {
		h.respondError(c, err, "failed to delete content")
		return
	}

	response.Success(c, http.StatusOK, true, "Content deleted.", nil)
}

type mineItem struct {
	Content
	StatusBadge string `json:"statusBadge"`
}

// Mine lists the current user's rows newest first, with the derived
// status badge attached.
func (h *Handler) Mine(c *gin.Context) {
	current, ok := middleware.GetProfileFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "Authentication required.", nil)
		return
	}

	params := pagination.Extract(c)
	rows, total, err := ListMine(h.db, current.ID, params)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load contents", err)
		return
	}

	items := make([]mineItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, mineItem{Content: row, StatusBadge: row.StatusBadge()})
	}

	response.Success(c, http.StatusOK, items, "", pagination.MetadataFrom(total, params))
}

// Browse lists the published catalog with search, category filter and
// sort.
func (h *Handler) Browse(c *gin.Context) {
	filter := BrowseFilter{
		Query: c.Query("q"),
		Sort:  c.DefaultQuery("sort", "latest"),
	}

	if raw := c.Query("category"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid category id", err)
			return
		}
		filter.CategoryID = categoryID
	}

	params := pagination.Extract(c)
	rows, total, err := Browse(h.db, filter, params)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load contents", err)
		return
	}

	response.Success(c, http.StatusOK, rows, "", pagination.MetadataFrom(total, params))
}

// Detail returns a row with author and category joined, then bumps the
// view counter and, for known viewers, records a history event. The two
// writes run detached from the request and independently of each other;
// a failure in one never blocks the other.
func (h *Handler) Detail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid content id", err)
		return
	}

	row, err := Get(h.db, id)
	if err != nil {
		h.respondError(c, err, "failed to load content")
		return
	}

	go h.bumpViews(row.ID)
	if current, ok := middleware.GetProfileFromContext(c); ok {
		go h.recordVisit(current.ID, row.ID)
	}

	response.Success(c, http.StatusOK, row, "", nil)
}

func (h *Handler) bumpViews(contentID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := IncrementViews(h.db.WithContext(ctx), contentID); err != nil {
		h.logger.Error("failed to increment views",
			slog.String("content_id", contentID.String()),
			slog.String("error", err.Error()))
		return
	}
	metrics.RecordViewIncrement()
}

func (h *Handler) recordVisit(userID, contentID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := history.Record(h.db.WithContext(ctx), userID, contentID); err != nil {
		h.logger.Error("failed to record history",
			slog.String("user_id", userID.String()),
			slog.String("content_id", contentID.String()),
			slog.String("error", err.Error()))
		return
	}
	metrics.RecordHistoryInsert()
}

// Recommendations returns up to four published rows sharing the
// category.
func (h *Handler) Recommendations(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid content id", err)
		return
	}

	row, err := Get(h.db, id)
	if err != nil {
		h.respondError(c, err, "failed to load content")
		return
	}

	rows, err := Recommendations(h.db, row, recommendationLimit)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load recommendations", err)
		return
	}

	response.Success(c, http.StatusOK, rows, "", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrContentNotFound):
		status = http.StatusNotFound
		message = "Content not found."
	case errors.Is(err, ErrFieldsRequired):
		status = http.StatusBadRequest
		message = "Title, description and category are required."
	case errors.Is(err, ErrInvalidContentType):
		status = http.StatusBadRequest
		message = "Invalid content type."
	case errors.Is(err, ErrInvalidStatus):
		status = http.StatusBadRequest
		message = "Invalid content status."
	case errors.Is(err, ErrNotOwner):
		status = http.StatusForbidden
		message = "Only the author can modify this content."
	case errors.Is(err, category.ErrCategoryNotFound):
		status = http.StatusBadRequest
		message = "Category not found."
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
