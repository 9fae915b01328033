package content

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduflow/eduflow-server/pkg/types"
)

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"go", "backend", "api"}, SplitTags("go, backend ,api"))
	assert.Equal(t, []string{"solo"}, SplitTags("solo"))
	assert.Equal(t, []string{}, SplitTags(""))
	assert.Equal(t, []string{}, SplitTags("   "))

	// Interior empty pieces survive the split; only trimming happens.
	assert.Equal(t, []string{"a", "", "b"}, SplitTags("a,,b"))
	assert.Equal(t, []string{"a", "b", ""}, SplitTags("a, b,"))
}

func validInput() SaveInput {
	return SaveInput{
		Title:       "Intro to Go",
		Description: "Basics of the language",
		ContentType: types.ContentTypeArticle,
		Status:      types.StatusDraft,
		CategoryID:  uuid.New(),
	}
}

func TestSaveInputValidate(t *testing.T) {
	require.NoError(t, validInput().validate())

	missingTitle := validInput()
	missingTitle.Title = "  "
	assert.ErrorIs(t, missingTitle.validate(), ErrFieldsRequired)

	missingDescription := validInput()
	missingDescription.Description = ""
	assert.ErrorIs(t, missingDescription.validate(), ErrFieldsRequired)

	missingCategory := validInput()
	missingCategory.CategoryID = uuid.Nil
	assert.ErrorIs(t, missingCategory.validate(), ErrFieldsRequired)

	badType := validInput()
	badType.ContentType = "podcast"
	assert.ErrorIs(t, badType.validate(), ErrInvalidContentType)

	badStatus := validInput()
	badStatus.Status = "archived"
	assert.ErrorIs(t, badStatus.validate(), ErrInvalidStatus)
}

func TestSaveInputThumbnail(t *testing.T) {
	explicit := validInput()
	explicit.ContentType = types.ContentTypeVideo
	explicit.ContentURL = "https://youtu.be/dQw4w9WgXcQ"
	explicit.ThumbnailURL = "https://cdn.example.com/custom.jpg"
	assert.Equal(t, "https://cdn.example.com/custom.jpg", explicit.thumbnail())

	derived := validInput()
	derived.ContentType = types.ContentTypeVideo
	derived.ContentURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", derived.thumbnail())

	nonVideo := validInput()
	nonVideo.ContentURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	assert.Equal(t, "", nonVideo.thumbnail())

	externalVideo := validInput()
	externalVideo.ContentType = types.ContentTypeVideo
	externalVideo.ContentURL = "https://cdn.example.com/lecture.mp4"
	assert.Equal(t, "", externalVideo.thumbnail())
}

func TestPublishTransition(t *testing.T) {
	next, changed := publishTransition(types.StatusDraft)
	assert.Equal(t, types.StatusPublished, next)
	assert.True(t, changed)

	next, changed = publishTransition(types.StatusPendingReview)
	assert.Equal(t, types.StatusPublished, next)
	assert.True(t, changed)

	// Publishing twice does not touch the row again.
	next, changed = publishTransition(types.StatusPublished)
	assert.Equal(t, types.StatusPublished, next)
	assert.False(t, changed)
}

func TestStatusBadge(t *testing.T) {
	assert.Equal(t, "published", Content{Status: types.StatusPublished}.StatusBadge())
	assert.Equal(t, "pending", Content{Status: types.StatusPendingReview}.StatusBadge())
	assert.Equal(t, "draft", Content{Status: types.StatusDraft}.StatusBadge())
	assert.Equal(t, "draft", Content{Status: "bogus"}.StatusBadge())
	assert.Equal(t, "draft", Content{}.StatusBadge())
}
