package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestExtract(t *testing.T) {
	params := Extract(contextWithQuery("page=3&limit=10"))
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 10, params.Limit)
	assert.Equal(t, 20, params.Skip)
}

func TestExtract_Defaults(t *testing.T) {
	params := Extract(contextWithQuery(""))
	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
	assert.Equal(t, 0, params.Skip)
}

func TestExtract_ClampsAndFallsBack(t *testing.T) {
	params := Extract(contextWithQuery("page=-1&limit=9999"))
	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, MaxLimit, params.Limit)

	params = Extract(contextWithQuery("page=abc&limit=xyz"))
	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
}

func TestMetadataFrom(t *testing.T) {
	meta := MetadataFrom(45, Params{Page: 2, Limit: 20, Skip: 20})
	assert.Equal(t, int64(45), meta.TotalItems)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(21), meta.From)
	assert.Equal(t, int64(40), meta.To)
	assert.True(t, meta.HasNextPage)
	assert.True(t, meta.HasPrevPage)

	meta = MetadataFrom(0, Params{Page: 1, Limit: 20})
	assert.Equal(t, 0, meta.TotalPages)
	assert.Equal(t, int64(0), meta.From)
	assert.Equal(t, int64(0), meta.To)
	assert.False(t, meta.HasNextPage)
	assert.False(t, meta.HasPrevPage)
}

func TestMetadataFrom_PartialLastPage(t *testing.T) {
	meta := MetadataFrom(45, Params{Page: 3, Limit: 20, Skip: 40})
	assert.Equal(t, int64(41), meta.From)
	assert.Equal(t, int64(45), meta.To)
	assert.False(t, meta.HasNextPage)

	// A page past the end carries no item range.
	meta = MetadataFrom(45, Params{Page: 4, Limit: 20, Skip: 60})
	assert.Equal(t, int64(0), meta.From)
	assert.Equal(t, int64(0), meta.To)
}
