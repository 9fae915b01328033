// Package pagination reads page/limit query parameters and builds the
// metadata block carried in list response envelopes.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is the sanitized page window for a list query.
type Params struct {
	Page  int
	Limit int
	Skip  int
}

// Metadata is the pagination block of the response envelope. From and
// To are the one-based positions of the first and last item on the
// page, both zero when the page is empty.
type Metadata struct {
	TotalItems  int64 `json:"totalItems"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalPages  int   `json:"totalPages"`
	From        int64 `json:"from"`
	To          int64 `json:"to"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// Extract reads page and limit from the query string. Missing,
// malformed, or out-of-range values fall back to the defaults; limit is
// capped at MaxLimit.
func Extract(c *gin.Context) Params {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit, Skip: (page - 1) * limit}
}

// MetadataFrom builds the metadata block for one page of a counted
// result set.
func MetadataFrom(total int64, params Params) Metadata {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = int((total + int64(params.Limit) - 1) / int64(params.Limit))
	}

	meta := Metadata{
		TotalItems:  total,
		CurrentPage: params.Page,
		PageSize:    params.Limit,
		TotalPages:  totalPages,
		HasNextPage: params.Page < totalPages,
		HasPrevPage: params.Page > 1,
	}

	if total > 0 && int64(params.Skip) < total {
		meta.From = int64(params.Skip) + 1
		meta.To = int64(params.Skip + params.Limit)
		if meta.To > total {
			meta.To = total
		}
	}

	return meta
}
