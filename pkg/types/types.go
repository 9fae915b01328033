// Package types holds the shared enums used across feature packages.
package types

// Role represents a profile's capability level.
type Role string

const (
	RoleLearner Role = "learner"
	RoleCreator Role = "creator"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleLearner, RoleCreator, RoleAdmin:
		return true
	}
	return false
}

// ContentType identifies the kind of material a content row points at.
type ContentType string

const (
	ContentTypeVideo   ContentType = "video"
	ContentTypePDF     ContentType = "pdf"
	ContentTypeArticle ContentType = "article"
	ContentTypeAudio   ContentType = "audio"
)

// Valid reports whether the content type is one of the known values.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeVideo, ContentTypePDF, ContentTypeArticle, ContentTypeAudio:
		return true
	}
	return false
}

// ContentStatus is the lifecycle state of a content row.
type ContentStatus string

const (
	StatusDraft         ContentStatus = "draft"
	StatusPendingReview ContentStatus = "pending_review"
	StatusPublished     ContentStatus = "published"
)

// Valid reports whether the status is one of the known values.
func (s ContentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingReview, StatusPublished:
		return true
	}
	return false
}

// Badge maps a status to the label shown on creator listings. Anything
// unrecognized falls back to the draft badge.
func (s ContentStatus) Badge() string {
	switch s {
	case StatusPublished:
		return "published"
	case StatusPendingReview:
		return "pending"
	default:
		return "draft"
	}
}
