package content

import "errors"

var (
	ErrContentNotFound    = errors.New("content not found")
	ErrFieldsRequired     = errors.New("title, description and category are required")
	ErrInvalidContentType = errors.New("invalid content type")
	ErrInvalidStatus      = errors.New("invalid content status")
	ErrNotOwner           = errors.New("not the content owner")
)
