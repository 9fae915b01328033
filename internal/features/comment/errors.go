package comment

import "errors"

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrMessageRequired = errors.New("comment message is required")
)
