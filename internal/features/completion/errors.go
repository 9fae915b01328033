package completion

import "errors"

var ErrAlreadyCompleted = errors.New("content already completed")
