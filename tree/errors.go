package tree

import "errors"

// Errors returned by [Store] operations. They are wrapped with the offending
// id or label so use errors.Is to test for them.
var (
	ErrNotFound              = errors.New("node not found")
	ErrInvalidTarget         = errors.New("target is not a folder")
	ErrInvalidLabel          = errors.New("invalid label")
	ErrInvalidID             = errors.New("invalid id")
	ErrRootDeletionForbidden = errors.New("root node cannot be deleted")
	ErrDuplicateID           = errors.New("duplicate id")
	ErrIDExhausted           = errors.New("could not allocate a unique id")
)
