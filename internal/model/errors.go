package model

import (
	"errors"
	"fmt"
)

// ErrDuplicateTarget is matched by DuplicateTargetError via errors.Is.
var ErrDuplicateTarget = errors.New("target already exists")

// DuplicateTargetError is returned by movers when the destination path is
// already taken.
type DuplicateTargetError struct {
	Path string
}

func (e *DuplicateTargetError) Error() string {
	return fmt.Sprintf("duplicate file: %s", e.Path)
}

// Is reports whether target is ErrDuplicateTarget.
func (e *DuplicateTargetError) Is(target error) bool {
	return target == ErrDuplicateTarget
}
