package types

import (
	"errors"
	"fmt"
)

var ErrNeedNotFound = errors.New("need not found")

// BasePathAlreadyInUseError is returned by save when another content item
// already owns the base path derived from this need's goal. It carries
// the conflicting content id so callers can link editors to the existing
// need.
type BasePathAlreadyInUseError struct {
	ContentID string
}

func (e *BasePathAlreadyInUseError) Error() string {
	return fmt.Sprintf("base path already in use by content id %s", e.ContentID)
}
