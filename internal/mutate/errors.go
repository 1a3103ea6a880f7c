package mutate

import (
	"errors"
	"fmt"
)

var ErrInvalidStatus = errors.New("invalid status")

// ValidationError reports user input rejected before any state change.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
