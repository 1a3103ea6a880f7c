package cli

import (
	"errors"

	"taskboard/internal/state"
)

func errNotFound(kind, id string) error {
	return state.NotFoundError{Kind: kind, ID: id}
}

var errNoActiveBoard = errors.New("no active board; run `taskboard boards create --name ...` or `taskboard sync`")
