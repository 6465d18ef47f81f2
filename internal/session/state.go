// Package session holds the per-session state of the calculator and the
// actions a user can take on it.
package session

import (
	"textsim/internal/analyzer"

	"github.com/google/uuid"
)

type State struct {
	ID       uuid.UUID
	LoggedIn bool
	Text1    string
	Text2    string
	// Result is nil until a comparison succeeds.
	Result *analyzer.Result
}

func NewState() *State {
	return &State{ID: uuid.New()}
}
