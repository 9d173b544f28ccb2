package game

import (
	"errors"
	"fmt"
)

// ErrGameOver is returned by any transition requested after the game ended.
// Callers must treat it as a programming error, not a recoverable condition.
var ErrGameOver = errors.New("game already ended: no further transitions are permitted")

// SetupError reports an invalid game configuration. It is fatal to game
// start and is surfaced before any state mutation.
type SetupError struct {
	Reason string
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("game setup failed: %s", e.Reason)
}

// IneligibleVoterError reports a vote cast by a player who is not allowed to
// vote in the open round. The vote is rejected with no state change.
type IneligibleVoterError struct {
	VoterID string
}

func (e *IneligibleVoterError) Error() string {
	return fmt.Sprintf("player %s is not eligible to vote in this round", e.VoterID)
}

// PhaseError reports an operation requested in the wrong phase.
type PhaseError struct {
	Operation string
	Phase     Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s is not valid during the %s phase", e.Operation, e.Phase)
}
