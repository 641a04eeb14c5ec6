package services

import (
	"errors"
	"fmt"
)

// Error categories. Every specific error below wraps exactly one of them, so
// callers can branch on the category with errors.Is.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidState     = errors.New("operation not allowed in the current state")
	ErrNotFound         = errors.New("requested resource not found")
)

// Validation errors.
var (
	ErrTournamentNameRequired = fmt.Errorf("%w: tournament name is required", ErrValidationFailed)
	ErrInvalidTournamentDate  = fmt.Errorf("%w: tournament date must be formatted as YYYY-MM-DD", ErrValidationFailed)
	ErrInvalidPlayerCount     = fmt.Errorf("%w: player count must be 8, 12 or 16", ErrValidationFailed)
	ErrPlayerNameRequired     = fmt.Errorf("%w: player name must not be empty", ErrValidationFailed)
	ErrDuplicatePlayerName    = fmt.Errorf("%w: player names must be unique", ErrValidationFailed)
	ErrInvalidScore           = fmt.Errorf("%w: scores must be non-negative and add up to 25", ErrValidationFailed)
)

// State errors.
var (
	ErrRoundNotFound    = fmt.Errorf("%w: round does not exist", ErrInvalidState)
	ErrMatchNotFound    = fmt.Errorf("%w: match does not exist in round", ErrInvalidState)
	ErrRoundIncomplete  = fmt.Errorf("%w: current round has matches without a final score", ErrInvalidState)
	ErrEditWindowClosed = fmt.Errorf("%w: tournament can no longer be edited", ErrInvalidState)
	ErrTournamentExists = fmt.Errorf("%w: a tournament already exists for this date", ErrInvalidState)
)

// Not found errors.
var (
	ErrTournamentNotFound = fmt.Errorf("%w: tournament not found", ErrNotFound)
)
