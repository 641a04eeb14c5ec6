package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MinoPlay/mexicano/models"
)

// dateLocks serializes writers per tournament date. Entries are reference
// counted and dropped once no caller holds or waits for them.
type dateLocks struct {
	mu    sync.Mutex
	locks map[string]*dateLock
}

type dateLock struct {
	mu      sync.Mutex
	holders int
}

func newDateLocks() *dateLocks {
	return &dateLocks{locks: make(map[string]*dateLock)}
}

// lock blocks until the caller owns date and returns the matching unlock.
func (d *dateLocks) lock(date string) func() {
	d.mu.Lock()
	l, ok := d.locks[date]
	if !ok {
		l = &dateLock{}
		d.locks[date] = l
	}
	l.holders++
	d.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		d.mu.Lock()
		l.holders--
		if l.holders == 0 {
			delete(d.locks, date)
		}
		d.mu.Unlock()
	}
}

// parseTournamentDate accepts only canonical YYYY-MM-DD dates, so the value
// is safe to use as a store key.
func parseTournamentDate(date string) (time.Time, error) {
	day, err := models.ParseDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD", ErrInvalidTournamentDate, date)
	}
	return day, nil
}

// errorCategory names the category of err for metrics and logs.
func errorCategory(err error) string {
	switch {
	case errors.Is(err, ErrValidationFailed):
		return "validation"
	case errors.Is(err, ErrInvalidState):
		return "state"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
