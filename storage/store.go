package storage

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/MinoPlay/mexicano/models"
)

// ErrObjectNotFound is returned by Load and Delete when no tournament is
// stored for the date.
var ErrObjectNotFound = errors.New("tournament object not found")

// TournamentStore persists whole tournament records keyed by their date.
type TournamentStore interface {
	// List returns the metadata of every stored tournament, newest date first.
	List(ctx context.Context) ([]models.TournamentMeta, error)

	Load(ctx context.Context, date string) (*models.Tournament, error)

	// Save inserts or replaces the record for t.TournamentDate.
	Save(ctx context.Context, t *models.Tournament) (*models.Tournament, error)

	Delete(ctx context.Context, date string) error
}

// SortMetaNewestFirst orders listings by date, most recent first. ISO dates
// sort chronologically as strings.
func SortMetaNewestFirst(metas []models.TournamentMeta) {
	slices.SortFunc(metas, func(a, b models.TournamentMeta) int {
		return cmp.Compare(b.TournamentDate, a.TournamentDate)
	})
}
