package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MinoPlay/mexicano/models"
	"github.com/MinoPlay/mexicano/storage"
)

const tournamentsSchema = `
	CREATE TABLE IF NOT EXISTS tournaments (
		tournament_date TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		player_count    INTEGER NOT NULL,
		round_count     INTEGER NOT NULL,
		data            JSONB NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`

type postgresTournamentRepository struct {
	db *sql.DB
}

// NewPostgresTournamentRepository stores each tournament as one JSONB row
// keyed by its date. The listing columns are denormalized from the document
// so List never decodes it.
func NewPostgresTournamentRepository(db *sql.DB) storage.TournamentStore {
	return &postgresTournamentRepository{db: db}
}

// EnsureSchema creates the tournaments table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, tournamentsSchema); err != nil {
		return describePQError("create tournaments table", err)
	}
	return nil
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.TournamentMeta, error) {
	query := `
		SELECT tournament_date, name, description, player_count, round_count, created_at, updated_at
		FROM tournaments
		ORDER BY tournament_date DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, describePQError("list tournaments", err)
	}
	defer rows.Close()

	metas := make([]models.TournamentMeta, 0)
	for rows.Next() {
		var m models.TournamentMeta
		if err := rows.Scan(&m.TournamentDate, &m.Name, &m.Description, &m.PlayerCount, &m.RoundCount, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		metas = append(metas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournament rows: %w", err)
	}
	return metas, nil
}

func (r *postgresTournamentRepository) Load(ctx context.Context, date string) (*models.Tournament, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM tournaments WHERE tournament_date = $1`, date).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", storage.ErrObjectNotFound, date)
		}
		return nil, describePQError("load tournament "+date, err)
	}

	var t models.Tournament
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode tournament %s: %w", date, err)
	}
	return &t, nil
}

func (r *postgresTournamentRepository) Save(ctx context.Context, t *models.Tournament) (*models.Tournament, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tournament %s: %w", t.TournamentDate, err)
	}

	query := `
		INSERT INTO tournaments (
			tournament_date, name, description, player_count, round_count, data, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (tournament_date) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			player_count = EXCLUDED.player_count,
			round_count = EXCLUDED.round_count,
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at`

	_, err = r.db.ExecContext(ctx, query,
		t.TournamentDate, t.Name, t.Description, len(t.Players), len(t.Rounds), data, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return nil, describePQError("save tournament "+t.TournamentDate, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, date string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE tournament_date = $1`, date)
	if err != nil {
		return describePQError("delete tournament "+date, err)
	}
	return checkAffectedRows(result, fmt.Errorf("%w: %s", storage.ErrObjectNotFound, date))
}
