package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/hoopsight/momentum/internal/domain/model"
)

// PostgresStore persists fingerprints in a game_fingerprints table with a
// unique game_id constraint. Vectors and metadata are stored as jsonb.
// Schema management is out of scope; the table is expected to exist.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an existing database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Open connects to Postgres with the lib/pq driver and verifies the
// connection.
func Open(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Close releases the underlying handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Insert stores a fingerprint. The unique constraint on game_id turns
// races between concurrent ingest workers into ErrDuplicateGame instead
// of double rows.
func (s *PostgresStore) Insert(ctx context.Context, fp model.Fingerprint) error {
	if err := validate(fp); err != nil {
		return err
	}

	vector, err := json.Marshal(fp.Vector)
	if err != nil {
		return fmt.Errorf("marshal vector for %s: %w", fp.GameID, err)
	}
	metadata, err := json.Marshal(fp.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata for %s: %w", fp.GameID, err)
	}

	const q = `
		INSERT INTO game_fingerprints
		  (game_id, season, home_team, away_team, final_score, momentum_vector, metadata)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7)
	`
	_, err = s.db.ExecContext(ctx, q,
		fp.GameID, fp.Season, fp.HomeTeam, fp.AwayTeam, fp.FinalScore, vector, metadata,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("game %s: %w", fp.GameID, ErrDuplicateGame)
		}
		return fmt.Errorf("insert fingerprint %s: %w", fp.GameID, err)
	}
	return nil
}

// ListAll returns every stored fingerprint in insertion order.
func (s *PostgresStore) ListAll(ctx context.Context) ([]model.Fingerprint, error) {
	const q = `
		SELECT game_id, season, home_team, away_team, final_score, momentum_vector, metadata
		FROM game_fingerprints
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list fingerprints: %w", err)
	}
	defer rows.Close()

	var out []model.Fingerprint
	for rows.Next() {
		var fp model.Fingerprint
		var vector, metadata []byte
		if err := rows.Scan(&fp.GameID, &fp.Season, &fp.HomeTeam, &fp.AwayTeam,
			&fp.FinalScore, &vector, &metadata); err != nil {
			return nil, fmt.Errorf("scan fingerprint: %w", err)
		}
		if err := json.Unmarshal(vector, &fp.Vector); err != nil {
			return nil, fmt.Errorf("decode vector for %s: %w", fp.GameID, err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &fp.Metadata); err != nil {
				return nil, fmt.Errorf("decode metadata for %s: %w", fp.GameID, err)
			}
		}
		out = append(out, fp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fingerprints: %w", err)
	}
	return out, nil
}

// Exists reports whether a game id is stored.
func (s *PostgresStore) Exists(ctx context.Context, gameID string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM game_fingerprints WHERE game_id = $1)`
	var exists bool
	if err := s.db.QueryRowContext(ctx, q, gameID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check game %s: %w", gameID, err)
	}
	return exists, nil
}

// Count returns the number of stored fingerprints.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_fingerprints`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count fingerprints: %w", err)
	}
	return n, nil
}
