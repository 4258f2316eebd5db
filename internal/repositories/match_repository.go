package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"acheiBack/internal/models"
)

type MatchRepository struct {
	DB *sql.DB
}

// Upsert inserts the pair if absent, keyed on the canonical (item_a_id, item_b_id)
// ordering. Returns true when a new row was created. Concurrent workers racing on
// the same pair converge without duplicates.
func (r *MatchRepository) Upsert(ctx context.Context, m models.Match) (bool, error) {
	a, b := models.CanonicalPair(m.ItemAID, m.ItemBID)
	query := `
		INSERT INTO matches (item_a_id, item_b_id, score, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_a_id, item_b_id) DO NOTHING`
	res, err := r.DB.ExecContext(ctx, query, a, b, m.Score, m.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("upsert match: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// MarkNotified records delivery for the endpoint itemID of the pair. The two sides
// are tracked independently so a partial failure only leaves one side pending.
func (r *MatchRepository) MarkNotified(ctx context.Context, itemAID, itemBID, itemID int) error {
	a, b := models.CanonicalPair(itemAID, itemBID)
	_, err := r.DB.ExecContext(ctx, `
		UPDATE matches
		SET notified_a_at = CASE WHEN item_a_id = $3 THEN NOW() ELSE notified_a_at END,
		    notified_b_at = CASE WHEN item_b_id = $3 THEN NOW() ELSE notified_b_at END
		WHERE item_a_id = $1 AND item_b_id = $2`,
		a, b, itemID)
	return err
}

func (r *MatchRepository) ListUnnotified(ctx context.Context, limit int) ([]models.Match, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT item_a_id, item_b_id, score, created_at, notified_a_at, notified_b_at
		FROM matches
		WHERE notified_a_at IS NULL OR notified_b_at IS NULL
		ORDER BY created_at
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMatches(rows)
}

// ListForItem returns all persisted matches with the given item as either endpoint.
func (r *MatchRepository) ListForItem(ctx context.Context, itemID int) ([]models.Match, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT item_a_id, item_b_id, score, created_at, notified_a_at, notified_b_at
		FROM matches
		WHERE item_a_id = $1 OR item_b_id = $1
		ORDER BY score DESC, item_a_id, item_b_id`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMatches(rows)
}

// PurgeAll clears the match table (administrator operation).
func (r *MatchRepository) PurgeAll(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM matches`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func collectMatches(rows *sql.Rows) ([]models.Match, error) {
	var matches []models.Match
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.ItemAID, &m.ItemBID, &m.Score, &m.CreatedAt, &m.NotifiedAAt, &m.NotifiedBAt); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
