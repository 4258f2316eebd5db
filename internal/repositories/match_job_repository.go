package repositories

import (
	"context"
	"database/sql"
	"time"

	"acheiBack/internal/models"
)

type MatchJobRepository struct {
	DB *sql.DB
}

// Schedule upserts the pending job for the item. The unique key on item_id makes a
// later edit supersede an in-flight job: the stored version and run_at are replaced.
func (r *MatchJobRepository) Schedule(ctx context.Context, job models.MatchJob) error {
	query := `
		INSERT INTO match_jobs (item_id, version, run_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (item_id) DO UPDATE SET version = EXCLUDED.version, run_at = EXCLUDED.run_at`
	_, err := r.DB.ExecContext(ctx, query, job.ItemID, job.Version, job.RunAt)
	return err
}

func (r *MatchJobRepository) ListDue(ctx context.Context, now time.Time) ([]models.MatchJob, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT item_id, version, run_at FROM match_jobs WHERE run_at <= $1 ORDER BY run_at`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.MatchJob
	for rows.Next() {
		var job models.MatchJob
		if err := rows.Scan(&job.ItemID, &job.Version, &job.RunAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Finish removes the job only if its version still matches; a superseding schedule
// call that bumped the version keeps its newer job pending.
func (r *MatchJobRepository) Finish(ctx context.Context, itemID, version int) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM match_jobs WHERE item_id = $1 AND version = $2`, itemID, version)
	return err
}
