package repository

import (
	"context"
	"encoding/json"

	"portfolio-generator/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// JobsRepo records generation runs in Postgres. With a nil pool every call is
// a no-op, which is the normal desktop setup.
type JobsRepo struct {
	pool *pgxpool.Pool
}

func NewJobsRepo(pool *pgxpool.Pool) *JobsRepo {
	return &JobsRepo{pool: pool}
}

func (r *JobsRepo) Save(ctx context.Context, j *domain.GenerationJob) error {
	if r == nil || r.pool == nil {
		return nil
	}

	metaB, err := json.Marshal(j.Metadata)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO portfolio_generations (id, email, name, status, metadata, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, metadata = EXCLUDED.metadata, updated_at = EXCLUDED.updated_at`,
		j.ID, j.Email, j.Name, j.Status, metaB, j.CreatedAt, j.UpdatedAt)
	return err
}

// Recent returns the latest runs for email, newest first.
func (r *JobsRepo) Recent(ctx context.Context, email string, limit int) ([]domain.GenerationJob, error) {
	if r == nil || r.pool == nil {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT id, email, name, status, metadata, created_at, updated_at
		FROM portfolio_generations WHERE email = $1 ORDER BY created_at DESC LIMIT $2`, email, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GenerationJob
	for rows.Next() {
		var j domain.GenerationJob
		var meta []byte
		if err := rows.Scan(&j.ID, &j.Email, &j.Name, &j.Status, &meta, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			_ = json.Unmarshal(meta, &j.Metadata)
		}
		out = append(out, j)
	}
	return out, rows.Err()
}
