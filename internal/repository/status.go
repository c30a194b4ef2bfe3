package repository

import (
	"context"
	"time"

	"waremind/internal/database"
	"waremind/internal/models"
)

type StatusRepository struct {
	db *database.DB
}

func NewStatusRepository(db *database.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

func (r *StatusRepository) Create(ctx context.Context, status *models.Status) error {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO statuses (content) VALUES ($1)
		 RETURNING status_id, created_at`,
		status.Content,
	).Scan(&status.StatusID, &status.CreatedAt)
	if err != nil {
		return err
	}
	r.db.NotifyChange(ctx, "status", "create", status.StatusID)
	return nil
}

func (r *StatusRepository) List(ctx context.Context) ([]*models.Status, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT status_id, content, created_at FROM statuses ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []*models.Status
	for rows.Next() {
		status := &models.Status{}
		if err := rows.Scan(&status.StatusID, &status.Content, &status.CreatedAt); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

func (r *StatusRepository) GetByID(ctx context.Context, statusID int64) (*models.Status, error) {
	status := &models.Status{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT status_id, content, created_at FROM statuses WHERE status_id = $1`,
		statusID,
	).Scan(&status.StatusID, &status.Content, &status.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return status, nil
}

func (r *StatusRepository) Update(ctx context.Context, status *models.Status) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE statuses SET content = $1 WHERE status_id = $2`,
		status.Content, status.StatusID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.db.NotifyChange(ctx, "status", "update", status.StatusID)
	return nil
}

func (r *StatusRepository) Delete(ctx context.Context, statusID int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM statuses WHERE status_id = $1`, statusID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	r.db.NotifyChange(ctx, "status", "delete", statusID)
	return true, nil
}

// PurgeOlderThan removes statuses past their 24-hour lifetime.
func (r *StatusRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM statuses WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() > 0 {
		r.db.NotifyChange(ctx, "status", "delete", 0)
	}
	return tag.RowsAffected(), nil
}
