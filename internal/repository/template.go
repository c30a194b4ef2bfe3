package repository

import (
	"context"

	"waremind/internal/database"
	"waremind/internal/models"
)

type TemplateRepository struct {
	db *database.DB
}

func NewTemplateRepository(db *database.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Create(ctx context.Context, template *models.Template) error {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO templates (title, content) VALUES ($1, $2)
		 RETURNING template_id, created_at`,
		template.Title, template.Content,
	).Scan(&template.TemplateID, &template.CreatedAt)
	if err != nil {
		return err
	}
	r.db.NotifyChange(ctx, "template", "create", template.TemplateID)
	return nil
}

func (r *TemplateRepository) List(ctx context.Context) ([]*models.Template, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT template_id, title, content, created_at FROM templates ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*models.Template
	for rows.Next() {
		template := &models.Template{}
		if err := rows.Scan(&template.TemplateID, &template.Title, &template.Content, &template.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}
	return templates, rows.Err()
}

func (r *TemplateRepository) GetByID(ctx context.Context, templateID int64) (*models.Template, error) {
	template := &models.Template{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT template_id, title, content, created_at FROM templates WHERE template_id = $1`,
		templateID,
	).Scan(&template.TemplateID, &template.Title, &template.Content, &template.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return template, nil
}

func (r *TemplateRepository) Update(ctx context.Context, template *models.Template) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE templates SET title = $1, content = $2 WHERE template_id = $3`,
		template.Title, template.Content, template.TemplateID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.db.NotifyChange(ctx, "template", "update", template.TemplateID)
	return nil
}

func (r *TemplateRepository) Delete(ctx context.Context, templateID int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM templates WHERE template_id = $1`, templateID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	r.db.NotifyChange(ctx, "template", "delete", templateID)
	return true, nil
}
