package repository

import (
	"context"

	"waremind/internal/database"
	"waremind/internal/models"
)

type ContactRepository struct {
	db *database.DB
}

func NewContactRepository(db *database.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO contacts (name, phone_number) VALUES ($1, $2)
		 RETURNING contact_id, created_at`,
		contact.Name, contact.PhoneNumber,
	).Scan(&contact.ContactID, &contact.CreatedAt)
	if err != nil {
		return err
	}
	r.db.NotifyChange(ctx, "contact", "create", contact.ContactID)
	return nil
}

func (r *ContactRepository) List(ctx context.Context) ([]*models.Contact, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT contact_id, name, phone_number, created_at FROM contacts ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		contact := &models.Contact{}
		if err := rows.Scan(&contact.ContactID, &contact.Name, &contact.PhoneNumber, &contact.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

func (r *ContactRepository) GetByID(ctx context.Context, contactID int64) (*models.Contact, error) {
	contact := &models.Contact{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT contact_id, name, phone_number, created_at FROM contacts WHERE contact_id = $1`,
		contactID,
	).Scan(&contact.ContactID, &contact.Name, &contact.PhoneNumber, &contact.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return contact, nil
}

func (r *ContactRepository) Update(ctx context.Context, contact *models.Contact) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE contacts SET name = $1, phone_number = $2 WHERE contact_id = $3`,
		contact.Name, contact.PhoneNumber, contact.ContactID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.db.NotifyChange(ctx, "contact", "update", contact.ContactID)
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, contactID int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM contacts WHERE contact_id = $1`, contactID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	r.db.NotifyChange(ctx, "contact", "delete", contactID)
	return true, nil
}
