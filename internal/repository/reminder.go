package repository

import (
	"context"
	"time"

	"waremind/internal/database"
	"waremind/internal/models"
)

type ReminderRepository struct {
	db *database.DB
}

func NewReminderRepository(db *database.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

const reminderColumns = `reminder_id, contact_name, phone_number, message, fire_hour, fire_minute,
	 frequency, week_days, month_day, fire_date, is_active, last_triggered, created_at`

func scanReminder(row interface{ Scan(...any) error }) (*models.Reminder, error) {
	reminder := &models.Reminder{}
	err := row.Scan(&reminder.ID, &reminder.ContactName, &reminder.PhoneNumber, &reminder.Message,
		&reminder.Time.Hour, &reminder.Time.Minute, &reminder.Frequency, &reminder.WeekDays,
		&reminder.MonthDay, &reminder.Date, &reminder.IsActive, &reminder.LastTriggered, &reminder.CreatedAt)
	if err != nil {
		return nil, err
	}
	return reminder, nil
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO reminders (contact_name, phone_number, message, fire_hour, fire_minute, frequency, week_days, month_day, fire_date, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING reminder_id, created_at`,
		reminder.ContactName, reminder.PhoneNumber, reminder.Message, reminder.Time.Hour, reminder.Time.Minute,
		reminder.Frequency, reminder.WeekDays, reminder.MonthDay, reminder.Date, reminder.IsActive,
	).Scan(&reminder.ID, &reminder.CreatedAt)
	if err != nil {
		return err
	}
	r.db.NotifyChange(ctx, "reminder", "create", reminder.ID)
	return nil
}

func (r *ReminderRepository) List(ctx context.Context) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+reminderColumns+` FROM reminders ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

// ListActive returns the scheduling subset: reminders with is_active = true.
func (r *ReminderRepository) ListActive(ctx context.Context) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+reminderColumns+` FROM reminders WHERE is_active = true ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

func (r *ReminderRepository) GetByID(ctx context.Context, reminderID int64) (*models.Reminder, error) {
	reminder, err := scanReminder(r.db.Pool.QueryRow(ctx,
		`SELECT `+reminderColumns+` FROM reminders WHERE reminder_id = $1`, reminderID))
	if err != nil {
		return nil, mapNoRows(err)
	}
	return reminder, nil
}

func (r *ReminderRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET contact_name = $1, phone_number = $2, message = $3, fire_hour = $4, fire_minute = $5,
		 frequency = $6, week_days = $7, month_day = $8, fire_date = $9, is_active = $10
		 WHERE reminder_id = $11`,
		reminder.ContactName, reminder.PhoneNumber, reminder.Message, reminder.Time.Hour, reminder.Time.Minute,
		reminder.Frequency, reminder.WeekDays, reminder.MonthDay, reminder.Date, reminder.IsActive, reminder.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.db.NotifyChange(ctx, "reminder", "update", reminder.ID)
	return nil
}

func (r *ReminderRepository) SetActive(ctx context.Context, reminderID int64, active bool) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET is_active = $1 WHERE reminder_id = $2`, active, reminderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.db.NotifyChange(ctx, "reminder", "update", reminderID)
	return nil
}

// SetLastTriggered records the most recent firing instant. Callers treat a
// failure as non-fatal: the in-memory cooldown still suppresses re-fires.
func (r *ReminderRepository) SetLastTriggered(ctx context.Context, reminderID int64, firedAt time.Time) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET last_triggered = $1 WHERE reminder_id = $2`, firedAt, reminderID)
	if err != nil {
		return err
	}
	r.db.NotifyChange(ctx, "reminder", "update", reminderID)
	return nil
}

func (r *ReminderRepository) Delete(ctx context.Context, reminderID int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM reminders WHERE reminder_id = $1`, reminderID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	r.db.NotifyChange(ctx, "reminder", "delete", reminderID)
	return true, nil
}

// DeactivateExpiredOnce disables one-time reminders whose date has passed.
// They can never fire again, so the housekeeping job drops them from the
// scheduling subset.
func (r *ReminderRepository) DeactivateExpiredOnce(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET is_active = false
		 WHERE is_active = true AND frequency = 'once' AND fire_date IS NOT NULL AND fire_date < $1`,
		before)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() > 0 {
		r.db.NotifyChange(ctx, "reminder", "update", 0)
	}
	return tag.RowsAffected(), nil
}
