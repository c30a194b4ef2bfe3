package database

import (
	"context"
	"encoding/json"
	"time"

	"waremind/internal/logger"
)

// ChangeChannel is the Postgres NOTIFY channel carrying entity mutations.
const ChangeChannel = "waremind_changes"

// Change describes a single insert/update/delete performed by a repository.
type Change struct {
	Entity string `json:"entity"`
	Op     string `json:"op"` // create | update | delete
	ID     int64  `json:"id"`
}

// NotifyChange publishes a change event over the database's NOTIFY channel.
// Delivery is best-effort: a failure is logged and never propagated, the
// mutation itself has already committed.
func (db *DB) NotifyChange(ctx context.Context, entity, op string, id int64) {
	payload, err := json.Marshal(Change{Entity: entity, Op: op, ID: id})
	if err != nil {
		logger.Log.Errorf("Failed to encode change notification: %v", err)
		return
	}
	if _, err := db.Pool.Exec(ctx, "SELECT pg_notify($1, $2)", ChangeChannel, string(payload)); err != nil {
		logger.Log.Errorf("Failed to publish change notification: %v", err)
	}
}

// Listen blocks on a dedicated connection delivering change notifications to
// handler until ctx is cancelled. The connection is re-established with a
// short backoff after transient failures.
func (db *DB) Listen(ctx context.Context, handler func(Change)) error {
	for {
		if err := db.listenOnce(ctx, handler); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Log.Errorf("Change listener disconnected: %v", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}

func (db *DB) listenOnce(ctx context.Context, handler func(Change)) error {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+ChangeChannel); err != nil {
		return err
	}

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		var change Change
		if err := json.Unmarshal([]byte(notification.Payload), &change); err != nil {
			logger.Log.Warnf("Ignoring malformed change notification %q: %v", notification.Payload, err)
			continue
		}
		handler(change)
	}
}
