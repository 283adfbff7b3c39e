// internal/storage/users.go
package storage

import (
	"context"
	"fmt"
	"time"

	"calee/internal/models"
)

// EnsureUser returns the user bound to deviceID, creating it on first use.
func (s *SQLiteStorage) EnsureUser(ctx context.Context, deviceID string) (*models.User, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (device_id, created_at) VALUES (?, ?) ON CONFLICT(device_id) DO NOTHING`,
		deviceID, formatTime(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	user := &models.User{}
	var createdAt string
	err = s.db.QueryRowContext(ctx,
		`SELECT id, device_id, username, created_at FROM users WHERE device_id = ?`, deviceID).
		Scan(&user.ID, &user.DeviceID, &user.Username, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}

	return user, nil
}
