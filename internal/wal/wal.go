// Package wal keeps a local write-ahead record of purchase commits. The
// external store offers no transactional endpoint, so the commit sequence
// (stock decrement, order POST, expense POST) can fail part-way; entries left
// pending here drive a reconciliation pass on the next startup.
package wal

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entry statuses.
const (
	StatusPending = "pending"
	StatusApplied = "applied"
)

// Entry records one intended purchase commit.
type Entry struct {
	gorm.Model
	OrderID string `gorm:"uniqueIndex"`
	Payload string // JSON snapshot of the intended order
	Status  string `gorm:"index"`
}

// Log is the sqlite-backed intent log.
type Log struct {
	db *gorm.DB
}

// Open opens (or creates) the intent log at the given sqlite path.
func Open(path string) (*Log, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open intent log: %w", err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate intent log schema: %w", err)
	}
	return &Log{db: db}, nil
}

// Begin records an intended commit before any external mutation is applied.
func (l *Log) Begin(orderID string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode intent payload: %w", err)
	}
	entry := Entry{
		OrderID: orderID,
		Payload: string(body),
		Status:  StatusPending,
	}
	if err := l.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record intent: %w", err)
	}
	return nil
}

// MarkApplied closes out an intent once the full commit sequence succeeded.
func (l *Log) MarkApplied(orderID string) error {
	res := l.db.Model(&Entry{}).
		Where("order_id = ? AND status = ?", orderID, StatusPending).
		Update("status", StatusApplied)
	if res.Error != nil {
		return fmt.Errorf("failed to mark intent applied: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("no pending intent for order %s", orderID)
	}
	return nil
}

// Pending returns intents whose commit sequence never completed, oldest first.
func (l *Log) Pending() ([]Entry, error) {
	var entries []Entry
	if err := l.db.Where("status = ?", StatusPending).Order("created_at asc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load pending intents: %w", err)
	}
	return entries, nil
}

// Reconcile retries every pending intent through fn, marking the ones that
// succeed. It returns how many were applied; a failing intent stays pending
// for the next pass rather than aborting the rest.
func (l *Log) Reconcile(ctx context.Context, fn func(ctx context.Context, entry Entry) error) (int, error) {
	entries, err := l.Pending()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, entry := range entries {
		if err := fn(ctx, entry); err != nil {
			continue
		}
		if err := l.MarkApplied(entry.OrderID); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}
