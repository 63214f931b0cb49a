package store

import (
	"time"

	"github.com/google/uuid"
)

// Record is implemented by every persisted entity. Entities embed Meta
// to satisfy it.
type Record interface {
	RecordID() string
	StampUpdated(t time.Time)
}

// Meta carries the identity and audit fields shared by all collections.
// Timestamps are ISO-8601 strings in the stored JSON.
type Meta struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// NewMeta assigns a random unique id and stamps both timestamps.
func NewMeta(now time.Time) Meta {
	ts := now.Format(time.RFC3339)
	return Meta{
		ID:        uuid.NewString(),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func (m *Meta) RecordID() string { return m.ID }

func (m *Meta) StampUpdated(t time.Time) {
	m.UpdatedAt = t.Format(time.RFC3339)
}
