package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"lifetrack/internal/uuid"
)

// Base is embedded by every persisted record. IDs are UUIDv7 strings so rows
// sort by creation time; deletes are soft.
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns an ID when none is set and rejects malformed ones.
func (b *Base) BeforeCreate(*gorm.DB) error {
	switch {
	case b.ID == "":
		b.ID = uuid.New()
	case !uuid.IsValid(b.ID):
		return fmt.Errorf("models: invalid record id %q", b.ID)
	}
	return nil
}
