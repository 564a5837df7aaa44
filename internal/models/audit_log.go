package models

// AuditLog is an append-only record of a state-changing request. Changes
// holds a JSON object of the fields involved, or "" when none were recorded.
type AuditLog struct {
	Base
	UserID       string `gorm:"type:uuid;not null;index" json:"user_id"`
	Action       string `gorm:"type:text;not null" json:"action"`
	ResourceType string `gorm:"type:text;not null" json:"resource_type"`
	ResourceID   string `gorm:"type:text;not null;default:''" json:"resource_id"`
	IPAddress    string `gorm:"type:text;not null;default:''" json:"ip_address,omitempty"`
	Changes      string `gorm:"type:text;not null;default:''" json:"changes,omitempty"`
}
