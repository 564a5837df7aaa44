package services

import (
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lifetrack/internal/logger"
	"lifetrack/internal/models"
)

type auditService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewAuditService returns an AuditServicer that writes to the audit_logs table.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db, log: logger.Named("audit")}
}

// Log stores one audit record. Failures are logged and swallowed so the
// audited request still succeeds.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      s.encodeChanges(action, changes),
	}
	if err := s.db.Create(entry).Error; err != nil {
		s.log.Errorw("audit write failed",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource", resourceType+"/"+resourceID,
		)
	}
}

func (s *auditService) encodeChanges(action string, changes map[string]any) string {
	if len(changes) == 0 {
		return ""
	}
	data, err := json.Marshal(changes)
	if err != nil {
		s.log.Warnw("audit changes not encodable", "action", action, "error", err)
		return "{}"
	}
	return string(data)
}
