package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

const (
	AuditActionCreated   = "created"
	AuditActionUpdated   = "updated"
	AuditActionSuspended = "suspended"
	AuditActionActivated = "activated"
	AuditActionClosed    = "closed"
	AuditActionDeleted   = "deleted"
)

// JSONBMap stores arbitrary key/value metadata as a JSON column
type JSONBMap map[string]interface{}

// Value implements driver.Valuer
func (m JSONBMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner
func (m *JSONBMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for JSONBMap")
	}

	return json.Unmarshal(data, m)
}

// AuditLog is an append-only record of account lifecycle actions
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AccountID uint      `gorm:"not null;index" json:"account_id"`
	Action    string    `gorm:"type:varchar(50);not null" json:"action"`
	Actor     string    `gorm:"type:varchar(100)" json:"actor,omitempty"`
	Reason    string    `gorm:"type:varchar(255)" json:"reason,omitempty"`
	Metadata  JSONBMap  `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// TableName returns the table name for AuditLog
func (a *AuditLog) TableName() string {
	return "audit_logs"
}
