package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog represents a persisted portal activity event: sign-ins,
// profile edits, availability changes and appointment status transitions.
type ActivityLog struct {
	gorm.Model
	EventType string         `json:"event_type" gorm:"column:event_type;type:varchar(64)"`
	DoctorID  string         `json:"doctor_id" gorm:"column:doctor_id;type:varchar(64);index"`
	Email     string         `json:"email" gorm:"column:email;type:varchar(191);index"`
	IP        string         `json:"ip" gorm:"column:ip;type:varchar(45)"`
	UserAgent string         `json:"user_agent" gorm:"column:user_agent;type:varchar(512)"`
	Message   string         `json:"message" gorm:"column:message;type:text"`
	Details   datatypes.JSON `json:"details" gorm:"column:details;type:json"`
}
