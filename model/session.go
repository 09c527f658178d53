package model

import (
	"time"

	"gorm.io/gorm"
)

// Session records an active sign-in. Presence of a non-expired session row
// (or its Redis mirror) is what authorizes portal requests.
type Session struct {
	gorm.Model
	DoctorID     uint      `json:"doctor_id" gorm:"column:doctor_id;index"`
	SessionToken string    `json:"session_token" gorm:"column:session_token;type:varchar(512);index"`
	ExpiresAt    time.Time `json:"expires_at" gorm:"column:expires_at"`
	ClientIP     string    `json:"client_ip" gorm:"column:client_ip;type:varchar(45)"`
	Browser      string    `json:"browser" gorm:"column:browser;type:varchar(512)"`
}
