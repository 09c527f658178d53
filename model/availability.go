package model

import "gorm.io/gorm"

// Availability is a declared block of consulting hours on a single date.
// Date is an ISO calendar date and the times are local "HH:MM" strings;
// Duration is the per-consultation length in minutes and Fee the
// currency-agnostic consultation charge.
//
// Slots are returned in insertion order. Overlapping or duplicate slots on
// the same date are allowed.
type Availability struct {
	gorm.Model
	DoctorID  uint   `json:"doctor_id" gorm:"column:doctor_id;index"`
	Date      string `json:"date" gorm:"column:date;type:varchar(10);index" example:"2024-03-01"`
	StartTime string `json:"start_time" gorm:"column:start_time;type:varchar(5)" example:"09:00"`
	EndTime   string `json:"end_time" gorm:"column:end_time;type:varchar(5)" example:"17:00"`
	Duration  int    `json:"duration" gorm:"column:duration" example:"30"`
	Fee       int    `json:"fee" gorm:"column:fee" example:"500"`
}

// AvailabilityRequest is the payload for creating or replacing a slot.
type AvailabilityRequest struct {
	Date      string `json:"date" binding:"required" example:"2024-03-01"`
	StartTime string `json:"start_time" binding:"required" example:"09:00"`
	EndTime   string `json:"end_time" binding:"required" example:"17:00"`
	Duration  int    `json:"duration" binding:"required" example:"30"`
	Fee       int    `json:"fee" binding:"required" example:"500"`
}
