package model

import "gorm.io/gorm"

// Appointment statuses. Pending and confirmed are non-terminal; completed and
// cancelled are terminal: there is no un-complete or un-cancel transition.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// AppointmentStatuses lists every valid status value.
var AppointmentStatuses = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// Appointment represents a scheduled (or completed/cancelled) consultation
// with a named patient. Status is the only field mutated after creation.
type Appointment struct {
	gorm.Model
	DoctorID    uint   `json:"doctor_id" gorm:"column:doctor_id;index"`
	Date        string `json:"date" gorm:"column:date;type:varchar(10);index" example:"2024-03-01"`
	Time        string `json:"time" gorm:"column:time;type:varchar(5)" example:"10:30"`
	PatientName string `json:"patient_name" gorm:"column:patient_name" example:"John Doe"`
	Type        string `json:"type" gorm:"column:type" example:"Follow-up"`
	Fee         int    `json:"fee" gorm:"column:fee" example:"500"`
	Status      string `json:"status" gorm:"column:status;type:varchar(16);index" example:"pending"`
}

// BookAppointmentRequest is the payload for booking a new appointment.
// Bookings always start in the pending status.
type BookAppointmentRequest struct {
	Date        string `json:"date" binding:"required" example:"2024-03-01"`
	Time        string `json:"time" binding:"required" example:"10:30"`
	PatientName string `json:"patient_name" binding:"required" example:"John Doe"`
	Type        string `json:"type" binding:"required" example:"Consultation"`
	Fee         int    `json:"fee" binding:"required" example:"500"`
}

// CanCancel reports whether the appointment may transition to cancelled.
func (a *Appointment) CanCancel() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanComplete reports whether the appointment may transition to completed.
// A completed appointment cannot be completed again, so its fee is never
// counted twice by the earnings aggregation.
func (a *Appointment) CanComplete() bool {
	return a.Status == StatusConfirmed
}
