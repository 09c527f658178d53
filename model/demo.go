package model

import (
	"time"

	"gorm.io/gorm"
)

// Demo fixture values: a 09:00-17:00 consulting window with 30-minute
// consultations at a flat fee, and the sample appointment sheet shown on a
// fresh portal.
const (
	demoStartTime = "09:00"
	demoEndTime   = "17:00"
	demoDuration  = 30
	demoFee       = 500
	demoSlotDays  = 7
)

type demoAppointment struct {
	Time        string
	PatientName string
	Type        string
	Fee         int
	Status      string
}

var demoAppointments = []demoAppointment{
	{Time: "10:30", PatientName: "John Doe", Type: "Follow-up", Fee: 500, Status: StatusCompleted},
	{Time: "11:00", PatientName: "Jane Smith", Type: "Consultation", Fee: 600, Status: StatusCompleted},
	{Time: "14:30", PatientName: "Mike Johnson", Type: "Regular Checkup", Fee: 500, Status: StatusConfirmed},
	{Time: "15:00", PatientName: "Sarah Wilson", Type: "Emergency", Fee: 800, Status: StatusPending},
	{Time: "16:00", PatientName: "David Brown", Type: "Consultation", Fee: 500, Status: StatusCompleted},
}

// SeedDemoData populates first-run fixture data: one availability slot per
// day for the next seven days starting today, and the five sample
// appointments dated today. Each collection is only seeded when it is empty,
// so re-running is a no-op. This is bootstrap convenience for demo and test
// setups, not a business rule.
func SeedDemoData(db *gorm.DB, doctorID uint, now time.Time) error {
	var slotCount int64
	if err := db.Model(&Availability{}).Count(&slotCount).Error; err != nil {
		return err
	}
	if slotCount == 0 {
		slots := make([]Availability, 0, demoSlotDays)
		for i := 0; i < demoSlotDays; i++ {
			slots = append(slots, Availability{
				DoctorID:  doctorID,
				Date:      now.AddDate(0, 0, i).Format("2006-01-02"),
				StartTime: demoStartTime,
				EndTime:   demoEndTime,
				Duration:  demoDuration,
				Fee:       demoFee,
			})
		}
		if err := db.Create(&slots).Error; err != nil {
			return err
		}
	}

	var appointmentCount int64
	if err := db.Model(&Appointment{}).Count(&appointmentCount).Error; err != nil {
		return err
	}
	if appointmentCount == 0 {
		today := now.Format("2006-01-02")
		appointments := make([]Appointment, 0, len(demoAppointments))
		for _, demo := range demoAppointments {
			appointments = append(appointments, Appointment{
				DoctorID:    doctorID,
				Date:        today,
				Time:        demo.Time,
				PatientName: demo.PatientName,
				Type:        demo.Type,
				Fee:         demo.Fee,
				Status:      demo.Status,
			})
		}
		if err := db.Create(&appointments).Error; err != nil {
			return err
		}
	}

	return nil
}
