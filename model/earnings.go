package model

import "time"

// EarningsBucket aggregates completed consultations for one date range.
type EarningsBucket struct {
	Amount        int `json:"amount"`
	Consultations int `json:"consultations"`
}

// EarningsSnapshot holds the today and this-week earnings buckets. It is
// derived from the appointment collection and never persisted to MySQL;
// the Redis snapshot cache is the only stored form and is invalidated on
// every status mutation.
type EarningsSnapshot struct {
	Today  EarningsBucket `json:"today"`
	Weekly EarningsBucket `json:"weekly"`
}

// WeekStart returns the most recent Sunday at local midnight relative to now.
// When now is itself a Sunday, it returns that day's midnight.
func WeekStart(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -int(now.Weekday()))
}

// ComputeEarnings derives the earnings snapshot from the given appointments.
// Only completed appointments count. The today bucket matches the calendar
// date of now exactly; the weekly bucket includes every completed appointment
// dated on or after WeekStart(now). Appointments whose date does not parse
// are skipped from the weekly bucket.
func ComputeEarnings(appointments []Appointment, now time.Time) EarningsSnapshot {
	var snapshot EarningsSnapshot

	today := now.Format("2006-01-02")
	weekStart := WeekStart(now)

	for _, appointment := range appointments {
		if appointment.Status != StatusCompleted {
			continue
		}

		if appointment.Date == today {
			snapshot.Today.Amount += appointment.Fee
			snapshot.Today.Consultations++
		}

		date, err := time.ParseInLocation("2006-01-02", appointment.Date, now.Location())
		if err != nil {
			continue
		}
		if !date.Before(weekStart) {
			snapshot.Weekly.Amount += appointment.Fee
			snapshot.Weekly.Consultations++
		}
	}

	return snapshot
}
