package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityInsertionOrder(t *testing.T) {
	db := setupTestDB(t, "availability_order", &Availability{})

	dates := []string{"2024-03-05", "2024-03-01", "2024-03-03"}
	for _, date := range dates {
		slot := Availability{
			DoctorID:  1,
			Date:      date,
			StartTime: "09:00",
			EndTime:   "17:00",
			Duration:  30,
			Fee:       500,
		}
		assert.NoError(t, db.Create(&slot).Error)
	}

	// Listing preserves insertion order, not calendar order.
	var slots []Availability
	assert.NoError(t, db.Order("id ASC").Find(&slots).Error)
	assert.Len(t, slots, 3)
	for i, date := range dates {
		assert.Equal(t, date, slots[i].Date)
	}
}

func TestAvailabilityAllowsOverlappingSlots(t *testing.T) {
	db := setupTestDB(t, "availability_overlap", &Availability{})

	first := Availability{DoctorID: 1, Date: "2024-03-01", StartTime: "09:00", EndTime: "12:00", Duration: 30, Fee: 500}
	second := Availability{DoctorID: 1, Date: "2024-03-01", StartTime: "09:00", EndTime: "12:00", Duration: 30, Fee: 500}

	assert.NoError(t, db.Create(&first).Error)
	assert.NoError(t, db.Create(&second).Error)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAvailabilityRoundTrip(t *testing.T) {
	db := setupTestDB(t, "availability_roundtrip", &Availability{})

	slot := Availability{
		DoctorID:  2,
		Date:      "2024-04-15",
		StartTime: "10:30",
		EndTime:   "14:00",
		Duration:  45,
		Fee:       750,
	}
	assert.NoError(t, db.Create(&slot).Error)

	var found Availability
	assert.NoError(t, db.First(&found, slot.ID).Error)
	assert.Equal(t, slot.Date, found.Date)
	assert.Equal(t, slot.StartTime, found.StartTime)
	assert.Equal(t, slot.EndTime, found.EndTime)
	assert.Equal(t, slot.Duration, found.Duration)
	assert.Equal(t, slot.Fee, found.Fee)
}
