package util

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/healthconnect/doctor-portal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityEventType represents different types of portal activity events
type ActivityEventType string

const (
	EventLoginSuccess        ActivityEventType = "LOGIN_SUCCESS"
	EventLoginFailure        ActivityEventType = "LOGIN_FAILURE"
	EventLogout              ActivityEventType = "LOGOUT"
	EventProfileUpdated      ActivityEventType = "PROFILE_UPDATED"
	EventAvailabilityChanged ActivityEventType = "AVAILABILITY_CHANGED"
	EventAppointmentBooked   ActivityEventType = "APPOINTMENT_BOOKED"
	EventStatusTransition    ActivityEventType = "STATUS_TRANSITION"
	EventRateLimitExceeded   ActivityEventType = "RATE_LIMIT_EXCEEDED"
	EventEndpointCall        ActivityEventType = "ENDPOINT_CALL"
)

// ActivityEvent represents a portal activity event to be logged
type ActivityEvent struct {
	EventType ActivityEventType
	DoctorID  string
	Email     string
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

var activityLogger *log.Logger
var activityDB *gorm.DB

// SetActivityLoggerDB sets a gorm DB instance used by the activity logger.
// Call this during application startup (e.g. in main) after DB initialization.
func SetActivityLoggerDB(db *gorm.DB) {
	activityDB = db
}

func init() {
	// Initialize activity logger - in production, this could write to a separate file
	activityLogger = log.New(os.Stdout, "[ACTIVITY] ", log.LstdFlags|log.Lmsgprefix)
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	// Replace newlines, carriage returns, and tabs with spaces
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	// Truncate very long values to prevent log flooding
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogActivityEvent logs an activity event and persists it best-effort.
func LogActivityEvent(event ActivityEvent) {
	// Sanitize all string fields to prevent log injection
	msg := fmt.Sprintf("Event=%s DoctorID=%s Email=%s IP=%s UserAgent=%s Message=%s",
		sanitizeLogValue(string(event.EventType)),
		sanitizeLogValue(event.DoctorID),
		sanitizeLogValue(event.Email),
		sanitizeLogValue(event.IP),
		sanitizeLogValue(event.UserAgent),
		sanitizeLogValue(event.Message),
	)

	if len(event.Details) > 0 {
		// Don't log Details map directly to avoid injection
		// Instead, log the count of details
		msg = fmt.Sprintf("%s DetailsCount=%d", msg, len(event.Details))
	}

	activityLogger.Println(msg)

	// Persist to DB if available (best-effort, do not fail operation)
	if activityDB != nil {
		var details datatypes.JSON
		if event.Details != nil {
			if b, err := json.Marshal(event.Details); err == nil {
				details = datatypes.JSON(b)
			}
		}

		entry := model.ActivityLog{
			EventType: string(event.EventType),
			DoctorID:  event.DoctorID,
			Email:     event.Email,
			IP:        event.IP,
			UserAgent: event.UserAgent,
			Message:   event.Message,
			Details:   details,
		}
		if err := activityDB.Create(&entry).Error; err != nil {
			activityLogger.Printf("failed to persist activity event: %v", err)
		}
	}
}

// LogLoginSuccess logs a successful sign-in
func LogLoginSuccess(doctorID uint, email, ip, userAgent string) {
	LogActivityEvent(ActivityEvent{
		EventType: EventLoginSuccess,
		DoctorID:  fmt.Sprintf("%d", doctorID),
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "Doctor signed in successfully",
	})
}

// LogLoginFailure logs a failed sign-in attempt
func LogLoginFailure(email, ip, userAgent, reason string) {
	LogActivityEvent(ActivityEvent{
		EventType: EventLoginFailure,
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   fmt.Sprintf("Sign-in failed: %s", reason),
	})
}

// LogLogout logs a sign-out
func LogLogout(doctorID uint, email, ip, userAgent string) {
	LogActivityEvent(ActivityEvent{
		EventType: EventLogout,
		DoctorID:  fmt.Sprintf("%d", doctorID),
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "Doctor signed out",
	})
}

// LogStatusTransition logs an appointment status change
func LogStatusTransition(appointmentID uint, from, to, ip string) {
	LogActivityEvent(ActivityEvent{
		EventType: EventStatusTransition,
		IP:        ip,
		Message:   fmt.Sprintf("Appointment %d: %s -> %s", appointmentID, from, to),
		Details: map[string]interface{}{
			"appointment_id": appointmentID,
			"from":           from,
			"to":             to,
		},
	})
}

// LogRateLimitExceeded logs a rate limited request
func LogRateLimitExceeded(email, ip, endpoint string) {
	LogActivityEvent(ActivityEvent{
		EventType: EventRateLimitExceeded,
		Email:     email,
		IP:        ip,
		Message:   fmt.Sprintf("Rate limit exceeded on %s", endpoint),
	})
}
