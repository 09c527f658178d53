package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthconnect/doctor-portal/util"
)

// EndpointCallLogger logs each HTTP request as an activity event.
// It relies on the DatabaseMiddleware having already set DB in context and
// util.SetActivityLoggerDB having been called during startup so events
// will be persisted to the ActivityLog table.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		doctorID, _ := GetDoctorID(c)

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"query":       c.Request.URL.RawQuery,
		}
		if doctorID != 0 {
			details["doctor_id"] = doctorID
		}

		util.LogActivityEvent(util.ActivityEvent{
			EventType: util.EventEndpointCall,
			DoctorID:  fmt.Sprintf("%d", doctorID),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		})
	}
}
