package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthconnect/doctor-portal/config"
	"github.com/healthconnect/doctor-portal/model"
	"github.com/healthconnect/doctor-portal/util"
	"gorm.io/gorm"
)

// Context keys set by the middleware for downstream handlers.
const (
	DBKey       = "db"
	DoctorIDKey = "doctor_id"
)

func setCorsHeaders(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, OPTIONS, DELETE, PATCH")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization, session-token")
	c.Writer.Header().Set("Access-Control-Max-Age", "86400")
	c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
	c.Writer.Header().Set("Content-Type", "application/json")
}

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		setCorsHeaders(c)

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// DatabaseMiddleware injects the gorm handle into the request context so
// handlers can fetch it with GetDB.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(DBKey, db)
		c.Next()
	}
}

// GetDB returns the gorm handle set by DatabaseMiddleware, or nil.
func GetDB(c *gin.Context) *gorm.DB {
	val, exists := c.Get(DBKey)
	if !exists {
		return nil
	}
	db, ok := val.(*gorm.DB)
	if !ok {
		return nil
	}
	return db
}

// GetDoctorID returns the authenticated doctor's ID set by ValidateSessionToken.
func GetDoctorID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(DoctorIDKey)
	if !exists {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}

// ValidateSessionToken authorizes portal requests by the presence of a live
// session: Redis session:<token> fast path, database fallback with expiry
// check. On success the doctor ID is stored in the request context.
func ValidateSessionToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("session-token")
		if token == "" {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Session token not provided",
				Err: fmt.Errorf("session token not provided"),
			})
			c.Abort()
			return
		}

		// Redis fast path. Any miss or malformed value falls back to the DB.
		if rdb := config.GetRedisClient(); rdb != nil {
			val, err := rdb.Get(context.Background(), fmt.Sprintf("session:%s", token)).Result()
			if err == nil {
				if doctorID, perr := strconv.ParseUint(val, 10, 32); perr == nil && doctorID != 0 {
					c.Set(DoctorIDKey, uint(doctorID))
					c.Next()
					return
				}
			}
		}

		db := GetDB(c)
		if db == nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Database connection not available",
				Err: fmt.Errorf("db is nil"),
			})
			c.Abort()
			return
		}

		var session model.Session
		if err := db.Where("session_token = ?", token).First(&session).Error; err != nil {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Invalid session token",
				Err: fmt.Errorf("session not found"),
			})
			c.Abort()
			return
		}

		if session.ExpiresAt.Before(time.Now()) {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Session expired",
				Err: fmt.Errorf("session expired"),
			})
			c.Abort()
			return
		}

		c.Set(DoctorIDKey, session.DoctorID)
		c.Next()
	}
}
