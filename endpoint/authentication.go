package endpoint

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/healthconnect/doctor-portal/config"
	"github.com/healthconnect/doctor-portal/model"
	"github.com/healthconnect/doctor-portal/util"
	"gorm.io/gorm"
)

const sessionDuration = time.Hour

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"rajesh.sharma@healthconnect.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type LoginResponse struct {
	Token    string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	DoctorID uint   `json:"doctor_id" example:"1"`
}

type clientInfo struct {
	IP    string
	Agent string
}

func createSessionToken(doctor model.Doctor) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": doctor.Email,
		"exp":   time.Now().Add(sessionDuration).Unix(),
	})
	return token.SignedString(util.GetJWTSecretByte())
}

func recordSession(db *gorm.DB, doctorID uint, token string, ci clientInfo) (model.Session, error) {
	session := model.Session{
		DoctorID:     doctorID,
		SessionToken: token,
		ExpiresAt:    time.Now().Add(sessionDuration),
		ClientIP:     ci.IP,
		Browser:      ci.Agent,
	}
	err := db.Create(&session).Error
	return session, err
}

// Login godoc
// @Summary      Doctor login
// @Description  Authenticate with email and password and receive a session token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse{data=LoginResponse} "Login successful"
// @Failure      400 {object} util.APIResponse "Invalid request payload or credentials"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	ci := clientInfo{IP: c.ClientIP(), Agent: c.Request.UserAgent()}

	var doctor model.Doctor
	if err := db.Where("email = ?", req.Email).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.LogLoginFailure(req.Email, ci.IP, ci.Agent, "doctor not found")
			util.CallUserError(c, util.APIErrorParams{
				Msg: "Invalid email or password",
				Err: fmt.Errorf("doctor not found"),
			})
			return
		}
		util.LogLoginFailure(req.Email, ci.IP, ci.Agent, "database error")
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	if doctor.Password == "" || !util.VerifyPassword(req.Password, doctor.Password) {
		util.LogLoginFailure(req.Email, ci.IP, ci.Agent, "invalid password")
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid email or password",
			Err: fmt.Errorf("invalid password"),
		})
		return
	}

	tokenString, err := createSessionToken(doctor)
	if err != nil {
		util.LogLoginFailure(req.Email, ci.IP, ci.Agent, "token generation failed")
		util.CallServerError(c, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}

	session, err := recordSession(db, doctor.ID, tokenString, ci)
	if err != nil {
		util.LogLoginFailure(req.Email, ci.IP, ci.Agent, "session creation failed")
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to record session", Err: err})
		return
	}

	// Mirror the session in Redis (best-effort)
	if rdb := config.GetRedisClient(); rdb != nil {
		exp := time.Until(session.ExpiresAt)
		_ = rdb.Set(context.Background(), fmt.Sprintf("session:%s", tokenString), fmt.Sprintf("%d", session.DoctorID), exp).Err()
		_ = util.AddSessionToDoctorSet(session.DoctorID, tokenString)
	}

	util.LogLoginSuccess(doctor.ID, doctor.Email, ci.IP, ci.Agent)
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Login successful",
		Data: LoginResponse{Token: tokenString, DoctorID: doctor.ID},
	})
}

// Logout godoc
// @Summary      Doctor logout
// @Description  Invalidate the session token. With all=true every session of the doctor is invalidated.
// @Tags         Authentication
// @Produce      json
// @Security     SessionToken
// @Param        all query bool false "Sign out of all sessions"
// @Success      200 {object} util.APIResponse "Logout successful"
// @Failure      400 {object} util.APIResponse "Session not found"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /logout [delete]
func Logout(c *gin.Context) {
	// Extract the session-token from the request header
	sessionToken := c.GetHeader("session-token")
	if sessionToken == "" {
		util.CallUserNotAuthorized(c, util.APIErrorParams{
			Msg: "Session token not provided",
			Err: fmt.Errorf("session token not provided"),
		})
		c.Abort()
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var session model.Session
	if err := db.Where("session_token = ?", sessionToken).First(&session).Error; err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Session not found",
			Err: err,
		})
		return
	}

	var doctor model.Doctor
	if err := db.First(&doctor, session.DoctorID).Error; err == nil {
		util.LogLogout(doctor.ID, doctor.Email, c.ClientIP(), c.Request.UserAgent())
	}

	// Sign out everywhere: drop every session row for the doctor and their
	// per-doctor Redis session set.
	if c.Query("all") == "true" {
		if err := db.Where("doctor_id = ?", session.DoctorID).Delete(&model.Session{}).Error; err != nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Failed to delete sessions",
				Err: err,
			})
			return
		}
		if err := util.InvalidateDoctorSessions(session.DoctorID); err != nil {
			log.Printf("failed to invalidate redis sessions for doctor %d: %v", session.DoctorID, err)
		}

		util.CallSuccessOK(c, util.APISuccessParams{
			Msg: "Logged out of all sessions",
		})
		return
	}

	if err := db.Where("session_token = ?", sessionToken).Delete(&session).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to delete session",
			Err: err,
		})
		return
	}

	// Also delete session from Redis if available
	if rdb := config.GetRedisClient(); rdb != nil {
		_ = rdb.Del(context.Background(), fmt.Sprintf("session:%s", sessionToken)).Err()
		_ = util.RemoveSessionTokenFromDoctorSet(session.DoctorID, sessionToken)
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Logout successful",
	})
}
