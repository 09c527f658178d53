package endpoint

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/healthconnect/doctor-portal/middleware"
	"github.com/healthconnect/doctor-portal/model"
	"github.com/healthconnect/doctor-portal/util"
	"gorm.io/gorm"
)

func bindJSONOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
		return false
	}
	return true
}

func getDBOrRespond(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("db is nil")})
		return nil, false
	}
	return db, true
}

// parseIDParam parses the :id path parameter as an entity identifier.
func parseIDParam(c *gin.Context, label string) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Invalid %s ID", label),
			Err: fmt.Errorf("%s ID must be a positive integer", label),
		})
		return 0, false
	}
	return uint(id), true
}

// currentDoctorOrRespond resolves the acting doctor: the session's doctor
// when authenticated, otherwise the portal's singleton profile.
func currentDoctorOrRespond(c *gin.Context, db *gorm.DB) (model.Doctor, bool) {
	if doctorID, ok := middleware.GetDoctorID(c); ok && doctorID != 0 {
		var doctor model.Doctor
		if err := db.First(&doctor, doctorID).Error; err == nil {
			return doctor, true
		}
	}

	doctor, err := model.EnsureDoctor(db)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load doctor profile", Err: err})
		return model.Doctor{}, false
	}
	return doctor, true
}
