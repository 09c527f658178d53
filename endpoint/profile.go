package endpoint

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/healthconnect/doctor-portal/model"
	"github.com/healthconnect/doctor-portal/util"
)

type updateProfileRequest struct {
	Name       string `json:"name" binding:"required" example:"Dr. Rajesh Sharma"`
	Speciality string `json:"speciality" binding:"required" example:"Cardiology"`
	Experience string `json:"experience" binding:"required" example:"15"`
	Email      string `json:"email" binding:"required,email" example:"rajesh.sharma@healthconnect.com"`
	Phone      string `json:"phone" binding:"required" example:"+91-9876543210"`
	Address    string `json:"address" binding:"required" example:"123 Medical Street, Mumbai"`
}

func validateProfileRequest(req updateProfileRequest) error {
	requiredFields := map[string]string{
		"Name":       req.Name,
		"Speciality": req.Speciality,
		"Email":      req.Email,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is empty or missing required fields", fieldName)
		}
	}

	// Experience arrives string-typed from the form but must be numeric.
	if _, err := strconv.Atoi(req.Experience); err != nil {
		return fmt.Errorf("experience must be a numeric value")
	}
	return nil
}

// GetProfile godoc
// @Summary      Get doctor profile
// @Description  Fetch the portal's doctor profile, creating it with defaults on first run
// @Tags         Profile
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=model.Doctor} "Profile fetched"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /profile [get]
func GetProfile(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	doctor, ok := currentDoctorOrRespond(c, db)
	if !ok {
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Profile fetched successfully",
		Data: doctor,
	})
}

// UpdateProfile godoc
// @Summary      Update doctor profile
// @Description  Replace the profile fields wholesale
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body updateProfileRequest true "Profile fields"
// @Success      200 {object} util.APIResponse{data=model.Doctor} "Profile updated"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /profile [put]
func UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	if err := validateProfileRequest(req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: err.Error(),
			Err: fmt.Errorf("invalid payload"),
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	doctor, ok := currentDoctorOrRespond(c, db)
	if !ok {
		return
	}

	// Wholesale replacement: every profile field is overwritten with the
	// submitted value.
	updates := model.Doctor{
		Name:       req.Name,
		Speciality: req.Speciality,
		Experience: req.Experience,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
	}
	if err := db.Model(&doctor).Updates(updates).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to update profile",
			Err: err,
		})
		return
	}

	util.LogActivityEvent(util.ActivityEvent{
		EventType: util.EventProfileUpdated,
		DoctorID:  fmt.Sprintf("%d", doctor.ID),
		Email:     doctor.Email,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   "Profile updated",
	})

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Profile updated successfully",
		Data: doctor,
	})
}
