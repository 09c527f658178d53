package endpoint

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthconnect/doctor-portal/model"
	"github.com/healthconnect/doctor-portal/util"
	"gorm.io/gorm"
)

func validateAvailabilityRequest(req model.AvailabilityRequest) error {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return fmt.Errorf("date must be an ISO date (YYYY-MM-DD)")
	}

	start, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return fmt.Errorf("start_time must be in HH:MM format")
	}
	end, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return fmt.Errorf("end_time must be in HH:MM format")
	}
	if !start.Before(end) {
		return fmt.Errorf("start_time must precede end_time")
	}

	if req.Duration <= 0 {
		return fmt.Errorf("duration must be a positive number of minutes")
	}
	if req.Fee <= 0 {
		return fmt.Errorf("fee must be a positive amount")
	}
	return nil
}

// ListAvailability godoc
// @Summary      List availability slots
// @Description  Fetch all availability slots in insertion order
// @Tags         Availability
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=[]model.Availability} "Slots fetched"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /availability [get]
func ListAvailability(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var slots []model.Availability
	if err := db.Order("id ASC").Find(&slots).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to fetch availability",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Availability fetched successfully",
		Data: map[string]interface{}{"total": len(slots), "availability": slots},
	})
}

// CreateAvailability godoc
// @Summary      Add an availability slot
// @Description  Create a new slot with a generated identifier. Overlapping slots on the same date are allowed.
// @Tags         Availability
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body model.AvailabilityRequest true "Slot fields"
// @Success      200 {object} util.APIResponse{data=model.Availability} "Slot created"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /availability [post]
func CreateAvailability(c *gin.Context) {
	var req model.AvailabilityRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	if err := validateAvailabilityRequest(req); err != nil {
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

	slot := model.Availability{
		DoctorID:  doctor.ID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Duration:  req.Duration,
		Fee:       req.Fee,
	}
	if err := db.Create(&slot).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to create availability",
			Err: err,
		})
		return
	}

	util.LogActivityEvent(util.ActivityEvent{
		EventType: util.EventAvailabilityChanged,
		DoctorID:  fmt.Sprintf("%d", doctor.ID),
		IP:        c.ClientIP(),
		Message:   fmt.Sprintf("Availability %d added for %s", slot.ID, slot.Date),
	})

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Availability created successfully",
		Data: slot,
	})
}

// UpdateAvailability godoc
// @Summary      Update an availability slot
// @Description  Replace the slot's fields wholesale by identifier
// @Tags         Availability
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Slot ID"
// @Param        request body model.AvailabilityRequest true "Slot fields"
// @Success      200 {object} util.APIResponse{data=model.Availability} "Slot updated"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      404 {object} util.APIResponse "Slot not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /availability/{id} [patch]
func UpdateAvailability(c *gin.Context) {
	slotID, ok := parseIDParam(c, "availability")
	if !ok {
		return
	}

	var req model.AvailabilityRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	if err := validateAvailabilityRequest(req); err != nil {
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

	var existingSlot model.Availability
	if err := db.First(&existingSlot, slotID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.CallErrorNotFound(c, util.APIErrorParams{
				Msg: "Availability not found",
				Err: err,
			})
			return
		}
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to fetch availability",
			Err: err,
		})
		return
	}

	existingSlot.Date = req.Date
	existingSlot.StartTime = req.StartTime
	existingSlot.EndTime = req.EndTime
	existingSlot.Duration = req.Duration
	existingSlot.Fee = req.Fee
	if err := db.Save(&existingSlot).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to update availability",
			Err: err,
		})
		return
	}

	util.LogActivityEvent(util.ActivityEvent{
		EventType: util.EventAvailabilityChanged,
		DoctorID:  fmt.Sprintf("%d", existingSlot.DoctorID),
		IP:        c.ClientIP(),
		Message:   fmt.Sprintf("Availability %d updated", existingSlot.ID),
	})

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Availability updated successfully",
		Data: existingSlot,
	})
}

// DeleteAvailability godoc
// @Summary      Delete an availability slot
// @Description  Remove the slot by identifier
// @Tags         Availability
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Slot ID"
// @Success      200 {object} util.APIResponse "Slot deleted"
// @Failure      404 {object} util.APIResponse "Slot not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /availability/{id} [delete]
func DeleteAvailability(c *gin.Context) {
	slotID, ok := parseIDParam(c, "availability")
	if !ok {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var existingSlot model.Availability
	if err := db.First(&existingSlot, slotID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.CallErrorNotFound(c, util.APIErrorParams{
				Msg: "Availability not found",
				Err: err,
			})
			return
		}
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to fetch availability",
			Err: err,
		})
		return
	}

	if err := db.Delete(&existingSlot).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to delete availability",
			Err: err,
		})
		return
	}

	util.LogActivityEvent(util.ActivityEvent{
		EventType: util.EventAvailabilityChanged,
		DoctorID:  fmt.Sprintf("%d", existingSlot.DoctorID),
		IP:        c.ClientIP(),
		Message:   fmt.Sprintf("Availability %d deleted", existingSlot.ID),
	})

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Availability deleted successfully",
		Data: nil,
	})
}
