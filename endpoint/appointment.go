package endpoint

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthconnect/doctor-portal/model"
	"github.com/healthconnect/doctor-portal/util"
	"gorm.io/gorm"
)

// statusFilterAll is the sentinel meaning no status filtering.
const statusFilterAll = "all"

func fetchAppointments(db *gorm.DB, dateFilter, statusFilter string) ([]model.Appointment, error) {
	query := db.Model(&model.Appointment{}).Order("id ASC")
	if dateFilter != "" {
		query = query.Where("date = ?", dateFilter)
	}
	if statusFilter != "" && statusFilter != statusFilterAll {
		query = query.Where("status = ?", statusFilter)
	}

	var appointments []model.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func loadAppointmentOrRespond(c *gin.Context, db *gorm.DB, appointmentID uint) (model.Appointment, bool) {
	var appointment model.Appointment
	if err := db.First(&appointment, appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.CallErrorNotFound(c, util.APIErrorParams{
				Msg: "Appointment not found",
				Err: err,
			})
			return model.Appointment{}, false
		}
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to fetch appointment",
			Err: err,
		})
		return model.Appointment{}, false
	}
	return appointment, true
}

// transitionAppointment persists the status change and invalidates the
// doctor's cached earnings snapshot so the next read recomputes.
func transitionAppointment(c *gin.Context, db *gorm.DB, appointment *model.Appointment, to string) bool {
	from := appointment.Status
	appointment.Status = to
	if err := db.Save(appointment).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to update appointment",
			Err: err,
		})
		return false
	}

	// Best-effort: a failed invalidation is bounded by the cache TTL.
	if err := util.InvalidateEarnings(appointment.DoctorID); err != nil {
		log.Printf("failed to invalidate earnings cache for doctor %d: %v", appointment.DoctorID, err)
	}
	util.LogStatusTransition(appointment.ID, from, to, c.ClientIP())
	return true
}

// ListAppointments godoc
// @Summary      List appointments
// @Description  Fetch appointments in storage order, optionally filtered by exact date and/or status ("all" means no status filter)
// @Tags         Appointments
// @Produce      json
// @Security     SessionToken
// @Param        date query string false "Exact calendar date (YYYY-MM-DD)"
// @Param        status query string false "Status filter" Enums(all, pending, confirmed, completed, cancelled)
// @Success      200 {object} util.APIResponse{data=[]model.Appointment} "Appointments fetched"
// @Failure      400 {object} util.APIResponse "Invalid filter value"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointment [get]
func ListAppointments(c *gin.Context) {
	dateFilter := c.Query("date")
	statusFilter := c.Query("status")

	if statusFilter != "" && statusFilter != statusFilterAll && !util.Contains(statusFilter, model.AppointmentStatuses) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid status filter",
			Err: fmt.Errorf("status must be one of all, pending, confirmed, completed, cancelled"),
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	appointments, err := fetchAppointments(db, dateFilter, statusFilter)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to fetch appointments",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointments fetched successfully",
		Data: map[string]interface{}{"total": len(appointments), "appointments": appointments},
	})
}

// GetAppointment godoc
// @Summary      Get an appointment
// @Description  Fetch a single appointment by identifier
// @Tags         Appointments
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Appointment ID"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment fetched"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointment/{id} [get]
func GetAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "appointment")
	if !ok {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	appointment, ok := loadAppointmentOrRespond(c, db, appointmentID)
	if !ok {
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment fetched successfully",
		Data: appointment,
	})
}

// BookAppointment godoc
// @Summary      Book an appointment
// @Description  Create a new appointment in the pending status
// @Tags         Appointments
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body model.BookAppointmentRequest true "Appointment fields"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment booked"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointment [post]
func BookAppointment(c *gin.Context) {
	var req model.BookAppointmentRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "date must be an ISO date (YYYY-MM-DD)",
			Err: fmt.Errorf("invalid payload"),
		})
		return
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "time must be in HH:MM format",
			Err: fmt.Errorf("invalid payload"),
		})
		return
	}
	patientName := util.NormalizeName(req.PatientName)
	if patientName == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "patient_name must not be empty",
			Err: fmt.Errorf("invalid payload"),
		})
		return
	}
	if req.Fee <= 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "fee must be a positive amount",
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

	appointment := model.Appointment{
		DoctorID:    doctor.ID,
		Date:        req.Date,
		Time:        req.Time,
		PatientName: patientName,
		Type:        req.Type,
		Fee:         req.Fee,
		Status:      model.StatusPending,
	}
	if err := db.Create(&appointment).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to book appointment",
			Err: err,
		})
		return
	}

	util.LogActivityEvent(util.ActivityEvent{
		EventType: util.EventAppointmentBooked,
		DoctorID:  fmt.Sprintf("%d", doctor.ID),
		IP:        c.ClientIP(),
		Message:   fmt.Sprintf("Appointment %d booked for %s %s", appointment.ID, appointment.Date, appointment.Time),
	})

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment booked successfully",
		Data: appointment,
	})
}

// CancelAppointment godoc
// @Summary      Cancel an appointment
// @Description  Transition a pending or confirmed appointment to cancelled
// @Tags         Appointments
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Appointment ID"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment cancelled"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Failure      409 {object} util.APIResponse "Illegal status transition"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointment/{id}/cancel [post]
func CancelAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "appointment")
	if !ok {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	appointment, ok := loadAppointmentOrRespond(c, db, appointmentID)
	if !ok {
		return
	}

	if !appointment.CanCancel() {
		util.CallErrorConflict(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Cannot cancel a %s appointment", appointment.Status),
			Err: fmt.Errorf("invalid transition from %s to %s", appointment.Status, model.StatusCancelled),
		})
		return
	}

	if !transitionAppointment(c, db, &appointment, model.StatusCancelled) {
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment cancelled successfully",
		Data: appointment,
	})
}

// CompleteAppointment godoc
// @Summary      Complete an appointment
// @Description  Transition a confirmed appointment to completed
// @Tags         Appointments
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Appointment ID"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment completed"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Failure      409 {object} util.APIResponse "Illegal status transition"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointment/{id}/complete [post]
func CompleteAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "appointment")
	if !ok {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	appointment, ok := loadAppointmentOrRespond(c, db, appointmentID)
	if !ok {
		return
	}

	if !appointment.CanComplete() {
		util.CallErrorConflict(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Cannot complete a %s appointment", appointment.Status),
			Err: fmt.Errorf("invalid transition from %s to %s", appointment.Status, model.StatusCompleted),
		})
		return
	}

	if !transitionAppointment(c, db, &appointment, model.StatusCompleted) {
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment completed successfully",
		Data: appointment,
	})
}
