package endpoint

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthconnect/doctor-portal/model"
	"github.com/healthconnect/doctor-portal/util"
)

// GetEarnings godoc
// @Summary      Get earnings snapshot
// @Description  Today's and this week's totals over completed appointments; week starts on the most recent Sunday
// @Tags         Earnings
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=model.EarningsSnapshot} "Earnings fetched"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /earnings [get]
func GetEarnings(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	doctor, ok := currentDoctorOrRespond(c, db)
	if !ok {
		return
	}

	if snapshot, hit := util.GetCachedEarnings(doctor.ID); hit {
		util.CallSuccessOK(c, util.APISuccessParams{
			Msg:  "Earnings fetched successfully",
			Data: snapshot,
		})
		return
	}

	// The snapshot is a pure function of the completed appointments, so only
	// those rows are loaded.
	var completed []model.Appointment
	if err := db.Where("status = ?", model.StatusCompleted).Find(&completed).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to fetch appointments",
			Err: err,
		})
		return
	}

	snapshot := model.ComputeEarnings(completed, time.Now())
	_ = util.CacheEarnings(doctor.ID, snapshot)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Earnings fetched successfully",
		Data: snapshot,
	})
}
