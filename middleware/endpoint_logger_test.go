package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/healthconnect/doctor-portal/model"
	"github.com/healthconnect/doctor-portal/util"
	"github.com/stretchr/testify/assert"
)

func TestEndpointCallLoggerPersistsEvent(t *testing.T) {
	db := setupMiddlewareDB(t, "logger")
	assert.NoError(t, db.AutoMigrate(&model.ActivityLog{}))

	util.SetActivityLoggerDB(db)
	t.Cleanup(func() { util.SetActivityLoggerDB(nil) })

	r := gin.New()
	r.Use(EndpointCallLogger())
	r.GET("/profile", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serveRequest(r, http.MethodGet, "/profile", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var entry model.ActivityLog
	assert.NoError(t, db.Where("event_type = ?", string(util.EventEndpointCall)).First(&entry).Error)
	assert.Contains(t, entry.Message, "GET /profile -> 200")
	assert.NotEmpty(t, entry.Details)
}
