package endpoint

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthconnect/doctor-portal/config"
	"github.com/healthconnect/doctor-portal/middleware"
	"github.com/healthconnect/doctor-portal/model"
	"github.com/healthconnect/doctor-portal/util"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestMain sets up consistent test configuration for all tests in the
// endpoint package. This prevents test order dependency issues caused by
// the singleton config pattern.
func TestMain(m *testing.M) {
	os.Setenv("APPENV", "test")
	os.Setenv("JWTSECRET", "test-secret-123")
	os.Setenv("GINMODE", "release")

	util.SetJWTSecret("test-secret-123")

	cfg := config.LoadConfig()
	gin.SetMode(cfg.GinMode)

	os.Exit(m.Run())
}

// setupEndpointTest returns a router with the database middleware installed
// and a fresh in-memory database migrated with every portal model. The DSN is
// uniquified per call so tests cannot contaminate each other.
func setupEndpointTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_endpoint_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Doctor{},
		&model.Availability{},
		&model.Appointment{},
		&model.Session{},
		&model.ActivityLog{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	return r, db
}
