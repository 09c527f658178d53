// main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthconnect/doctor-portal/config"
	"github.com/healthconnect/doctor-portal/endpoint"
	"github.com/healthconnect/doctor-portal/middleware"
	"github.com/healthconnect/doctor-portal/model"
	"github.com/healthconnect/doctor-portal/util"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	db, err := config.ConnectMySQL()
	if err != nil {
		log.Fatalf("Error connecting to MySQL: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Doctor{},
		&model.Availability{},
		&model.Appointment{},
		&model.Session{},
		&model.ActivityLog{},
	); err != nil {
		log.Fatalf("Error migrating schema: %v", err)
	}
	util.SetActivityLoggerDB(db)

	// Redis is optional: sessions and earnings fall back to the database.
	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis unavailable, continuing without cache: %v", err)
	}

	doctor, err := model.EnsureDoctor(db)
	if err != nil {
		log.Fatalf("Error ensuring doctor record: %v", err)
	}
	if doctor.Password == "" {
		if initialPass := os.Getenv("PORTALPASS"); initialPass != "" {
			if err := db.Model(&doctor).Update("password", util.HashPassword(initialPass)).Error; err != nil {
				log.Fatalf("Error setting initial password: %v", err)
			}
		} else {
			log.Println("Doctor has no password set; login is disabled until PORTALPASS is provided")
		}
	}
	if cfg.SeedDemo {
		if err := model.SeedDemoData(db, doctor.ID, time.Now()); err != nil {
			log.Fatalf("Error seeding demo data: %v", err)
		}
	}

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	// Create a Gin router with default middleware
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))
	router.Use(middleware.EndpointCallLogger())

	// Basic HTTP handler for root path
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	router.POST("/login", middleware.RateLimiter(middleware.RateLimitConfig{}), endpoint.Login)

	authorized := router.Group("/")
	authorized.Use(middleware.ValidateSessionToken())
	{
		authorized.DELETE("/logout", endpoint.Logout)

		authorized.GET("/profile", endpoint.GetProfile)
		authorized.PUT("/profile", endpoint.UpdateProfile)

		authorized.GET("/availability", endpoint.ListAvailability)
		authorized.POST("/availability", endpoint.CreateAvailability)
		authorized.PATCH("/availability/:id", endpoint.UpdateAvailability)
		authorized.DELETE("/availability/:id", endpoint.DeleteAvailability)

		authorized.GET("/appointment", endpoint.ListAppointments)
		authorized.POST("/appointment", endpoint.BookAppointment)
		authorized.GET("/appointment/:id", endpoint.GetAppointment)
		authorized.POST("/appointment/:id/cancel", endpoint.CancelAppointment)
		authorized.POST("/appointment/:id/complete", endpoint.CompleteAppointment)

		authorized.GET("/earnings", endpoint.GetEarnings)
	}

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
