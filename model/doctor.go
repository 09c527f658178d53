package model

import "gorm.io/gorm"

// Doctor represents the portal owner's profile
// @Description Doctor profile information
type Doctor struct {
	gorm.Model
	Name       string `json:"name" gorm:"column:name" example:"Dr. Rajesh Sharma"`
	Speciality string `json:"speciality" gorm:"column:speciality" example:"Cardiology"`
	// Experience is kept as a string-typed numeric value, matching how the
	// profile form submits it.
	Experience string `json:"experience" gorm:"column:experience" example:"15"`
	Email      string `json:"email" gorm:"column:email;index" example:"rajesh.sharma@healthconnect.com"`
	Phone      string `json:"phone" gorm:"column:phone" example:"+91-9876543210"`
	Address    string `json:"address" gorm:"column:address" example:"123 Medical Street, Mumbai, Maharashtra"`
	Password   string `json:"-" gorm:"column:password"`
}

// DefaultDoctor returns the profile created on first run, before the doctor
// has edited anything.
func DefaultDoctor() Doctor {
	return Doctor{
		Name:       "Dr. Rajesh Sharma",
		Speciality: "Cardiology",
		Experience: "15",
		Email:      "rajesh.sharma@healthconnect.com",
		Phone:      "+91-9876543210",
		Address:    "123 Medical Street, Mumbai, Maharashtra",
	}
}

// EnsureDoctor returns the portal's doctor profile, creating it with defaults
// when no row exists yet. The profile is a singleton: it is mutated wholesale
// on edit and never deleted.
func EnsureDoctor(db *gorm.DB) (Doctor, error) {
	var doctor Doctor
	err := db.First(&doctor).Error
	if err == nil {
		return doctor, nil
	}
	if err != gorm.ErrRecordNotFound {
		return Doctor{}, err
	}

	doctor = DefaultDoctor()
	if err := db.Create(&doctor).Error; err != nil {
		return Doctor{}, err
	}
	return doctor, nil
}
