package db

import (
	"gorm.io/gorm"

	"github.com/topcardetailing/booking-api/internal/models"
)

// DefaultServicePackages is the detailing catalog the business launched with.
// It only seeds an empty table; admins manage the catalog afterwards through
// the API.
var DefaultServicePackages = []models.ServicePackage{
	{
		ID:          "basic-detail",
		Name:        "Basic Detail",
		Description: "Essential exterior and interior cleaning",
		Inclusions: []string{
			"Exterior wash and dry",
			"Interior vacuum",
			"Dashboard and console wipe",
			"Window cleaning (interior)",
			"Tire shine",
		},
		BasePrice:    79,
		PremiumPrice: 100,
		Duration:     90,
		Category:     "basic",
	},
	{
		ID:          "interior-detail",
		Name:        "Interior Detail",
		Description: "Deep interior cleaning and shampooing",
		Inclusions: []string{
			"Complete interior vacuum",
			"Seat shampooing and conditioning",
			"Dashboard and trim detailing",
			"Door panel cleaning",
			"Floor mat cleaning",
			"Interior glass cleaning",
		},
		BasePrice:    129,
		PremiumPrice: 189,
		Duration:     120,
		Category:     "interior",
	},
	{
		ID:          "full-detail",
		Name:        "Full Detail",
		Description: "Complete interior and exterior detailing",
		Inclusions: []string{
			"Everything in Basic Detail",
			"Everything in Interior Detail",
			"Exterior wax application",
			"Wheel and tire detailing",
			"Chrome polishing",
		},
		BasePrice:    199,
		PremiumPrice: 300,
		Duration:     180,
		Category:     "full",
	},
	{
		ID:          "cut-polish",
		Name:        "Cut & Polish",
		Description: "Paint decontamination and polishing",
		Inclusions: []string{
			"Paint decontamination",
			"Machine polishing",
			"Swirl mark removal",
			"Paint protection application",
			"Exterior detailing",
		},
		BasePrice:    229,
		PremiumPrice: 340,
		Duration:     240,
		Category:     "premium",
	},
	{
		ID:          "ultimate-detail",
		Name:        "Ultimate Detail",
		Description: "Premium full service package",
		Inclusions: []string{
			"Everything in Full Detail",
			"Everything in Cut & Polish",
			"Engine bay cleaning",
			"Headlight restoration",
			"Premium wax application",
		},
		BasePrice:    275,
		PremiumPrice: 450,
		Duration:     300,
		Category:     "premium",
	},
	{
		ID:          "paint-protection",
		Name:        "Paint Protection",
		Description: "Professional paint protection service",
		Inclusions: []string{
			"Paint assessment",
			"Surface preparation",
			"Paint protection film application",
			"Ceramic coating option",
			"Free quote consultation",
		},
		BasePrice:    800,
		PremiumPrice: 1200,
		Duration:     480,
		Category:     "premium",
	},
}

func SeedServicePackages(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.ServicePackage{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&DefaultServicePackages).Error
}
