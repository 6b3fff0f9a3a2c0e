package models

import "time"

type ServicePackage struct {
	ID string `gorm:"primaryKey;size:64" json:"id"`

	Name        string   `gorm:"size:100;not null" json:"name"`
	Description string   `gorm:"size:255" json:"description"`
	Inclusions  []string `gorm:"serializer:json" json:"inclusions"`

	BasePrice    float64 `json:"basePrice"`
	PremiumPrice float64 `json:"premiumPrice"`

	Duration int `json:"duration"`

	Category string `gorm:"size:20;default:'basic'" json:"category"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
