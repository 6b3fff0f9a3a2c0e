package models

import "time"

type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	CustomerID    string `gorm:"size:36;index" json:"customerId"`
	CustomerName  string `gorm:"size:100;not null" json:"customerName"`
	CustomerEmail string `gorm:"size:100;not null" json:"customerEmail"`
	CustomerPhone string `gorm:"size:20" json:"customerPhone"`

	// Package name and price are snapshotted at booking time so the record
	// stays stable if the catalog changes later.
	ServicePackageID   string `gorm:"size:64;index" json:"servicePackageId"`
	ServicePackageName string `gorm:"size:100" json:"servicePackageName"`

	VehicleType string `gorm:"size:10" json:"vehicleType"`

	AppointmentDate string `gorm:"size:10;index" json:"appointmentDate"`
	AppointmentTime string `gorm:"size:5" json:"appointmentTime"`
	Address         string `gorm:"size:255" json:"address"`

	TotalPrice float64 `json:"totalPrice"`

	PaymentMethod string `gorm:"size:10" json:"paymentMethod"`
	PaymentStatus string `gorm:"size:10;default:'pending'" json:"paymentStatus"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	AssignedWorkerID   *string `gorm:"size:36;index" json:"assignedWorkerId,omitempty"`
	AssignedWorkerName *string `gorm:"size:100" json:"assignedWorkerName,omitempty"`

	Notes string `gorm:"size:255" json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
