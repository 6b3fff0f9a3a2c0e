package models

import "time"

type Expense struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	WorkerID   string `gorm:"size:36;index;not null" json:"workerId"`
	WorkerName string `gorm:"size:100" json:"workerName"`

	AppointmentID *string `gorm:"size:36;index" json:"appointmentId,omitempty"`

	Type        string  `gorm:"size:10;not null" json:"type"`
	Amount      float64 `gorm:"not null" json:"amount"`
	Description string  `gorm:"size:255" json:"description"`

	ReceiptImage *string `gorm:"size:255" json:"receiptImage,omitempty"`

	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
