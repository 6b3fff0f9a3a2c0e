package models

import "time"

type Payment struct {
	ID string `gorm:"primaryKey;size:36" json:"paymentId"`

	AppointmentID string `gorm:"size:36;index" json:"appointmentId"`
	CustomerEmail string `gorm:"size:100;index" json:"customerEmail"`

	Amount        float64 `json:"amount"`
	PaymentMethod string  `gorm:"size:10" json:"paymentMethod"`

	Status        string `gorm:"size:10" json:"status"`
	TransactionID string `gorm:"size:64" json:"transactionId"`
	Message       string `gorm:"size:255" json:"message"`

	ProcessedAt time.Time `json:"processedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}
