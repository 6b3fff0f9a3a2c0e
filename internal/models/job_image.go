package models

import "time"

type JobImage struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	AppointmentID string `gorm:"size:36;index" json:"appointmentId"`
	WorkerID      string `gorm:"size:36;index" json:"workerId"`

	// before or after
	Type string `gorm:"size:10" json:"type"`

	Filename     string `gorm:"size:255" json:"filename"`
	URL          string `gorm:"size:512" json:"url"`
	ThumbnailURL string `gorm:"size:512" json:"thumbnailUrl,omitempty"`
	Size         int64  `json:"size"`
	ContentType  string `gorm:"size:50" json:"contentType"`

	UploadedAt time.Time `json:"uploadedAt"`
}
