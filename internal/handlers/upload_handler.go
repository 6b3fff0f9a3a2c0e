package handlers

import (
	"fmt"
	"io"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/topcardetailing/booking-api/internal/audit"
	"github.com/topcardetailing/booking-api/internal/blob"
	"github.com/topcardetailing/booking-api/internal/httperr"
	"github.com/topcardetailing/booking-api/internal/httpresp"
	"github.com/topcardetailing/booking-api/internal/images"
	"github.com/topcardetailing/booking-api/internal/models"
	"github.com/topcardetailing/booking-api/internal/timezone"
)

// Job photos are phone camera shots; anything bigger than this is rejected
// before decoding.
const maxUploadBytes = 10 << 20

// ======================================================
// HANDLER
// ======================================================

type UploadHandler struct {
	db    *gorm.DB
	store blob.Store
	audit *audit.Dispatcher
	tz    string
}

func NewUploadHandler(db *gorm.DB, store blob.Store, audit *audit.Dispatcher, tz string) *UploadHandler {
	return &UploadHandler{db: db, store: store, audit: audit, tz: tz}
}

// ======================================================
// UPLOAD
// ======================================================

func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "No file provided")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "File exceeds the 10MB limit")
		return
	}

	appointmentID := c.PostForm("appointmentId")
	workerID := c.PostForm("workerId")
	imageType := c.PostForm("type")
	if imageType != "before" && imageType != "after" {
		httperr.BadRequest(c, "invalid_image_type", "Image type must be before or after")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "upload_failed", "File upload failed")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		httperr.Internal(c, "upload_failed", "File upload failed")
		return
	}

	contentType, err := images.Validate(data)
	if err != nil {
		httperr.BadRequest(c, "invalid_file_type", "Invalid file type. Only JPEG, PNG, and WebP are allowed")
		return
	}

	fileID := uuid.NewString()
	ext := path.Ext(fileHeader.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	filename := fmt.Sprintf("%s_%s_%s%s", imageType, appointmentID, fileID, ext)

	ctx := c.Request.Context()

	url, err := h.store.Put(ctx, "jobs/"+filename, data, contentType)
	if err != nil {
		httperr.Internal(c, "upload_failed", "File upload failed")
		return
	}

	// A failed thumbnail never fails the upload.
	var thumbURL string
	if thumb, terr := images.Thumbnail(data); terr == nil {
		thumbURL, _ = h.store.Put(ctx, "jobs/thumbs/"+fileID+".jpg", thumb, "image/jpeg")
	}

	record := models.JobImage{
		ID:            fileID,
		AppointmentID: appointmentID,
		WorkerID:      workerID,
		Type:          imageType,
		Filename:      filename,
		URL:           url,
		ThumbnailURL:  thumbURL,
		Size:          fileHeader.Size,
		ContentType:   contentType,
		UploadedAt:    timezone.NowIn(h.tz),
	}

	if err := h.db.WithContext(ctx).Create(&record).Error; err != nil {
		httperr.Internal(c, "upload_failed", "File upload failed")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &record.WorkerID,
		Action:   "image_uploaded",
		Entity:   "job_image",
		EntityID: &record.ID,
		Metadata: map[string]any{"appointmentId": appointmentID, "type": imageType},
	})

	httpresp.Created(c, record, "File uploaded successfully")
}

// ======================================================
// LIST
// ======================================================

func (h *UploadHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.JobImage{})

	if v := c.Query("appointmentId"); v != "" {
		q = q.Where("appointment_id = ?", v)
	}
	if v := c.Query("workerId"); v != "" {
		q = q.Where("worker_id = ?", v)
	}

	var uploads []models.JobImage
	if err := q.Order("uploaded_at DESC").Find(&uploads).Error; err != nil {
		httperr.Internal(c, "failed_to_list_uploads", "Failed to fetch uploads")
		return
	}

	httpresp.OKMessage(c, uploads, "Uploads retrieved successfully")
}
