package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/topcardetailing/booking-api/internal/audit"
	"github.com/topcardetailing/booking-api/internal/httperr"
	"github.com/topcardetailing/booking-api/internal/httpresp"
	"github.com/topcardetailing/booking-api/internal/models"
	"github.com/topcardetailing/booking-api/internal/notify"
	"github.com/topcardetailing/booking-api/internal/payment"
	"github.com/topcardetailing/booking-api/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	db        *gorm.DB
	processor payment.Processor
	notifier  notify.Notifier
	audit     *audit.Dispatcher
	tz        string
}

func NewPaymentHandler(
	db *gorm.DB,
	processor payment.Processor,
	notifier notify.Notifier,
	audit *audit.Dispatcher,
	tz string,
) *PaymentHandler {
	return &PaymentHandler{
		db:        db,
		processor: processor,
		notifier:  notifier,
		audit:     audit,
		tz:        tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ProcessPaymentRequest struct {
	AppointmentID string  `json:"appointmentId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required,oneof=online in-person"`
	CustomerEmail string  `json:"customerEmail"`
}

// ======================================================
// PROCESS
// ======================================================

func (h *PaymentHandler) Process(c *gin.Context) {
	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing required payment fields")
		return
	}

	res, err := h.processor.Process(c.Request.Context(), payment.Request{
		AppointmentID: req.AppointmentID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		httperr.Internal(c, "payment_processing_failed", "Payment processing failed")
		return
	}

	// Every attempt is kept, declined ones included; the ledger is the
	// source of truth for reconciliation.
	record := models.Payment{
		ID:            res.PaymentID,
		AppointmentID: req.AppointmentID,
		CustomerEmail: req.CustomerEmail,
		Amount:        res.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        res.Status,
		TransactionID: res.TransactionID,
		Message:       res.Message,
		ProcessedAt:   timezone.NowIn(h.tz),
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&record).Error; err != nil {
		httperr.Internal(c, "payment_processing_failed", "Payment processing failed")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "payment_processed",
		Entity:   "payment",
		EntityID: &record.ID,
		Metadata: map[string]any{
			"appointmentId": req.AppointmentID,
			"status":        res.Status,
			"amount":        res.Amount,
		},
	})

	h.notifier.PaymentProcessed(req.CustomerEmail, res.Status, res.Message)

	// A decline is a business outcome, not an internal failure.
	if res.Status == payment.StatusFailed {
		httperr.PaymentRequired(c, "payment_failed", res.Message)
		return
	}

	httpresp.OKMessage(c, res, "Payment processed successfully")
}

// ======================================================
// HISTORY
// ======================================================

func (h *PaymentHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Payment{})

	if v := c.Query("appointmentId"); v != "" {
		q = q.Where("appointment_id = ?", v)
	}
	if v := c.Query("customerEmail"); v != "" {
		q = q.Where("customer_email = ?", v)
	}

	var payments []models.Payment
	if err := q.Order("processed_at DESC").Find(&payments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_payments", "Failed to fetch payment history")
		return
	}

	httpresp.OKMessage(c, payments, "Payment history retrieved")
}
