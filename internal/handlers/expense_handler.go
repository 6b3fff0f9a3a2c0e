package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/topcardetailing/booking-api/internal/audit"
	"github.com/topcardetailing/booking-api/internal/httperr"
	"github.com/topcardetailing/booking-api/internal/httpresp"
	"github.com/topcardetailing/booking-api/internal/models"
	"github.com/topcardetailing/booking-api/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type ExpenseHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	tz    string
}

func NewExpenseHandler(db *gorm.DB, audit *audit.Dispatcher, tz string) *ExpenseHandler {
	return &ExpenseHandler{db: db, audit: audit, tz: tz}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateExpenseRequest struct {
	WorkerID      string  `json:"workerId" binding:"required"`
	WorkerName    string  `json:"workerName"`
	AppointmentID *string `json:"appointmentId,omitempty"`
	Type          string  `json:"type" binding:"required,oneof=fuel receipt payment other"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Description   string  `json:"description" binding:"required"`
	ReceiptImage  *string `json:"receiptImage,omitempty"`
}

type UpdateExpenseRequest struct {
	Type         *string  `json:"type,omitempty"`
	Amount       *float64 `json:"amount,omitempty"`
	Description  *string  `json:"description,omitempty"`
	ReceiptImage *string  `json:"receiptImage,omitempty"`
}

var expenseTypes = map[string]bool{
	"fuel":    true,
	"receipt": true,
	"payment": true,
	"other":   true,
}

// ======================================================
// LIST
// ======================================================

func (h *ExpenseHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Expense{})

	if v := c.Query("workerId"); v != "" {
		q = q.Where("worker_id = ?", v)
	}
	if v := c.Query("appointmentId"); v != "" {
		q = q.Where("appointment_id = ?", v)
	}
	if v := c.Query("type"); v != "" {
		q = q.Where("type = ?", v)
	}

	startStr := c.Query("startDate")
	endStr := c.Query("endDate")
	if startStr != "" && endStr != "" {
		start, err1 := timezone.ParseDate(h.tz, startStr)
		end, err2 := timezone.ParseDate(h.tz, endStr)
		if err1 != nil || err2 != nil {
			httperr.BadRequest(c, "invalid_date_range", "Invalid start or end date")
			return
		}
		q = q.Where("date >= ? AND date < ?", start, end.Add(24*time.Hour))
	}

	var expenses []models.Expense
	if err := q.Order("date DESC").Find(&expenses).Error; err != nil {
		httperr.Internal(c, "failed_to_list_expenses", "Failed to fetch expenses")
		return
	}

	httpresp.OK(c, expenses)
}

// ======================================================
// CREATE
// ======================================================

func (h *ExpenseHandler) Create(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing required fields or amount not greater than 0")
		return
	}

	workerName := req.WorkerName
	if workerName == "" {
		workerName = "Unknown Worker"
	}

	now := timezone.NowIn(h.tz)
	expense := models.Expense{
		ID:            uuid.NewString(),
		WorkerID:      req.WorkerID,
		WorkerName:    workerName,
		AppointmentID: req.AppointmentID,
		Type:          req.Type,
		Amount:        req.Amount,
		Description:   req.Description,
		ReceiptImage:  req.ReceiptImage,
		Date:          now,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&expense).Error; err != nil {
		httperr.Internal(c, "failed_to_create_expense", "Failed to record expense")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &expense.WorkerID,
		Action:   "expense_recorded",
		Entity:   "expense",
		EntityID: &expense.ID,
		Metadata: map[string]any{"type": expense.Type, "amount": expense.Amount},
	})

	httpresp.Created(c, expense, "Expense recorded successfully")
}

// ======================================================
// UPDATE
// ======================================================

func (h *ExpenseHandler) Update(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		httperr.BadRequest(c, "missing_id", "Expense ID is required")
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	var expense models.Expense
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ?", id).
		First(&expense).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "expense_not_found", "Expense not found")
			return
		}
		httperr.Internal(c, "failed_to_update_expense", "Failed to update expense")
		return
	}

	if req.Type != nil {
		if !expenseTypes[*req.Type] {
			httperr.BadRequest(c, "invalid_expense_type", "Invalid expense type")
			return
		}
		expense.Type = *req.Type
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			httperr.BadRequest(c, "invalid_amount", "Amount must be greater than 0")
			return
		}
		expense.Amount = *req.Amount
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.ReceiptImage != nil {
		expense.ReceiptImage = req.ReceiptImage
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&expense).Error; err != nil {
		httperr.Internal(c, "failed_to_update_expense", "Failed to update expense")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &expense.WorkerID,
		Action:   "expense_updated",
		Entity:   "expense",
		EntityID: &expense.ID,
	})

	httpresp.OKMessage(c, expense, "Expense updated successfully")
}

// ======================================================
// DELETE
// ======================================================

func (h *ExpenseHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		httperr.BadRequest(c, "missing_id", "Expense ID is required")
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ?", id).
		Delete(&models.Expense{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_expense", "Failed to delete expense")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "expense_not_found", "Expense not found")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "expense_deleted",
		Entity:   "expense",
		EntityID: &id,
	})

	httpresp.OKMessage(c, nil, "Expense deleted successfully")
}
