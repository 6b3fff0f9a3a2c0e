package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/topcardetailing/booking-api/internal/httperr"
	"github.com/topcardetailing/booking-api/internal/httpresp"
	"github.com/topcardetailing/booking-api/internal/models"
	"github.com/topcardetailing/booking-api/internal/sales"
	"github.com/topcardetailing/booking-api/internal/timezone"
)

type SalesHandler struct {
	db *gorm.DB
	tz string
}

func NewSalesHandler(db *gorm.DB, tz string) *SalesHandler {
	return &SalesHandler{db: db, tz: tz}
}

// Summary scans the full collections and aggregates in memory; at this
// business's volume that is cheaper than maintaining rollup tables.
func (h *SalesHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	var appointments []models.Appointment
	if err := h.db.WithContext(ctx).Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_load_sales", "Failed to compute sales summary")
		return
	}

	var expenses []models.Expense
	if err := h.db.WithContext(ctx).Find(&expenses).Error; err != nil {
		httperr.Internal(c, "failed_to_load_sales", "Failed to compute sales summary")
		return
	}

	summary := sales.Summarize(appointments, expenses, timezone.NowIn(h.tz))
	httpresp.OK(c, summary)
}
