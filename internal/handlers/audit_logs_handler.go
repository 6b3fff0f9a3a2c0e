package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/topcardetailing/booking-api/internal/httperr"
	"github.com/topcardetailing/booking-api/internal/httpresp"
	"github.com/topcardetailing/booking-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			httperr.BadRequest(c, "invalid_limit", "Limit must be between 1 and 500")
			return
		}
		limit = n
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	if v := c.Query("action"); v != "" {
		q = q.Where("action = ?", v)
	}
	if v := c.Query("entity"); v != "" {
		q = q.Where("entity = ?", v)
	}

	var logs []models.AuditLog
	if err := q.Order("id DESC").Limit(limit).Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Failed to fetch audit logs")
		return
	}

	httpresp.OK(c, logs)
}
