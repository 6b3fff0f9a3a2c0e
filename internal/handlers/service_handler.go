package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/topcardetailing/booking-api/internal/audit"
	"github.com/topcardetailing/booking-api/internal/cache"
	"github.com/topcardetailing/booking-api/internal/httperr"
	"github.com/topcardetailing/booking-api/internal/httpresp"
	"github.com/topcardetailing/booking-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	db      *gorm.DB
	catalog *cache.Catalog
	audit   *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, catalog *cache.Catalog, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{
		db:      db,
		catalog: catalog,
		audit:   audit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateServiceRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Inclusions   []string `json:"inclusions"`
	BasePrice    float64  `json:"basePrice" binding:"required,gt=0"`
	PremiumPrice float64  `json:"premiumPrice"`
	Duration     int      `json:"duration"`
	Category     string   `json:"category"`
}

type UpdateServiceRequest struct {
	Name         *string   `json:"name,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Inclusions   *[]string `json:"inclusions,omitempty"`
	BasePrice    *float64  `json:"basePrice,omitempty"`
	PremiumPrice *float64  `json:"premiumPrice,omitempty"`
	Duration     *int      `json:"duration,omitempty"`
	Category     *string   `json:"category,omitempty"`
}

// ======================================================
// LIST
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if pkgs, ok := h.catalog.Get(ctx); ok {
		httpresp.OK(c, pkgs)
		return
	}

	var pkgs []models.ServicePackage
	if err := h.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&pkgs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Failed to fetch services")
		return
	}

	h.catalog.Set(ctx, pkgs)
	httpresp.OK(c, pkgs)
}

// ======================================================
// CREATE
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing required fields")
		return
	}

	premium := req.PremiumPrice
	if premium <= 0 {
		// Conventional large-vehicle surcharge when the admin leaves it blank.
		premium = req.BasePrice * 1.3
	}

	duration := req.Duration
	if duration <= 0 {
		duration = 120
	}

	category := strings.ToLower(strings.TrimSpace(req.Category))
	if category == "" {
		category = "basic"
	}

	pkg := models.ServicePackage{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		Inclusions:   req.Inclusions,
		BasePrice:    req.BasePrice,
		PremiumPrice: premium,
		Duration:     duration,
		Category:     category,
	}
	if pkg.Inclusions == nil {
		pkg.Inclusions = []string{}
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&pkg).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Failed to create service")
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		Action:   "service_created",
		Entity:   "service_package",
		EntityID: &pkg.ID,
	})

	httpresp.Created(c, pkg, "Service package created successfully")
}

// ======================================================
// UPDATE
// ======================================================

func (h *ServiceHandler) Update(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		httperr.BadRequest(c, "missing_id", "Service ID is required")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	var pkg models.ServicePackage
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ?", id).
		First(&pkg).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service not found")
			return
		}
		httperr.Internal(c, "failed_to_update_service", "Failed to update service")
		return
	}

	if req.Name != nil {
		pkg.Name = *req.Name
	}
	if req.Description != nil {
		pkg.Description = *req.Description
	}
	if req.Inclusions != nil {
		pkg.Inclusions = *req.Inclusions
	}
	if req.BasePrice != nil && *req.BasePrice > 0 {
		pkg.BasePrice = *req.BasePrice
	}
	if req.PremiumPrice != nil && *req.PremiumPrice > 0 {
		pkg.PremiumPrice = *req.PremiumPrice
	}
	if req.Duration != nil && *req.Duration > 0 {
		pkg.Duration = *req.Duration
	}
	if req.Category != nil {
		pkg.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&pkg).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Failed to update service")
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		Action:   "service_updated",
		Entity:   "service_package",
		EntityID: &pkg.ID,
	})

	httpresp.OKMessage(c, pkg, "Service updated successfully")
}

// ======================================================
// DELETE
// ======================================================

func (h *ServiceHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		httperr.BadRequest(c, "missing_id", "Service ID is required")
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ?", id).
		Delete(&models.ServicePackage{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_service", "Failed to delete service")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "Service not found")
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		Action:   "service_deleted",
		Entity:   "service_package",
		EntityID: &id,
	})

	httpresp.OKMessage(c, nil, "Service deleted successfully")
}
