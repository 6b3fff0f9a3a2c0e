package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/topcardetailing/booking-api/internal/domain/appointment"
	"github.com/topcardetailing/booking-api/internal/httperr"
	"github.com/topcardetailing/booking-api/internal/httpresp"
	ucAppointment "github.com/topcardetailing/booking-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC *ucAppointment.CreateAppointment
	updateUC *ucAppointment.UpdateAppointment
	listUC   *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	listUC *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC: createUC,
		updateUC: updateUC,
		listUC:   listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	CustomerID    string `json:"customerId"`
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerEmail string `json:"customerEmail" binding:"required,email"`
	CustomerPhone string `json:"customerPhone"`

	ServicePackageID string `json:"servicePackageId" binding:"required"`
	VehicleType      string `json:"vehicleType" binding:"required"`

	AppointmentDate string `json:"appointmentDate" binding:"required"`
	AppointmentTime string `json:"appointmentTime" binding:"required"`
	Address         string `json:"address" binding:"required"`

	PaymentMethod string `json:"paymentMethod" binding:"required"`
	Notes         string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	Status             *string `json:"status,omitempty"`
	PaymentStatus      *string `json:"paymentStatus,omitempty"`
	AssignedWorkerID   *string `json:"assignedWorkerId,omitempty"`
	AssignedWorkerName *string `json:"assignedWorkerName,omitempty"`

	AppointmentDate *string `json:"appointmentDate,omitempty"`
	AppointmentTime *string `json:"appointmentTime,omitempty"`
	Address         *string `json:"address,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	var f domain.Filter

	if v := c.Query("status"); v != "" {
		f.Status = &v
	}
	if v := c.Query("workerId"); v != "" {
		f.WorkerID = &v
	}
	if v := c.Query("customerId"); v != "" {
		f.CustomerID = &v
	}

	aps, err := h.listUC.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to fetch appointments")
		return
	}

	httpresp.OK(c, aps)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing required fields")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		CustomerID:       req.CustomerID,
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		ServicePackageID: req.ServicePackageID,
		VehicleType:      req.VehicleType,
		Date:             req.AppointmentDate,
		Time:             req.AppointmentTime,
		Address:          req.Address,
		PaymentMethod:    req.PaymentMethod,
		Notes:            req.Notes,
	})

	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Invalid booking request")
			return
		}
		httperr.Internal(c, "failed_to_create_appointment", "Failed to create appointment")
		return
	}

	httpresp.Created(c, ap, "Appointment created successfully")
}

// ======================================================
// UPDATE (partial merge)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		httperr.BadRequest(c, "missing_id", "Appointment ID is required")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		ID:                 id,
		Status:             req.Status,
		PaymentStatus:      req.PaymentStatus,
		AssignedWorkerID:   req.AssignedWorkerID,
		AssignedWorkerName: req.AssignedWorkerName,
		Date:               req.AppointmentDate,
		Time:               req.AppointmentTime,
		Address:            req.Address,
		Notes:              req.Notes,
	})

	if err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "Appointment not found")
			return
		}
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Invalid appointment update")
			return
		}
		httperr.Internal(c, "failed_to_update_appointment", "Failed to update appointment")
		return
	}

	httpresp.OKMessage(c, ap, "Appointment updated successfully")
}
