package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/topcardetailing/booking-api/internal/audit"
	domain "github.com/topcardetailing/booking-api/internal/domain/appointment"
	"github.com/topcardetailing/booking-api/internal/httperr"
	"github.com/topcardetailing/booking-api/internal/models"
	"github.com/topcardetailing/booking-api/internal/notify"
	"github.com/topcardetailing/booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	ServicePackageID string
	VehicleType      string

	Date    string
	Time    string
	Address string

	PaymentMethod string
	Notes         string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier notify.Notifier
	tz       string
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier notify.Notifier,
	tz string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		tz:       tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if _, err := timezone.ParseDate(uc.tz, in.Date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if _, err := timezone.ParseClock(in.Time); err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	if in.VehicleType != "standard" && in.VehicleType != "large" {
		return nil, httperr.ErrBusiness("invalid_vehicle_type")
	}
	if in.PaymentMethod != "online" && in.PaymentMethod != "in-person" {
		return nil, httperr.ErrBusiness("invalid_payment_method")
	}

	// Unknown package fails the booking before anything is persisted.
	pkg, err := uc.repo.GetServicePackage(ctx, in.ServicePackageID)
	if err != nil {
		return nil, err
	}

	customerID := in.CustomerID
	if customerID == "" {
		customerID = uuid.NewString()
	}

	ap := &models.Appointment{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,

		ServicePackageID:   pkg.ID,
		ServicePackageName: pkg.Name,

		VehicleType: in.VehicleType,

		AppointmentDate: in.Date,
		AppointmentTime: in.Time,
		Address:         in.Address,

		// Priced once at booking; later catalog edits never reprice.
		TotalPrice: domain.PriceFor(pkg, in.VehicleType),

		PaymentMethod: in.PaymentMethod,
		PaymentStatus: "pending",
		Status:        string(domain.InitialStatus()),

		Notes: in.Notes,
	}

	if err := uc.repo.Create(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"package": ap.ServicePackageID,
			"price":   ap.TotalPrice,
		},
	})

	uc.notifier.BookingCreated(ap)

	return ap, nil
}
