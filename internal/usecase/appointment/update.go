package appointment

import (
	"context"

	"github.com/topcardetailing/booking-api/internal/audit"
	domain "github.com/topcardetailing/booking-api/internal/domain/appointment"
	"github.com/topcardetailing/booking-api/internal/httperr"
	"github.com/topcardetailing/booking-api/internal/models"
	"github.com/topcardetailing/booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

// UpdateAppointmentInput is a partial field set; nil pointers leave the
// stored value alone. totalPrice is never updatable.
type UpdateAppointmentInput struct {
	ID string

	Status             *string
	PaymentStatus      *string
	AssignedWorkerID   *string
	AssignedWorkerName *string

	Date    *string
	Time    *string
	Address *string
	Notes   *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	previousStatus := ap.Status

	if in.Status != nil && *in.Status != ap.Status {
		if err := domain.ChangeStatus(
			ap,
			domain.Status(*in.Status),
			in.AssignedWorkerID,
			in.AssignedWorkerName,
		); err != nil {
			return nil, err
		}
	} else if in.AssignedWorkerID != nil {
		ap.AssignedWorkerID = in.AssignedWorkerID
		ap.AssignedWorkerName = in.AssignedWorkerName
	}

	if in.PaymentStatus != nil {
		switch *in.PaymentStatus {
		case "pending", "paid", "failed":
			ap.PaymentStatus = *in.PaymentStatus
		default:
			return nil, httperr.ErrBusiness("invalid_payment_status")
		}
	}

	if in.Date != nil {
		if _, err := timezone.ParseDate(uc.tz, *in.Date); err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		ap.AppointmentDate = *in.Date
	}
	if in.Time != nil {
		if _, err := timezone.ParseClock(*in.Time); err != nil {
			return nil, httperr.ErrBusiness("invalid_time")
		}
		ap.AppointmentTime = *in.Time
	}
	if in.Address != nil {
		ap.Address = *in.Address
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	if ap.Status != previousStatus {
		uc.audit.Dispatch(audit.Event{
			UserID:   ap.AssignedWorkerID,
			Action:   "status_changed",
			Entity:   "appointment",
			EntityID: &ap.ID,
			Metadata: map[string]any{
				"from": previousStatus,
				"to":   ap.Status,
			},
		})
	}

	return ap, nil
}
