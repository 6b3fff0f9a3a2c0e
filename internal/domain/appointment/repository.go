package appointment

import (
	"context"

	"github.com/topcardetailing/booking-api/internal/models"
)

// Filter narrows a listing; nil fields are no-ops, set fields match by
// strict equality.
type Filter struct {
	Status     *string
	WorkerID   *string
	CustomerID *string
}

type Repository interface {
	// -------- Catalog --------
	GetServicePackage(
		ctx context.Context,
		id string,
	) (*models.ServicePackage, error)

	// -------- Appointment --------
	Create(
		ctx context.Context,
		ap *models.Appointment,
	) error

	Get(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	Update(
		ctx context.Context,
		ap *models.Appointment,
	) error

	List(
		ctx context.Context,
		f Filter,
	) ([]models.Appointment, error)
}
