package appointment

import (
	"context"

	domain "github.com/topcardetailing/booking-api/internal/domain/appointment"
	"github.com/topcardetailing/booking-api/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	f domain.Filter,
) ([]models.Appointment, error) {
	return uc.repo.List(ctx, f)
}
