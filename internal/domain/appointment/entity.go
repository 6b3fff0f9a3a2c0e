package appointment

import (
	"github.com/topcardetailing/booking-api/internal/httperr"
	"github.com/topcardetailing/booking-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ChangeStatus moves an appointment to a new status after checking the
// lifecycle table. Assigning requires a worker; a worker rejecting the job
// (assigned -> pending) releases the assignment so an admin can re-dispatch.
// Status changes never touch totalPrice or paymentStatus.
func ChangeStatus(ap *models.Appointment, to Status, workerID, workerName *string) error {
	from := Status(ap.Status)

	if err := CanTransition(from, to); err != nil {
		return err
	}

	switch to {
	case StatusAssigned:
		if workerID == nil && ap.AssignedWorkerID == nil {
			return httperr.ErrBusiness("worker_required")
		}
		if workerID != nil {
			ap.AssignedWorkerID = workerID
			ap.AssignedWorkerName = workerName
		}

	case StatusPending:
		if from == StatusAssigned {
			ap.AssignedWorkerID = nil
			ap.AssignedWorkerName = nil
		}
	}

	ap.Status = string(to)
	return nil
}

// PriceFor selects the price tier for the booked vehicle: large vehicles pay
// the premium tier, everything else the base tier.
func PriceFor(pkg *models.ServicePackage, vehicleType string) float64 {
	if vehicleType == "large" {
		return pkg.PremiumPrice
	}
	return pkg.BasePrice
}
