package notify

import (
	"go.uber.org/zap"

	"github.com/topcardetailing/booking-api/internal/models"
)

// Notifier is the customer-messaging boundary. The log implementation stands
// in for a transactional email/SMS provider.
type Notifier interface {
	BookingCreated(ap *models.Appointment)
	PaymentProcessed(email, status, message string)
}

type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) BookingCreated(ap *models.Appointment) {
	n.log.Info("mock email: booking confirmation",
		zap.String("to", ap.CustomerEmail),
		zap.String("date", ap.AppointmentDate),
		zap.String("time", ap.AppointmentTime),
		zap.String("package", ap.ServicePackageName),
	)
}

func (n *LogNotifier) PaymentProcessed(email, status, message string) {
	n.log.Info("mock email: payment result",
		zap.String("to", email),
		zap.String("status", status),
		zap.String("message", message),
	)
}
