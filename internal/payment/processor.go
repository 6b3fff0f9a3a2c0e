package payment

import (
	"context"

	"go.uber.org/zap"

	"github.com/topcardetailing/booking-api/internal/config"
)

// Request is a single charge attempt against a gateway.
type Request struct {
	AppointmentID string
	Amount        float64
	PaymentMethod string
	CustomerEmail string
}

// Result is the gateway outcome. A declined charge is a business outcome,
// not an error: Status is "failed" and err stays nil.
type Result struct {
	PaymentID     string  `json:"paymentId"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	Message       string  `json:"message"`
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Processor is the pluggable gateway boundary. The mock is the default; a
// real provider swaps in via configuration without touching calling code.
type Processor interface {
	Process(ctx context.Context, req Request) (*Result, error)
}

func NewFromConfig(cfg *config.Config, log *zap.Logger) Processor {
	if cfg.PaymentProvider == "mercadopago" && cfg.MPAccessToken != "" {
		p, err := NewMercadoPagoProcessor(cfg.MPAccessToken)
		if err == nil {
			return p
		}
		log.Warn("mercadopago init failed, falling back to mock gateway", zap.Error(err))
	}
	return NewMockProcessor(cfg.PaymentSuccessRate, cfg.PaymentLatencyMs, log)
}
