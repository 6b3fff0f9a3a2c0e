package payment

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MockProcessor simulates a card gateway: a fixed latency followed by a
// weighted coin flip. A decline stands in for insufficient funds and is
// surfaced to the customer as a failed transaction to retry manually.
type MockProcessor struct {
	successRate float64
	latency     time.Duration
	log         *zap.Logger
}

func NewMockProcessor(successRate float64, latencyMs int, log *zap.Logger) *MockProcessor {
	if successRate <= 0 || successRate > 1 {
		successRate = 0.9
	}
	return &MockProcessor{
		successRate: successRate,
		latency:     time.Duration(latencyMs) * time.Millisecond,
		log:         log,
	}
}

func (p *MockProcessor) Process(ctx context.Context, req Request) (*Result, error) {
	timer := time.NewTimer(p.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	ok := rand.Float64() < p.successRate

	res := &Result{
		PaymentID:     uuid.NewString(),
		TransactionID: "TXN_" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:20],
		Amount:        req.Amount,
	}

	if ok {
		res.Status = StatusSuccess
		res.Message = "Payment processed successfully"
	} else {
		res.Status = StatusFailed
		res.Message = "Payment failed - please try again"
	}

	p.log.Info("mock gateway processed charge",
		zap.String("appointmentId", req.AppointmentID),
		zap.String("method", req.PaymentMethod),
		zap.Float64("amount", req.Amount),
		zap.String("status", res.Status),
	)

	return res, nil
}
