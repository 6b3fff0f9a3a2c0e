package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
)

// MercadoPagoProcessor charges through the Mercado Pago payments API.
type MercadoPagoProcessor struct {
	client mppayment.Client
}

func NewMercadoPagoProcessor(accessToken string) (*MercadoPagoProcessor, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPagoProcessor{
		client: mppayment.NewClient(cfg),
	}, nil
}

func (p *MercadoPagoProcessor) Process(ctx context.Context, req Request) (*Result, error) {
	resource, err := p.client.Create(ctx, mppayment.Request{
		TransactionAmount: req.Amount,
		Description:       fmt.Sprintf("Detailing appointment %s", req.AppointmentID),
		PaymentMethodID:   "pix",
		Payer: &mppayment.PayerRequest{
			Email: req.CustomerEmail,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mercadopago create payment: %w", err)
	}

	res := &Result{
		PaymentID:     uuid.NewString(),
		TransactionID: fmt.Sprintf("MP_%d", resource.ID),
		Amount:        req.Amount,
	}

	if resource.Status == "approved" {
		res.Status = StatusSuccess
		res.Message = "Payment processed successfully"
	} else {
		res.Status = StatusFailed
		res.Message = fmt.Sprintf("Payment %s", resource.Status)
	}

	return res, nil
}
