package booking

import (
	"context"
	"errors"
	"time"

	"pathlab/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentProvider charges the patient before the appointment is created.
type PaymentProvider interface {
	Charge(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error)
}

// SimulatedProvider stands in for a gateway with a fixed delay.
type SimulatedProvider struct {
	delay  time.Duration
	logger *zap.Logger
}

func NewSimulatedProvider(delay time.Duration, logger *zap.Logger) *SimulatedProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulatedProvider{delay: delay, logger: logger}
}

func (p *SimulatedProvider) Charge(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if req.Amount <= 0 {
		return nil, errors.New("invalid payment amount")
	}
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	inv := &models.Invoice{
		InvoiceID: uuid.New().String(),
		PaymentID: "sim_" + uuid.New().String(),
		Provider:  "simulated",
		Amount:    req.Amount,
		Currency:  req.Currency,
		Status:    "paid",
		CreatedAt: time.Now(),
	}
	p.logger.Info("Simulated payment successful",
		zap.String("invoice", inv.InvoiceID), zap.String("session", req.SessionID))
	return inv, nil
}
