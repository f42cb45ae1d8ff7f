package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pathlab/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripeProvider creates and confirms a PaymentIntent per session. The
// session id is the idempotency key, so a retried confirmation never charges
// twice.
type StripeProvider struct {
	client        paymentintent.Client
	paymentMethod string
	logger        *zap.Logger
}

func NewStripeProvider(key, paymentMethod string, logger *zap.Logger) (*StripeProvider, error) {
	if key == "" {
		return nil, errors.New("stripe key is required")
	}
	if paymentMethod == "" {
		return nil, errors.New("stripe payment method is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StripeProvider{
		client:        paymentintent.Client{B: stripe.GetBackend(stripe.APIBackend), Key: key},
		paymentMethod: paymentMethod,
		logger:        logger,
	}, nil
}

func (p *StripeProvider) Charge(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if req.Amount <= 0 {
		return nil, errors.New("invalid payment amount")
	}
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(int64(req.Amount) * 100), // paise
		Currency:      stripe.String(string(stripe.CurrencyINR)),
		Description:   stripe.String(req.Description),
		PaymentMethod: stripe.String(p.paymentMethod),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	if req.Email != "" {
		params.ReceiptEmail = stripe.String(req.Email)
	}
	params.Context = ctx
	params.SetIdempotencyKey(req.SessionID)
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := p.client.New(params)
	if err != nil {
		p.logger.Error("Stripe payment intent failed", zap.String("session", req.SessionID), zap.Error(err))
		return nil, fmt.Errorf("stripe: %w", err)
	}

	invoice, err := invoiceFromIntent(pi, req.Amount, time.Now())
	if err != nil {
		p.logger.Warn("Stripe payment not completed",
			zap.String("session", req.SessionID), zap.String("intent", pi.ID), zap.String("status", string(pi.Status)))
		return nil, err
	}
	return invoice, nil
}

// invoiceFromIntent accepts only an intent that has already succeeded. Any
// other status means no money moved.
func invoiceFromIntent(pi *stripe.PaymentIntent, amount int, now time.Time) (*models.Invoice, error) {
	if pi == nil {
		return nil, errors.New("stripe: empty payment intent")
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("stripe: payment intent %s is %s", pi.ID, pi.Status)
	}
	return &models.Invoice{
		InvoiceID:    uuid.New().String(),
		PaymentID:    pi.ID,
		Provider:     "stripe",
		Amount:       amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		ClientSecret: pi.ClientSecret,
		CreatedAt:    now,
	}, nil
}
