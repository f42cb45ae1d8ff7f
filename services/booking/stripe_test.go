package booking

import (
	"testing"
	"time"

	"github.com/stripe/stripe-go/v76"
)

func TestInvoiceFromIntentRequiresSucceeded(t *testing.T) {
	now := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	for _, status := range []stripe.PaymentIntentStatus{
		stripe.PaymentIntentStatusRequiresPaymentMethod,
		stripe.PaymentIntentStatusRequiresConfirmation,
		stripe.PaymentIntentStatusRequiresAction,
		stripe.PaymentIntentStatusProcessing,
		stripe.PaymentIntentStatusCanceled,
	} {
		pi := &stripe.PaymentIntent{ID: "pi_1", Status: status, Currency: stripe.CurrencyINR}
		if inv, err := invoiceFromIntent(pi, 499, now); err == nil {
			t.Fatalf("status %s produced invoice %+v", status, inv)
		}
	}
	if _, err := invoiceFromIntent(nil, 499, now); err == nil {
		t.Fatal("nil intent must fail")
	}
}

func TestInvoiceFromIntentSucceeded(t *testing.T) {
	now := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	pi := &stripe.PaymentIntent{ID: "pi_2", Status: stripe.PaymentIntentStatusSucceeded, Currency: stripe.CurrencyINR}

	inv, err := invoiceFromIntent(pi, 499, now)
	if err != nil {
		t.Fatalf("invoiceFromIntent: %v", err)
	}
	if inv.PaymentID != "pi_2" || inv.Amount != 499 || inv.Status != "succeeded" || inv.Provider != "stripe" {
		t.Fatalf("invoice = %+v", inv)
	}
	if inv.InvoiceID == "" || !inv.CreatedAt.Equal(now) {
		t.Fatalf("invoice = %+v", inv)
	}
}

func TestNewStripeProviderValidation(t *testing.T) {
	if _, err := NewStripeProvider("", "pm_card_visa", nil); err == nil {
		t.Fatal("missing key must fail")
	}
	if _, err := NewStripeProvider("sk_test_x", "", nil); err == nil {
		t.Fatal("missing payment method must fail")
	}
	if _, err := NewStripeProvider("sk_test_x", "pm_card_visa", nil); err != nil {
		t.Fatalf("NewStripeProvider: %v", err)
	}
}
