package payment

import (
	"context"
	"fmt"

	"havenstay/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// Intent is the client-facing handle of a payment authorization.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret,omitempty"`
}

// Gateway authorizes booking payments.
type Gateway interface {
	CreateIntent(ctx context.Context, booking *models.Booking) (*Intent, error)
	CancelIntent(ctx context.Context, intentID string) error
}

// StripeGateway creates Stripe PaymentIntents with manual capture so the
// host can still decline a pending request.
type StripeGateway struct {
	logger *zap.Logger
}

// NewStripeGateway sets the global Stripe key and returns a gateway.
func NewStripeGateway(key string, logger *zap.Logger) *StripeGateway {
	stripe.Key = key
	return &StripeGateway{logger: logger}
}

// MinorUnits converts a decimal amount to the smallest currency unit.
func MinorUnits(m models.Money) int64 {
	return m.Decimal.Shift(2).Round(0).IntPart()
}

func (g *StripeGateway) CreateIntent(ctx context.Context, booking *models.Booking) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(MinorUnits(booking.TotalPrice)),
		Currency:      stripe.String(booking.Currency),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Description: stripe.String(fmt.Sprintf("Stay %s to %s", booking.CheckIn.Format("2006-01-02"), booking.CheckOut.Format("2006-01-02"))),
	}
	params.Context = ctx
	params.AddMetadata("bookingId", booking.ID)
	params.AddMetadata("propertyId", booking.PropertyID)
	params.SetIdempotencyKey("booking-" + booking.ID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create payment intent for booking %s: %w", booking.ID, err)
	}
	g.logger.Info("payment intent created", zap.String("booking", booking.ID), zap.String("intent", pi.ID))
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (g *StripeGateway) CancelIntent(ctx context.Context, intentID string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	if _, err := paymentintent.Cancel(intentID, params); err != nil {
		return fmt.Errorf("stripe: cancel payment intent %s: %w", intentID, err)
	}
	return nil
}

// NoopGateway is used when no Stripe key is configured.
type NoopGateway struct{}

func (NoopGateway) CreateIntent(context.Context, *models.Booking) (*Intent, error) { return nil, nil }
func (NoopGateway) CancelIntent(context.Context, string) error                     { return nil }
