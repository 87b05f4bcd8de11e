package lib

import (
	"context"
	"errors"
	"math"
	"os"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

// NewStripeClient Replace stripe instance with custom client implementation
func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ChargePayment captures a payment against the customer's saved payment
// method and returns the PaymentIntent id.
func ChargePayment(ctx context.Context, amount float64, currency string, customerId *string, metadata map[string]string) (string, error) {
	sc := GetStripeClient()
	params := stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(currency),
		Metadata: metadata,
	}
	if customerId != nil {
		params.Customer = stripe.String(*customerId)
		params.Confirm = stripe.Bool(true)
		params.OffSession = stripe.Bool(true)
	}
	pi, err := sc.V1PaymentIntents.Create(ctx, &params)
	if err != nil {
		return "", err
	}
	return pi.ID, nil
}

// RefundPayment issues a partial or full refund against a PaymentIntent.
func RefundPayment(ctx context.Context, paymentIntentId string, amount float64) (string, error) {
	sc := GetStripeClient()
	params := stripe.RefundCreateParams{
		PaymentIntent: stripe.String(paymentIntentId),
		Amount:        stripe.Int64(toMinorUnits(amount)),
	}
	ref, err := sc.V1Refunds.Create(ctx, &params)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

type PayoutDestination struct {
	AccountID *string
	Email     *string
}

// SendPayout moves funds to a business's payout destination: a linked
// connected account for bank withdrawals, or an email payee otherwise.
func SendPayout(ctx context.Context, amount float64, currency string, dest PayoutDestination) (string, error) {
	sc := GetStripeClient()
	if dest.AccountID != nil {
		params := stripe.TransferCreateParams{
			Amount:      stripe.Int64(toMinorUnits(amount)),
			Currency:    stripe.String(currency),
			Destination: stripe.String(*dest.AccountID),
		}
		tr, err := sc.V1Transfers.Create(ctx, &params)
		if err != nil {
			return "", err
		}
		return tr.ID, nil
	}
	if dest.Email != nil {
		params := stripe.PayoutCreateParams{
			Amount:   stripe.Int64(toMinorUnits(amount)),
			Currency: stripe.String(currency),
			Metadata: map[string]string{"payee_email": *dest.Email},
		}
		po, err := sc.V1Payouts.Create(ctx, &params)
		if err != nil {
			return "", err
		}
		return po.ID, nil
	}
	return "", errors.New("no payout destination provided")
}
