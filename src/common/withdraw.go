package common

import (
	"context"
	"errors"
	"log"

	"vrm/src/config"
	"vrm/src/db"
	"vrm/src/lib"
	"vrm/src/lib/mailer"
	"vrm/src/models"
	"vrm/src/types"
	"vrm/src/utils"

	"gorm.io/gorm"
)

// WithdrawalBreakdown splits a requested withdrawal into the retained service
// fee and the net amount that leaves through the payment provider.
func WithdrawalBreakdown(amount float64) (serviceFee, netAmount float64) {
	serviceFee = utils.Round2(amount * config.WITHDRAWAL_FEE_RATE)
	netAmount = utils.Round2(amount - serviceFee)
	return serviceFee, netAmount
}

// Withdraw pays a business's available balance out to its configured
// destination. The platform keeps a 5% service fee: the net amount leaves
// through the payment provider while the full requested amount is debited
// from the account. The debit happens only after the external payout
// succeeds; a failed payout leaves the balance untouched.
func Withdraw(ctx context.Context, businessId uint, body *types.CreateWithdrawalRequestBody) (*models.Withdrawal, error) {
	gdb := db.GetDb()

	var business models.Business
	if err := gdb.Model(&models.Business{}).Where("id = ?", businessId).First(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if body.Amount <= 0 {
		return nil, NewValidationError("amount must be greater than zero")
	}
	if body.Amount > business.AvailableBalance {
		return nil, ErrInsufficientFunds
	}

	var dest lib.PayoutDestination
	switch body.Method {
	case types.WITHDRAW_BANK:
		if business.StripeAccountID == nil {
			return nil, NewValidationError("no linked payout account on file")
		}
		dest.AccountID = business.StripeAccountID
	case types.WITHDRAW_PAYPAL:
		email := business.PayoutEmail
		if body.Email != nil && *body.Email != "" {
			email = body.Email
		}
		if email == nil || *email == "" {
			return nil, NewValidationError("a payout email address is required")
		}
		dest.Email = email
	default:
		return nil, NewValidationError("unsupported withdrawal method")
	}

	serviceFee, netAmount := WithdrawalBreakdown(body.Amount)

	reference, err := lib.SendPayout(ctx, netAmount, config.DEFAULT_CURRENCY, dest)
	if err != nil {
		log.Printf("Error sending payout for business %d: %s\n", business.ID, err.Error())
		failed := models.Withdrawal{
			BusinessID: business.ID,
			Amount:     body.Amount,
			ServiceFee: serviceFee,
			NetAmount:  netAmount,
			Currency:   config.DEFAULT_CURRENCY,
			Method:     body.Method,
			Status:     types.WITHDRAWAL_FAILED,
		}
		if cerr := gdb.Create(&failed).Error; cerr != nil {
			log.Printf("Error recording failed withdrawal for business %d: %s\n", business.ID, cerr.Error())
		}
		return nil, NewExternalError("payout transfer", err)
	}

	withdrawal := models.Withdrawal{
		BusinessID: business.ID,
		Amount:     body.Amount,
		ServiceFee: serviceFee,
		NetAmount:  netAmount,
		Currency:   config.DEFAULT_CURRENCY,
		Method:     body.Method,
		Reference:  &reference,
		Status:     types.WITHDRAWAL_COMPLETED,
	}
	err = gdb.Transaction(func(tx *gorm.DB) error {
		if err := DebitAvailableBalance(tx, business.ID, body.Amount); err != nil {
			return err
		}
		if err := AddPlatformRevenue(tx, 0, serviceFee); err != nil {
			return err
		}
		txn := models.Transaction{
			Kind:        types.TRANSACTION_PAYOUT,
			Currency:    config.DEFAULT_CURRENCY,
			Amount:      netAmount,
			ReferenceID: reference,
			Status:      types.TRANSACTION_COMPLETED,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		return tx.Create(&withdrawal).Error
	})
	if err != nil {
		// The payout already left; this only happens when a concurrent
		// withdrawal drained the balance between validation and debit.
		log.Printf("Error debiting withdrawal for business %d after payout %s: %s\n", business.ID, reference, err.Error())
		return nil, err
	}

	Notify(business.ContactEmail, mailer.TemplateWithdrawalSent, netAmount)

	return &withdrawal, nil
}
