package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"vrm/src/config"
	"vrm/src/db"
	"vrm/src/lib"
	"vrm/src/lib/mailer"
	"vrm/src/models"
	"vrm/src/types"
	"vrm/src/utils"

	"gorm.io/gorm"
)

// DisplayStatusOf projects a booking's stored status and rental window onto
// the status shown to users. Upcoming and Completed exist only here.
func DisplayStatusOf(booking *models.Booking, now time.Time) types.DisplayStatus {
	switch booking.Status {
	case types.BOOKING_PENDING:
		return types.DISPLAY_PENDING
	case types.BOOKING_CANCEL_REQUESTED:
		return types.DISPLAY_CANCEL_REQUESTED
	case types.BOOKING_CANCELED:
		return types.DISPLAY_CANCELED
	case types.BOOKING_ACTIVE:
		if booking.EndDate != nil && booking.EndDate.Before(now) {
			return types.DISPLAY_COMPLETED
		}
		if booking.StartDate != nil && booking.StartDate.After(now) {
			return types.DISPLAY_UPCOMING
		}
		return types.DISPLAY_ACTIVE
	}
	return types.DisplayStatus(booking.Status)
}

func rentalDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// CreateBooking validates the request, captures payment and persists the
// booking together with its ledger effects. The booking lands in Pending;
// money moves exactly once: charge from the customer, payout credited to the
// business's pending bucket, fees to platform revenue, commission to the
// referring affiliate when a code was supplied.
func CreateBooking(ctx context.Context, customerId uint, body *types.CreateBookingRequestBody) (*models.Booking, error) {
	gdb := db.GetDb()

	var customer models.Customer
	if err := gdb.Model(&models.Customer{}).Where("id = ?", customerId).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !customer.IdentityVerified {
		reason := "identity has not been verified"
		if customer.VerificationError != nil {
			reason = fmt.Sprintf("identity verification failed: %s", *customer.VerificationError)
		}
		return nil, NewValidationError(reason)
	}
	if body.LicenseImage == "" {
		return nil, NewValidationError("a driving licence image is required")
	}

	startDate, err := utils.ParseDate(body.StartDate)
	if err != nil {
		return nil, NewValidationError("invalid start date")
	}
	endDate, err := utils.ParseDate(body.EndDate)
	if err != nil {
		return nil, NewValidationError("invalid end date")
	}
	if !endDate.After(*startDate) {
		return nil, NewValidationError("end date must be after start date")
	}

	var vehicle models.Vehicle
	if err := gdb.Model(&models.Vehicle{}).Where("id = ?", body.VehicleID).First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("vehicle does not exist")
		}
		return nil, err
	}
	if vehicle.Status != types.VEHICLE_LISTED {
		return nil, NewValidationError("vehicle is not available for booking")
	}

	var business models.Business
	if err := gdb.Model(&models.Business{}).Where("id = ?", vehicle.BusinessID).First(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("business does not exist")
		}
		return nil, err
	}

	// An unknown affiliate code fails the booking rather than silently
	// dropping the referral.
	var affiliate *models.Affiliate
	if body.AffiliateCode != nil && *body.AffiliateCode != "" {
		var a models.Affiliate
		if err := gdb.Model(&models.Affiliate{}).Where("code = ?", *body.AffiliateCode).First(&a).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError("unknown affiliate code")
			}
			return nil, err
		}
		affiliate = &a
	}

	basePrice := vehicle.DailyRate * float64(rentalDays(*startDate, *endDate))
	fees, err := DefaultFees(basePrice)
	if err != nil {
		return nil, err
	}

	chargeId, err := lib.ChargePayment(ctx, utils.Round2(fees.TotalAmount), vehicle.Currency, customer.StripeCustomerId, map[string]string{
		"customerId": fmt.Sprint(customer.ID),
		"vehicleId":  fmt.Sprint(vehicle.ID),
	})
	if err != nil {
		log.Printf("Error charging payment for customer %d: %s\n", customer.ID, err.Error())
		return nil, NewExternalError("payment charge", err)
	}

	commission := 0.0
	if affiliate != nil {
		commission = CommissionFor(basePrice)
	}

	booking := models.Booking{
		VehicleID:          vehicle.ID,
		CustomerID:         customer.ID,
		BusinessID:         business.ID,
		StartDate:          startDate,
		EndDate:            endDate,
		BasePrice:          basePrice,
		BookingFee:         fees.BookingFee,
		ServiceFee:         fees.ServiceFee,
		TotalAmount:        fees.TotalAmount,
		Payout:             fees.Payout,
		Currency:           vehicle.Currency,
		FeeRate:            config.BOOKING_FEE_RATE,
		CancellationPolicy: vehicle.CancellationPolicy,
		Status:             types.BOOKING_PENDING,
		Refundable:         body.Refundable,
		LicenseImage:       body.LicenseImage,
		ChargeID:           &chargeId,
	}
	if affiliate != nil {
		booking.AffiliateID = &affiliate.ID
	}

	err = gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		if err := CreditPendingBalance(tx, business.ID, fees.Payout); err != nil {
			return err
		}
		if err := AddPlatformRevenue(tx, fees.BookingFee+fees.ServiceFee, 0); err != nil {
			return err
		}
		if affiliate != nil {
			// Zero-commission tiers still count the referral.
			if err := AccrueCommission(tx, affiliate.ID, commission); err != nil {
				return err
			}
		}
		txn := models.Transaction{
			BookingID:   &booking.ID,
			Kind:        types.TRANSACTION_CHARGE,
			Currency:    vehicle.Currency,
			Amount:      utils.Round2(fees.TotalAmount),
			ReferenceID: chargeId,
			Status:      types.TRANSACTION_COMPLETED,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		// The charge went through but nothing was persisted. Give the money
		// back before surfacing the failure.
		if _, rerr := lib.RefundPayment(ctx, chargeId, utils.Round2(fees.TotalAmount)); rerr != nil {
			log.Printf("Error reversing charge %s after failed booking creation: %s\n", chargeId, rerr.Error())
		}
		return nil, err
	}

	Notify(customer.Email, mailer.TemplateBookingReceived, booking.ID)
	AppendSystemMessage(booking.ID, fmt.Sprintf("Booking #%d requested, waiting for approval", booking.ID))

	return &booking, nil
}

// DecideBooking applies the business's approve/reject decision to a Pending
// booking. The status flip is a conditional UPDATE on the current status so
// two concurrent decisions cannot both land.
func DecideBooking(ctx context.Context, businessId uint, bookingId uint, decision types.BookingDecision) (*models.Booking, error) {
	gdb := db.GetDb()

	var booking models.Booking
	if err := gdb.
		Model(&models.Booking{}).
		Where("id = ?", bookingId).
		Preload("Customer").
		First(&booking).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if booking.BusinessID != businessId {
		return nil, ErrForbidden
	}
	if booking.Status != types.BOOKING_PENDING {
		return nil, ErrConflict
	}

	if decision == types.DECISION_REJECT {
		// The rejection only takes effect once the customer has their money
		// back; a refund failure leaves the booking Pending.
		if booking.ChargeID == nil {
			return nil, NewValidationError("no charge recorded for this booking")
		}
		refundId, err := lib.RefundPayment(ctx, *booking.ChargeID, utils.Round2(booking.TotalAmount))
		if err != nil {
			log.Printf("Error refunding charge for rejected booking %d: %s\n", booking.ID, err.Error())
			return nil, NewExternalError("payment refund", err)
		}
		err = gdb.Transaction(func(tx *gorm.DB) error {
			res := tx.
				Model(&models.Booking{}).
				Where("id = ? AND status = ?", booking.ID, types.BOOKING_PENDING).
				Update("status", types.BOOKING_CANCELED)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrConflict
			}
			if err := ReversePendingCredit(tx, booking.BusinessID, booking.Payout); err != nil {
				return err
			}
			txn := models.Transaction{
				BookingID:   &booking.ID,
				Kind:        types.TRANSACTION_REFUND,
				Currency:    booking.Currency,
				Amount:      utils.Round2(booking.TotalAmount),
				ReferenceID: refundId,
				Status:      types.TRANSACTION_COMPLETED,
			}
			return tx.Create(&txn).Error
		})
		if err != nil {
			return nil, err
		}
		booking.Status = types.BOOKING_CANCELED
		if booking.Customer != nil {
			Notify(booking.Customer.Email, mailer.TemplateBookingRejected, booking.ID)
		}
		AppendSystemMessage(booking.ID, fmt.Sprintf("Booking #%d was declined by the rental company", booking.ID))
		return &booking, nil
	}

	res := gdb.
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, types.BOOKING_PENDING).
		Update("status", types.BOOKING_ACTIVE)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrConflict
	}
	booking.Status = types.BOOKING_ACTIVE
	if booking.Customer != nil {
		Notify(booking.Customer.Email, mailer.TemplateBookingApproved, booking.ID)
	}
	AppendSystemMessage(booking.ID, fmt.Sprintf("Booking #%d was approved", booking.ID))
	return &booking, nil
}

// DeleteBooking soft-deletes a booking once it is terminal: cancelled, or
// active with the rental window fully in the past.
func DeleteBooking(ctx context.Context, customerId uint, bookingId uint) error {
	gdb := db.GetDb()
	var booking models.Booking
	if err := gdb.Model(&models.Booking{}).Where("id = ?", bookingId).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if booking.CustomerID != customerId {
		return ErrForbidden
	}
	now := time.Now().UTC()
	terminal := booking.Status == types.BOOKING_CANCELED ||
		(booking.Status == types.BOOKING_ACTIVE && booking.EndDate != nil && booking.EndDate.Before(now))
	if !terminal {
		return ErrConflict
	}
	return gdb.Delete(&models.Booking{}, booking.ID).Error
}
