package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"vrm/src/db"
	"vrm/src/lib"
	"vrm/src/lib/mailer"
	"vrm/src/models"
	"vrm/src/types"
	"vrm/src/utils"

	"gorm.io/gorm"
)

// RequestCancellation handles a customer asking to cancel their booking.
// A Pending booking is cancelled outright with a full refund. An Active one
// moves to cancelRequested with a pending RefundRequest awaiting the
// business's decision; a booking can hold at most one pending request.
func RequestCancellation(ctx context.Context, customerId uint, bookingId uint) (*models.RefundRequest, error) {
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
	if booking.CustomerID != customerId {
		return nil, ErrForbidden
	}
	if !booking.Refundable {
		return nil, NewValidationError("this booking was made at a non-refundable rate")
	}

	switch booking.Status {
	case types.BOOKING_PENDING:
		// Not yet approved: cancel outright, full refund.
		if booking.ChargeID == nil {
			return nil, NewValidationError("no charge recorded for this booking")
		}
		refundId, err := lib.RefundPayment(ctx, *booking.ChargeID, utils.Round2(booking.TotalAmount))
		if err != nil {
			log.Printf("Error refunding charge for booking %d: %s\n", booking.ID, err.Error())
			return nil, NewExternalError("payment refund", err)
		}
		amount := utils.Round2(booking.TotalAmount)
		err = gdb.Transaction(func(tx *gorm.DB) error {
			res := tx.
				Model(&models.Booking{}).
				Where("id = ? AND status = ?", booking.ID, types.BOOKING_PENDING).
				Updates(map[string]any{
					"status":        types.BOOKING_CANCELED,
					"refund_amount": amount,
				})
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
				Amount:      amount,
				ReferenceID: refundId,
				Status:      types.TRANSACTION_COMPLETED,
			}
			return tx.Create(&txn).Error
		})
		if err != nil {
			return nil, err
		}
		if booking.Customer != nil {
			Notify(booking.Customer.Email, mailer.TemplateRefundApproved, booking.ID, amount)
		}
		AppendSystemMessage(booking.ID, fmt.Sprintf("Booking #%d was cancelled by the customer before approval", booking.ID))
		return nil, nil

	case types.BOOKING_ACTIVE:
		var request models.RefundRequest
		err := gdb.Transaction(func(tx *gorm.DB) error {
			// The uniqueness check and the creation share the transaction so
			// a concurrent second request cannot slip through.
			var pending int64
			if err := tx.
				Model(&models.RefundRequest{}).
				Where("booking_id = ? AND status = ?", booking.ID, types.REFUND_REQUEST_PENDING).
				Count(&pending).
				Error; err != nil {
				return err
			}
			if pending > 0 {
				return ErrConflict
			}
			res := tx.
				Model(&models.Booking{}).
				Where("id = ? AND status = ?", booking.ID, types.BOOKING_ACTIVE).
				Update("status", types.BOOKING_CANCEL_REQUESTED)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrConflict
			}
			request = models.RefundRequest{
				BookingID:   booking.ID,
				CustomerID:  booking.CustomerID,
				Status:      types.REFUND_REQUEST_PENDING,
				RequestedAt: time.Now().UTC(),
			}
			return tx.Create(&request).Error
		})
		if err != nil {
			return nil, err
		}
		AppendSystemMessage(booking.ID, fmt.Sprintf("Customer requested to cancel booking #%d", booking.ID))
		return &request, nil

	default:
		return nil, ErrConflict
	}
}

// ResolveRefundRequest applies the business's (or an admin's) decision to a
// pending refund request. Approval computes the refund from the policy
// snapshotted at booking time and the days remaining now, at processing
// time; an external refund failure leaves the request pending.
func ResolveRefundRequest(ctx context.Context, callerRole types.CallerRole, callerId uint, requestId uint, decision types.BookingDecision) (*models.RefundRequest, error) {
	gdb := db.GetDb()

	var request models.RefundRequest
	if err := gdb.
		Model(&models.RefundRequest{}).
		Where("id = ?", requestId).
		Preload("Booking").
		Preload("Booking.Customer").
		First(&request).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if request.Booking == nil {
		return nil, ErrNotFound
	}
	booking := request.Booking
	if callerRole == types.ROLE_BUSINESS && booking.BusinessID != callerId {
		return nil, ErrForbidden
	}
	if request.Status != types.REFUND_REQUEST_PENDING {
		return nil, ErrConflict
	}

	now := time.Now().UTC()

	if decision == types.DECISION_REJECT {
		err := gdb.Transaction(func(tx *gorm.DB) error {
			res := tx.
				Model(&models.RefundRequest{}).
				Where("id = ? AND status = ?", request.ID, types.REFUND_REQUEST_PENDING).
				Updates(map[string]any{
					"status":       types.REFUND_REQUEST_REJECTED,
					"processed_at": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrConflict
			}
			// The booking returns to its pre-request state.
			return tx.
				Model(&models.Booking{}).
				Where("id = ? AND status = ?", booking.ID, types.BOOKING_CANCEL_REQUESTED).
				Update("status", types.BOOKING_ACTIVE).
				Error
		})
		if err != nil {
			return nil, err
		}
		request.Status = types.REFUND_REQUEST_REJECTED
		request.ProcessedAt = &now
		if booking.Customer != nil {
			Notify(booking.Customer.Email, mailer.TemplateRefundRejected, booking.ID)
		}
		AppendSystemMessage(booking.ID, fmt.Sprintf("Cancellation request for booking #%d was declined", booking.ID))
		return &request, nil
	}

	if booking.StartDate == nil {
		return nil, NewValidationError("booking has no start date")
	}
	amount := RefundAmount(booking.TotalAmount, booking.CancellationPolicy, *booking.StartDate, now)

	var refundId string
	if amount > 0 {
		if booking.ChargeID == nil {
			return nil, NewValidationError("no charge recorded for this booking")
		}
		rid, err := lib.RefundPayment(ctx, *booking.ChargeID, amount)
		if err != nil {
			log.Printf("Error refunding charge for booking %d: %s\n", booking.ID, err.Error())
			return nil, NewExternalError("payment refund", err)
		}
		refundId = rid
	}

	err := gdb.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.RefundRequest{}).
			Where("id = ? AND status = ?", request.ID, types.REFUND_REQUEST_PENDING).
			Updates(map[string]any{
				"status":        types.REFUND_REQUEST_APPROVED,
				"processed_at":  now,
				"refund_amount": amount,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]any{
				"status":        types.BOOKING_CANCELED,
				"refund_amount": amount,
			}).
			Error; err != nil {
			return err
		}
		if !booking.Released {
			if err := ReversePendingCredit(tx, booking.BusinessID, booking.Payout); err != nil {
				return err
			}
		}
		if refundId != "" {
			txn := models.Transaction{
				BookingID:   &booking.ID,
				Kind:        types.TRANSACTION_REFUND,
				Currency:    booking.Currency,
				Amount:      amount,
				ReferenceID: refundId,
				Status:      types.TRANSACTION_COMPLETED,
			}
			if err := tx.Create(&txn).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	request.Status = types.REFUND_REQUEST_APPROVED
	request.ProcessedAt = &now
	request.RefundAmount = &amount
	if booking.Customer != nil {
		Notify(booking.Customer.Email, mailer.TemplateRefundApproved, booking.ID, amount)
	}
	AppendSystemMessage(booking.ID, fmt.Sprintf("Cancellation request for booking #%d was approved", booking.ID))
	return &request, nil
}
