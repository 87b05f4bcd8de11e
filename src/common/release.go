package common

import (
	"context"
	"log"
	"time"

	"vrm/src/db"
	"vrm/src/lib"
	"vrm/src/models"
	"vrm/src/types"

	"gorm.io/gorm"
)

// ReleaseResult reports a release batch's outcome.
type ReleaseResult struct {
	Released int     `json:"released"`
	Amount   float64 `json:"amount"`
}

// ReleaseDuePayouts moves the payout of every approved booking whose rental
// has started from the business's pending bucket to its available bucket.
// Each booking is handled in its own transaction: the released flag is
// flipped by a conditional UPDATE and the balance move happens in the same
// transaction, so a concurrent run cannot double-credit and an interrupted
// batch keeps the progress it made. Calling it again with nothing eligible
// is a no-op.
func ReleaseDuePayouts(ctx context.Context, businessId uint) (*ReleaseResult, error) {
	locked, err := lib.AcquireReleaseLock(ctx, businessId, 2*time.Minute)
	if err != nil {
		log.Printf("Error acquiring release lock for business %d: %s\n", businessId, err.Error())
	}
	if !locked {
		return nil, ErrConflict
	}
	defer lib.ReleaseReleaseLock(ctx, businessId)

	gdb := db.GetDb()
	now := time.Now().UTC()

	var due []models.Booking
	if err := gdb.
		Model(&models.Booking{}).
		Where("business_id = ? AND released = ? AND start_date <= ?", businessId, false, now).
		Where("status IN ?", []types.BookingStatus{types.BOOKING_ACTIVE, types.BOOKING_CANCEL_REQUESTED}).
		Select("id", "payout").
		Find(&due).
		Error; err != nil {
		return nil, err
	}

	result := &ReleaseResult{}
	for _, booking := range due {
		if err := ctx.Err(); err != nil {
			// Partial progress stands; the remainder is picked up next run.
			log.Printf("Release batch for business %d interrupted after %d bookings\n", businessId, result.Released)
			return result, err
		}
		err := gdb.Transaction(func(tx *gorm.DB) error {
			res := tx.
				Model(&models.Booking{}).
				Where("id = ? AND released = ?", booking.ID, false).
				UpdateColumn("released", true)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Another run got here first.
				return nil
			}
			if err := MovePendingToAvailable(tx, businessId, booking.Payout); err != nil {
				return err
			}
			result.Released++
			result.Amount += booking.Payout
			return nil
		})
		if err != nil {
			log.Printf("Error releasing payout for booking %d: %s\n", booking.ID, err.Error())
			return result, err
		}
	}
	return result, nil
}

// ReleaseAllDuePayouts runs the release batch for every business with
// eligible bookings. Wired to the periodic scheduler job.
func ReleaseAllDuePayouts(ctx context.Context) {
	gdb := db.GetDb()
	now := time.Now().UTC()
	var businessIds []uint
	if err := gdb.
		Model(&models.Booking{}).
		Where("released = ? AND start_date <= ?", false, now).
		Where("status IN ?", []types.BookingStatus{types.BOOKING_ACTIVE, types.BOOKING_CANCEL_REQUESTED}).
		Distinct().
		Pluck("business_id", &businessIds).
		Error; err != nil {
		log.Printf("Error listing businesses with due payouts: %s\n", err.Error())
		return
	}
	for _, id := range businessIds {
		if _, err := ReleaseDuePayouts(ctx, id); err != nil {
			log.Printf("Error releasing payouts for business %d: %s\n", id, err.Error())
		}
	}
}
