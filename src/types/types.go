package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Metadata = JSONB

type CallerRole string

const (
	ROLE_CUSTOMER  CallerRole = "customer"
	ROLE_BUSINESS  CallerRole = "business"
	ROLE_AFFILIATE CallerRole = "affiliate"
	ROLE_ADMIN     CallerRole = "admin"
)

type BookingStatus string

const (
	BOOKING_PENDING          BookingStatus = "pending"
	BOOKING_ACTIVE           BookingStatus = "active"
	BOOKING_CANCEL_REQUESTED BookingStatus = "cancelRequested"
	BOOKING_CANCELED         BookingStatus = "cancelled"
)

// DisplayStatus values are read-time projections over status and the rental
// window. Upcoming and Completed are never persisted.
type DisplayStatus string

const (
	DISPLAY_PENDING          DisplayStatus = "pending"
	DISPLAY_UPCOMING         DisplayStatus = "upcoming"
	DISPLAY_ACTIVE           DisplayStatus = "active"
	DISPLAY_COMPLETED        DisplayStatus = "completed"
	DISPLAY_CANCEL_REQUESTED DisplayStatus = "cancelRequested"
	DISPLAY_CANCELED         DisplayStatus = "cancelled"
)

type RefundRequestStatus string

const (
	REFUND_REQUEST_PENDING  RefundRequestStatus = "pending"
	REFUND_REQUEST_APPROVED RefundRequestStatus = "approved"
	REFUND_REQUEST_REJECTED RefundRequestStatus = "rejected"
)

type CancellationPolicy string

const (
	POLICY_STRICT   CancellationPolicy = "strict"
	POLICY_MODERATE CancellationPolicy = "moderate"
	POLICY_NONE     CancellationPolicy = "none"
)

type BookingDecision string

const (
	DECISION_APPROVE BookingDecision = "approve"
	DECISION_REJECT  BookingDecision = "reject"
)

type TransactionStatus string

const (
	TRANSACTION_PENDING   TransactionStatus = "pending"
	TRANSACTION_COMPLETED TransactionStatus = "completed"
	TRANSACTION_FAILED    TransactionStatus = "failed"
	TRANSACTION_CANCELED  TransactionStatus = "canceled"
)

type TransactionKind string

const (
	TRANSACTION_CHARGE TransactionKind = "charge"
	TRANSACTION_REFUND TransactionKind = "refund"
	TRANSACTION_PAYOUT TransactionKind = "payout"
)

type WithdrawalMethod string

const (
	WITHDRAW_BANK   WithdrawalMethod = "bank"
	WITHDRAW_PAYPAL WithdrawalMethod = "paypal"
)

type WithdrawalStatus string

const (
	WITHDRAWAL_COMPLETED WithdrawalStatus = "completed"
	WITHDRAWAL_FAILED    WithdrawalStatus = "failed"
)

type VehicleStatus string

const (
	VEHICLE_LISTED   VehicleStatus = "listed"
	VEHICLE_UNLISTED VehicleStatus = "unlisted"
)

type Claims struct {
	Email string     `json:"email"`
	Role  CallerRole `json:"role"`
	jwt.RegisteredClaims
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateBookingRequestBody struct {
	VehicleID     uint    `json:"vehicle" binding:"required"`
	StartDate     string  `json:"start_date" binding:"required,rentaldate" time_format:"2006-01-02"`
	EndDate       string  `json:"end_date" binding:"required,rentaldate,gtdatefield=StartDate" time_format:"2006-01-02"`
	Refundable    bool    `json:"refundable,omitempty"`
	LicenseImage  string  `json:"license_image" binding:"required"`
	AffiliateCode *string `json:"affiliate_code,omitempty"`
}

type BookingDecisionRequestBody struct {
	Decision BookingDecision `json:"decision" binding:"required,oneof=approve reject"`
}

type ResolveRefundRequestBody struct {
	Decision BookingDecision `json:"decision" binding:"required,oneof=approve reject"`
}

type CreateWithdrawalRequestBody struct {
	Amount float64          `json:"amount" binding:"required,gt=0"`
	Method WithdrawalMethod `json:"method" binding:"required,oneof=bank paypal"`
	Email  *string          `json:"email,omitempty"`
}

type CreateVehicleRequestBody struct {
	Make               string             `json:"make" binding:"required"`
	Model              string             `json:"model" binding:"required"`
	Year               uint               `json:"year" binding:"required"`
	DailyRate          float64            `json:"daily_rate" binding:"required,gt=0"`
	Currency           string             `json:"currency,omitempty"`
	CancellationPolicy CancellationPolicy `json:"cancellation_policy" binding:"required,oneof=strict moderate none"`
	Location           string             `json:"location,omitempty"`
}

type RegisterRequestBody struct {
	Name  string     `json:"name" binding:"required"`
	Email string     `json:"email" binding:"required,email"`
	Role  CallerRole `json:"role" binding:"required,oneof=customer business affiliate admin"`
}

type LoginRequestBody struct {
	Email string     `json:"email" binding:"required,email"`
	Role  CallerRole `json:"role" binding:"required,oneof=customer business affiliate admin"`
}

type APIResponseBooking struct {
	ID           uint          `json:"id"`
	VehicleID    uint          `json:"vehicle_id,omitempty"`
	Status       DisplayStatus `json:"status,omitempty"`
	StartDate    *time.Time    `json:"start_date,omitempty"`
	EndDate      *time.Time    `json:"end_date,omitempty"`
	BasePrice    float64       `json:"base_price,omitempty"`
	BookingFee   float64       `json:"booking_fee,omitempty"`
	ServiceFee   float64       `json:"service_fee,omitempty"`
	TotalAmount  float64       `json:"total_amount,omitempty"`
	Payout       float64       `json:"payout,omitempty"`
	RefundAmount *float64      `json:"refund_amount,omitempty"`
	Currency     string        `json:"currency,omitempty"`
	Refundable   bool          `json:"refundable,omitempty"`
	Released     bool          `json:"released,omitempty"`
	CustomerID   uint          `json:"customer_id,omitempty"`
	BusinessID   uint          `json:"business_id,omitempty"`
	AffiliateID  *uint         `json:"affiliate_id,omitempty"`
}
