package config

import (
	"fmt"
	"os"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"
const DATE_PARSE_FORMAT = "2006-01-02"

// Platform business constants. Bookings snapshot the rates in effect at
// creation time so a config change never rewrites history.
const (
	BOOKING_FEE_RATE    = 0.05
	SERVICE_FEE_RATE    = 0.05
	WITHDRAWAL_FEE_RATE = 0.05

	COMMISSION_TIER_HIGH   = 700.0
	COMMISSION_TIER_MID    = 250.0
	COMMISSION_AMOUNT_HIGH = 10.0
	COMMISSION_AMOUNT_MID  = 5.0

	DEFAULT_CURRENCY = "gbp"
)

var API_ENV = os.Getenv("API_ENV")
var API_HOST = os.Getenv("API_HOST")
