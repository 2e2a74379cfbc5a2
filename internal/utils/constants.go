package utils

import "time"

// Application Constants
const (
	AppName    = "Lifeline"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage = "en"
	DefaultCurrency = "INR"
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 15 * 24 * time.Hour
	JWTRefreshTokenTTL = 30 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128
	ResetTokenLength   = 40
	ResetTokenExpiry   = time.Hour

	// Booking Constants
	DailyBookingCapacity = 10
	SlotLockExpiry       = 10 * time.Second

	// Review Constants
	MinReviewRating     = 0.0
	MaxReviewRating     = 5.0
	MaxReviewTextLength = 1000

	// Messaging
	MaxMessageLength = 1000

	// Premium upgrade
	PremiumUpgradePrice = 1000.0

	// Notification
	NotificationTimeout = 30 * time.Second

	// Cache TTLs
	DoctorCacheTTL = 15 * time.Minute
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrUserNotFound       = "user not found"
	ErrDoctorNotFound     = "doctor not found"
	ErrBookingNotFound    = "booking not found"
	ErrUserExists         = "user already exists"
	ErrInvalidToken       = "invalid token"
	ErrTokenExpired       = "token expired"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrNotFound           = "not found"
	ErrValidationFailed   = "validation failed"
	ErrPaymentFailed      = "payment failed"
	ErrSlotsFullyBooked   = "appointment slots for this date are fully booked"
)

// Collection Names
const (
	CollectionUsers         = "users"
	CollectionDoctors       = "doctors"
	CollectionBookings      = "bookings"
	CollectionReviews       = "reviews"
	CollectionMessages      = "messages"
	CollectionPrescriptions = "prescriptions"
)
