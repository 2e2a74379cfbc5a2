package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	// BookingPendingPayment is the initial state: the checkout session
	// exists but the payer has not completed payment yet.
	BookingPendingPayment BookingStatus = "pending_payment"
	// BookingPaid is set by the payment webhook once the provider
	// confirms the payment.
	BookingPaid      BookingStatus = "paid"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingExpired   BookingStatus = "expired"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DoctorID        primitive.ObjectID `json:"doctor_id" bson:"doctor_id" validate:"required"`
	UserID          primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	TicketPrice     float64            `json:"ticket_price" bson:"ticket_price"`
	Status          BookingStatus      `json:"status" bson:"status" default:"pending_payment"`
	IsPaid          bool               `json:"is_paid" bson:"is_paid" default:"false"`
	AppointmentDate time.Time          `json:"appointment_date" bson:"appointment_date" validate:"required"`
	AppointmentTime string             `json:"appointment_time" bson:"appointment_time" validate:"required"`
	SessionID       string             `json:"session_id" bson:"session_id"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// ConsumesSlot reports whether a booking in this status counts toward the
// doctor's daily capacity. Expired, cancelled and rejected bookings release
// their slot.
func (s BookingStatus) ConsumesSlot() bool {
	switch s {
	case BookingPendingPayment, BookingPaid, BookingApproved:
		return true
	}
	return false
}

// CanTransitionTo encodes the booking lifecycle:
// pending_payment -> paid | expired | cancelled, paid -> approved | rejected.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPendingPayment:
		return next == BookingPaid || next == BookingExpired || next == BookingCancelled
	case BookingPaid:
		return next == BookingApproved || next == BookingRejected || next == BookingCancelled
	case BookingApproved:
		return next == BookingCancelled
	}
	return false
}

// SlotConsumingStatuses lists the statuses counted by the slot allocator.
func SlotConsumingStatuses() []BookingStatus {
	return []BookingStatus{BookingPendingPayment, BookingPaid, BookingApproved}
}
