package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// User is a patient account. Doctors live in their own collection with a
// similar shape; login resolves an email against both.
type User struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name                 string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email                string             `json:"email" bson:"email" validate:"required,email"`
	Password             string             `json:"-" bson:"password"`
	Photo                string             `json:"photo" bson:"photo"`
	Gender               string             `json:"gender" bson:"gender"`
	BloodType            string             `json:"blood_type" bson:"blood_type"`
	Role                 Role               `json:"role" bson:"role" default:"patient"`
	IsPremium            bool               `json:"is_premium" bson:"is_premium" default:"false"`
	EmailVerified        bool               `json:"email_verified" bson:"email_verified" default:"false"`
	VerificationToken    string             `json:"-" bson:"verification_token,omitempty"`
	ResetPasswordToken   string             `json:"-" bson:"reset_password_token,omitempty"`
	ResetPasswordExpires *time.Time         `json:"-" bson:"reset_password_expires,omitempty"`
	CreatedAt            time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at" bson:"updated_at"`
}

// UserWithBookingCount decorates a user with how many bookings they have
// made, for the admin listing.
type UserWithBookingCount struct {
	User          `bson:",inline"`
	BookingsCount int64 `json:"bookings_count" bson:"bookings_count"`
}

// PatientProfile is the reduced projection returned by the doctor-facing
// patient list (only public profile fields are joined in).
type PatientProfile struct {
	ID     primitive.ObjectID `json:"id" bson:"_id"`
	Name   string             `json:"name" bson:"name"`
	Email  string             `json:"email" bson:"email"`
	Photo  string             `json:"photo" bson:"photo"`
	Gender string             `json:"gender" bson:"gender"`
}
