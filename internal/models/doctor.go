package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApprovalStatus string

const (
	ApprovalPending   ApprovalStatus = "pending"
	ApprovalApproved  ApprovalStatus = "approved"
	ApprovalCancelled ApprovalStatus = "cancelled"
)

type Qualification struct {
	Degree     string     `json:"degree" bson:"degree"`
	University string     `json:"university" bson:"university"`
	StartDate  *time.Time `json:"start_date" bson:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date" bson:"end_date,omitempty"`
}

type Experience struct {
	Position  string     `json:"position" bson:"position"`
	Hospital  string     `json:"hospital" bson:"hospital"`
	StartDate *time.Time `json:"start_date" bson:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date" bson:"end_date,omitempty"`
}

type TimeSlot struct {
	Day       string `json:"day" bson:"day"`
	StartTime string `json:"start_time" bson:"start_time"`
	EndTime   string `json:"end_time" bson:"end_time"`
}

type Doctor struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email          string             `json:"email" bson:"email" validate:"required,email"`
	Password       string             `json:"-" bson:"password"`
	Photo          string             `json:"photo" bson:"photo"`
	Gender         string             `json:"gender" bson:"gender"`
	Phone          string             `json:"phone" bson:"phone"`
	Specialization string             `json:"specialization" bson:"specialization"`
	Bio            string             `json:"bio" bson:"bio"`
	About          string             `json:"about" bson:"about"`
	TicketPrice    float64            `json:"ticket_price" bson:"ticket_price"`
	Qualifications []Qualification    `json:"qualifications" bson:"qualifications"`
	Experiences    []Experience       `json:"experiences" bson:"experiences"`
	TimeSlots      []TimeSlot         `json:"time_slots" bson:"time_slots"`
	Role           Role               `json:"role" bson:"role" default:"doctor"`
	IsApproved     ApprovalStatus     `json:"is_approved" bson:"is_approved" default:"pending"`
	EmailVerified  bool               `json:"email_verified" bson:"email_verified" default:"false"`

	// Derived aggregate fields, written only by the rating recompute.
	// TotalRating is the review count, AverageRating the mean of their
	// ratings (0 when no reviews exist).
	TotalRating   int     `json:"total_rating" bson:"total_rating"`
	AverageRating float64 `json:"average_rating" bson:"average_rating"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
