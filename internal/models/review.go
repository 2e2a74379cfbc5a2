package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DoctorID   primitive.ObjectID `json:"doctor_id" bson:"doctor_id" validate:"required"`
	UserID     primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	ReviewText string             `json:"review_text" bson:"review_text" validate:"required,max=1000"`
	Rating     float64            `json:"rating" bson:"rating" validate:"min=0,max=5"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// ReviewWithAuthor carries the reviewer's public profile fields joined in,
// mirroring the populated review documents served to doctor pages.
type ReviewWithAuthor struct {
	Review `bson:",inline"`
	Author *PatientProfile `json:"user,omitempty" bson:"user,omitempty"`
}

// RatingStats is the result of the per-doctor review aggregation.
type RatingStats struct {
	Count   int     `bson:"count"`
	Average float64 `bson:"average"`
}
