package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SenderRole string

const (
	SenderRolePatient SenderRole = "patient"
	SenderRoleDoctor  SenderRole = "doctor"
)

// Message is an append-only chat entry between a patient and a doctor.
// A conversation is the set of messages matching the pair in either
// direction, ordered by creation time ascending.
type Message struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SenderID   primitive.ObjectID `json:"sender_id" bson:"sender_id" validate:"required"`
	ReceiverID primitive.ObjectID `json:"receiver_id" bson:"receiver_id" validate:"required"`
	SenderRole SenderRole         `json:"sender_role" bson:"sender_role" validate:"required,oneof=patient doctor"`
	Message    string             `json:"message" bson:"message" validate:"required,max=1000"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}
