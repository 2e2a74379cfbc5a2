package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PrescriptionItem struct {
	Medicine  string `json:"medicine" bson:"medicine" validate:"required"`
	Dosage    string `json:"dosage" bson:"dosage"`
	Frequency string `json:"frequency" bson:"frequency"`
	Duration  string `json:"duration" bson:"duration"`
	Notes     string `json:"notes" bson:"notes"`
}

type Prescription struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DoctorID  primitive.ObjectID `json:"doctor_id" bson:"doctor_id" validate:"required"`
	PatientID primitive.ObjectID `json:"patient_id" bson:"patient_id" validate:"required"`
	Items     []PrescriptionItem `json:"items" bson:"items" validate:"required,min=1,dive"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
