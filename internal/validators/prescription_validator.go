package validators

type PrescriptionItemRequest struct {
	Medicine  string `json:"medicine" validate:"required,not_blank,max=200"`
	Dosage    string `json:"dosage" validate:"omitempty,max=100"`
	Frequency string `json:"frequency" validate:"omitempty,max=100"`
	Duration  string `json:"duration" validate:"omitempty,max=100"`
	Notes     string `json:"notes" validate:"omitempty,max=500"`
}

type PrescriptionCreateRequest struct {
	PatientID string                    `json:"patient_id" validate:"required,object_id"`
	Items     []PrescriptionItemRequest `json:"items" validate:"required,min=1,dive"`
}

func ValidatePrescriptionCreate(req *PrescriptionCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}
