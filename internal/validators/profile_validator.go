package validators

type UserUpdateRequest struct {
	Name      string `json:"name" validate:"omitempty,min=2,max=100"`
	Photo     string `json:"photo" validate:"omitempty,url"`
	Gender    string `json:"gender" validate:"omitempty,oneof=male female other"`
	BloodType string `json:"blood_type" validate:"omitempty,max=5"`
}

type TimeSlotRequest struct {
	Day       string `json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type DoctorUpdateRequest struct {
	Name           string            `json:"name" validate:"omitempty,min=2,max=100"`
	Photo          string            `json:"photo" validate:"omitempty,url"`
	Gender         string            `json:"gender" validate:"omitempty,oneof=male female other"`
	Phone          string            `json:"phone" validate:"omitempty,max=20"`
	Specialization string            `json:"specialization" validate:"omitempty,max=100"`
	Bio            string            `json:"bio" validate:"omitempty,max=200"`
	About          string            `json:"about" validate:"omitempty,max=2000"`
	TicketPrice    float64           `json:"ticket_price" validate:"omitempty,gte=0"`
	TimeSlots      []TimeSlotRequest `json:"time_slots" validate:"omitempty,dive"`
}

type DoctorApprovalRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved cancelled"`
}

type ContactDoctorRequest struct {
	Subject string `json:"subject" validate:"required,not_blank,max=200"`
	Message string `json:"message" validate:"required,not_blank,max=2000"`
}

func ValidateUserUpdate(req *UserUpdateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateDoctorUpdate(req *DoctorUpdateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateContactDoctor(req *ContactDoctorRequest) ValidationErrors {
	return ValidateStruct(req)
}
