package validators

type CheckoutRequest struct {
	AppointmentDate string `json:"appointment_date" validate:"required,appointment_date"`
	AppointmentTime string `json:"appointment_time" validate:"required,max=20"`
}

func ValidateCheckout(req *CheckoutRequest) ValidationErrors {
	return ValidateStruct(req)
}
