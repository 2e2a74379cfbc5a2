package validators

type MessageSendRequest struct {
	Message string `json:"message" validate:"required,not_blank,max=1000"`
}

func ValidateMessageSend(req *MessageSendRequest) ValidationErrors {
	return ValidateStruct(req)
}
