package validators

type ReviewCreateRequest struct {
	ReviewText string  `json:"review_text" validate:"required,not_blank,max=1000"`
	Rating     float64 `json:"rating" validate:"rating_value"`
}

func ValidateReviewCreate(req *ReviewCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}
