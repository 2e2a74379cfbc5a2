package validators

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifeline/internal/utils"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("rating_value", validateRatingValue)
	validate.RegisterValidation("appointment_date", validateAppointmentDate)
	validate.RegisterValidation("not_blank", validateNotBlank)
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

func ValidateStruct(s interface{}) ValidationErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors ValidationErrors
	for _, fieldErr := range err.(validator.ValidationErrors) {
		validationErrors = append(validationErrors, ValidationError{
			Field:   strings.ToLower(fieldErr.Field()),
			Tag:     fieldErr.Tag(),
			Message: messageForTag(fieldErr),
		})
	}

	return validationErrors
}

func messageForTag(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fieldErr.Param())
	case "object_id":
		return "must be a valid object id"
	case "rating_value":
		return fmt.Sprintf("must be between %v and %v", utils.MinReviewRating, utils.MaxReviewRating)
	case "appointment_date":
		return "must be a date in YYYY-MM-DD format"
	case "not_blank":
		return "must not be blank"
	default:
		return "is invalid"
	}
}

func validateObjectID(fl validator.FieldLevel) bool {
	if oid, ok := fl.Field().Interface().(primitive.ObjectID); ok {
		return !oid.IsZero()
	}
	_, err := primitive.ObjectIDFromHex(fl.Field().String())
	return err == nil
}

func validateRatingValue(fl validator.FieldLevel) bool {
	rating := fl.Field().Float()
	return rating >= utils.MinReviewRating && rating <= utils.MaxReviewRating
}

func validateAppointmentDate(fl validator.FieldLevel) bool {
	_, err := utils.ParseAppointmentDate(fl.Field().String())
	return err == nil
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return !utils.IsBlank(fl.Field().String())
}
