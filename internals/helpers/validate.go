package helper

import (
	"github.com/go-playground/validator/v10"

	"artcc_backend/internals/apperr"
)

var validate = validator.New()

// BodyParseFailure wraps a body decoding error so malformed payloads
// answer with the same failure shape as tag violations.
func BodyParseFailure(err error) []apperr.FieldFailure {
	return []apperr.FieldFailure{{
		PropertyName: "request",
		ErrorMessage: "Request body could not be parsed: " + err.Error(),
	}}
}

// ValidateStruct runs validator.v10 over a request DTO and converts tag
// violations into the structured failure list the API answers with.
func ValidateStruct(s interface{}) []apperr.FieldFailure {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []apperr.FieldFailure{{
			PropertyName: "request",
			ErrorMessage: "Invalid request body",
		}}
	}

	failures := make([]apperr.FieldFailure, 0, len(ve))
	for _, fe := range ve {
		msg := "is invalid"
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "min":
			msg = "must be at least " + fe.Param()
		case "max":
			msg = "must be at most " + fe.Param()
		case "email":
			msg = "must be a valid email address"
		case "len":
			msg = "must have length " + fe.Param()
		case "gte":
			msg = "must be greater than or equal to " + fe.Param()
		case "oneof":
			msg = "must be one of " + fe.Param()
		}
		failures = append(failures, apperr.FieldFailure{
			PropertyName:   fe.Field(),
			AttemptedValue: fe.Value(),
			ErrorMessage:   fe.Field() + " " + msg,
		})
	}
	return failures
}
