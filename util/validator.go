package util

import "github.com/go-playground/validator/v10"

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("post_type", validatePostType)
	validate.RegisterValidation("profile_type", validateProfileType)
	validate.RegisterValidation("request_type", validateRequestType)
}

func validatePostType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "text", "image", "video", "music", "event", "service_request":
		return true
	}
	return false
}

func validateProfileType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "artist", "venue", "agent", "manager", "influencer":
		return true
	}
	return false
}

func validateRequestType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "offer", "demand":
		return true
	}
	return false
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
