package models

import "github.com/go-playground/validator/v10"

// NewValidator returns a validator that understands the lead_status and
// lead_source tags used on request models
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("lead_status", func(fl validator.FieldLevel) bool {
		return LeadStatus(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("lead_source", func(fl validator.FieldLevel) bool {
		return LeadSource(fl.Field().String()).IsValid()
	})
	return v
}
