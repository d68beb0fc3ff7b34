package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/dateparse"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	// canonical_date accepts an empty value or a real YYYY-MM-DD date
	_ = v.RegisterValidation("canonical_date", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := dateparse.Parse(s)
		return err == nil
	})
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
