package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"facultypay/workload"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "clock", func(fl validator.FieldLevel) bool {
		_, ok := workload.ParseClock(fl.Field().String())
		return ok
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		_, err := workload.ParseDate(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "activity", func(fl validator.FieldLevel) bool {
		_, ok := workload.ParseActivityType(fl.Field().String())
		return ok
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// validationMessage turns the first failed rule into a sentence a user
// can act on.
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "Invalid request"
	}
	fe := errs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return "All fields required"
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "clock":
		return fmt.Sprintf("%s must be a time in HH:MM format", field)
	case "isodate":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "activity":
		return "activity_type must be one of lecture, tutorial, lab"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s does not match", field)
	}
	return fmt.Sprintf("%s is invalid", field)
}
