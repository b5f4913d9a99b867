package utils

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// custom validator tags
const (
	TagDate      = "ddmmyyyy"
	TagClock12h  = "clock12h"
	TagWorkHours = "hms"
)

var customValidations = []struct {
	tag     string
	fn      validator.Func
	message string
}{
	{
		tag: TagDate,
		fn: func(fl validator.FieldLevel) bool {
			_, err := ParseDate(fl.Field().String(), time.UTC)
			return err == nil
		},
		message: "{0} must be a date in DD-MM-YYYY format",
	},
	{
		tag: TagClock12h,
		fn: func(fl validator.FieldLevel) bool {
			_, _, _, err := ParseTime12h(fl.Field().String())
			return err == nil
		},
		message: "{0} must be a time in hh:mm:ss AM/PM format",
	},
	{
		tag: TagWorkHours,
		fn: func(fl validator.FieldLevel) bool {
			_, err := ParseWorkHours(fl.Field().String())
			return err == nil
		},
		message: "{0} must be a duration in HH:MM:SS format",
	},
}

// RegisterValidations installs the date/time tags on validate together with
// their messages for trans.
func RegisterValidations(validate *validator.Validate, trans ut.Translator) error {
	for _, cv := range customValidations {
		if err := validate.RegisterValidation(cv.tag, cv.fn); err != nil {
			return err
		}

		message := cv.message
		tag := cv.tag
		err := validate.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(tag, message, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(tag, fe.Field())
				return t
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}
