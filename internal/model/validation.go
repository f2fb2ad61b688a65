package model

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var timeLabelPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// RegisterValidations installs custom binding rules on gin's validator.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("timelabel", validateTimeLabel)
	}
}

func validateTimeLabel(fl validator.FieldLevel) bool {
	return timeLabelPattern.MatchString(fl.Field().String())
}
