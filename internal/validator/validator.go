// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"lifetrack/internal/currency"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var clockTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("currency", validateCurrency)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("goal_frequency", validateGoalFrequency)
	_ = v.RegisterValidation("activity_frequency", validateActivityFrequency)
	_ = v.RegisterValidation("theme", validateTheme)
	_ = v.RegisterValidation("clock_time", validateClockTime)
}

func validateCurrency(fl validator.FieldLevel) bool {
	return currency.IsSupported(currency.Normalize(fl.Field().String()))
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateGoalFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "daily", "weekly", "monthly", "one-time":
		return true
	}
	return false
}

func validateActivityFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "daily", "weekly", "custom":
		return true
	}
	return false
}

func validateTheme(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "light", "dark", "system":
		return true
	}
	return false
}

func validateClockTime(fl validator.FieldLevel) bool {
	return clockTimeRegex.MatchString(fl.Field().String())
}
