// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("statement_type", validateStatementType)
		_ = v.RegisterValidation("operation_type", validateOperationType)
		_ = v.RegisterValidation("share_decision", validateShareDecision)
	}
}

func validateStatementType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "RB", "FACT", "CR", "DB", "OT":
		return true
	}
	return false
}

func validateOperationType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "DD", "CB", "CH", "CA", "RE", "IN", "TR", "BF", "OT":
		return true
	}
	return false
}

func validateShareDecision(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "share_once", "share_forever", "decline_once", "decline_forever":
		return true
	}
	return false
}
