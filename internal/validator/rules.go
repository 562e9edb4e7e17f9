package validator

import (
	"log"

	"gymgrub_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules wires the model-level enums into validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that cannot register is a startup bug.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-plan-id': plan must be one of the purchasable plans
	mustRegister("is-plan-id", validatePlanID)

	// 'is-payment-status': payment lifecycle status must be valid
	mustRegister("is-payment-status", validatePaymentStatus)
}

func validatePlanID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is handled by 'required'
	}
	return models.PlanID(value).Valid()
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PaymentStatus(value) {
	case models.PaymentStatusPending, models.PaymentStatusPaid:
		return true
	default:
		return false
	}
}
