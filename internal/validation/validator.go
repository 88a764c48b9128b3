package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with custom struct-level validation registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// register struct-level validation for CreatePaymentRequest to ensure
	// exactly one payment-method variant is supplied.
	v.RegisterStructValidation(createPaymentStructValidation, CreatePaymentRequest{})

	return v
}

func createPaymentStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CreatePaymentRequest)

	variants := 0
	if req.Card != nil {
		variants++
	}
	if req.Wallet != nil {
		variants++
	}
	if req.PayLater != nil {
		variants++
	}
	if variants != 1 {
		sl.ReportError(req.Card, "card", "Card", "one_payment_method", "")
	}
}
