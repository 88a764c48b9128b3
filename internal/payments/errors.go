package payments

import "errors"

// Simulator error taxonomy. These are the only error kinds callers see;
// boundaries wrap them with context but never change the kind.
var (
	// ErrCardNotSupported means the card number is outside the test table.
	ErrCardNotSupported = errors.New("payments: card not supported")
	// ErrPaymentNotFound means a record or index lookup missed or the
	// stored value did not decode.
	ErrPaymentNotFound = errors.New("payments: payment not found")
	// ErrPaymentStoring means a write to the store failed.
	ErrPaymentStoring = errors.New("payments: failed to store payment")
	// ErrInternal means the store connection could not be obtained.
	ErrInternal = errors.New("payments: internal server error")
)

// DeclinedError simulates the processor rejecting a charge outright.
// Reason is user-visible.
type DeclinedError struct {
	Reason string
}

func (e *DeclinedError) Error() string {
	return "payments: payment declined: " + e.Reason
}

// IsDeclined reports whether err is a simulated decline and returns its
// reason when it is.
func IsDeclined(err error) (string, bool) {
	var de *DeclinedError
	if errors.As(err, &de) {
		return de.Reason, true
	}
	return "", false
}
