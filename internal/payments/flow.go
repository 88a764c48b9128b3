package payments

// CardFlow is the simulated network response for a test card: which
// authentication flow applies, the terminal status, and the decline (if
// any). Declared once per classification, never mutated.
type CardFlow struct {
	ThreeDS bool
	Status  Status
	Decline *DeclinedError
}

// FlowForCard maps a test card number onto its simulated flow, the
// "magic number" convention of sandbox processors. Matching is exact
// string equality: no normalization, no Luhn check. Unknown numbers fail
// with ErrCardNotSupported.
func FlowForCard(cardNumber string) (CardFlow, error) {
	switch cardNumber {
	case "4111111111111111", "4242424242424242", "5555555555554444",
		"38000000000006", "378282246310005", "6011111111111117":
		return CardFlow{Status: StatusSucceeded}, nil
	case "5105105105105100", "4000000000000002":
		return CardFlow{Status: StatusFailed, Decline: &DeclinedError{Reason: "Card declined"}}, nil
	case "4000000000009995":
		return CardFlow{Status: StatusFailed, Decline: &DeclinedError{Reason: "Insufficient funds"}}, nil
	case "4000000000009987":
		return CardFlow{Status: StatusFailed, Decline: &DeclinedError{Reason: "Lost card"}}, nil
	case "4000000000009979":
		return CardFlow{Status: StatusFailed, Decline: &DeclinedError{Reason: "Stolen card"}}, nil
	case "4000003800000446":
		return CardFlow{ThreeDS: true, Status: StatusSucceeded}, nil
	default:
		return CardFlow{}, ErrCardNotSupported
	}
}
