package payments

import "fmt"

// RedirectURL builds the hosted-challenge URL for an attempt. The
// transition engine treats the result as an opaque string.
func RedirectURL(baseURL, attemptID string) string {
	return fmt.Sprintf("%s/dummy-connector/authorize/%s", baseURL, attemptID)
}

// BuildRecord turns an attempt plus its simulated outcome into the record
// to persist.
//
// Card attempts are classified by card number: declines surface as
// *DeclinedError and produce no record, the 3DS card stages a redirect,
// every other supported card completes immediately. Wallet and pay-later
// attempts always stage a redirect; this sandbox models them as an
// external authorization step.
func BuildRecord(attempt PaymentAttempt, redirectURL string) (PaymentRecord, error) {
	if card := attempt.Request.Method.Card; card != nil {
		return buildCardRecord(attempt, card, redirectURL)
	}
	return attempt.record(
		StatusProcessing,
		&NextAction{RedirectToURL: redirectURL},
		attempt.Request.ReturnURL,
	), nil
}

func buildCardRecord(attempt PaymentAttempt, card *Card, redirectURL string) (PaymentRecord, error) {
	flow, err := FlowForCard(card.Number.Peek())
	if err != nil {
		return PaymentRecord{}, fmt.Errorf("card %s: %w", card.Number, err)
	}

	if flow.ThreeDS {
		return attempt.record(
			StatusProcessing,
			&NextAction{RedirectToURL: redirectURL},
			attempt.Request.ReturnURL,
		), nil
	}
	if flow.Decline != nil {
		return PaymentRecord{}, flow.Decline
	}
	return attempt.record(flow.Status, nil, attempt.Request.ReturnURL), nil
}
