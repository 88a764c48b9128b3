package payments

import (
	"strings"
	"time"
)

// ConnectorName identifies this simulated processor in records and events.
const ConnectorName = "dummypay"

// Status is the lifecycle state of a simulated payment.
type Status string

const (
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
	StatusProcessing Status = "processing"
)

// MethodType tags the payment method variant carried by a request.
type MethodType string

const (
	MethodCard     MethodType = "card"
	MethodWallet   MethodType = "wallet"
	MethodPayLater MethodType = "pay_later"
)

// CardNumber is a PAN. It masks itself when printed so card numbers never
// leak into logs; use Peek for the raw value.
type CardNumber string

func (c CardNumber) String() string {
	s := string(c)
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

// Peek returns the raw card number.
func (c CardNumber) Peek() string { return string(c) }

// Card carries the card details of an attempt. Expiry and CVC are
// accepted but play no part in outcome classification.
type Card struct {
	Number   CardNumber `json:"number"`
	ExpMonth string     `json:"exp_month,omitempty"`
	ExpYear  string     `json:"exp_year,omitempty"`
	CVC      string     `json:"cvc,omitempty"`
}

// Wallet identifies a wallet provider (google_pay, paypal, ...).
type Wallet struct {
	Provider string `json:"provider"`
}

// PayLater identifies a pay-later provider (klarna, affirm, ...).
type PayLater struct {
	Provider string `json:"provider"`
}

// MethodData is a tagged union over the three supported payment method
// variants; exactly one field is non-nil on a valid request.
type MethodData struct {
	Card     *Card     `json:"card,omitempty"`
	Wallet   *Wallet   `json:"wallet,omitempty"`
	PayLater *PayLater `json:"pay_later,omitempty"`
}

// Type returns the variant tag of the populated field.
func (m MethodData) Type() MethodType {
	switch {
	case m.Card != nil:
		return MethodCard
	case m.Wallet != nil:
		return MethodWallet
	default:
		return MethodPayLater
	}
}

// PaymentRequest is the originating request of an attempt. Amount is in
// minor units.
type PaymentRequest struct {
	Amount    int64      `json:"amount"`
	Currency  string     `json:"currency"`
	Method    MethodData `json:"payment_method_data"`
	ReturnURL string     `json:"return_url,omitempty"`
}

// PaymentAttempt is one simulated checkout attempt. It is created by the
// request handler before the core runs and is never mutated here; records
// are derived from it.
type PaymentAttempt struct {
	AttemptID string         `json:"attempt_id"`
	PaymentID string         `json:"payment_id"`
	Request   PaymentRequest `json:"payment_request"`
}

// NextAction is the step-up action attached to a processing record.
type NextAction struct {
	RedirectToURL string `json:"redirect_to_url"`
}

// PaymentRecord is the persisted result of an attempt, the unit of truth
// the rest of the system polls until expiry.
type PaymentRecord struct {
	PaymentID  string      `json:"payment_id"`
	AttemptID  string      `json:"attempt_id"`
	Status     Status      `json:"status"`
	NextAction *NextAction `json:"next_action,omitempty"`
	Amount     int64       `json:"amount"`
	Currency   string      `json:"currency"`
	MethodType MethodType  `json:"payment_method_type"`
	Connector  string      `json:"connector"`
	ReturnURL  string      `json:"return_url,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// record derives a PaymentRecord from the attempt with the given status,
// next action and return URL.
func (a PaymentAttempt) record(status Status, nextAction *NextAction, returnURL string) PaymentRecord {
	return PaymentRecord{
		PaymentID:  a.PaymentID,
		AttemptID:  a.AttemptID,
		Status:     status,
		NextAction: nextAction,
		Amount:     a.Request.Amount,
		Currency:   a.Request.Currency,
		MethodType: a.Request.Method.Type(),
		Connector:  ConnectorName,
		ReturnURL:  returnURL,
		CreatedAt:  time.Now().UTC(),
	}
}
