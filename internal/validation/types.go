package validation

// CardInput is the card variant of a create-payment payload. Expiry and
// CVC are accepted for realism but not classified on.
type CardInput struct {
	Number   string `json:"number" validate:"required"`
	ExpMonth string `json:"exp_month,omitempty"`
	ExpYear  string `json:"exp_year,omitempty"`
	CVC      string `json:"cvc,omitempty"`
}

// WalletInput is the wallet variant (google_pay, paypal, ...).
type WalletInput struct {
	Provider string `json:"provider" validate:"required"`
}

// PayLaterInput is the pay-later variant (klarna, affirm, ...).
type PayLaterInput struct {
	Provider string `json:"provider" validate:"required"`
}

// CreatePaymentRequest is the payload for POST /payments. Amount is in
// minor units. Exactly one payment-method variant must be present; the
// struct-level rule in validator.go enforces that.
type CreatePaymentRequest struct {
	Amount    int64          `json:"amount" validate:"required,gt=0"`
	Currency  string         `json:"currency" validate:"required,len=3"`
	ReturnURL string         `json:"return_url,omitempty" validate:"omitempty,url"`
	Card      *CardInput     `json:"card,omitempty"`
	Wallet    *WalletInput   `json:"wallet,omitempty"`
	PayLater  *PayLaterInput `json:"pay_later,omitempty"`
}
