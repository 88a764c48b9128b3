package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardAttempt(number string) PaymentAttempt {
	return PaymentAttempt{
		AttemptID: "dummy_att_1",
		PaymentID: "dummy_pay_1",
		Request: PaymentRequest{
			Amount:    1000,
			Currency:  "USD",
			Method:    MethodData{Card: &Card{Number: CardNumber(number)}},
			ReturnURL: "https://merchant/return",
		},
	}
}

func TestBuildRecord_CardSucceeds(t *testing.T) {
	attempt := cardAttempt("4242424242424242")

	record, err := BuildRecord(attempt, "https://sandbox/dummy-connector/authorize/dummy_att_1")
	require.NoError(t, err)

	assert.Equal(t, "dummy_pay_1", record.PaymentID)
	assert.Equal(t, StatusSucceeded, record.Status)
	assert.Nil(t, record.NextAction)
	assert.Equal(t, int64(1000), record.Amount)
	assert.Equal(t, "USD", record.Currency)
	assert.Equal(t, MethodCard, record.MethodType)
	assert.Equal(t, ConnectorName, record.Connector)
}

func TestBuildRecord_CardDeclined(t *testing.T) {
	tests := []struct {
		number string
		reason string
	}{
		{"5105105105105100", "Card declined"},
		{"4000000000009995", "Insufficient funds"},
		{"4000000000009987", "Lost card"},
		{"4000000000009979", "Stolen card"},
	}
	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			_, err := BuildRecord(cardAttempt(tt.number), "https://sandbox/authorize")
			reason, declined := IsDeclined(err)
			require.True(t, declined, "expected a decline, got %v", err)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestBuildRecord_CardNotSupported(t *testing.T) {
	_, err := BuildRecord(cardAttempt("9999999999999999"), "https://sandbox/authorize")
	assert.ErrorIs(t, err, ErrCardNotSupported)
}

func TestBuildRecord_ThreeDSCardStagesRedirect(t *testing.T) {
	attempt := cardAttempt("4000003800000446")
	redirect := RedirectURL("https://sandbox", attempt.AttemptID)

	record, err := BuildRecord(attempt, redirect)
	require.NoError(t, err)

	assert.Equal(t, StatusProcessing, record.Status)
	require.NotNil(t, record.NextAction)
	assert.Equal(t, "https://sandbox/dummy-connector/authorize/dummy_att_1", record.NextAction.RedirectToURL)
	assert.Equal(t, "https://merchant/return", record.ReturnURL)
}

func TestBuildRecord_WalletAndPayLaterAlwaysRedirect(t *testing.T) {
	methods := map[string]MethodData{
		"wallet":    {Wallet: &Wallet{Provider: "google_pay"}},
		"pay_later": {PayLater: &PayLater{Provider: "klarna"}},
	}
	for name, method := range methods {
		t.Run(name, func(t *testing.T) {
			attempt := PaymentAttempt{
				AttemptID: "dummy_att_2",
				PaymentID: "dummy_pay_2",
				Request: PaymentRequest{
					Amount:    2500,
					Currency:  "EUR",
					Method:    method,
					ReturnURL: "https://merchant/return",
				},
			}

			record, err := BuildRecord(attempt, "https://sandbox/dummy-connector/authorize/dummy_att_2")
			require.NoError(t, err)
			assert.Equal(t, StatusProcessing, record.Status)
			require.NotNil(t, record.NextAction)
			assert.Equal(t, "https://sandbox/dummy-connector/authorize/dummy_att_2", record.NextAction.RedirectToURL)
			assert.Equal(t, MethodType(name), record.MethodType)
		})
	}
}

func TestRedirectURL(t *testing.T) {
	assert.Equal(t,
		"https://sandbox.example.com/dummy-connector/authorize/dummy_att_42",
		RedirectURL("https://sandbox.example.com", "dummy_att_42"))
}

func TestBuildRecord_ProcessingIffRedirect(t *testing.T) {
	// invariant: status is processing exactly when a next action exists
	for _, number := range []string{"4242424242424242", "4000003800000446"} {
		record, err := BuildRecord(cardAttempt(number), "https://sandbox/authorize")
		require.NoError(t, err)
		assert.Equal(t, record.Status == StatusProcessing, record.NextAction != nil)
	}
}
