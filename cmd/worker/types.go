package worker

// PaymentEventMessage is the payload sent from API -> SQS -> Worker.
type PaymentEventMessage struct {
	PaymentID string `json:"payment_id"`
	AttemptID string `json:"attempt_id"`
	Status    string `json:"status"`
	Connector string `json:"connector"`
}
