package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"

	"github.com/fluxpay/dummy-connector/internal/aws"
	"github.com/fluxpay/dummy-connector/internal/logger"
)

// Processor consumes payment events and turns them into CloudWatch
// datapoints, so dashboards over the simulator mirror what a real
// connector's monitoring would show.
type Processor struct {
	emitter *aws.MetricsEmitter
}

// NewProcessor creates a worker processor with AWS clients injected.
func NewProcessor(clients *aws.Clients) *Processor {
	return &Processor{
		emitter: aws.NewMetricsEmitter(clients.CloudWatch),
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, message goes to DLQ.
			logger.L().Error("worker error", "err", err)
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg PaymentEventMessage
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	logger.L().Info("payment event received",
		"payment_id", msg.PaymentID,
		"attempt_id", msg.AttemptID,
		"status", msg.Status)

	if err := p.emitter.CountPayment(ctx, msg.Status, msg.Connector); err != nil {
		return fmt.Errorf("emit payment metric: %w", err)
	}
	return nil
}
