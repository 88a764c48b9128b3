package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const metricNamespace = "DummyConnector"

// MetricsEmitter pushes simulator counters to CloudWatch.
type MetricsEmitter struct {
	CloudWatch CloudWatchAPI
	nowFunc    func() time.Time
}

// NewMetricsEmitter returns an emitter bound to a CloudWatch client.
func NewMetricsEmitter(cw CloudWatchAPI) *MetricsEmitter {
	return &MetricsEmitter{
		CloudWatch: cw,
		nowFunc:    time.Now,
	}
}

// CountPayment emits a single PaymentsSimulated datapoint with the payment
// status and connector as dimensions.
func (e *MetricsEmitter) CountPayment(ctx context.Context, status, connector string) error {
	now := e.nowFunc()
	input := &cloudwatch.PutMetricDataInput{
		Namespace: awsString(metricNamespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: awsString("PaymentsSimulated"),
				Timestamp:  &now,
				Value:      awsFloat64(1),
				Unit:       cwtypes.StandardUnitCount,
				Dimensions: []cwtypes.Dimension{
					{Name: awsString("Status"), Value: &status},
					{Name: awsString("Connector"), Value: &connector},
				},
			},
		},
	}
	if _, err := e.CloudWatch.PutMetricData(ctx, input); err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}

func awsFloat64(f float64) *float64 { return &f }
