package awsx

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics emits custom CloudWatch metrics for the menu surface.
type Metrics struct {
	CW        CloudWatchAPI
	Namespace string
	nowFunc   func() time.Time
}

// NewMetrics returns a Metrics emitter bound to a namespace.
func NewMetrics(cw CloudWatchAPI, namespace string) *Metrics {
	return &Metrics{
		CW:        cw,
		Namespace: namespace,
		nowFunc:   time.Now,
	}
}

// RecordQRScan records a single QR scan against a branch/table pair.
// Callers treat failures as best-effort: a lost datapoint must never block a menu view.
func (m *Metrics) RecordQRScan(ctx context.Context, branchID, tableID string) error {
	now := m.nowFunc()
	datum := cwtypes.MetricDatum{
		MetricName: awsString("QRScans"),
		Timestamp:  &now,
		Unit:       cwtypes.StandardUnitCount,
		Value:      awsFloat64(1),
		Dimensions: []cwtypes.Dimension{
			{Name: awsString("BranchID"), Value: &branchID},
			{Name: awsString("TableID"), Value: &tableID},
		},
	}

	_, err := m.CW.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  &m.Namespace,
		MetricData: []cwtypes.MetricDatum{datum},
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}

func awsFloat64(f float64) *float64 { return &f }
