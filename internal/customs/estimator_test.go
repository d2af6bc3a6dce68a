package customs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateWorkedExample(t *testing.T) {
	svc := NewService()

	out := svc.Estimate(context.Background(), EstimateRequest{
		GoodsValueMinor: 100000,
		WeightKg:        10,
		VolumeM3:        1,
	})

	assert.Equal(t, int64(5000), out.Breakdown.DutyMinor)
	assert.Equal(t, int64(17850), out.Breakdown.VatMinor)
	assert.Equal(t, int64(3000), out.Breakdown.FreightMinor)
	assert.Equal(t, int64(5000), out.Breakdown.HandlingMinor)
	assert.Equal(t, int64(300), out.Breakdown.InsuranceMinor)
	assert.Equal(t, int64(31150), out.TotalMinor)
	assert.Equal(t, Disclaimer, out.Disclaimer)
}

func TestEstimateClampsNegativeInputs(t *testing.T) {
	svc := NewService()

	out := svc.Estimate(context.Background(), EstimateRequest{
		GoodsValueMinor: -5000,
		WeightKg:        -2,
		VolumeM3:        -1,
	})

	assert.Zero(t, out.Input.GoodsValueMinor)
	assert.Zero(t, out.Input.WeightKg)
	assert.Zero(t, out.Input.VolumeM3)
	assert.Equal(t, int64(5000), out.TotalMinor) // handling only
}

func TestEstimateRoundsPercentageLines(t *testing.T) {
	svc := NewService()

	// duty on 10001 = 500.05 rounds to 500; vat on 10501 = 1785.17 rounds to 1785
	out := svc.Estimate(context.Background(), EstimateRequest{GoodsValueMinor: 10001})
	assert.Equal(t, int64(500), out.Breakdown.DutyMinor)
	assert.Equal(t, int64(1785), out.Breakdown.VatMinor)
	assert.Equal(t, int64(30), out.Breakdown.InsuranceMinor)
}
