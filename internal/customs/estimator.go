// Package customs prices an indicative landed-cost estimate for a shipment.
// The figures are heuristics for planning, not a customs ruling.
package customs

import (
	"context"

	"github.com/shopspring/decimal"
)

// Disclaimer accompanies every estimate.
const Disclaimer = "Indicative only — not binding."

var (
	dutyRate      = decimal.NewFromFloat(0.05)
	vatRate       = decimal.NewFromFloat(0.17)
	insuranceRate = decimal.NewFromFloat(0.003)
	freightPerKg  = decimal.NewFromInt(200)
	freightPerM3  = decimal.NewFromInt(1000)
)

const handlingMinor int64 = 5000

// EstimateRequest carries the shipment characteristics. Values are clamped
// to zero when negative.
type EstimateRequest struct {
	GoodsValueMinor int64   `json:"goods_value_minor"`
	WeightKg        float64 `json:"weight_kg"`
	VolumeM3        float64 `json:"volume_m3"`
}

// Breakdown itemizes the estimate in minor currency units.
type Breakdown struct {
	DutyMinor      int64 `json:"duty_minor"`
	VatMinor       int64 `json:"vat_minor"`
	FreightMinor   int64 `json:"freight_minor"`
	HandlingMinor  int64 `json:"handling_minor"`
	InsuranceMinor int64 `json:"insurance_minor"`
}

// EstimateResponse echoes the input next to the itemized costs.
type EstimateResponse struct {
	Input      EstimateRequest `json:"input"`
	Breakdown  Breakdown       `json:"breakdown"`
	TotalMinor int64           `json:"total_minor"`
	Disclaimer string          `json:"disclaimer"`
}

// Service computes customs estimates.
type Service interface {
	Estimate(ctx context.Context, req EstimateRequest) EstimateResponse
}

type service struct{}

// NewService builds the estimator.
func NewService() Service {
	return service{}
}

// Estimate applies flat duty and VAT percentages, weight/volume freight,
// a fixed handling fee and an insurance premium on the goods value. VAT is
// charged on the duty-inclusive goods value.
func (service) Estimate(_ context.Context, req EstimateRequest) EstimateResponse {
	req.GoodsValueMinor = clampInt64(req.GoodsValueMinor)
	req.WeightKg = clampFloat(req.WeightKg)
	req.VolumeM3 = clampFloat(req.VolumeM3)

	goods := decimal.NewFromInt(req.GoodsValueMinor)
	duty := goods.Mul(dutyRate).Round(0)
	vat := goods.Add(duty).Mul(vatRate).Round(0)
	freight := decimal.NewFromFloat(req.WeightKg).Mul(freightPerKg).
		Add(decimal.NewFromFloat(req.VolumeM3).Mul(freightPerM3)).
		Round(0)
	insurance := goods.Mul(insuranceRate).Round(0)

	breakdown := Breakdown{
		DutyMinor:      duty.IntPart(),
		VatMinor:       vat.IntPart(),
		FreightMinor:   freight.IntPart(),
		HandlingMinor:  handlingMinor,
		InsuranceMinor: insurance.IntPart(),
	}

	total := breakdown.DutyMinor + breakdown.VatMinor + breakdown.FreightMinor +
		breakdown.HandlingMinor + breakdown.InsuranceMinor

	return EstimateResponse{
		Input:      req,
		Breakdown:  breakdown,
		TotalMinor: total,
		Disclaimer: Disclaimer,
	}
}

func clampInt64(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampFloat(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
