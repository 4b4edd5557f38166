// Package price computes the per-segment PriceModel (C5): base tariff times
// distance, plus per-transfer and taxi-to-stop surcharges (§4.5).
package price

import (
	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/routemodel"
)

// TransferFeeRUB is the fixed per-transfer surcharge (§4.5/§4.12).
const TransferFeeRUB = 750.0

// TaxiToStopKM is the equivalent taxi distance charged when a journey
// originates via a mode whose boarding stop is not already urban (§4.5).
var TaxiToStopKM = map[catalog.Mode]float64{
	catalog.ModeAirplane: 15,
	catalog.ModeTrain:    5,
}

// Base returns the base tariff for distanceKM at mode's per-km rate.
func Base(mode catalog.Mode, distanceKM float64) float64 {
	return catalog.RatePerKM[mode] * distanceKM
}

// SegmentOptions carries the inputs that vary a segment's additional price
// components.
type SegmentOptions struct {
	Mode               catalog.Mode
	DistanceKM         float64
	OriginIsUrban      bool // true when the originating stop is already in a city/urban area
	BaggageRUB         float64
	FeesRUB            float64
}

// TaxiSurcharge returns the RUB surcharge for boarding mode from a non-urban
// stop, or 0 when the origin is already urban or the mode has no declared
// taxi-to-stop distance (§4.5).
func TaxiSurcharge(mode catalog.Mode, originIsUrban bool) float64 {
	if originIsUrban {
		return 0
	}
	km, ok := TaxiToStopKM[mode]
	if !ok {
		return 0
	}
	return catalog.RatePerKM[catalog.ModeTaxi] * km
}

// ForSegment computes a segment's PriceModel: base tariff times distance,
// plus a taxi-to-stop surcharge when the segment originates via airplane or
// train from a non-urban stop.
func ForSegment(opts SegmentOptions) routemodel.PriceModel {
	base := Base(opts.Mode, opts.DistanceKM)
	taxi := TaxiSurcharge(opts.Mode, opts.OriginIsUrban)

	return routemodel.NewPriceModel(base, routemodel.PriceAdditional{
		Taxi:    taxi,
		Baggage: opts.BaggageRUB,
		Fees:    opts.FeesRUB,
	})
}

// EstimateForReality computes the per-mode base-tariff estimate the reality
// checker (C14) compares a declared segment price against.
func EstimateForReality(mode catalog.Mode, distanceKM float64) float64 {
	return Base(mode, distanceKM)
}

// ForRoute accumulates segment prices into the route total, adding the
// fixed transfer fee for (segments-1) transfers (§4.12).
func ForRoute(segments []routemodel.PriceModel, transferCount int) routemodel.TotalPrice {
	total := routemodel.TotalPrice{Currency: "RUB"}
	for _, seg := range segments {
		total.Base += seg.Base
		total.Additional.Taxi += seg.Additional.Taxi
		total.Additional.Baggage += seg.Additional.Baggage
		total.Additional.Fees += seg.Additional.Fees
	}
	total.Additional.Transfer = TransferFeeRUB * float64(transferCount)
	total.Total = total.Base + total.Additional.Taxi + total.Additional.Transfer +
		total.Additional.Baggage + total.Additional.Fees
	total.Display = renderTotalDisplay(total)
	return total
}

func renderTotalDisplay(t routemodel.TotalPrice) string {
	p := routemodel.PriceModel{
		Base:       t.Base,
		Additional: t.Additional,
		Total:      t.Total,
		Currency:   t.Currency,
	}
	p.RenderDisplay()
	return p.Display
}
