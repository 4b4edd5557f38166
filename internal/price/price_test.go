package price_test

import (
	"testing"

	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/price"
	"github.com/antigravity/sakha-transit/internal/routemodel"
)

func TestBase(t *testing.T) {
	got := price.Base(catalog.ModeBus, 100)
	want := catalog.RatePerKM[catalog.ModeBus] * 100
	if got != want {
		t.Errorf("Base(bus, 100) = %v, want %v", got, want)
	}
}

func TestTaxiSurchargeUrbanOriginIsZero(t *testing.T) {
	if got := price.TaxiSurcharge(catalog.ModeAirplane, true); got != 0 {
		t.Errorf("TaxiSurcharge(airplane, urban) = %v, want 0", got)
	}
}

func TestTaxiSurchargeNonUrbanOrigin(t *testing.T) {
	got := price.TaxiSurcharge(catalog.ModeAirplane, false)
	want := catalog.RatePerKM[catalog.ModeTaxi] * price.TaxiToStopKM[catalog.ModeAirplane]
	if got != want {
		t.Errorf("TaxiSurcharge(airplane, non-urban) = %v, want %v", got, want)
	}
}

func TestTaxiSurchargeModeWithNoDeclaredDistance(t *testing.T) {
	if got := price.TaxiSurcharge(catalog.ModeBus, false); got != 0 {
		t.Errorf("TaxiSurcharge(bus, non-urban) = %v, want 0 (bus has no taxi-to-stop distance)", got)
	}
}

func TestForSegmentCombinesBaseAndSurcharge(t *testing.T) {
	pm := price.ForSegment(price.SegmentOptions{
		Mode: catalog.ModeTrain, DistanceKM: 200, OriginIsUrban: false,
		BaggageRUB: 100, FeesRUB: 50,
	})
	wantBase := price.Base(catalog.ModeTrain, 200)
	wantTaxi := price.TaxiSurcharge(catalog.ModeTrain, false)
	wantTotal := wantBase + wantTaxi + 100 + 50
	if pm.Base != wantBase {
		t.Errorf("Base = %v, want %v", pm.Base, wantBase)
	}
	if pm.Additional.Taxi != wantTaxi {
		t.Errorf("Taxi = %v, want %v", pm.Additional.Taxi, wantTaxi)
	}
	if pm.Total != wantTotal {
		t.Errorf("Total = %v, want %v", pm.Total, wantTotal)
	}
}

func TestForRouteAppliesTransferFeePerTransfer(t *testing.T) {
	segs := []routemodel.PriceModel{
		routemodel.NewPriceModel(1000, routemodel.PriceAdditional{}),
		routemodel.NewPriceModel(2000, routemodel.PriceAdditional{}),
	}
	total := price.ForRoute(segs, 1)
	if total.Additional.Transfer != price.TransferFeeRUB {
		t.Errorf("Transfer = %v, want %v for 1 transfer", total.Additional.Transfer, price.TransferFeeRUB)
	}
	wantTotal := 1000 + 2000 + price.TransferFeeRUB
	if total.Total != wantTotal {
		t.Errorf("Total = %v, want %v", total.Total, wantTotal)
	}
}

func TestForRouteZeroTransfersForSingleSegment(t *testing.T) {
	segs := []routemodel.PriceModel{routemodel.NewPriceModel(500, routemodel.PriceAdditional{})}
	total := price.ForRoute(segs, 0)
	if total.Additional.Transfer != 0 {
		t.Errorf("Transfer = %v, want 0 for a direct single-segment route", total.Additional.Transfer)
	}
}
