package validate

import (
	"fmt"
	"time"

	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/hubs"
	"github.com/antigravity/sakha-transit/internal/price"
	"github.com/antigravity/sakha-transit/internal/routemodel"
	"github.com/antigravity/sakha-transit/internal/seasonality"
)

// PriceDeviationRatio bounds how far a segment's declared price may diverge
// from the mode's base-tariff estimate before a mismatch is flagged (§4.14).
const PriceDeviationRatio = 0.20

// CheckPrice compares a segment's declared price against the mode's base
// tariff estimate for its distance.
func CheckPrice(seg routemodel.Segment) *routemodel.Finding {
	estimate := price.EstimateForReality(seg.Mode, seg.Distance.ValueKM)
	if estimate <= 0 || seg.Price.Base <= 0 {
		return nil
	}
	ratio := seg.Price.Base / estimate
	if ratio >= 1-PriceDeviationRatio && ratio <= 1+PriceDeviationRatio {
		return nil
	}
	confidence := 0.7
	if ratio > 2 || ratio < 0.5 {
		confidence = 0.85
	}
	return &routemodel.Finding{
		Kind:      routemodel.FindingPriceMismatch,
		SegmentID: seg.ID,
		Message:   fmt.Sprintf("declared base price %.0f RUB diverges from tariff estimate %.0f RUB", seg.Price.Base, estimate),
		Suggestion: &routemodel.Correction{
			Type:           "price_base_rub",
			SuggestedValue: fmt.Sprintf("%.0f", estimate),
			Confidence:     confidence,
		},
	}
}

// CheckPath flags geometry whose declared style doesn't match its mode's
// expected rendering: a ferry that isn't wavy, a winter road that isn't
// dotted, a rail corridor that isn't solid (§4.14).
func CheckPath(seg routemodel.Segment) *routemodel.Finding {
	want := map[catalog.Mode]routemodel.PolylineStyle{
		catalog.ModeFerry:      routemodel.StyleWavy,
		catalog.ModeWinterRoad: routemodel.StyleDotted,
		catalog.ModeTrain:      routemodel.StyleSolid,
	}
	expected, ok := want[seg.Mode]
	if !ok || seg.Geometry.Style == expected {
		return nil
	}
	return &routemodel.Finding{
		Kind:      routemodel.FindingPathMismatch,
		SegmentID: seg.ID,
		Message:   fmt.Sprintf("%s segment has style %q, expected %q", seg.Mode, seg.Geometry.Style, expected),
		Suggestion: &routemodel.Correction{
			Type:           "geometry_style",
			SuggestedValue: string(expected),
			Confidence:     0.95,
		},
	}
}

// CheckHub flags an airplane segment whose hub chain disagrees with the hub
// selector's decision for the same city pair (§4.14). seg.ViaHubs carries
// catalog.Hub identifiers (declared per-connection, used for geometry);
// decision.Chain carries the cities those hubs sit in, so each ViaHubs entry
// is resolved to its owning city before the two are compared.
func CheckHub(selector *hubs.Selector, seg routemodel.Segment) *routemodel.Finding {
	if seg.Mode != catalog.ModeAirplane {
		return nil
	}
	decision, err := selector.Decide(seg.FromCityID, seg.ToCityID)
	if err != nil {
		return nil
	}
	if decision.AllowDirect && len(seg.ViaHubs) == 0 {
		return nil
	}

	viaHubCities := make([]string, 0, len(seg.ViaHubs))
	for _, hubID := range seg.ViaHubs {
		if hub, ok := selector.Catalog.GetHub(hubID); ok {
			viaHubCities = append(viaHubCities, hub.CityID)
		}
	}

	if !decision.AllowDirect && sameChain(decision.Chain, viaHubCities) {
		return nil
	}
	return &routemodel.Finding{
		Kind:      routemodel.FindingHubMismatch,
		SegmentID: seg.ID,
		Message:   fmt.Sprintf("segment hub chain %v disagrees with selector decision %v", viaHubCities, decision.Chain),
	}
}

func sameChain(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// transferMinimumMinutes is the §4.14 mode-pair minimum transfer time: 60
// between two airplane legs, 15 between two train legs, 10 between two bus
// legs, 45 across a mode change, 30 as the default for any other same-mode
// pair (ferry↔ferry, winter_road↔winter_road, taxi↔taxi).
func transferMinimumMinutes(a, b catalog.Mode) int {
	if a != b {
		return 45
	}
	switch a {
	case catalog.ModeAirplane:
		return 60
	case catalog.ModeTrain:
		return 15
	case catalog.ModeBus:
		return 10
	default:
		return 30
	}
}

// CheckTransferTiming flags a route whose average allocated transfer time
// (§4.12's fixed 30-minute-per-transfer penalty, averaged across every
// transfer) falls short of the average mode-pair minimum its transfers
// require (§4.14 "Transfers"). A route with no transfers always passes.
func CheckTransferTiming(route routemodel.Route) *routemodel.Finding {
	transfers := len(route.Segments) - 1
	if transfers <= 0 {
		return nil
	}

	allocatedAvg := float64(route.TotalDuration.TransferMin) / float64(transfers)

	requiredSum := 0
	for i := 1; i < len(route.Segments); i++ {
		requiredSum += transferMinimumMinutes(route.Segments[i-1].Mode, route.Segments[i].Mode)
	}
	requiredAvg := float64(requiredSum) / float64(transfers)

	if allocatedAvg >= requiredAvg {
		return nil
	}
	return &routemodel.Finding{
		Kind:    routemodel.FindingTransferMismatch,
		Message: fmt.Sprintf("average allocated transfer time %.0fmin is below the %.0fmin mode-pair minimum", allocatedAvg, requiredAvg),
		Suggestion: &routemodel.Correction{
			Type:           "transfer_minutes",
			SuggestedValue: fmt.Sprintf("%.0f", requiredAvg),
			Confidence:     0.75,
		},
	}
}

// CheckSeasonality flags a segment unavailable on the travel date.
func CheckSeasonality(seg routemodel.Segment, date time.Time) *routemodel.Finding {
	if seasonality.IsAvailable(seg.Seasonality, date) {
		return nil
	}
	return &routemodel.Finding{
		Kind:      routemodel.FindingSeasonalityMismatch,
		SegmentID: seg.ID,
		Message:   fmt.Sprintf("segment declared season %q is unavailable on %s", seg.Seasonality.Declared, date.Format("2006-01-02")),
	}
}
