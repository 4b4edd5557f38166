package validate

import (
	"time"

	"github.com/antigravity/sakha-transit/internal/hubs"
	"github.com/antigravity/sakha-transit/internal/routemodel"
)

// Validator is the C15 facade: it runs the error detector (C13) and the
// reality checker (C14) over a route and folds their findings into a single
// Verdict (§4.15 "Validator as a pipeline" — structural checks always run;
// reality checks degrade to warnings rather than aborting assembly).
type Validator struct {
	Hubs *hubs.Selector
}

// New constructs a Validator. hubSelector may be nil to skip the hub-chain
// reality check (e.g. when validating a route with no airplane segments).
func New(hubSelector *hubs.Selector) *Validator {
	return &Validator{Hubs: hubSelector}
}

// Check runs every structural and reality check over route for the given
// travel date and returns the combined Verdict. Structural findings
// (disconnection, invalid identifiers) are errors; reality-check and
// realism findings are warnings (§4.15).
func (v *Validator) Check(route routemodel.Route, date time.Time) routemodel.Verdict {
	verdict := routemodel.Verdict{IsValid: true}

	for i, seg := range route.Segments {
		if f := DetectInvalidIdentifier(seg); f != nil {
			verdict.Errors = append(verdict.Errors, *f)
			verdict.IsValid = false
		}
		if i > 0 {
			prev := route.Segments[i-1]
			prevEnd := prev.Geometry.Coordinates[len(prev.Geometry.Coordinates)-1]
			nextStart := seg.Geometry.Coordinates[0]
			if f := DetectDisconnected(prev, seg, prevEnd, nextStart); f != nil {
				verdict.Errors = append(verdict.Errors, *f)
				verdict.IsValid = false
			}
		}

		if f := DetectEmptySpacePath(seg); f != nil {
			verdict.Warnings = append(verdict.Warnings, *f)
		}
		if f := DetectUnrealisticRoute(seg); f != nil {
			verdict.Warnings = append(verdict.Warnings, *f)
		}
		if f := CheckDistance(seg); f != nil {
			verdict.Warnings = append(verdict.Warnings, *f)
		}
		if f := CheckPrice(seg); f != nil {
			verdict.Warnings = append(verdict.Warnings, *f)
		}
		if f := CheckPath(seg); f != nil {
			verdict.Warnings = append(verdict.Warnings, *f)
		}
		if v.Hubs != nil {
			if f := CheckHub(v.Hubs, seg); f != nil {
				verdict.Warnings = append(verdict.Warnings, *f)
			}
		}
		if f := CheckSeasonality(seg, date); f != nil {
			verdict.Warnings = append(verdict.Warnings, *f)
		}
	}

	if f := CheckTransferTiming(route); f != nil {
		verdict.Warnings = append(verdict.Warnings, *f)
	}

	return verdict
}
