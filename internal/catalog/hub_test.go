package catalog_test

import (
	"testing"
	"time"

	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/seasonality"
)

func TestHubAvailableOnDaily(t *testing.T) {
	h := catalog.Hub{Schedule: catalog.HubSchedule{Kind: "daily"}}
	if !h.AvailableOn(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("daily hub should always be available")
	}
}

func TestHubAvailableOnWeekly(t *testing.T) {
	// Weekdays map uses 1..7 with 7 = Sunday; allow only Wednesday (3).
	h := catalog.Hub{Schedule: catalog.HubSchedule{Kind: "weekly", Weekdays: map[int]bool{3: true}}}
	wednesday := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC) // a Wednesday
	if wednesday.Weekday() != time.Wednesday {
		t.Fatalf("test fixture date is not a Wednesday, fix fixture")
	}
	if !h.AvailableOn(wednesday) {
		t.Errorf("weekly hub should be available on its allowed weekday")
	}
	thursday := wednesday.AddDate(0, 0, 1)
	if h.AvailableOn(thursday) {
		t.Errorf("weekly hub should not be available on a disallowed weekday")
	}
}

func TestHubAvailableOnSeasonal(t *testing.T) {
	h := catalog.Hub{Schedule: catalog.HubSchedule{
		Kind: "seasonal",
		Period: &seasonality.Period{
			Start: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		},
	}}
	if !h.AvailableOn(time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("seasonal hub should be available inside its period")
	}
	if h.AvailableOn(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("seasonal hub should not be available outside its period")
	}
}

func TestHubAvailableOnSeasonalMissingPeriod(t *testing.T) {
	h := catalog.Hub{Schedule: catalog.HubSchedule{Kind: "seasonal"}}
	if h.AvailableOn(time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("seasonal hub with no period should never be available")
	}
}
