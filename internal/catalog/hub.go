package catalog

import "time"

// AvailableOn reports whether the hub operates on date: daily hubs are
// always open; weekly hubs check the weekday set (7 = Sunday); seasonal
// hubs check the inclusive period (§3).
func (h Hub) AvailableOn(date time.Time) bool {
	switch h.Schedule.Kind {
	case "daily":
		return true
	case "weekly":
		wd := int(date.Weekday())
		if wd == 0 {
			wd = 7
		}
		return h.Schedule.Weekdays[wd]
	case "seasonal":
		if h.Schedule.Period == nil {
			return false
		}
		d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		start := time.Date(h.Schedule.Period.Start.Year(), h.Schedule.Period.Start.Month(), h.Schedule.Period.Start.Day(), 0, 0, 0, 0, time.UTC)
		end := time.Date(h.Schedule.Period.End.Year(), h.Schedule.Period.End.Month(), h.Schedule.Period.End.Day(), 0, 0, 0, 0, time.UTC)
		return !d.Before(start) && !d.After(end)
	default:
		return true
	}
}
