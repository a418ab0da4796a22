package analysis

import "github.com/ademuri/spotify-history-tools/internal/model"

// Heatmap is total listening time in milliseconds bucketed by ISO weekday
// (row 0 = Monday) and hour of day (column 0 = midnight).
type Heatmap [7][24]int64

// BuildHeatmap buckets events by the weekday and hour of their own
// timestamp. Each event's embedded zone offset determines its bucket; there
// is no cross-zone normalization, so the matrix reflects the listener's
// local clock. An empty subset yields an all-zero matrix.
func BuildHeatmap(events []model.PlayEvent) Heatmap {
	var h Heatmap
	for _, e := range events {
		day := (int(e.Timestamp.Weekday()) + 6) % 7 // time.Weekday has Sunday = 0
		h[day][e.Timestamp.Hour()] += e.MsPlayed
	}
	return h
}

// TotalMs sums the whole matrix. It equals the summed ms_played of the
// input events.
func (h Heatmap) TotalMs() int64 {
	var total int64
	for _, day := range h {
		for _, cell := range day {
			total += cell
		}
	}
	return total
}

// DayNames labels heatmap rows in matrix order.
var DayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
