package booking

import (
	"time"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite"
)

// DayTotals is the occupancy of a single day.
type DayTotals struct {
	BookedGuests int
	BookedTents  int
}

// DayAvailability is the occupancy of a day compared with the campsite capacity.
// Nil remaining values mean the dimension is unlimited.
type DayAvailability struct {
	Date            string
	BookedGuests    int
	BookedTents     int
	RemainingGuests *int
	RemainingTents  *int
	Available       bool
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

// AggregateDaily sums guests and tents per day of [start, end] over bookings whose stay
// covers that day. Check-in and check-out days both count. Cancelled bookings are ignored.
// Every day of the window is present in the result, keyed YYYY-MM-DD.
func AggregateDaily(bookings []*Booking, start, end time.Time) map[string]DayTotals {
	start, end = Day(start), Day(end)
	days := daysBetween(start, end) + 1
	totals := make(map[string]DayTotals, max(days, 0))
	if days <= 0 {
		return totals
	}

	// Difference arrays: +n on the first covered day, -n after the last.
	guests := make([]int, days+1)
	tents := make([]int, days+1)
	for _, b := range bookings {
		if b.Status == StatusCancelled {
			continue
		}
		from := daysBetween(start, Day(b.CheckIn))
		to := daysBetween(start, Day(b.CheckOut))
		if to < from || to < 0 || from >= days {
			continue
		}
		from = max(from, 0)
		to = min(to, days-1)

		guests[from] += b.Guests
		guests[to+1] -= b.Guests
		tents[from] += b.Tents
		tents[to+1] -= b.Tents
	}

	g, t := 0, 0
	for i := 0; i < days; i++ {
		g += guests[i]
		t += tents[i]
		totals[start.AddDate(0, 0, i).Format(campsite.DateLayout)] = DayTotals{BookedGuests: g, BookedTents: t}
	}
	return totals
}

// EvaluateDays compares daily totals with capacity, in date order. A day is unavailable
// when any defined cap is met or exceeded; a cap of zero makes every day unavailable.
func EvaluateDays(totals map[string]DayTotals, start, end time.Time, capacity campsite.Capacity) []DayAvailability {
	start, end = Day(start), Day(end)
	var out []DayAvailability
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(campsite.DateLayout)
		day := totals[key]

		remainingGuests := remaining(capacity.MaxGuestsPerDay, day.BookedGuests)
		remainingTents := remaining(capacity.MaxTentsPerDay, day.BookedTents)
		out = append(out, DayAvailability{
			Date:            key,
			BookedGuests:    day.BookedGuests,
			BookedTents:     day.BookedTents,
			RemainingGuests: remainingGuests,
			RemainingTents:  remainingTents,
			Available:       hasRoom(remainingGuests) && hasRoom(remainingTents),
		})
	}
	return out
}

func remaining(limit *int, booked int) *int {
	if limit == nil {
		return nil
	}
	r := *limit - booked
	return &r
}

func hasRoom(remaining *int) bool {
	return remaining == nil || *remaining > 0
}
