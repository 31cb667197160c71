package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite"
)

func date(s string) time.Time {
	t, err := time.Parse(campsite.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func intPtr(v int) *int { return &v }

func stay(in, out string, guests, tents int, status Status) *Booking {
	return &Booking{CheckIn: date(in), CheckOut: date(out), Guests: guests, Tents: tents, Status: status}
}

func TestAggregateDailyIsInclusive(t *testing.T) {
	bookings := []*Booking{stay("2024-01-10", "2024-01-12", 3, 1, StatusConfirmed)}

	totals := AggregateDaily(bookings, date("2024-01-08"), date("2024-01-14"))
	require.Len(t, totals, 7)

	for _, d := range []string{"2024-01-10", "2024-01-11", "2024-01-12"} {
		assert.Equal(t, DayTotals{BookedGuests: 3, BookedTents: 1}, totals[d], d)
	}
	for _, d := range []string{"2024-01-08", "2024-01-09", "2024-01-13", "2024-01-14"} {
		assert.Equal(t, DayTotals{}, totals[d], d)
	}
}

func TestAggregateDailyIgnoresCancelled(t *testing.T) {
	bookings := []*Booking{
		stay("2024-01-10", "2024-01-12", 3, 1, StatusPending),
		stay("2024-01-09", "2024-01-11", 50, 20, StatusCancelled),
		stay("2024-01-11", "2024-01-13", 2, 2, StatusCompleted),
	}

	totals := AggregateDaily(bookings, date("2024-01-09"), date("2024-01-13"))
	assert.Equal(t, map[string]DayTotals{
		"2024-01-09": {},
		"2024-01-10": {BookedGuests: 3, BookedTents: 1},
		"2024-01-11": {BookedGuests: 5, BookedTents: 3},
		"2024-01-12": {BookedGuests: 5, BookedTents: 3},
		"2024-01-13": {BookedGuests: 2, BookedTents: 2},
	}, totals)
}

func TestAggregateDailyClipsToWindow(t *testing.T) {
	bookings := []*Booking{
		stay("2023-12-25", "2024-01-02", 4, 1, StatusConfirmed),
		stay("2024-01-03", "2024-02-01", 1, 1, StatusConfirmed),
		stay("2023-12-01", "2023-12-05", 9, 9, StatusConfirmed),
	}

	totals := AggregateDaily(bookings, date("2024-01-01"), date("2024-01-03"))
	assert.Equal(t, map[string]DayTotals{
		"2024-01-01": {BookedGuests: 4, BookedTents: 1},
		"2024-01-02": {BookedGuests: 4, BookedTents: 1},
		"2024-01-03": {BookedGuests: 1, BookedTents: 1},
	}, totals)
}

func TestAggregateDailyIgnoresTimeOfDay(t *testing.T) {
	b := &Booking{
		CheckIn:  time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2024, 1, 11, 11, 0, 0, 0, time.UTC),
		Guests:   2,
		Status:   StatusConfirmed,
	}
	totals := AggregateDaily([]*Booking{b}, time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC), date("2024-01-11"))
	assert.Equal(t, 2, totals["2024-01-10"].BookedGuests)
	assert.Equal(t, 2, totals["2024-01-11"].BookedGuests)
}

func TestEvaluateDays(t *testing.T) {
	totals := map[string]DayTotals{
		"2024-01-10": {BookedGuests: 10, BookedTents: 2},
		"2024-01-11": {BookedGuests: 9, BookedTents: 2},
	}

	days := EvaluateDays(totals, date("2024-01-10"), date("2024-01-12"), campsite.Capacity{MaxGuestsPerDay: intPtr(10)})
	require.Len(t, days, 3)

	assert.Equal(t, "2024-01-10", days[0].Date)
	assert.False(t, days[0].Available)
	assert.Equal(t, 0, *days[0].RemainingGuests)
	assert.Nil(t, days[0].RemainingTents)

	assert.True(t, days[1].Available)
	assert.Equal(t, 1, *days[1].RemainingGuests)

	assert.True(t, days[2].Available)
	assert.Equal(t, 0, days[2].BookedGuests)
	assert.Equal(t, 10, *days[2].RemainingGuests)
}

func TestEvaluateDaysCaps(t *testing.T) {
	empty := map[string]DayTotals{}

	unlimited := EvaluateDays(empty, date("2024-01-10"), date("2024-01-10"), campsite.Capacity{})
	assert.True(t, unlimited[0].Available)
	assert.Nil(t, unlimited[0].RemainingGuests)

	// A zero cap is a valid configuration meaning permanently unavailable.
	closed := EvaluateDays(empty, date("2024-01-10"), date("2024-01-10"), campsite.Capacity{MaxTentsPerDay: intPtr(0)})
	assert.False(t, closed[0].Available)

	tentsFull := EvaluateDays(map[string]DayTotals{"2024-01-10": {BookedGuests: 1, BookedTents: 3}},
		date("2024-01-10"), date("2024-01-10"),
		campsite.Capacity{MaxGuestsPerDay: intPtr(100), MaxTentsPerDay: intPtr(3)})
	assert.False(t, tentsFull[0].Available)
	assert.Equal(t, 99, *tentsFull[0].RemainingGuests)
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusPending.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusPending))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusCancelled))
	assert.False(t, Status("pending").IsValid())
	assert.Equal(t, campsite.CancelledBookingStatus, string(StatusCancelled))
}
