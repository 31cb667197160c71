package booking

import (
	"net/http"
	"time"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/apperror"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/spot"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrCampSiteNotFound  = apperror.New(http.StatusNotFound, "campsite not found")
	ErrSpotNotFound      = apperror.New(http.StatusNotFound, "spot not found in this campsite")
	ErrInvalidDateRange  = apperror.New(http.StatusBadRequest, "end date must not be before start date")
	ErrRangeTooLong      = apperror.New(http.StatusBadRequest, "date range is too long")
	ErrCheckInPast       = apperror.New(http.StatusBadRequest, "cannot book a stay in the past")
	ErrInvalidGuests     = apperror.New(http.StatusBadRequest, "guests must be at least 1 and tents cannot be negative")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "booking cannot move to that status")
	ErrCapacityExceeded  = apperror.New(http.StatusConflict, "not enough capacity for the requested dates")
	ErrSpotUnavailable   = apperror.New(http.StatusConflict, "spot is already booked for the requested dates")
)

// MaxRangeDays bounds availability lookups and stays.
const MaxRangeDays = 366

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = campsite.CancelledBookingStatus
	StatusCompleted Status = "COMPLETED"
)

// transitions lists the statuses each status may move to.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a booking in status s may move to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is a stay by a camper at a campsite, optionally on a specific spot.
// CheckIn and CheckOut are calendar days; both count as occupied.
type Booking struct {
	ID           string
	CampSiteID   string
	CampSiteName string
	SpotID       *string
	UserID       string
	UserName     string
	CheckIn      time.Time
	CheckOut     time.Time
	Guests       int
	Tents        int
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter narrows a booking listing.
type Filter struct {
	UserID     string
	CampSiteID string
	Status     string
	// From and To select bookings whose stay overlaps [From, To].
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
	SortOrder string
}

// Snapshot is everything capacity decisions for one campsite need, read at one point in time.
type Snapshot struct {
	CampSite *campsite.CampSite
	Spots    []*spot.Spot
	// Bookings holds the non-cancelled bookings overlapping the requested window.
	Bookings []*Booking
}
