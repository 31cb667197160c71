package http

import (
	"time"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/booking"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings.
// Without campsite_id the caller's own bookings are listed.
type ListBookingsRequest struct {
	request.ListParams
	CampSiteID string `form:"campsite_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	From       string `form:"from" binding:"omitempty,isodate"`
	To         string `form:"to" binding:"omitempty,isodate"`
}

// AvailabilityRequest binds GET /campsites/:id/availability.
type AvailabilityRequest struct {
	Start string `form:"start" binding:"required,isodate"`
	End   string `form:"end" binding:"required,isodate"`
}

// CreateBookingRequest is the payload for POST /bookings.
type CreateBookingRequest struct {
	CampSiteID string  `json:"campsite_id" binding:"required,uuid"`
	SpotID     *string `json:"spot_id" binding:"omitempty,uuid"`
	CheckIn    string  `json:"check_in_date" binding:"required,isodate"`
	CheckOut   string  `json:"check_out_date" binding:"required,isodate"`
	Guests     int     `json:"guests" binding:"required,min=1"`
	Tents      *int    `json:"tents" binding:"omitempty,min=0"`
}

// UpdateStatusRequest is the payload for PATCH /bookings/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}

// parseDate parses a value already checked by the isodate tag.
func parseDate(s string) time.Time {
	t, _ := time.Parse(campsite.DateLayout, s)
	return t
}

func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseDate(s)
	return &t
}

type BookingResponse struct {
	ID           string    `json:"id"`
	CampSiteID   string    `json:"campsite_id"`
	CampSiteName string    `json:"campsite_name,omitempty"`
	SpotID       *string   `json:"spot_id"`
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name,omitempty"`
	CheckIn      string    `json:"check_in_date"`
	CheckOut     string    `json:"check_out_date"`
	Guests       int       `json:"guests"`
	Tents        int       `json:"tents"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		CampSiteID:   b.CampSiteID,
		CampSiteName: b.CampSiteName,
		SpotID:       b.SpotID,
		UserID:       b.UserID,
		UserName:     b.UserName,
		CheckIn:      b.CheckIn.Format(campsite.DateLayout),
		CheckOut:     b.CheckOut.Format(campsite.DateLayout),
		Guests:       b.Guests,
		Tents:        b.Tents,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

type DayResponse struct {
	Date            string `json:"date"`
	BookedGuests    int    `json:"booked_guests"`
	BookedTents     int    `json:"booked_tents"`
	RemainingGuests *int   `json:"remaining_guests"`
	RemainingTents  *int   `json:"remaining_tents"`
	Available       bool   `json:"available"`
}

type AvailabilityResponse struct {
	CampSiteID      string        `json:"campsite_id"`
	Start           string        `json:"start"`
	End             string        `json:"end"`
	MaxGuestsPerDay *int          `json:"max_guests_per_day"`
	MaxTentsPerDay  *int          `json:"max_tents_per_day"`
	Days            []DayResponse `json:"days"`
}

func NewAvailabilityResponse(a *booking.Availability) AvailabilityResponse {
	days := make([]DayResponse, len(a.Days))
	for i, d := range a.Days {
		days[i] = DayResponse{
			Date:            d.Date,
			BookedGuests:    d.BookedGuests,
			BookedTents:     d.BookedTents,
			RemainingGuests: d.RemainingGuests,
			RemainingTents:  d.RemainingTents,
			Available:       d.Available,
		}
	}
	return AvailabilityResponse{
		CampSiteID:      a.CampSiteID,
		Start:           a.Start.Format(campsite.DateLayout),
		End:             a.End.Format(campsite.DateLayout),
		MaxGuestsPerDay: a.Capacity.MaxGuestsPerDay,
		MaxTentsPerDay:  a.Capacity.MaxTentsPerDay,
		Days:            days,
	}
}
