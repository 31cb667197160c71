package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/auth"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/booking"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/request"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/response"
)

type BookingHandler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *BookingHandler {
	return &BookingHandler{service: service}
}

// Availability reports per-day occupancy and remaining capacity of a campsite.
// The figures are advisory; booking creation re-checks capacity.
func (h *BookingHandler) Availability(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var query AvailabilityRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	avail, err := h.service.GetDailyAvailability(
		c.Request.Context(), uri.ID, auth.GetUserID(c), parseDate(query.Start), parseDate(query.End),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAvailabilityResponse(avail))
}

// List returns the caller's bookings, or a campsite's bookings for BOOKING_VIEW holders.
func (h *BookingHandler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	bookings, total, err := h.service.List(c.Request.Context(), auth.GetUserID(c), booking.Filter{
		CampSiteID: req.CampSiteID,
		Status:     req.Status,
		From:       parseOptionalDate(req.From),
		To:         parseOptionalDate(req.To),
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *BookingHandler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Create books a stay for the caller.
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), booking.CreateRequest{
		CampSiteID: req.CampSiteID,
		SpotID:     req.SpotID,
		CheckIn:    parseDate(req.CheckIn),
		CheckOut:   parseDate(req.CheckOut),
		Guests:     req.Guests,
		Tents:      req.Tents,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// UpdateStatus moves a booking to a new status.
// Campers may cancel their own bookings; BOOKING_MANAGE holders may confirm, cancel or complete.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), uri.ID, auth.GetUserID(c), booking.Status(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
