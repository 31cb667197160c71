package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/auth"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/request"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/response"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/spot"
)

type SpotHandler struct {
	service spot.Service
}

func NewHandler(service spot.Service) *SpotHandler {
	return &SpotHandler{service: service}
}

// List returns the spots of a campsite.
func (h *SpotHandler) List(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	spots, err := h.service.List(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SpotResponse, len(spots))
	for i, s := range spots {
		items[i] = NewSpotResponse(s)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *SpotHandler) Get(c *gin.Context) {
	var uri SpotURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	s, err := h.service.Get(c.Request.Context(), uri.CampSiteID, uri.SpotID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSpotResponse(s))
}

// Create adds a spot. Access Control: SPOT_MANAGE.
func (h *SpotHandler) Create(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body CreateSpotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	s, err := h.service.Create(c.Request.Context(), uri.ID, auth.GetUserID(c), spot.CreateRequest{
		Name:          body.Name,
		MaxCampers:    body.MaxCampers,
		MaxTents:      body.MaxTents,
		Environment:   body.Environment,
		PricePerNight: body.PricePerNight,
		PricePerSite:  body.PricePerSite,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewSpotResponse(s))
}

// Update modifies a spot. Access Control: SPOT_MANAGE.
func (h *SpotHandler) Update(c *gin.Context) {
	var uri SpotURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateSpotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	s, err := h.service.Update(c.Request.Context(), uri.CampSiteID, uri.SpotID, auth.GetUserID(c), spot.UpdateRequest{
		Name:          body.Name,
		MaxCampers:    body.MaxCampers,
		MaxTents:      body.MaxTents,
		Environment:   body.Environment,
		PricePerNight: body.PricePerNight,
		PricePerSite:  body.PricePerSite,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSpotResponse(s))
}

// Delete removes a spot. Access Control: SPOT_MANAGE.
func (h *SpotHandler) Delete(c *gin.Context) {
	var uri SpotURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.CampSiteID, uri.SpotID, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Capacity reports the spot-derived and effective per-day capacity of a campsite.
func (h *SpotHandler) Capacity(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	report, err := h.service.Capacity(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, CapacityReportResponse{
		UseSpotView: report.UseSpotView,
		Spots:       newCapacityResponse(report.Spots),
		Effective:   newCapacityResponse(report.Effective),
	})
}
