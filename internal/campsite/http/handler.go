package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/auth"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/request"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/response"
)

type CampSiteHandler struct {
	service campsite.Service
}

func NewHandler(service campsite.Service) *CampSiteHandler {
	return &CampSiteHandler{service: service}
}

// List searches published campsites.
// Every filter is optional; absent filters never narrow the result.
func (h *CampSiteHandler) List(c *gin.Context) {
	var req ListCampSitesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	sites, total, err := h.service.List(c.Request.Context(), auth.GetUserID(c), req.FilterParams(), campsite.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CampSiteResponse, len(sites))
	for i, cs := range sites {
		items[i] = NewCampSiteResponse(cs)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Count returns how many published campsites match the filters.
func (h *CampSiteHandler) Count(c *gin.Context) {
	var req ListCampSitesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	total, err := h.service.Count(c.Request.Context(), req.FilterParams())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.CountResponse{Total: total})
}

// LastFilters returns the caller's most recent search filters, or null.
func (h *CampSiteHandler) LastFilters(c *gin.Context) {
	params, err := h.service.LastFilters(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"filters": params})
}

// Get retrieves a campsite. Unpublished campsites are visible to their team only.
func (h *CampSiteHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	cs, err := h.service.Get(c.Request.Context(), req.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCampSiteResponse(cs))
}

// Create registers a campsite operated by the caller.
func (h *CampSiteHandler) Create(c *gin.Context) {
	var body CreateCampSiteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	cs, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), campsite.CreateRequest{
		NameTH:             body.NameTH,
		NameEN:             body.NameEN,
		Description:        body.Description,
		Type:               body.Type,
		PriceLow:           body.PriceLow,
		PriceHigh:          body.PriceHigh,
		AccessTypes:        body.AccessTypes,
		Facilities:         body.Facilities,
		ExternalFacilities: body.ExternalFacilities,
		Equipment:          body.Equipment,
		Activities:         body.Activities,
		Terrain:            body.Terrain,
		MaxGuestsPerDay:    body.MaxGuestsPerDay,
		MaxTentsPerDay:     body.MaxTentsPerDay,
		UseSpotView:        body.UseSpotView,
		IsPublished:        body.IsPublished,
		Location:           body.Location.toModel(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCampSiteResponse(cs))
}

// Update modifies a campsite. Access Control: CAMPSITE_EDIT, plus CAMPSITE_PUBLISH to
// change the published flag.
func (h *CampSiteHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateCampSiteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	req := campsite.UpdateRequest{
		NameTH:             body.NameTH,
		NameEN:             body.NameEN,
		Description:        body.Description,
		Type:               body.Type,
		PriceLow:           body.PriceLow,
		PriceHigh:          body.PriceHigh,
		AccessTypes:        body.AccessTypes,
		Facilities:         body.Facilities,
		ExternalFacilities: body.ExternalFacilities,
		Equipment:          body.Equipment,
		Activities:         body.Activities,
		Terrain:            body.Terrain,
		MaxGuestsPerDay:    body.MaxGuestsPerDay,
		MaxTentsPerDay:     body.MaxTentsPerDay,
		ClearManualCaps:    body.ClearManualCaps,
		UseSpotView:        body.UseSpotView,
		IsPublished:        body.IsPublished,
	}
	if body.Location != nil {
		loc := body.Location.toModel()
		req.Location = &loc
	}

	cs, err := h.service.Update(c.Request.Context(), uri.ID, auth.GetUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCampSiteResponse(cs))
}

// Delete soft deletes a campsite. Access Control: CAMPSITE_DELETE.
func (h *CampSiteHandler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
