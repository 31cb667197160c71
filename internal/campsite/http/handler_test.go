package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/api"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite"
	campsiteHttp "github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite/http"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/response"
)

// fakeService validates filters the way the real service does and records what it saw.
type fakeService struct {
	params  campsite.FilterParams
	filter  campsite.Filter
	created *campsite.CreateRequest
}

func (f *fakeService) List(ctx context.Context, userID string, params campsite.FilterParams, filter campsite.Filter) ([]*campsite.CampSite, int, error) {
	f.params, f.filter = params, filter
	if _, err := campsite.BuildFilterPredicate(params); err != nil {
		return nil, 0, err
	}
	return []*campsite.CampSite{{
		ID:          "cs-1",
		NameEN:      "Pine Ridge",
		Type:        campsite.TypeCampground,
		IsPublished: true,
		PriceLow:    decimal.NewFromInt(300),
		Facilities:  campsite.NewCodeSet([]string{"WIFI", "PARK"}),
	}}, 1, nil
}

func (f *fakeService) Count(ctx context.Context, params campsite.FilterParams) (int, error) {
	f.params = params
	if _, err := campsite.BuildFilterPredicate(params); err != nil {
		return 0, err
	}
	return 7, nil
}

func (f *fakeService) LastFilters(ctx context.Context, userID string) (*campsite.FilterParams, error) {
	return nil, nil
}

func (f *fakeService) Get(ctx context.Context, id, userID string) (*campsite.CampSite, error) {
	return nil, campsite.ErrNotFound
}

func (f *fakeService) Create(ctx context.Context, operatorID string, req campsite.CreateRequest) (*campsite.CampSite, error) {
	f.created = &req
	return &campsite.CampSite{ID: "cs-2", OperatorID: operatorID, Type: req.Type}, nil
}

func (f *fakeService) Update(ctx context.Context, id, actorID string, req campsite.UpdateRequest) (*campsite.CampSite, error) {
	return nil, campsite.ErrNotFound
}

func (f *fakeService) Delete(ctx context.Context, id, actorID string) error {
	return campsite.ErrNotFound
}

func setup(t *testing.T) (*gin.Engine, *fakeService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, api.RegisterValidators())

	svc := &fakeService{}
	r := gin.New()
	pass := func(c *gin.Context) { c.Next() }
	campsiteHttp.RegisterRoutes(r.Group("/v1"), campsiteHttp.NewHandler(svc), pass, pass)
	return r, svc
}

func get(r *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestListPassesFiltersThrough(t *testing.T) {
	r, svc := setup(t)

	w := get(r, "/v1/campsites?type=glamping&keyword=pine&province=Chiang+Mai&min=100&max=500&facilities=WIFI,PARK&startDate=2024-01-10&endDate=2024-01-12&page=2&page_size=5")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, campsite.FilterParams{
		Type:       "glamping",
		Keyword:    "pine",
		Province:   "Chiang Mai",
		StartDate:  "2024-01-10",
		EndDate:    "2024-01-12",
		Min:        "100",
		Max:        "500",
		Facilities: "WIFI,PARK",
	}, svc.params)
	assert.Equal(t, campsite.Filter{Page: 2, PageSize: 5}, svc.filter)

	var page response.PageResponse[campsiteHttp.CampSiteResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, []string{"WIFI", "PARK"}, page.Items[0].Facilities)
	assert.Equal(t, []string{}, page.Items[0].Terrain)
}

func TestListRejectsInvalidFilter(t *testing.T) {
	r, _ := setup(t)

	for _, query := range []string{"min=cheap", "startDate=2024-02-30&endDate=2024-03-01", "startDate=2024-01-12&endDate=2024-01-10"} {
		w := get(r, "/v1/campsites?"+query)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
		assert.Contains(t, w.Body.String(), "invalid filter", query)
	}
}

func TestCountUsesSameFilters(t *testing.T) {
	r, svc := setup(t)

	w := get(r, "/v1/campsites/count?terrain=RIVER")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":7}`, w.Body.String())
	assert.Equal(t, "RIVER", svc.params.Terrain)
}

func TestCreateValidatesCodes(t *testing.T) {
	r, svc := setup(t)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/campsites", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"campsite_type":"CAMPGROUND","name_en":"Lakeside","facilities":["wifi"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.created)

	w = post(`{"campsite_type":"CAMPGROUND","name_en":"Lakeside","facilities":["WIFI","HOT_WATER"],"price_low":"250.50"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, svc.created)
	assert.Equal(t, []string{"WIFI", "HOT_WATER"}, svc.created.Facilities)
	assert.True(t, decimal.RequireFromString("250.50").Equal(svc.created.PriceLow))
}

func TestGetMissingCampSite(t *testing.T) {
	r, _ := setup(t)

	w := get(r, "/v1/campsites/6f1c2d1e-8f7a-4f55-9c7e-2a4b7e1d9f00")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(r, "/v1/campsites/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
