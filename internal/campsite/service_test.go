package campsite

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/team"
)

type mockRepo struct {
	sites    map[string]*CampSite
	lastPred Predicate
}

func newMockRepo(sites ...*CampSite) *mockRepo {
	m := &mockRepo{sites: make(map[string]*CampSite)}
	for _, cs := range sites {
		m.sites[cs.ID] = cs
	}
	return m
}

func (m *mockRepo) List(ctx context.Context, pred Predicate, filter Filter) ([]*CampSite, int, error) {
	m.lastPred = pred
	return nil, 0, nil
}

func (m *mockRepo) Count(ctx context.Context, pred Predicate) (int, error) {
	m.lastPred = pred
	return 7, nil
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*CampSite, error) {
	if cs, ok := m.sites[id]; ok && cs.IsActive {
		cp := *cs
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Create(ctx context.Context, cs *CampSite) error {
	cs.ID = "new"
	m.sites[cs.ID] = cs
	return nil
}

func (m *mockRepo) Update(ctx context.Context, cs *CampSite) error {
	m.sites[cs.ID] = cs
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	m.sites[id].IsActive = false
	return nil
}

func (m *mockRepo) GetOperatorID(ctx context.Context, id string) (string, error) {
	return m.sites[id].OperatorID, nil
}

// fakeAuthorizer grants per user a fixed permission set on every campsite.
type fakeAuthorizer map[string]team.PermissionSet

func (f fakeAuthorizer) Permissions(ctx context.Context, campSiteID, userID string) (team.PermissionSet, error) {
	return f[userID], nil
}

func (f fakeAuthorizer) Authorize(ctx context.Context, campSiteID, userID, perm string) error {
	if !f[userID].Has(perm) {
		return team.ErrPermissionDenied
	}
	return nil
}

type memoryHistory map[string]FilterParams

func (h memoryHistory) Save(ctx context.Context, userID string, params FilterParams) error {
	h[userID] = params
	return nil
}

func (h memoryHistory) Last(ctx context.Context, userID string) (*FilterParams, error) {
	if p, ok := h[userID]; ok {
		return &p, nil
	}
	return nil, nil
}

var testAuthz = fakeAuthorizer{
	"owner":  team.EffectivePermissions(team.RoleOwner, nil),
	"editor": team.PermissionSet{team.PermCampSiteView, team.PermCampSiteEdit},
}

func TestListRemembersSignedInFilters(t *testing.T) {
	history := memoryHistory{}
	repo := newMockRepo()
	svc := NewService(repo, testAuthz, history)
	ctx := context.Background()

	params := FilterParams{Facilities: "WIFI", Province: "Nan"}
	_, _, err := svc.List(ctx, "camper", params, Filter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 4, repo.lastPred.Len())

	_, _, err = svc.List(ctx, "", FilterParams{Province: "Loei"}, Filter{})
	require.NoError(t, err)

	last, err := svc.LastFilters(ctx, "camper")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, params, *last)
	assert.Len(t, history, 1)

	_, _, err = svc.List(ctx, "camper", FilterParams{Min: "abc"}, Filter{})
	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.Equal(t, params, history["camper"])
}

func TestCount(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, testAuthz, nil)

	n, err := svc.Count(context.Background(), FilterParams{Type: TypeCabin})
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Contains(t, repo.lastPred.Conditions(), Condition(Equals{Field: FieldType, Value: TypeCabin}))
}

func TestGetHidesDrafts(t *testing.T) {
	draft := site("draft", func(cs *CampSite) { cs.IsPublished = false })
	svc := NewService(newMockRepo(draft, site("live", nil)), testAuthz, nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, "live", "")
	require.NoError(t, err)

	_, err = svc.Get(ctx, "draft", "")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(ctx, "draft", "stranger")
	assert.ErrorIs(t, err, ErrNotFound)

	cs, err := svc.Get(ctx, "draft", "editor")
	require.NoError(t, err)
	assert.Equal(t, "draft", cs.ID)
}

func TestCreateValidates(t *testing.T) {
	svc := NewService(newMockRepo(), testAuthz, nil)
	ctx := context.Background()

	negative := -1
	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{"name required", CreateRequest{Type: TypeCabin}, ErrNameRequired},
		{"unknown type", CreateRequest{NameEN: "x", Type: "IGLOO"}, ErrInvalidType},
		{"low above high", CreateRequest{NameEN: "x", Type: TypeCabin, PriceLow: decimal.NewFromInt(500), PriceHigh: decimal.NewFromInt(100)}, ErrInvalidPrice},
		{"negative cap", CreateRequest{NameEN: "x", Type: TypeCabin, MaxGuestsPerDay: &negative}, ErrInvalidCap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "owner", tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	cs, err := svc.Create(ctx, "owner", CreateRequest{
		NameEN:     " Pine Camp ",
		Type:       "glamping",
		PriceLow:   decimal.NewFromInt(300),
		PriceHigh:  decimal.NewFromInt(900),
		Facilities: []string{" WIFI", "WIFI", "PARK"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pine Camp", cs.NameEN)
	assert.Equal(t, TypeGlamping, cs.Type)
	assert.Equal(t, "owner", cs.OperatorID)
	assert.True(t, cs.IsActive)
	assert.Equal(t, CodeSet{"WIFI", "PARK"}, cs.Facilities)
}

func TestUpdatePermissions(t *testing.T) {
	draft := site("draft", func(cs *CampSite) {
		cs.IsPublished = false
		cs.OperatorID = "owner"
	})
	repo := newMockRepo(draft)
	svc := NewService(repo, testAuthz, nil)
	ctx := context.Background()

	name := "Renamed"
	cs, err := svc.Update(ctx, "draft", "editor", UpdateRequest{NameEN: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", cs.NameEN)

	publish := true
	_, err = svc.Update(ctx, "draft", "editor", UpdateRequest{IsPublished: &publish})
	assert.ErrorIs(t, err, team.ErrPermissionDenied)
	assert.False(t, repo.sites["draft"].IsPublished)

	_, err = svc.Update(ctx, "draft", "stranger", UpdateRequest{NameEN: &name})
	assert.ErrorIs(t, err, team.ErrPermissionDenied)

	cs, err = svc.Update(ctx, "draft", "owner", UpdateRequest{IsPublished: &publish, ClearManualCaps: true})
	require.NoError(t, err)
	assert.True(t, cs.IsPublished)
	assert.Nil(t, cs.MaxGuestsPerDay)

	assert.ErrorIs(t, svc.Delete(ctx, "draft", "editor"), team.ErrPermissionDenied)
	require.NoError(t, svc.Delete(ctx, "draft", "owner"))
	_, err = svc.Get(ctx, "draft", "owner")
	assert.ErrorIs(t, err, ErrNotFound)
}
