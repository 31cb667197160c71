package campsite

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evaluate applies a predicate to an in-memory campsite the way the SQL translation does.
// HasFreeSpot needs booking data and is not supported here.
func evaluate(t *testing.T, p Predicate, cs *CampSite) bool {
	t.Helper()
	for _, cond := range p.Conditions() {
		if !evaluateCondition(t, cond, cs) {
			return false
		}
	}
	return true
}

func fieldValue(t *testing.T, cs *CampSite, f Field) any {
	t.Helper()
	switch f {
	case FieldIsActive:
		return cs.IsActive
	case FieldIsPublished:
		return cs.IsPublished
	case FieldType:
		return cs.Type
	case FieldNameTH:
		return cs.NameTH
	case FieldNameEN:
		return cs.NameEN
	case FieldDescription:
		return cs.Description
	case FieldOperatorName:
		return cs.OperatorName
	case FieldProvince:
		return cs.Location.Province
	case FieldDistrict:
		return cs.Location.District
	case FieldPriceLow:
		return cs.PriceLow
	case FieldAccessTypes:
		return cs.AccessTypes
	case FieldFacilities:
		return cs.Facilities
	case FieldExternalFacilities:
		return cs.ExternalFacilities
	case FieldEquipment:
		return cs.Equipment
	case FieldActivities:
		return cs.Activities
	case FieldTerrain:
		return cs.Terrain
	}
	t.Fatalf("unknown field %q", f)
	return nil
}

func evaluateCondition(t *testing.T, cond Condition, cs *CampSite) bool {
	switch c := cond.(type) {
	case Equals:
		return fieldValue(t, cs, c.Field) == c.Value
	case TextSearch:
		for _, f := range c.Fields {
			v := fieldValue(t, cs, f).(string)
			if strings.Contains(strings.ToLower(v), strings.ToLower(c.Text)) {
				return true
			}
		}
		return false
	case HasCode:
		return fieldValue(t, cs, c.Field).(CodeSet).Contains(c.Code)
	case Compare:
		v := fieldValue(t, cs, c.Field).(decimal.Decimal)
		if c.Op == AtMost {
			return v.LessThanOrEqual(c.Value)
		}
		return v.GreaterThanOrEqual(c.Value)
	}
	t.Fatalf("unsupported condition %T", cond)
	return false
}

func site(name string, mutate func(*CampSite)) *CampSite {
	cs := &CampSite{
		ID:          name,
		NameEN:      name,
		Type:        TypeCampground,
		IsActive:    true,
		IsPublished: true,
		PriceLow:    decimal.NewFromInt(100),
		PriceHigh:   decimal.NewFromInt(1000),
	}
	if mutate != nil {
		mutate(cs)
	}
	return cs
}

func matching(t *testing.T, p Predicate, sites []*CampSite) []string {
	var ids []string
	for _, cs := range sites {
		if evaluate(t, p, cs) {
			ids = append(ids, cs.ID)
		}
	}
	return ids
}

func TestBuildFilterPredicateEmpty(t *testing.T) {
	p, err := BuildFilterPredicate(FilterParams{})
	require.NoError(t, err)
	assert.Equal(t, Visible().Conditions(), p.Conditions())

	// Whitespace-only values count as absent; ALL is not a type constraint.
	p, err = BuildFilterPredicate(FilterParams{Type: "all", Keyword: "   ", Facilities: " , ,"})
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())
}

func TestBuildFilterPredicateRules(t *testing.T) {
	p, err := BuildFilterPredicate(FilterParams{
		Type:       "glamping",
		Keyword:    "river",
		Province:   "Chiang Mai",
		District:   "Mae Rim",
		Min:        "100",
		Max:        "500",
		Facilities: "WIFI,PARK",
		StartDate:  "2024-01-10",
		EndDate:    "2024-01-12",
	})
	require.NoError(t, err)

	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	want := []Condition{
		Equals{Field: FieldIsActive, Value: true},
		Equals{Field: FieldIsPublished, Value: true},
		Equals{Field: FieldType, Value: TypeGlamping},
		TextSearch{Fields: keywordFields, Text: "river"},
		Equals{Field: FieldProvince, Value: "Chiang Mai"},
		Equals{Field: FieldDistrict, Value: "Mae Rim"},
		Compare{Field: FieldPriceLow, Op: AtLeast, Value: decimal.NewFromInt(100)},
		Compare{Field: FieldPriceLow, Op: AtMost, Value: decimal.NewFromInt(500)},
		HasCode{Field: FieldFacilities, Code: "WIFI"},
		HasCode{Field: FieldFacilities, Code: "PARK"},
		HasFreeSpot{Start: start, End: end},
	}
	assert.Equal(t, want, p.Conditions())
}

func TestBuildFilterPredicateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		params FilterParams
	}{
		{"non numeric min", FilterParams{Min: "cheap"}},
		{"non numeric max", FilterParams{Max: "100baht"}},
		{"malformed start date", FilterParams{StartDate: "10/01/2024"}},
		{"malformed end date alone", FilterParams{EndDate: "2024-13-01"}},
		{"end before start", FilterParams{StartDate: "2024-01-12", EndDate: "2024-01-10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFilterPredicate(tt.params)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidFilter)
		})
	}
}

func TestBuildFilterPredicateSingleDate(t *testing.T) {
	p, err := BuildFilterPredicate(FilterParams{StartDate: "2024-01-10"})
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())
}

func TestMultiSelectRequiresEveryCode(t *testing.T) {
	sites := []*CampSite{
		site("wifi-only", func(cs *CampSite) { cs.Facilities = CodeSet{"WIFI"} }),
		site("both", func(cs *CampSite) { cs.Facilities = CodeSet{"PARK", "WIFI", "TOILET"} }),
		site("parking", func(cs *CampSite) { cs.Facilities = CodeSet{"WIFI", "PARKING"} }),
	}

	p, err := BuildFilterPredicate(FilterParams{Facilities: "WIFI,PARK"})
	require.NoError(t, err)
	assert.Equal(t, []string{"both"}, matching(t, p, sites))
}

func TestCodesMatchRegardlessOfCase(t *testing.T) {
	sites := []*CampSite{
		site("glamping-wifi", func(cs *CampSite) {
			cs.Type = TypeGlamping
			cs.Facilities = CodeSet{"WIFI"}
		}),
		site("campground-wifi", func(cs *CampSite) { cs.Facilities = CodeSet{"WIFI"} }),
	}

	p, err := BuildFilterPredicate(FilterParams{Type: "glamping", Facilities: "wifi"})
	require.NoError(t, err)
	assert.Equal(t, []string{"glamping-wifi"}, matching(t, p, sites))
}

func TestPriceBoundsRoundTrip(t *testing.T) {
	var sites []*CampSite
	for _, price := range []int64{50, 100, 300, 500, 600} {
		sites = append(sites, site(decimal.NewFromInt(price).String(), func(cs *CampSite) {
			cs.PriceLow = decimal.NewFromInt(price)
		}))
	}

	p, err := BuildFilterPredicate(FilterParams{Min: "100", Max: "500"})
	require.NoError(t, err)
	assert.Equal(t, []string{"100", "300", "500"}, matching(t, p, sites))
}

func TestKeywordIsCaseInsensitiveAcrossFields(t *testing.T) {
	sites := []*CampSite{
		site("a", func(cs *CampSite) { cs.Description = "Right by the RIVER bank" }),
		site("b", func(cs *CampSite) { cs.OperatorName = "Riverside Camping Co" }),
		site("c", func(cs *CampSite) { cs.NameTH = "ลานกางเต็นท์" }),
	}

	p, err := BuildFilterPredicate(FilterParams{Keyword: "river"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, matching(t, p, sites))
}

func TestHiddenCampSitesNeverMatch(t *testing.T) {
	sites := []*CampSite{
		site("draft", func(cs *CampSite) { cs.IsPublished = false }),
		site("deleted", func(cs *CampSite) { cs.IsActive = false }),
		site("live", nil),
	}

	p, err := BuildFilterPredicate(FilterParams{})
	require.NoError(t, err)
	assert.Equal(t, []string{"live"}, matching(t, p, sites))
}

// Adding a parameter can only keep or shrink the match set.
func TestFilterMonotonicity(t *testing.T) {
	sites := []*CampSite{
		site("a", func(cs *CampSite) {
			cs.Type = TypeGlamping
			cs.Facilities = CodeSet{"WIFI", "PARK"}
			cs.Location.Province = "Chiang Mai"
		}),
		site("b", func(cs *CampSite) {
			cs.PriceLow = decimal.NewFromInt(700)
			cs.Facilities = CodeSet{"WIFI"}
			cs.Terrain = CodeSet{"MOUNTAIN"}
		}),
		site("c", func(cs *CampSite) {
			cs.NameEN = "Lakeside"
			cs.Location.Province = "Kanchanaburi"
			cs.Activities = CodeSet{"KAYAK"}
		}),
	}

	steps := []func(*FilterParams){
		func(f *FilterParams) { f.Facilities = "WIFI" },
		func(f *FilterParams) { f.Max = "800" },
		func(f *FilterParams) { f.Province = "Chiang Mai" },
		func(f *FilterParams) { f.Type = TypeGlamping },
		func(f *FilterParams) { f.Facilities = "WIFI,PARK" },
		func(f *FilterParams) { f.Keyword = "zzz" },
	}

	var params FilterParams
	p, err := BuildFilterPredicate(params)
	require.NoError(t, err)
	prev := matching(t, p, sites)

	for i, step := range steps {
		step(&params)
		p, err := BuildFilterPredicate(params)
		require.NoError(t, err)
		got := matching(t, p, sites)
		assert.Subset(t, prev, got, "step %d widened the result", i)
		prev = got
	}
	assert.Empty(t, prev)
}

func TestPredicateIsImmutable(t *testing.T) {
	base := Visible()
	a := base.And(HasCode{Field: FieldFacilities, Code: "WIFI"})
	b := base.And(HasCode{Field: FieldFacilities, Code: "PARK"})

	assert.Equal(t, 2, base.Len())
	assert.Equal(t, HasCode{Field: FieldFacilities, Code: "WIFI"}, a.Conditions()[2])
	assert.Equal(t, HasCode{Field: FieldFacilities, Code: "PARK"}, b.Conditions()[2])

	conds := a.Conditions()
	conds[0] = nil
	assert.NotNil(t, a.Conditions()[0])
}

func TestParseCodes(t *testing.T) {
	assert.Equal(t, CodeSet{"WIFI", "PARK"}, ParseCodes(" WIFI, ,PARK,WIFI,"))
	assert.Equal(t, CodeSet{"WIFI", "PARK"}, ParseCodes("wifi,Park,WIFI"))
	assert.Nil(t, ParseCodes(""))
	assert.True(t, CodeSet{"PARKING"}.Contains("PARKING"))
	assert.False(t, CodeSet{"PARKING"}.Contains("PARK"))
	assert.Equal(t, "WIFI,PARK", NewCodeSet([]string{"WIFI", "PARK", "WIFI"}).String())
}
