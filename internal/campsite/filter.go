package campsite

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/apperror"
)

// DateLayout is the format of startDate/endDate filter values.
const DateLayout = "2006-01-02"

// FilterParams is the flat, optional filter input of the campsite search.
// Every field is raw user input; empty means "not supplied".
type FilterParams struct {
	Type       string `json:"type,omitempty"`
	Keyword    string `json:"keyword,omitempty"`
	Province   string `json:"province,omitempty"`
	District   string `json:"district,omitempty"`
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
	Min        string `json:"min,omitempty"`
	Max        string `json:"max,omitempty"`
	Access     string `json:"access,omitempty"`
	Facilities string `json:"facilities,omitempty"`
	External   string `json:"external,omitempty"`
	Equipment  string `json:"equipment,omitempty"`
	Activities string `json:"activities,omitempty"`
	Terrain    string `json:"terrain,omitempty"`
}

// keywordFields are searched by the keyword filter.
var keywordFields = []Field{FieldNameTH, FieldNameEN, FieldDescription, FieldOperatorName}

// BuildFilterPredicate maps filter parameters to a predicate over visible campsites.
// It performs no I/O. Absent parameters add no condition; a malformed price bound or
// date, or an end date before the start date, fails with ErrInvalidFilter.
func BuildFilterPredicate(params FilterParams) (Predicate, error) {
	p := Visible()

	if t := strings.TrimSpace(params.Type); t != "" && !strings.EqualFold(t, TypeAll) {
		p = p.And(Equals{Field: FieldType, Value: strings.ToUpper(t)})
	}

	if kw := strings.TrimSpace(params.Keyword); kw != "" {
		p = p.And(TextSearch{Fields: keywordFields, Text: kw})
	}

	if province := strings.TrimSpace(params.Province); province != "" {
		p = p.And(Equals{Field: FieldProvince, Value: province})
	}
	if district := strings.TrimSpace(params.District); district != "" {
		p = p.And(Equals{Field: FieldDistrict, Value: district})
	}

	minPrice, err := parsePrice("min", params.Min)
	if err != nil {
		return Predicate{}, err
	}
	if minPrice != nil {
		p = p.And(Compare{Field: FieldPriceLow, Op: AtLeast, Value: *minPrice})
	}
	maxPrice, err := parsePrice("max", params.Max)
	if err != nil {
		return Predicate{}, err
	}
	if maxPrice != nil {
		p = p.And(Compare{Field: FieldPriceLow, Op: AtMost, Value: *maxPrice})
	}

	// Every requested code must be present: one condition per code, all ANDed.
	for _, ms := range []struct {
		field Field
		raw   string
	}{
		{FieldAccessTypes, params.Access},
		{FieldFacilities, params.Facilities},
		{FieldExternalFacilities, params.External},
		{FieldEquipment, params.Equipment},
		{FieldActivities, params.Activities},
		{FieldTerrain, params.Terrain},
	} {
		for _, code := range ParseCodes(ms.raw) {
			p = p.And(HasCode{Field: ms.field, Code: code})
		}
	}

	start, err := parseDate("startDate", params.StartDate)
	if err != nil {
		return Predicate{}, err
	}
	end, err := parseDate("endDate", params.EndDate)
	if err != nil {
		return Predicate{}, err
	}
	if start != nil && end != nil {
		if end.Before(*start) {
			return Predicate{}, invalidFilter("endDate must not be before startDate")
		}
		p = p.And(HasFreeSpot{Start: *start, End: *end})
	}

	return p, nil
}

func parsePrice(name, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, invalidFilter(fmt.Sprintf("%s must be a number, got %q", name, raw))
	}
	return &d, nil
}

func parseDate(name, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, invalidFilter(fmt.Sprintf("%s must be a YYYY-MM-DD date, got %q", name, raw))
	}
	return &t, nil
}

func invalidFilter(detail string) error {
	return apperror.Wrap(ErrInvalidFilter, http.StatusBadRequest, "invalid filter: "+detail)
}
