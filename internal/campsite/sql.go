package campsite

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

// columns maps predicate fields to the columns of the listing query
// (c = campsites, l = campsite_locations, u = operator users).
var columns = map[Field]string{
	FieldIsActive:           "c.is_active",
	FieldIsPublished:        "c.is_published",
	FieldType:               "c.campsite_type",
	FieldNameTH:             "c.name_th",
	FieldNameEN:             "c.name_en",
	FieldDescription:        "c.description",
	FieldOperatorName:       "u.display_name",
	FieldProvince:           "l.province",
	FieldDistrict:           "l.district",
	FieldPriceLow:           "c.price_low",
	FieldAccessTypes:        "c.access_types",
	FieldFacilities:         "c.facilities",
	FieldExternalFacilities: "c.external_facilities",
	FieldEquipment:          "c.equipment",
	FieldActivities:         "c.activities",
	FieldTerrain:            "c.terrain",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ToSql translates a predicate into a squirrel condition for the listing query.
// Placeholders are emitted as "?" and rewritten by the outer builder's format.
func ToSql(p Predicate) (squirrel.Sqlizer, error) {
	and := squirrel.And{}
	for _, cond := range p.conds {
		s, err := conditionSql(cond)
		if err != nil {
			return nil, err
		}
		and = append(and, s)
	}
	return and, nil
}

func column(f Field) (string, error) {
	col, ok := columns[f]
	if !ok {
		return "", fmt.Errorf("no column for filter field %q", f)
	}
	return col, nil
}

func conditionSql(cond Condition) (squirrel.Sqlizer, error) {
	switch c := cond.(type) {
	case Equals:
		col, err := column(c.Field)
		if err != nil {
			return nil, err
		}
		return squirrel.Eq{col: c.Value}, nil

	case TextSearch:
		// ILIKE: matching is case-insensitive; wildcards in the text match literally.
		pattern := "%" + likeEscaper.Replace(c.Text) + "%"
		or := squirrel.Or{}
		for _, f := range c.Fields {
			col, err := column(f)
			if err != nil {
				return nil, err
			}
			or = append(or, squirrel.ILike{col: pattern})
		}
		return or, nil

	case HasCode:
		col, err := column(c.Field)
		if err != nil {
			return nil, err
		}
		// Whole-element membership, so PARK does not match PARKING.
		return squirrel.Expr("? = ANY(string_to_array("+col+", ','))", c.Code), nil

	case Compare:
		col, err := column(c.Field)
		if err != nil {
			return nil, err
		}
		if c.Op == AtMost {
			return squirrel.LtOrEq{col: c.Value}, nil
		}
		return squirrel.GtOrEq{col: c.Value}, nil

	case HasFreeSpot:
		overlapping, args, err := squirrel.Select("1").
			From("public.bookings b").
			Where("b.spot_id = s.id").
			Where(squirrel.NotEq{"b.status": CancelledBookingStatus}).
			Where(squirrel.LtOrEq{"b.check_in_date": c.End}).
			Where(squirrel.GtOrEq{"b.check_out_date": c.Start}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build free spot subquery failed: %w", err)
		}
		return squirrel.Expr(
			"EXISTS (SELECT 1 FROM public.spots s WHERE s.campsite_id = c.id AND NOT EXISTS ("+overlapping+"))",
			args...,
		), nil
	}

	return nil, fmt.Errorf("unsupported filter condition %T", cond)
}
