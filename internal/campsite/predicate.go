package campsite

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Field names a filterable attribute of a campsite independent of any storage layout.
type Field string

const (
	FieldIsActive           Field = "isActive"
	FieldIsPublished        Field = "isPublished"
	FieldType               Field = "campSiteType"
	FieldNameTH             Field = "nameTh"
	FieldNameEN             Field = "nameEn"
	FieldDescription        Field = "description"
	FieldOperatorName       Field = "operatorName"
	FieldProvince           Field = "province"
	FieldDistrict           Field = "district"
	FieldPriceLow           Field = "priceLow"
	FieldAccessTypes        Field = "accessTypes"
	FieldFacilities         Field = "facilities"
	FieldExternalFacilities Field = "externalFacilities"
	FieldEquipment          Field = "equipment"
	FieldActivities         Field = "activities"
	FieldTerrain            Field = "terrain"
)

// Condition is one term of a Predicate.
type Condition interface {
	condition()
}

// Equals requires an exact match.
type Equals struct {
	Field Field
	Value any
}

// TextSearch requires Text to appear, case-insensitively, in at least one of Fields.
type TextSearch struct {
	Fields []Field
	Text   string
}

// HasCode requires the multi-valued Field to contain Code as a whole element.
type HasCode struct {
	Field Field
	Code  string
}

// CompareOp is the operator of a Compare condition.
type CompareOp int

const (
	AtLeast CompareOp = iota
	AtMost
)

// Compare bounds a decimal field.
type Compare struct {
	Field Field
	Op    CompareOp
	Value decimal.Decimal
}

// HasFreeSpot requires at least one spot with no non-cancelled booking overlapping
// [Start, End] (both ends inclusive).
type HasFreeSpot struct {
	Start time.Time
	End   time.Time
}

func (Equals) condition()      {}
func (TextSearch) condition()  {}
func (HasCode) condition()     {}
func (Compare) condition()     {}
func (HasFreeSpot) condition() {}

// Predicate is an immutable conjunction of conditions.
type Predicate struct {
	conds []Condition
}

// Visible is the base predicate every public query starts from.
func Visible() Predicate {
	return Predicate{}.And(
		Equals{Field: FieldIsActive, Value: true},
		Equals{Field: FieldIsPublished, Value: true},
	)
}

// And returns a new predicate with cs appended; p is left unchanged.
func (p Predicate) And(cs ...Condition) Predicate {
	next := make([]Condition, 0, len(p.conds)+len(cs))
	next = append(next, p.conds...)
	next = append(next, cs...)
	return Predicate{conds: next}
}

// Conditions returns a copy of the predicate's terms in construction order.
func (p Predicate) Conditions() []Condition {
	return slices.Clone(p.conds)
}

// Len returns the number of terms.
func (p Predicate) Len() int {
	return len(p.conds)
}
