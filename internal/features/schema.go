package features

import (
	"fmt"
)

// Column is one of the schema columns the assembler knows how to set.
type Column string

const (
	ColTenure                Column = "tenure"
	ColMonthlyCharges        Column = "MonthlyCharges"
	ColSeniorCitizen         Column = "SeniorCitizen"
	ColContractOneYear       Column = "Contract_One year"
	ColContractTwoYear       Column = "Contract_Two year"
	ColInternetFiberOptic    Column = "InternetService_Fiber optic"
	ColInternetNone          Column = "InternetService_No"
	ColTechSupportNoInternet Column = "TechSupport_No internet service"
)

// RequiredColumns returns every column the assembly rules may write.
func RequiredColumns() []Column {
	return []Column{
		ColTenure,
		ColMonthlyCharges,
		ColSeniorCitizen,
		ColContractOneYear,
		ColContractTwoYear,
		ColInternetFiberOptic,
		ColInternetNone,
		ColTechSupportNoInternet,
	}
}

// Schema is the ordered column list the classifier was trained on. Every
// column defaults to 0. A Schema is immutable once built.
type Schema struct {
	names []string
	index map[string]int
}

// NewSchema builds a Schema from the classifier's declared input columns.
func NewSchema(names []string) (*Schema, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: schema has no columns", ErrSchemaMismatch)
	}
	s := &Schema{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	copy(s.names, names)

	var dup []string
	for i, n := range s.names {
		if _, ok := s.index[n]; ok {
			dup = append(dup, n)
			continue
		}
		s.index[n] = i
	}
	if len(dup) > 0 {
		return nil, &SchemaMismatchError{Duplicate: dup}
	}
	return s, nil
}

func (s *Schema) Len() int { return len(s.names) }

// Names returns a copy of the column names in schema order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *Schema) Has(c Column) bool {
	_, ok := s.index[string(c)]
	return ok
}

// Require fails with a SchemaMismatchError naming every absent column.
func (s *Schema) Require(cols ...Column) error {
	var missing []string
	for _, c := range cols {
		if !s.Has(c) {
			missing = append(missing, string(c))
		}
	}
	if len(missing) > 0 {
		return &SchemaMismatchError{Missing: missing}
	}
	return nil
}
