package features

// Row is one assembled feature record in schema order.
type Row struct {
	schema *Schema
	values []float64
}

func (r Row) Len() int { return len(r.values) }

func (r Row) Names() []string { return r.schema.Names() }

// Values returns a copy of the row values in schema order.
func (r Row) Values() []float64 {
	out := make([]float64, len(r.values))
	copy(out, r.values)
	return out
}

// Get returns the value of a known column.
func (r Row) Get(c Column) (float64, bool) {
	return r.Lookup(string(c))
}

// Lookup returns the value of any schema column by name.
func (r Row) Lookup(name string) (float64, bool) {
	i, ok := r.schema.index[name]
	if !ok {
		return 0, false
	}
	return r.values[i], true
}

// Builder starts from the schema's zero defaults and overwrites individual
// columns. Setting a column the schema lacks is recorded and reported by Build.
type Builder struct {
	schema  *Schema
	values  []float64
	missing []string
}

func NewBuilder(s *Schema) *Builder {
	return &Builder{
		schema: s,
		values: make([]float64, s.Len()),
	}
}

func (b *Builder) Set(c Column, v float64) *Builder {
	i, ok := b.schema.index[string(c)]
	if !ok {
		b.missing = append(b.missing, string(c))
		return b
	}
	b.values[i] = v
	return b
}

func (b *Builder) Build() (Row, error) {
	if len(b.missing) > 0 {
		return Row{}, &SchemaMismatchError{Missing: b.missing}
	}
	return Row{schema: b.schema, values: b.values}, nil
}

type rule func(b *Builder, in RawInput)

// rules run in order against a fresh builder. Columns no rule touches stay 0,
// including trained indicators with no input control (OnlineSecurity_No,
// OnlineBackup_No).
var rules = []rule{
	numericRule,
	seniorRule,
	contractRule,
	internetRule,
	techSupportRule,
}

// Assemble builds the classifier row for one input. in is assumed valid.
func Assemble(s *Schema, in RawInput) (Row, error) {
	b := NewBuilder(s)
	for _, r := range rules {
		r(b, in)
	}
	return b.Build()
}

func numericRule(b *Builder, in RawInput) {
	b.Set(ColTenure, float64(in.Tenure))
	b.Set(ColMonthlyCharges, in.MonthlyCharges)
}

func seniorRule(b *Builder, in RawInput) {
	if in.Senior {
		b.Set(ColSeniorCitizen, 1)
	}
}

// Month-to-month is the baseline.
func contractRule(b *Builder, in RawInput) {
	switch in.Contract {
	case ContractOneYear:
		b.Set(ColContractOneYear, 1)
	case ContractTwoYear:
		b.Set(ColContractTwoYear, 1)
	}
}

// DSL is the baseline.
func internetRule(b *Builder, in RawInput) {
	switch in.InternetService {
	case InternetFiberOptic:
		b.Set(ColInternetFiberOptic, 1)
	case InternetNone:
		b.Set(ColInternetNone, 1)
	}
}

// Yes is the baseline. No also leaves every tech support column at 0, so Yes
// and No encode identically.
func techSupportRule(b *Builder, in RawInput) {
	if in.TechSupport == TechSupportNoInternet {
		b.Set(ColTechSupportNoInternet, 1)
	}
}
