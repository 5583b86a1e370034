package features

import (
	"fmt"
	"math"
)

// Input control bounds and defaults.
const (
	MinTenure     = 0
	MaxTenure     = 72
	DefaultTenure = 24

	MinMonthlyCharges     = 18.0
	MaxMonthlyCharges     = 118.0
	DefaultMonthlyCharges = 70.0
)

type Contract string

const (
	ContractMonthToMonth Contract = "Month-to-month"
	ContractOneYear      Contract = "One year"
	ContractTwoYear      Contract = "Two year"
)

type InternetService string

const (
	InternetFiberOptic InternetService = "Fiber optic"
	InternetDSL        InternetService = "DSL"
	InternetNone       InternetService = "No"
)

type TechSupport string

const (
	TechSupportYes        TechSupport = "Yes"
	TechSupportNo         TechSupport = "No"
	TechSupportNoInternet TechSupport = "No internet service"
)

// Option lists in the order the form presents them.
var (
	SeniorOptions      = []string{"No", "Yes"}
	ContractOptions    = []Contract{ContractMonthToMonth, ContractOneYear, ContractTwoYear}
	InternetOptions    = []InternetService{InternetFiberOptic, InternetDSL, InternetNone}
	TechSupportOptions = []TechSupport{TechSupportYes, TechSupportNo, TechSupportNoInternet}
)

// RawInput holds the six customer attributes collected per prediction.
type RawInput struct {
	Tenure          int
	MonthlyCharges  float64
	Senior          bool
	Contract        Contract
	InternetService InternetService
	TechSupport     TechSupport
}

// DefaultInput returns the values the form starts with.
func DefaultInput() RawInput {
	return RawInput{
		Tenure:          DefaultTenure,
		MonthlyCharges:  DefaultMonthlyCharges,
		Senior:          false,
		Contract:        ContractOptions[0],
		InternetService: InternetOptions[0],
		TechSupport:     TechSupportOptions[0],
	}
}

// Validate reports whether every field sits inside its control's domain.
// Assemble does not call it; callers at the edge do.
func (in RawInput) Validate() error {
	if in.Tenure < MinTenure || in.Tenure > MaxTenure {
		return fmt.Errorf("%w: tenure %d outside %d-%d", ErrInvalidInput, in.Tenure, MinTenure, MaxTenure)
	}
	if math.IsNaN(in.MonthlyCharges) || math.IsInf(in.MonthlyCharges, 0) {
		return fmt.Errorf("%w: monthly charges must be a finite number", ErrInvalidInput)
	}
	if in.MonthlyCharges < MinMonthlyCharges || in.MonthlyCharges > MaxMonthlyCharges {
		return fmt.Errorf("%w: monthly charges %.2f outside %.1f-%.1f", ErrInvalidInput, in.MonthlyCharges, MinMonthlyCharges, MaxMonthlyCharges)
	}
	if _, err := ParseContract(string(in.Contract)); err != nil {
		return err
	}
	if _, err := ParseInternetService(string(in.InternetService)); err != nil {
		return err
	}
	if _, err := ParseTechSupport(string(in.TechSupport)); err != nil {
		return err
	}
	return nil
}

func ParseSenior(s string) (bool, error) {
	switch s {
	case "Yes":
		return true, nil
	case "No", "":
		return false, nil
	}
	return false, fmt.Errorf("%w: senior citizen %q", ErrInvalidInput, s)
}

func ParseContract(s string) (Contract, error) {
	for _, c := range ContractOptions {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: contract type %q", ErrInvalidInput, s)
}

func ParseInternetService(s string) (InternetService, error) {
	for _, v := range InternetOptions {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: internet service %q", ErrInvalidInput, s)
}

func ParseTechSupport(s string) (TechSupport, error) {
	for _, v := range TechSupportOptions {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: tech support %q", ErrInvalidInput, s)
}
