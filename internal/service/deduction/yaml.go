package deduction

import (
	"fmt"
	"os"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const scheduleFileVersion = 1

type scheduleFile struct {
	Version         int           `yaml:"version"`
	SocialInsurance []bandFile    `yaml:"social_insurance"`
	HealthInsurance healthFile    `yaml:"health_insurance"`
	HousingFund     housingFile   `yaml:"housing_fund"`
	WithholdingTax  []bracketFile `yaml:"withholding_tax"`
}

// Amounts decode straight into decimals so no value passes through float64.
// Upper/UpTo are omitted for the open-ended top band.
type bandFile struct {
	Lower  decimal.Decimal  `yaml:"lower"`
	Upper  *decimal.Decimal `yaml:"upper,omitempty"`
	Amount decimal.Decimal  `yaml:"amount"`
}

type healthFile struct {
	Rate          decimal.Decimal `yaml:"rate"`
	Floor         decimal.Decimal `yaml:"floor"`
	Ceiling       decimal.Decimal `yaml:"ceiling"`
	EmployeeShare decimal.Decimal `yaml:"employee_share"`
}

type housingFile struct {
	Threshold decimal.Decimal `yaml:"threshold"`
	LowRate   decimal.Decimal `yaml:"low_rate"`
	HighRate  decimal.Decimal `yaml:"high_rate"`
	Cap       decimal.Decimal `yaml:"cap"`
}

type bracketFile struct {
	UpTo      *decimal.Decimal `yaml:"up_to,omitempty"`
	Base      decimal.Decimal  `yaml:"base"`
	Threshold decimal.Decimal  `yaml:"threshold"`
	Rate      decimal.Decimal  `yaml:"rate"`
}

// LoadSchedule reads a YAML schedule file.
func LoadSchedule(path string) (Schedule, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Schedule{}, err
	}
	return ParseScheduleYAML(b)
}

// ParseScheduleYAML decodes and validates a schedule document.
func ParseScheduleYAML(b []byte) (Schedule, error) {
	var f scheduleFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Schedule{}, fmt.Errorf("%w: %v", payroll.ErrInvalidSchedule, err)
	}
	if f.Version != scheduleFileVersion {
		return Schedule{}, fmt.Errorf("%w: unsupported version %d", payroll.ErrInvalidSchedule, f.Version)
	}

	s := Schedule{
		HealthInsurance: HealthRule{
			Rate:          f.HealthInsurance.Rate,
			Floor:         f.HealthInsurance.Floor,
			Ceiling:       f.HealthInsurance.Ceiling,
			EmployeeShare: f.HealthInsurance.EmployeeShare,
		},
		HousingFund: HousingRule{
			Threshold: f.HousingFund.Threshold,
			LowRate:   f.HousingFund.LowRate,
			HighRate:  f.HousingFund.HighRate,
			Cap:       f.HousingFund.Cap,
		},
	}
	for _, b := range f.SocialInsurance {
		band := Band{Lower: b.Lower, Amount: b.Amount, Unbounded: b.Upper == nil}
		if b.Upper != nil {
			band.Upper = *b.Upper
		}
		s.SocialInsurance = append(s.SocialInsurance, band)
	}
	for _, b := range f.WithholdingTax {
		bracket := TaxBracket{Base: b.Base, Threshold: b.Threshold, Rate: b.Rate, Unbounded: b.UpTo == nil}
		if b.UpTo != nil {
			bracket.UpTo = *b.UpTo
		}
		s.WithholdingTax = append(s.WithholdingTax, bracket)
	}

	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

// MarshalScheduleYAML encodes a schedule in the format ParseScheduleYAML reads.
func MarshalScheduleYAML(s Schedule) ([]byte, error) {
	f := scheduleFile{
		Version: scheduleFileVersion,
		HealthInsurance: healthFile{
			Rate:          s.HealthInsurance.Rate,
			Floor:         s.HealthInsurance.Floor,
			Ceiling:       s.HealthInsurance.Ceiling,
			EmployeeShare: s.HealthInsurance.EmployeeShare,
		},
		HousingFund: housingFile{
			Threshold: s.HousingFund.Threshold,
			LowRate:   s.HousingFund.LowRate,
			HighRate:  s.HousingFund.HighRate,
			Cap:       s.HousingFund.Cap,
		},
	}
	for _, b := range s.SocialInsurance {
		bf := bandFile{Lower: b.Lower, Amount: b.Amount}
		if !b.Unbounded {
			upper := b.Upper
			bf.Upper = &upper
		}
		f.SocialInsurance = append(f.SocialInsurance, bf)
	}
	for _, b := range s.WithholdingTax {
		bf := bracketFile{Base: b.Base, Threshold: b.Threshold, Rate: b.Rate}
		if !b.Unbounded {
			upTo := b.UpTo
			bf.UpTo = &upTo
		}
		f.WithholdingTax = append(f.WithholdingTax, bf)
	}
	return yaml.Marshal(f)
}
