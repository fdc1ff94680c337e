package payroll

import "github.com/cmlabs-hris/payroll-engine/internal/domain/employee"

// PayPolicy switches parts of the payslip formula per employment type.
type PayPolicy struct {
	BenefitsEligible   bool
	LatePenaltyEnabled bool
}

var payPolicies = map[employee.EmploymentType]PayPolicy{
	employee.EmploymentTypeRegular:      {BenefitsEligible: true, LatePenaltyEnabled: true},
	employee.EmploymentTypeProbationary: {BenefitsEligible: false, LatePenaltyEnabled: true},
}

// PolicyFor returns the policy of an employment type; unknown types are paid as regular.
func PolicyFor(t employee.EmploymentType) PayPolicy {
	if p, ok := payPolicies[t]; ok {
		return p
	}
	return payPolicies[employee.EmploymentTypeRegular]
}
