package leave

import "github.com/cmlabs-hris/payroll-engine/internal/domain/leave"

// Quota is the starting allowance, in days, of each leave type.
type Quota map[leave.Type]int

// DefaultQuota opens every type at five days.
var DefaultQuota = Quota{
	leave.TypeSick:      5,
	leave.TypeVacation:  5,
	leave.TypeEmergency: 5,
}

type QuotaCalculator struct {
	quota Quota
}

// NewQuotaCalculator uses DefaultQuota when quota is nil.
func NewQuotaCalculator(quota Quota) *QuotaCalculator {
	if quota == nil {
		quota = DefaultQuota
	}
	return &QuotaCalculator{quota: quota}
}

// CalculateQuota returns a fresh balance map with every leave type present.
// Types missing from the table start at zero, negative entries are clamped.
func (c *QuotaCalculator) CalculateQuota() map[leave.Type]int {
	remaining := make(map[leave.Type]int, len(leave.Types))
	for _, t := range leave.Types {
		remaining[t] = max(c.quota[t], 0)
	}
	return remaining
}
