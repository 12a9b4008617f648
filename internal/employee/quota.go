package employee

import "github.com/sobrinN/DASH.rh/internal/company"

// FreePlanLimit is the employee ceiling for free-tier companies.
const FreePlanLimit = 20

// Unlimited disables the ceiling for a creation attempt.
const Unlimited = -1

// PlanLimit maps a company's plan to its employee ceiling. The ceiling is
// enforced inside the repository's creation transaction, so two concurrent
// creates cannot both pass a count of 19.
func PlanLimit(c *company.Company) int {
	if c.IsFree() {
		return FreePlanLimit
	}
	return Unlimited
}
