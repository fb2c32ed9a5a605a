package plans

type Plan string

const (
	Basic        Plan = "Básico"
	Professional Plan = "Profissional"
	Premium      Plan = "Premium"
)

type PlanDetails struct {
	Price       float64
	Description string
}

var PlanCatalog = map[Plan]PlanDetails{
	Basic: {
		Price:       49.90,
		Description: "1 logo, 2 revisões, entrega em 3 dias",
	},
	Professional: {
		Price:       69.90,
		Description: "3 propostas de logo, revisões ilimitadas, entrega em 2 dias",
	},
	Premium: {
		Price:       89.90,
		Description: "5 propostas de logo, identidade visual completa, entrega em 24h",
	},
}

// IsValid reports whether the value is one of the offered plans. The
// empty string is not a plan; the intake form treats it as "no plan".
func IsValid(plan string) bool {
	_, ok := PlanCatalog[Plan(plan)]
	return ok
}

// ConversionValue is the monetary value reported to the ad networks for
// a lead. Unknown or absent plans are worth 0.
func ConversionValue(plan string) float64 {
	details, ok := PlanCatalog[Plan(plan)]
	if !ok {
		return 0
	}
	return details.Price
}
