package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
// Future: could be loaded from the deal file or generated dynamically.
var DefaultAssumptions = []string{
	"NOI growth: 3.0% annually unless the deal file overrides it",
	"Debt service: level payment, monthly amortization",
	"Preferred return: simple (non-compounding), paid ahead of promote splits",
	"Exit value: final-year NOI divided by the exit cap rate",
	"Waterfall tiers: first tier whose hurdle covers the reference return",
	"IRR: annual periods, Newton-Raphson with bisection fallback",
}
