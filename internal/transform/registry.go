package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (DealTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	// Financing transforms
	registry.Register("adjust_rate", createAdjustInterestRate)
	registry.Register("set_rate", createSetInterestRate)
	registry.Register("set_amortization", createSetAmortization)

	// Operating transforms
	registry.Register("set_noi_growth", createSetNOIGrowth)
	registry.Register("set_initial_noi", createSetInitialNOI)

	// Exit transforms
	registry.Register("set_exit_cap", createSetExitCapRate)
	registry.Register("adjust_exit_cap", createAdjustExitCapRate)
	registry.Register("set_hold", createSetHoldPeriod)

	// Equity transforms
	registry.Register("set_pref", createSetPreferredReturn)
	registry.Register("set_equity_split", createSetEquitySplit)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (DealTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "adjust_rate:delta=0.5"
func (r *TransformRegistry) ParseTransformSpec(spec string) (DealTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func requireDecimal(params map[string]string, transform, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}

	return value, nil
}

func requireInt(params map[string]string, transform, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}

	return value, nil
}

func createAdjustInterestRate(params map[string]string) (DealTransform, error) {
	delta, err := requireDecimal(params, "adjust_rate", "delta")
	if err != nil {
		return nil, err
	}

	return &AdjustInterestRate{DeltaPct: delta}, nil
}

func createSetInterestRate(params map[string]string) (DealTransform, error) {
	rate, err := requireDecimal(params, "set_rate", "rate")
	if err != nil {
		return nil, err
	}

	return &SetInterestRate{RatePct: rate}, nil
}

func createSetAmortization(params map[string]string) (DealTransform, error) {
	years, err := requireInt(params, "set_amortization", "years")
	if err != nil {
		return nil, err
	}

	return &SetAmortization{Years: years}, nil
}

func createSetNOIGrowth(params map[string]string) (DealTransform, error) {
	growth, err := requireDecimal(params, "set_noi_growth", "growth")
	if err != nil {
		return nil, err
	}

	return &SetNOIGrowth{GrowthPct: growth}, nil
}

func createSetInitialNOI(params map[string]string) (DealTransform, error) {
	noi, err := requireDecimal(params, "set_initial_noi", "noi")
	if err != nil {
		return nil, err
	}

	return &SetInitialNOI{NOI: noi}, nil
}

func createSetExitCapRate(params map[string]string) (DealTransform, error) {
	cap, err := requireDecimal(params, "set_exit_cap", "cap")
	if err != nil {
		return nil, err
	}

	return &SetExitCapRate{CapRatePct: cap}, nil
}

func createAdjustExitCapRate(params map[string]string) (DealTransform, error) {
	delta, err := requireDecimal(params, "adjust_exit_cap", "delta")
	if err != nil {
		return nil, err
	}

	return &AdjustExitCapRate{DeltaPct: delta}, nil
}

func createSetHoldPeriod(params map[string]string) (DealTransform, error) {
	years, err := requireInt(params, "set_hold", "years")
	if err != nil {
		return nil, err
	}

	return &SetHoldPeriod{Years: years}, nil
}

func createSetPreferredReturn(params map[string]string) (DealTransform, error) {
	rate, err := requireDecimal(params, "set_pref", "rate")
	if err != nil {
		return nil, err
	}

	return &SetPreferredReturn{RatePct: rate}, nil
}

func createSetEquitySplit(params map[string]string) (DealTransform, error) {
	gp, err := requireDecimal(params, "set_equity_split", "gp")
	if err != nil {
		return nil, err
	}

	lp, err := requireDecimal(params, "set_equity_split", "lp")
	if err != nil {
		return nil, err
	}

	return &SetEquitySplit{GPPct: gp, LPPct: lp}, nil
}
