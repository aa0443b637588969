// Package allocation maps risk categories to model ETF portfolios and
// validates user weight overrides.
package allocation

import (
	"fmt"

	"github.com/aristath/advisor/internal/domain"
)

// DefaultAllocation returns the static model portfolio for a risk
// category. The returned model is a copy; callers may not mutate the
// reference data.
func DefaultAllocation(category domain.RiskCategory) (domain.AllocationModel, error) {
	model, ok := models[category]
	if !ok {
		return domain.AllocationModel{}, fmt.Errorf("no allocation model for risk category %q", category)
	}

	out := model
	out.Entries = make([]domain.ModelEntry, len(model.Entries))
	copy(out.Entries, model.Entries)
	return out, nil
}

// DefaultWeights returns a model's default weights keyed by symbol,
// in the shape ApplyOverrides accepts.
func DefaultWeights(model domain.AllocationModel) map[string]int {
	weights := make(map[string]int, len(model.Entries))
	for _, e := range model.Entries {
		weights[e.Instrument.Symbol] = e.DefaultWeight
	}
	return weights
}

// ApplyOverrides validates user weight overrides against a model and
// produces an Allocation in the model's canonical instrument order.
//
// Weights are integer percentages and the sum must equal exactly 100
// (domain.AllocationSumError otherwise). Integer weights with strict
// equality match the discrete slider steps of the advisory workflow;
// no epsilon is applied. Every model instrument must be covered, no
// extra symbols are allowed, and no weight may be negative or above
// 100.
func ApplyOverrides(model domain.AllocationModel, weights map[string]int) (domain.Allocation, error) {
	if len(weights) != len(model.Entries) {
		return domain.Allocation{}, fmt.Errorf("expected weights for %d instruments, got %d", len(model.Entries), len(weights))
	}

	holdings := make([]domain.Holding, 0, len(model.Entries))
	sum := 0
	for _, e := range model.Entries {
		symbol := e.Instrument.Symbol
		weight, ok := weights[symbol]
		if !ok {
			return domain.Allocation{}, fmt.Errorf("missing weight for instrument %s", symbol)
		}
		if weight < 0 || weight > 100 {
			return domain.Allocation{}, fmt.Errorf("weight for %s out of range: %d", symbol, weight)
		}
		holdings = append(holdings, domain.Holding{Symbol: symbol, Weight: weight})
		sum += weight
	}

	if sum != 100 {
		return domain.Allocation{}, domain.AllocationSumError{Sum: sum}
	}

	return domain.Allocation{
		Category: model.Category,
		Holdings: holdings,
	}, nil
}
