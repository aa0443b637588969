// Package simulation projects compound portfolio growth against a
// contributions-only baseline.
package simulation

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
)

const monthsPerYear = 12

// Service runs deterministic compound-growth projections.
type Service struct {
	log zerolog.Logger
}

// NewService creates a simulation service.
func NewService(log zerolog.Logger) *Service {
	return &Service{
		log: log.With().Str("service", "simulation").Logger(),
	}
}

// Simulate projects monthly balances over the horizon. The annual
// rate is converted to its monthly-compounding equivalent, each month
// adds the contribution and then applies growth, and a parallel
// no-growth series tracks cumulative savings. Index 0 holds the
// initial balance, so the trajectories span horizonYears*12+1 points.
// Negative rates are valid and model a declining portfolio.
func (s *Service) Simulate(annualRatePct, initial, monthlyContribution float64, horizonYears int) (domain.GrowthTrajectory, error) {
	if horizonYears < 1 {
		return domain.GrowthTrajectory{}, fmt.Errorf("horizon must be at least 1 year, got %d", horizonYears)
	}
	if initial < 0 {
		return domain.GrowthTrajectory{}, fmt.Errorf("initial balance must not be negative, got %.2f", initial)
	}
	if monthlyContribution < 0 {
		return domain.GrowthTrajectory{}, fmt.Errorf("monthly contribution must not be negative, got %.2f", monthlyContribution)
	}

	monthlyRate := math.Pow(1+annualRatePct/100, 1.0/monthsPerYear) - 1

	months := horizonYears * monthsPerYear
	invested := make([]float64, months+1)
	saved := make([]float64, months+1)
	invested[0] = initial
	saved[0] = initial

	for m := 1; m <= months; m++ {
		invested[m] = (invested[m-1] + monthlyContribution) * (1 + monthlyRate)
		saved[m] = saved[m-1] + monthlyContribution
	}

	trajectory := domain.GrowthTrajectory{Invested: invested, Saved: saved}

	s.log.Debug().
		Float64("annual_rate_pct", annualRatePct).
		Int("horizon_years", horizonYears).
		Float64("final_invested", trajectory.FinalInvested()).
		Float64("final_saved", trajectory.FinalSaved()).
		Msg("Computed growth projection")

	return trajectory, nil
}
