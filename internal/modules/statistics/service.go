// Package statistics computes annualized portfolio return and
// volatility from historical daily closes.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/pkg/formulas"
)

// Service computes portfolio statistics. Pure computation: price
// retrieval is the caller's responsibility.
type Service struct {
	log zerolog.Logger
}

// NewService creates a statistics service.
func NewService(log zerolog.Logger) *Service {
	return &Service{
		log: log.With().Str("service", "statistics").Logger(),
	}
}

// Align inner-joins the given series on date for the listed symbols
// and returns the common dates (ascending) plus the aligned close
// vector per symbol. Fails with domain.InsufficientDataError when
// fewer than 2 common observations remain.
func Align(series map[string]domain.PriceSeries, symbols []string) ([]string, map[string][]float64, error) {
	if len(symbols) == 0 {
		return nil, nil, fmt.Errorf("no symbols to align")
	}

	// Per-symbol date -> close lookup.
	bySymbol := make(map[string]map[string]float64, len(symbols))
	for _, symbol := range symbols {
		s, ok := series[symbol]
		if !ok {
			return nil, nil, fmt.Errorf("missing price series for %s", symbol)
		}
		closes := make(map[string]float64, len(s))
		for _, bar := range s {
			closes[bar.Date] = bar.Close
		}
		bySymbol[symbol] = closes
	}

	// Intersect dates across all symbols, driven by the first series.
	var dates []string
	for date := range bySymbol[symbols[0]] {
		common := true
		for _, symbol := range symbols[1:] {
			if _, ok := bySymbol[symbol][date]; !ok {
				common = false
				break
			}
		}
		if common {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	if len(dates) < 2 {
		return nil, nil, domain.InsufficientDataError{Points: len(dates)}
	}

	aligned := make(map[string][]float64, len(symbols))
	for _, symbol := range symbols {
		closes := make([]float64, len(dates))
		for i, date := range dates {
			closes[i] = bySymbol[symbol][date]
		}
		aligned[symbol] = closes
	}

	return dates, aligned, nil
}

// ComputeStats derives annualized expected return and volatility for
// an allocation from per-instrument price histories.
//
// All intermediate data stays keyed by symbol; positional vectors are
// built only for the final linear-algebra step, in the allocation's
// canonical holding order. Supplying the series map in any iteration
// order therefore yields identical results.
func (s *Service) ComputeStats(series map[string]domain.PriceSeries, alloc domain.Allocation) (domain.PortfolioStats, error) {
	symbols := alloc.Symbols()

	dates, aligned, err := Align(series, symbols)
	if err != nil {
		return domain.PortfolioStats{}, err
	}

	// Daily simple returns per symbol over the aligned window.
	returns := make(map[string][]float64, len(symbols))
	for _, symbol := range symbols {
		returns[symbol] = formulas.CalculateReturns(aligned[symbol])
	}

	n := len(symbols)

	// Annualized mean-return vector in holding order.
	mu := mat.NewVecDense(n, nil)
	for i, symbol := range symbols {
		mu.SetVec(i, formulas.AnnualizedMeanReturn(returns[symbol]))
	}

	// Annualized covariance matrix (sample covariance × 252).
	sigma := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cov := formulas.Covariance(returns[symbols[i]], returns[symbols[j]]) * formulas.TradingDaysPerYear
			sigma.SetSym(i, j, cov)
		}
	}

	weights := mat.NewVecDense(n, alloc.Fractions())

	expectedPct := 100 * mat.Dot(weights, mu)

	variance := mat.Inner(weights, sigma, weights)
	if variance < 0 {
		// Floating-point noise can push a degenerate quadratic form
		// fractionally below zero.
		variance = 0
	}
	volatilityPct := 100 * math.Sqrt(variance)

	s.log.Debug().
		Int("observations", len(dates)).
		Int("instruments", n).
		Float64("expected_return_pct", expectedPct).
		Float64("volatility_pct", volatilityPct).
		Msg("Computed portfolio statistics")

	return domain.PortfolioStats{
		ExpectedReturnPct: expectedPct,
		VolatilityPct:     volatilityPct,
	}, nil
}
