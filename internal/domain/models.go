// Package domain provides core domain models and types.
package domain

// RiskCategory represents a client's risk-tolerance bucket derived
// from the questionnaire score.
type RiskCategory string

const (
	// RiskHigh - high risk tolerance (growth-oriented portfolios)
	RiskHigh RiskCategory = "HIGH"
	// RiskMedium - balanced risk tolerance
	RiskMedium RiskCategory = "MEDIUM"
	// RiskLow - low risk tolerance (conservative, capital preservation)
	RiskLow RiskCategory = "LOW"
)

// Valid reports whether the category is one of the known buckets.
func (c RiskCategory) Valid() bool {
	switch c {
	case RiskHigh, RiskMedium, RiskLow:
		return true
	}
	return false
}

// Instrument describes a tradeable ETF in a model portfolio.
type Instrument struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ModelEntry pairs an instrument with its default weight percentage.
type ModelEntry struct {
	Instrument Instrument `json:"instrument"`
	// DefaultWeight is an integer percentage. Entries in a model sum to 100.
	DefaultWeight int `json:"default_weight"`
}

// AllocationModel is the static reference portfolio for one risk category.
// Entries are ordered; that order is the canonical instrument ordering
// for all downstream vector math.
type AllocationModel struct {
	Category  RiskCategory `json:"category"`
	Profile   string       `json:"profile"`
	Rationale string       `json:"rationale"`
	Entries   []ModelEntry `json:"entries"`
}

// Symbols returns the model's instrument symbols in canonical order.
func (m AllocationModel) Symbols() []string {
	symbols := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		symbols[i] = e.Instrument.Symbol
	}
	return symbols
}

// Holding is one instrument's user-adjusted weight inside an Allocation.
type Holding struct {
	Symbol string `json:"symbol"`
	// Weight is an integer percentage in [0, 100].
	Weight int `json:"weight"`
}

// Allocation is an ordered weight vector over a model's instruments.
// Invariant: weights sum to exactly 100. Construct via
// allocation.ApplyOverrides so the invariant holds.
type Allocation struct {
	Category RiskCategory `json:"category"`
	Holdings []Holding    `json:"holdings"`
}

// Symbols returns holding symbols in vector order.
func (a Allocation) Symbols() []string {
	symbols := make([]string, len(a.Holdings))
	for i, h := range a.Holdings {
		symbols[i] = h.Symbol
	}
	return symbols
}

// Fractions returns the weights as fractions (percentage / 100) in
// vector order.
func (a Allocation) Fractions() []float64 {
	fractions := make([]float64, len(a.Holdings))
	for i, h := range a.Holdings {
		fractions[i] = float64(h.Weight) / 100.0
	}
	return fractions
}

// PriceBar is one daily observation of an instrument's closing price.
type PriceBar struct {
	Date  string  `json:"date"` // "2006-01-02"
	Close float64 `json:"close"`
}

// PriceSeries is an ordered sequence of daily closes for one
// instrument. Dates are strictly increasing.
type PriceSeries []PriceBar

// PortfolioStats holds annualized portfolio statistics derived from
// historical daily returns.
type PortfolioStats struct {
	ExpectedReturnPct float64 `json:"expected_return_pct"`
	VolatilityPct     float64 `json:"volatility_pct"`
}

// GrowthTrajectory holds two parallel monthly wealth sequences: one
// compounded at the portfolio's expected return and one accumulating
// contributions without any return. Both have length
// horizonYears*12 + 1; element 0 is the initial amount.
type GrowthTrajectory struct {
	Invested []float64 `json:"invested"`
	Saved    []float64 `json:"saved"`
}

// FinalInvested returns the last compounded wealth value.
func (g GrowthTrajectory) FinalInvested() float64 {
	if len(g.Invested) == 0 {
		return 0
	}
	return g.Invested[len(g.Invested)-1]
}

// FinalSaved returns the last simple-sum wealth value.
func (g GrowthTrajectory) FinalSaved() float64 {
	if len(g.Saved) == 0 {
		return 0
	}
	return g.Saved[len(g.Saved)-1]
}

// ClientRecord holds the registration data captured at the start of a
// session. Kept in memory only for the lifetime of the session.
type ClientRecord struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	City  string `json:"city"`
	Age   int    `json:"age"`
}
