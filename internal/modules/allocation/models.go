package allocation

import (
	"github.com/aristath/advisor/internal/domain"
)

// models is the static category -> model portfolio lookup table.
// Default weights per model sum to 100 by construction.
var models = map[domain.RiskCategory]domain.AllocationModel{
	domain.RiskHigh: {
		Category: domain.RiskHigh,
		Profile:  "High risk tolerance",
		Rationale: "ETFs focused on sectors with high growth potential: technology, " +
			"emerging markets and the S&P 500. These instruments tend to be more " +
			"volatile but offer higher long-term returns.",
		Entries: []domain.ModelEntry{
			{Instrument: domain.Instrument{Symbol: "QQQ", Name: "Invesco QQQ Trust", Description: "Technology, Nasdaq-100"}, DefaultWeight: 50},
			{Instrument: domain.Instrument{Symbol: "SPY", Name: "SPDR S&P 500 ETF Trust", Description: "S&P 500 equities"}, DefaultWeight: 30},
			{Instrument: domain.Instrument{Symbol: "EEM", Name: "iShares MSCI Emerging Markets ETF", Description: "Emerging markets"}, DefaultWeight: 20},
		},
	},
	domain.RiskMedium: {
		Category: domain.RiskMedium,
		Profile:  "Medium risk tolerance",
		Rationale: "ETFs that diversify across broad-market equities, corporate " +
			"bonds and gold. The combination seeks balance between risk and return.",
		Entries: []domain.ModelEntry{
			{Instrument: domain.Instrument{Symbol: "VTI", Name: "Vanguard Total Stock Market ETF", Description: "Total US stock market"}, DefaultWeight: 40},
			{Instrument: domain.Instrument{Symbol: "LQD", Name: "iShares iBoxx $ Investment Grade Corporate Bond ETF", Description: "Corporate bonds"}, DefaultWeight: 40},
			{Instrument: domain.Instrument{Symbol: "GLD", Name: "SPDR Gold Shares", Description: "Gold"}, DefaultWeight: 20},
		},
	},
	domain.RiskLow: {
		Category: domain.RiskLow,
		Profile:  "Low risk tolerance",
		Rationale: "ETFs that prioritize stability and capital preservation: US and " +
			"international bonds plus defensive sectors.",
		Entries: []domain.ModelEntry{
			{Instrument: domain.Instrument{Symbol: "BND", Name: "Vanguard Total Bond Market ETF", Description: "US bonds"}, DefaultWeight: 20},
			{Instrument: domain.Instrument{Symbol: "BNDX", Name: "Vanguard Total International Bond ETF", Description: "International bonds"}, DefaultWeight: 60},
			{Instrument: domain.Instrument{Symbol: "VDC", Name: "Vanguard Consumer Staples ETF", Description: "Consumer staples"}, DefaultWeight: 20},
		},
	},
}
