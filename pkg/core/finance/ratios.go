package finance

// tradingSessionsPerYear approximates one calendar year of price history.
const tradingSessionsPerYear = 252

// Candidate row labels per line item. Providers are inconsistent about
// naming across companies and reporting regimes, so every item carries an
// ordered fallback list; first usable match wins.
var (
	revenueLabels = []string{"Total Revenue", "TotalRevenue", "Revenue"}

	netIncomeLabels = []string{"Net Income", "NetIncome", "Net Income Common Stockholders"}

	totalEquityLabels = []string{"Total Stockholder Equity", "Total Equity", "TotalEquity"}

	totalDebtLabels = []string{"Total Debt", "TotalDebt", "Long Term Debt", "LongTermDebt"}

	currentAssetsLabels = []string{"Total Current Assets", "Current Assets", "CurrentAssets"}

	currentLiabilitiesLabels = []string{"Total Current Liabilities", "Current Liabilities", "CurrentLiabilities"}
)

// Ratios is the fixed set of derived metrics shown on the dashboard.
// Every field is either nil or a finite number (NaN and infinities never
// survive into this struct), so it is always safe to serialize.
type Ratios struct {
	Revenue       *float64 `json:"revenue"`
	NetIncome     *float64 `json:"net_income"`
	NetMargin     *float64 `json:"net_margin"`
	ROE           *float64 `json:"roe"`
	DebtToEquity  *float64 `json:"debt_to_equity"`
	CurrentRatio  *float64 `json:"current_ratio"`
	Price         *float64 `json:"price"`
	OneYearReturn *float64 `json:"one_year_return"`
}

// ComputeRatios combines statement line items and price history into the
// dashboard metrics. Each metric is derived independently: a zero denominator
// or missing input blanks that single metric and leaves its siblings alone.
// The cashflow statement is accepted for interface symmetry; none of the
// current metrics read from it.
func ComputeRatios(income, balance, cashflow *Statement, prices PriceSeries) Ratios {
	var r Ratios

	revenue, hasRevenue := GetItem(income, revenueLabels)
	netIncome, hasNetIncome := GetItem(income, netIncomeLabels)
	totalEquity, hasEquity := GetItem(balance, totalEquityLabels)
	totalDebt, hasDebt := GetItem(balance, totalDebtLabels)
	currentAssets, hasCurAssets := GetItem(balance, currentAssetsLabels)
	currentLiab, hasCurLiab := GetItem(balance, currentLiabilitiesLabels)

	if hasRevenue {
		r.Revenue = cleanFloat(revenue)
	}
	if hasNetIncome {
		r.NetIncome = cleanFloat(netIncome)
	}

	if hasNetIncome && hasRevenue && revenue != 0 {
		r.NetMargin = cleanFloat(netIncome / revenue)
	}
	if hasNetIncome && hasEquity && totalEquity != 0 {
		r.ROE = cleanFloat(netIncome / totalEquity)
	}
	if hasDebt && hasEquity && totalEquity != 0 {
		r.DebtToEquity = cleanFloat(totalDebt / totalEquity)
	}
	if hasCurAssets && hasCurLiab && currentLiab != 0 {
		r.CurrentRatio = cleanFloat(currentAssets / currentLiab)
	}

	if n := len(prices); n > 0 {
		r.Price = cleanFloat(prices[n-1].Close)

		// The return window is 252 trading sessions, not a calendar year, and
		// needs strictly more than one window of history.
		if n > tradingSessionsPerYear {
			pxNow := prices[n-1].Close
			pxThen := prices[n-tradingSessionsPerYear].Close
			if pxThen != 0 {
				r.OneYearReturn = cleanFloat(pxNow/pxThen - 1.0)
			}
		}
	}

	return r
}
