package models

import (
	"finboard/pkg/core/finance"
)

type UserOut struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
}

type RegisterIn struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type CompanyIn struct {
	Name    string `json:"name" binding:"required"`
	Ticker  string `json:"ticker" binding:"required"`
	Segment string `json:"segment" binding:"required"`
}

type CompanyOut struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Ticker  string `json:"ticker"`
	Segment string `json:"segment"`
}

// CompanyMetrics is one dashboard row: company identity plus its computed
// valuation ratios. Ratios that could not be computed serialize as null.
type CompanyMetrics struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Ticker  string `json:"ticker"`
	Segment string `json:"segment"`
	finance.Ratios
}

type DashboardResponse struct {
	Companies []CompanyMetrics `json:"companies"`
}

// CompanyDetail carries everything the company page renders: profile info,
// ratios, and the three formatted statements (null when the provider had
// nothing).
type CompanyDetail struct {
	ID              int64                  `json:"id"`
	Name            string                 `json:"name"`
	Ticker          string                 `json:"ticker"`
	Segment         string                 `json:"segment"`
	Info            map[string]any         `json:"info"`
	Ratios          finance.Ratios         `json:"ratios"`
	IncomeStatement *finance.StatementJSON `json:"income_statement"`
	BalanceSheet    *finance.StatementJSON `json:"balance_sheet"`
	CashFlow        *finance.StatementJSON `json:"cash_flow"`
}
