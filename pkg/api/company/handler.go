package company

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"finboard/pkg/core/auth"
	"finboard/pkg/core/export"
	"finboard/pkg/core/finance"
	"finboard/pkg/core/logger"
	"finboard/pkg/core/marketdata"
	"finboard/pkg/core/store"
	"finboard/pkg/models"
)

// detailStatementColumns caps how many reporting periods the company detail
// view returns per statement.
const detailStatementColumns = 3

type Handler struct {
	companies   *store.CompanyRepo
	market      *marketdata.Client
	pricePeriod string
	log         *logger.Entry
}

func NewHandler(companies *store.CompanyRepo, market *marketdata.Client, pricePeriod string) *Handler {
	return &Handler{
		companies:   companies,
		market:      market,
		pricePeriod: pricePeriod,
		log:         logger.WithComponent("api.company"),
	}
}

// RegisterRoutes mounts the authenticated company endpoints.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/companies", h.List)
	r.POST("/companies", h.Create)
	r.DELETE("/companies/:id", h.Delete)
	r.GET("/dashboard", h.Dashboard)
	r.GET("/companies/:id/detail", h.Detail)
	r.GET("/companies/:id/export", h.Export)
}

func (h *Handler) List(c *gin.Context) {
	user := auth.CurrentUser(c)
	companies, err := h.companies.ListByOwner(c.Request.Context(), user.ID)
	if err != nil {
		h.log.WithError(err).Error("failed to list companies")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	out := make([]models.CompanyOut, 0, len(companies))
	for _, co := range companies {
		out = append(out, companyOut(co))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Create(c *gin.Context) {
	user := auth.CurrentUser(c)

	var in models.CompanyIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	co, err := h.companies.Create(c.Request.Context(), user.ID, in.Name, in.Ticker, in.Segment)
	if err != nil {
		h.log.WithError(err).Error("failed to create company")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, companyOut(*co))
}

func (h *Handler) Delete(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := h.companyID(c)
	if !ok {
		return
	}

	if err := h.companies.Delete(c.Request.Context(), user.ID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Company not found"})
			return
		}
		h.log.WithError(err).Error("failed to delete company")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Dashboard returns every registered company with its computed valuation
// ratios. Provider failures for one ticker leave that row's ratios null
// rather than failing the whole response.
func (h *Handler) Dashboard(c *gin.Context) {
	user := auth.CurrentUser(c)
	ctx := c.Request.Context()

	companies, err := h.companies.ListByOwner(ctx, user.ID)
	if err != nil {
		h.log.WithError(err).Error("failed to list companies")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	rows := make([]models.CompanyMetrics, 0, len(companies))
	for _, co := range companies {
		fund := h.market.FetchFundamentals(ctx, co.Ticker)
		prices := h.market.FetchPriceHistory(ctx, co.Ticker, h.pricePeriod)
		rows = append(rows, models.CompanyMetrics{
			ID:      co.ID,
			Name:    co.Name,
			Ticker:  co.Ticker,
			Segment: co.Segment,
			Ratios:  finance.ComputeRatios(fund.Income, fund.Balance, fund.Cashflow, prices),
		})
	}

	c.JSON(http.StatusOK, models.DashboardResponse{Companies: rows})
}

func (h *Handler) Detail(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := h.companyID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	co, err := h.companies.GetByID(ctx, user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Company not found"})
			return
		}
		h.log.WithError(err).Error("failed to load company")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	fund := h.market.FetchFundamentals(ctx, co.Ticker)
	prices := h.market.FetchPriceHistory(ctx, co.Ticker, h.pricePeriod)

	c.JSON(http.StatusOK, models.CompanyDetail{
		ID:              co.ID,
		Name:            co.Name,
		Ticker:          co.Ticker,
		Segment:         co.Segment,
		Info:            finance.FlattenInfo(fund.Info),
		Ratios:          finance.ComputeRatios(fund.Income, fund.Balance, fund.Cashflow, prices),
		IncomeStatement: finance.ToStatementJSON(fund.Income, detailStatementColumns),
		BalanceSheet:    finance.ToStatementJSON(fund.Balance, detailStatementColumns),
		CashFlow:        finance.ToStatementJSON(fund.Cashflow, detailStatementColumns),
	})
}

// Export streams an xlsx workbook with the company's formatted statements.
func (h *Handler) Export(c *gin.Context) {
	user := auth.CurrentUser(c)
	id, ok := h.companyID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	co, err := h.companies.GetByID(ctx, user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Company not found"})
			return
		}
		h.log.WithError(err).Error("failed to load company")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	fund := h.market.FetchFundamentals(ctx, co.Ticker)
	f, err := export.BuildWorkbook(fund.Info, fund.Income, fund.Balance, fund.Cashflow)
	if err != nil {
		h.log.WithError(err).Error("failed to build workbook")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_statements.xlsx", co.Ticker))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		h.log.WithError(err).Error("failed to stream workbook")
	}
}

func (h *Handler) companyID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid company id"})
		return 0, false
	}
	return id, true
}

func companyOut(co store.Company) models.CompanyOut {
	return models.CompanyOut{
		ID:      co.ID,
		Name:    co.Name,
		Ticker:  co.Ticker,
		Segment: co.Segment,
	}
}
