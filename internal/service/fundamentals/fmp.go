package fundamentals

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"EquityPulse/internal/domain/models"
	xhttp "EquityPulse/pkg/http"
)

// FMPProvider fetches statements and quotes from the FMP stable API and
// joins them into reporting periods.
type FMPProvider struct {
	client  *xhttp.Client
	baseURL string
	apiKey  string
}

// NewFMPProvider creates the FMP fundamentals provider.
func NewFMPProvider(client *xhttp.Client, baseURL, apiKey string) *FMPProvider {
	return &FMPProvider{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

type fmpIncomeRow struct {
	Date    string   `json:"date"`
	Revenue *float64 `json:"revenue"`
}

type fmpCashflowRow struct {
	Date               string   `json:"date"`
	OperatingCashFlow  *float64 `json:"operatingCashFlow"`
	CapitalExpenditure *float64 `json:"capitalExpenditure"`
}

type fmpBalanceRow struct {
	Date                   string   `json:"date"`
	CashAndCashEquivalents *float64 `json:"cashAndCashEquivalents"`
	TotalDebt              *float64 `json:"totalDebt"`
}

type fmpQuoteRow struct {
	Symbol    string   `json:"symbol"`
	Price     *float64 `json:"price"`
	MarketCap *float64 `json:"marketCap"`
}

// QuarterlyHistory fetches and joins quarterly statements, newest first.
func (p *FMPProvider) QuarterlyHistory(ctx context.Context, ticker string, quarters int) ([]models.FundamentalsPeriod, error) {
	return p.history(ctx, ticker, "quarter", quarters)
}

// AnnualHistory fetches and joins annual statements, newest first.
func (p *FMPProvider) AnnualHistory(ctx context.Context, ticker string, years int) ([]models.FundamentalsPeriod, error) {
	return p.history(ctx, ticker, "annual", years)
}

func (p *FMPProvider) history(ctx context.Context, ticker, period string, limit int) ([]models.FundamentalsPeriod, error) {
	ticker = strings.ToUpper(ticker)
	if limit <= 0 {
		limit = 12
	}

	query := url.Values{
		"apikey": {p.apiKey},
		"symbol": {ticker},
		"period": {period},
		"limit":  {strconv.Itoa(limit)},
	}

	var income []fmpIncomeRow
	if err := p.client.SendAndParse(ctx, xhttp.RequestOptions{URL: p.baseURL + "/income-statement", Query: query}, &income); err != nil {
		return nil, fmt.Errorf("fmp income statement for %s: %w", ticker, err)
	}
	var cashflow []fmpCashflowRow
	if err := p.client.SendAndParse(ctx, xhttp.RequestOptions{URL: p.baseURL + "/cash-flow-statement", Query: query}, &cashflow); err != nil {
		return nil, fmt.Errorf("fmp cash flow statement for %s: %w", ticker, err)
	}
	var balance []fmpBalanceRow
	if err := p.client.SendAndParse(ctx, xhttp.RequestOptions{URL: p.baseURL + "/balance-sheet-statement", Query: query}, &balance); err != nil {
		return nil, fmt.Errorf("fmp balance sheet for %s: %w", ticker, err)
	}
	if len(income) == 0 || len(cashflow) == 0 || len(balance) == 0 {
		return nil, fmt.Errorf("fmp %s statements empty for %s", period, ticker)
	}

	cfByDate := make(map[string]fmpCashflowRow, len(cashflow))
	for _, row := range cashflow {
		cfByDate[row.Date] = row
	}
	balByDate := make(map[string]fmpBalanceRow, len(balance))
	for _, row := range balance {
		balByDate[row.Date] = row
	}

	// Inner join on period end date, like the statement merge upstream.
	var out []models.FundamentalsPeriod
	for _, inc := range income {
		cf, hasCF := cfByDate[inc.Date]
		bal, hasBal := balByDate[inc.Date]
		if !hasCF || !hasBal {
			continue
		}
		periodEnd, err := time.Parse("2006-01-02", inc.Date)
		if err != nil {
			continue
		}

		fp := models.FundamentalsPeriod{
			Ticker:            ticker,
			PeriodEnd:         periodEnd,
			Revenue:           inc.Revenue,
			OperatingCashFlow: cf.OperatingCashFlow,
			Cash:              bal.CashAndCashEquivalents,
			Debt:              bal.TotalDebt,
		}
		if cf.CapitalExpenditure != nil {
			fp.CapexSpend = models.Float(math.Abs(*cf.CapitalExpenditure))
		}
		if fp.OperatingCashFlow != nil && fp.CapexSpend != nil {
			fp.FreeCashFlow = models.Float(*fp.OperatingCashFlow - *fp.CapexSpend)
		}
		if fp.FreeCashFlow != nil && fp.Revenue != nil && *fp.Revenue != 0 {
			fp.FCFMarginPct = models.Float(*fp.FreeCashFlow / *fp.Revenue * 100)
		}
		out = append(out, fp)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].PeriodEnd.After(out[j].PeriodEnd)
	})
	return out, nil
}

// Quote fetches the market snapshot for a ticker.
func (p *FMPProvider) Quote(ctx context.Context, ticker string) (*models.Quote, error) {
	ticker = strings.ToUpper(ticker)

	var rows []fmpQuoteRow
	err := p.client.SendAndParse(ctx, xhttp.RequestOptions{
		URL:   p.baseURL + "/quote",
		Query: url.Values{"apikey": {p.apiKey}, "symbol": {ticker}},
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("fmp quote for %s: %w", ticker, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("fmp quote empty for %s", ticker)
	}

	return &models.Quote{
		Symbol:    strings.ToUpper(rows[0].Symbol),
		Price:     rows[0].Price,
		MarketCap: rows[0].MarketCap,
	}, nil
}
