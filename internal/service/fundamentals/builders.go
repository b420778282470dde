package fundamentals

import (
	"sort"

	"EquityPulse/internal/domain/models"
)

// BuildTTM rolls quarterly periods into trailing-twelve-months rows, newest
// first. A TTM value exists only when all four quarters in its window carry
// the input; YoY compares against the TTM window four quarters back.
func BuildTTM(qhist []models.FundamentalsPeriod) []models.TTMRow {
	if len(qhist) == 0 {
		return nil
	}

	asc := make([]models.FundamentalsPeriod, len(qhist))
	copy(asc, qhist)
	sort.Slice(asc, func(i, j int) bool {
		return asc[i].PeriodEnd.Before(asc[j].PeriodEnd)
	})

	revTTM := rollingSum(asc, func(p models.FundamentalsPeriod) *float64 { return p.Revenue })
	fcfTTM := rollingSum(asc, func(p models.FundamentalsPeriod) *float64 { return p.FreeCashFlow })

	rows := make([]models.TTMRow, len(asc))
	for i, p := range asc {
		row := models.TTMRow{
			Ticker:     p.Ticker,
			PeriodEnd:  p.PeriodEnd,
			RevenueTTM: revTTM[i],
			FCFTTM:     fcfTTM[i],
			Cash:       p.Cash,
			Debt:       p.Debt,
		}
		if row.FCFTTM != nil && row.RevenueTTM != nil && *row.RevenueTTM != 0 {
			row.FCFMarginTTMPct = models.Float(*row.FCFTTM / *row.RevenueTTM * 100)
		}
		if i >= 4 {
			row.RevenueYoYPct = pctChange(revTTM[i], revTTM[i-4])
			row.FCFYoYPct = pctChange(fcfTTM[i], fcfTTM[i-4])
		}
		rows[i] = row
	}

	// Newest first, matching statement history ordering.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows
}

// BuildComps joins each ticker's latest TTM row with its quote into one peer
// table row. Derived ratios stay nil when their inputs are missing.
func BuildComps(latestTTM map[string]models.TTMRow, quotes map[string]models.Quote) []models.CompsRow {
	tickers := make([]string, 0, len(latestTTM))
	for t := range latestTTM {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	rows := make([]models.CompsRow, 0, len(tickers))
	for _, ticker := range tickers {
		ttm := latestTTM[ticker]
		periodEnd := ttm.PeriodEnd

		row := models.CompsRow{
			Ticker:          ticker,
			PeriodEnd:       &periodEnd,
			RevenueTTM:      ttm.RevenueTTM,
			RevenueYoYPct:   ttm.RevenueYoYPct,
			FCFTTM:          ttm.FCFTTM,
			FCFYoYPct:       ttm.FCFYoYPct,
			FCFMarginTTMPct: ttm.FCFMarginTTMPct,
			Cash:            ttm.Cash,
			Debt:            ttm.Debt,
		}
		if quote, ok := quotes[ticker]; ok {
			row.Price = quote.Price
			row.MarketCap = quote.MarketCap
		}

		if row.Debt != nil && row.Cash != nil {
			row.NetDebt = models.Float(*row.Debt - *row.Cash)
		}
		if row.FCFTTM != nil && row.MarketCap != nil && *row.MarketCap > 0 {
			row.FCFYield = models.Float(*row.FCFTTM / *row.MarketCap)
		}
		if row.NetDebt != nil && row.FCFTTM != nil && *row.FCFTTM > 0 {
			row.NetDebtToFCFTTM = models.Float(*row.NetDebt / *row.FCFTTM)
		}
		rows = append(rows, row)
	}
	return rows
}

// rollingSum computes 4-period rolling sums; nil when any period in the
// window is missing the value.
func rollingSum(asc []models.FundamentalsPeriod, get func(models.FundamentalsPeriod) *float64) []*float64 {
	out := make([]*float64, len(asc))
	for i := range asc {
		if i < 3 {
			continue
		}
		sum := 0.0
		complete := true
		for j := i - 3; j <= i; j++ {
			v := get(asc[j])
			if v == nil {
				complete = false
				break
			}
			sum += *v
		}
		if complete {
			out[i] = models.Float(sum)
		}
	}
	return out
}

func pctChange(cur, prev *float64) *float64 {
	if cur == nil || prev == nil || *prev == 0 {
		return nil
	}
	return models.Float((*cur - *prev) / *prev * 100)
}
