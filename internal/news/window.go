package news

import (
	"sort"
	"strings"
	"time"

	"EquityPulse/internal/domain/models"
)

// WindowConfig fixes the two aggregation windows and the clock.
type WindowConfig struct {
	DaysShort int // default 7
	DaysLong  int // default 30
	Now       func() time.Time
}

// Aggregator computes time-windowed per-ticker, per-tag counts and shock,
// the risk dashboard and the compact news summary the decision scorer reads.
type Aggregator struct {
	daysShort int
	daysLong  int
	now       func() time.Time
}

func NewAggregator(cfg WindowConfig) *Aggregator {
	if cfg.DaysShort <= 0 {
		cfg.DaysShort = 7
	}
	if cfg.DaysLong <= 0 {
		cfg.DaysLong = 30
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Aggregator{daysShort: cfg.DaysShort, daysLong: cfg.DaysLong, now: cfg.Now}
}

// ageDays is the record age relative to now; window membership is inclusive
// of the boundary.
func (a *Aggregator) ageDays(t time.Time) float64 {
	return a.now().UTC().Sub(t.UTC()).Seconds() / 86400.0
}

func (a *Aggregator) inWindow(r models.NewsRecord, days int) bool {
	age := a.ageDays(r.PublishedAt)
	return age >= 0 && age <= float64(days)
}

// maxTopNegative caps the headline list carried in the news summary.
const maxTopNegative = 8

// Summarize builds the compact per-ticker stats consumed by the balance/risk
// bucket. Shock sums impact over negative records only, so it is <= 0.
func (a *Aggregator) Summarize(records []models.NewsRecord, ticker string) models.NewsSummary {
	ticker = strings.ToUpper(ticker)
	sum := models.NewsSummary{TagCounts30d: map[models.RiskTag]int{}}

	var topNeg []models.NewsRecord
	for _, r := range records {
		if !strings.EqualFold(r.Ticker, ticker) || r.ImpactScore >= 0 {
			continue
		}
		if a.inWindow(r, a.daysLong) {
			sum.Neg30d++
			sum.TagCounts30d[r.RiskTag]++
		}
		if a.inWindow(r, a.daysShort) {
			sum.Neg7d++
			sum.Shock7d += r.ImpactScore
			topNeg = append(topNeg, r)
		}
	}

	sort.SliceStable(topNeg, func(i, j int) bool {
		return topNeg[i].PublishedAt.After(topNeg[j].PublishedAt)
	})
	if len(topNeg) > maxTopNegative {
		topNeg = topNeg[:maxTopNegative]
	}
	sum.TopNegative7d = topNeg
	return sum
}

// pairKey identifies one (ticker, tag) dashboard row.
type pairKey struct {
	ticker string
	tag    models.RiskTag
}

// Dashboard unions the 7-day and 30-day negative aggregates per (ticker,
// tag), attaches the worst 7-day headline, appends a synthetic TOTAL row per
// ticker, and sorts so each ticker's TOTAL leads followed by its worst rows.
func (a *Aggregator) Dashboard(records []models.NewsRecord) []models.RiskAggregateRow {
	rows := make(map[pairKey]*models.RiskAggregateRow)
	worstIdx := make(map[pairKey]int)

	get := func(k pairKey) *models.RiskAggregateRow {
		if row, ok := rows[k]; ok {
			return row
		}
		row := &models.RiskAggregateRow{Ticker: k.ticker, RiskTag: k.tag, Worst7dTitle: "None", Worst7dSource: "None", Worst7dURL: "None"}
		rows[k] = row
		return row
	}

	for i, r := range records {
		if r.ImpactScore >= 0 {
			continue
		}
		tag := r.RiskTag
		if tag == "" {
			tag = models.TagOther
		}
		k := pairKey{ticker: strings.ToUpper(r.Ticker), tag: tag}

		if a.inWindow(r, a.daysLong) {
			row := get(k)
			row.NegCount30d++
			row.Shock30d += r.ImpactScore
		}
		if a.inWindow(r, a.daysShort) {
			row := get(k)
			row.NegCount7d++
			row.Shock7d += r.ImpactScore

			// Worst headline: most negative impact, then most recent
			// timestamp, then stable input order.
			cur, ok := worstIdx[k]
			if !ok || worse(records[i], records[cur]) {
				worstIdx[k] = i
			}
		}
	}

	for k, i := range worstIdx {
		row := rows[k]
		row.Worst7dTitle = records[i].Title
		row.Worst7dSource = records[i].Source
		row.Worst7dURL = records[i].URL
		row.Worst7dImpact = records[i].ImpactScore
	}

	out := make([]models.RiskAggregateRow, 0, len(rows)+4)
	totals := make(map[string]*models.RiskAggregateRow)
	for _, row := range rows {
		out = append(out, *row)
		tot, ok := totals[row.Ticker]
		if !ok {
			tot = &models.RiskAggregateRow{Ticker: row.Ticker, RiskTag: models.TagTotal, Worst7dTitle: "None", Worst7dSource: "None", Worst7dURL: "None"}
			totals[row.Ticker] = tot
		}
		tot.NegCount30d += row.NegCount30d
		tot.Shock30d += row.Shock30d
		tot.NegCount7d += row.NegCount7d
		tot.Shock7d += row.Shock7d
	}
	for _, tot := range totals {
		out = append(out, *tot)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Ticker != b.Ticker {
			return a.Ticker < b.Ticker
		}
		ai, bi := a.RiskTag == models.TagTotal, b.RiskTag == models.TagTotal
		if ai != bi {
			return ai
		}
		if a.Shock7d != b.Shock7d {
			return a.Shock7d < b.Shock7d
		}
		if a.Shock30d != b.Shock30d {
			return a.Shock30d < b.Shock30d
		}
		if a.NegCount7d != b.NegCount7d {
			return a.NegCount7d > b.NegCount7d
		}
		return a.NegCount30d > b.NegCount30d
	})
	return out
}

// worse reports whether candidate should replace cur as worst headline.
func worse(candidate, cur models.NewsRecord) bool {
	if candidate.ImpactScore != cur.ImpactScore {
		return candidate.ImpactScore < cur.ImpactScore
	}
	return candidate.PublishedAt.After(cur.PublishedAt)
}
