package news

import (
	"sort"
	"strings"

	"EquityPulse/internal/domain/models"
)

// EvidenceTable filters one ticker's records to the last `days`, sorts worst
// impact first then newest, and caps at maxRows. The rows keep URLs so a
// human can click through and verify every line.
func (a *Aggregator) EvidenceTable(records []models.NewsRecord, ticker string, days, maxRows int) []models.EvidenceRow {
	if days <= 0 {
		days = a.daysLong
	}
	if maxRows <= 0 {
		maxRows = 80
	}

	var picked []models.NewsRecord
	for _, r := range records {
		if strings.EqualFold(r.Ticker, ticker) && a.inWindow(r, days) {
			picked = append(picked, r)
		}
	}

	sort.SliceStable(picked, func(i, j int) bool {
		if picked[i].ImpactScore != picked[j].ImpactScore {
			return picked[i].ImpactScore < picked[j].ImpactScore
		}
		return picked[i].PublishedAt.After(picked[j].PublishedAt)
	})
	if len(picked) > maxRows {
		picked = picked[:maxRows]
	}

	out := make([]models.EvidenceRow, 0, len(picked))
	for _, r := range picked {
		tag := r.RiskTag
		if tag == "" {
			tag = models.TagOther
		}
		out = append(out, models.EvidenceRow{
			PublishedAt: r.PublishedAt,
			Ticker:      strings.ToUpper(r.Ticker),
			Source:      r.Source,
			RiskTag:     tag,
			ImpactScore: r.ImpactScore,
			Title:       r.Title,
			URL:         r.URL,
		})
	}
	return out
}
