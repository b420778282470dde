package scoring

import (
	"fmt"
	"math"
	"strings"

	"EquityPulse/internal/domain/models"
)

// CompletenessInputs lists the tables a full run depends on. Each check is
// pass/fail; the score is the passing fraction scaled to 0-100.
type CompletenessInputs struct {
	Ticker     string
	Comps      []models.CompsRow
	AnnualHist []models.FundamentalsPeriod
	Corpus     []models.NewsRecord
	Proxy      []models.SentimentProxyRow
	Dashboard  []models.RiskAggregateRow
}

// Completeness scores how much of the required input surface actually
// arrived, and names what is missing so the report can show "partial data"
// instead of quietly scoring on air.
func Completeness(in CompletenessInputs) (int, []string) {
	var missing []string
	total, good := 0, 0

	check := func(name string, ok bool) {
		total++
		if ok {
			good++
			return
		}
		missing = append(missing, "Missing or empty: "+name)
	}

	check("comps_snapshot", len(in.Comps) > 0)
	check("fundamentals_annual_history", len(in.AnnualHist) > 0)
	check("news_unified", len(in.Corpus) > 0)
	check("news_sentiment_proxy", len(in.Proxy) > 0)
	check("news_risk_dashboard", len(in.Dashboard) > 0)

	if len(in.Comps) > 0 {
		total++
		found := false
		for _, r := range in.Comps {
			if strings.EqualFold(r.Ticker, in.Ticker) {
				found = true
				break
			}
		}
		if found {
			good++
		} else {
			missing = append(missing, fmt.Sprintf("Ticker not present in comps_snapshot: %s", strings.ToUpper(in.Ticker)))
		}
	}

	score := int(math.Round(float64(good) / float64(total) * 100))
	return score, missing
}
