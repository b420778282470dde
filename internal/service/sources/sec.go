package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"EquityPulse/internal/domain/models"
	"EquityPulse/internal/domain/repository"
	xhttp "EquityPulse/pkg/http"
	applogger "EquityPulse/pkg/logger"
)

const (
	secTickerCIKURL   = "https://www.sec.gov/files/company_tickers.json"
	secSubmissionsURL = "https://data.sec.gov/submissions/CIK%s.json"
)

// SECSource pulls recent filings from the SEC submissions JSON. Filings are
// the highest-signal records in the corpus so this source is on by default.
type SECSource struct {
	client   *xhttp.Client
	symbols  repository.SymbolCache
	log      *applogger.Logger
	maxItems int
	now      func() time.Time
}

// NewSECSource creates the SEC filings source.
func NewSECSource(client *xhttp.Client, symbols repository.SymbolCache, log *applogger.Logger, maxItems int) *SECSource {
	if maxItems <= 0 {
		maxItems = 60
	}
	return &SECSource{
		client:   client,
		symbols:  symbols,
		log:      log,
		maxItems: maxItems,
		now:      time.Now,
	}
}

func (s *SECSource) Name() string { return "sec" }

type secSubmissions struct {
	Filings struct {
		Recent struct {
			Form            []string `json:"form"`
			FilingDate      []string `json:"filingDate"`
			AccessionNumber []string `json:"accessionNumber"`
			PrimaryDocument []string `json:"primaryDocument"`
		} `json:"recent"`
	} `json:"filings"`
}

type secCompanyRow struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
}

// Fetch returns filings within the lookback window as news records.
func (s *SECSource) Fetch(ctx context.Context, ticker string, daysBack int) ([]models.NewsRecord, error) {
	ticker = strings.ToUpper(ticker)

	cik, err := s.resolveCIK(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if cik == "" {
		s.log.Warn("sec: ticker has no CIK mapping", applogger.String("ticker", ticker))
		return nil, nil
	}

	var subs secSubmissions
	err = s.client.SendAndParse(ctx, xhttp.RequestOptions{
		URL: fmt.Sprintf(secSubmissionsURL, cik),
	}, &subs)
	if err != nil {
		return nil, fmt.Errorf("sec submissions for %s: %w", ticker, err)
	}

	recent := subs.Filings.Recent
	cutoff := s.now().UTC().AddDate(0, 0, -daysBack)

	var out []models.NewsRecord
	for i := range recent.Form {
		if i >= len(recent.FilingDate) || i >= len(recent.AccessionNumber) || i >= len(recent.PrimaryDocument) {
			break
		}
		filed, err := time.Parse("2006-01-02", recent.FilingDate[i])
		if err != nil {
			continue
		}
		if filed.Before(cutoff) {
			continue
		}

		accNo := strings.ReplaceAll(recent.AccessionNumber[i], "-", "")
		out = append(out, models.NewsRecord{
			PublishedAt: filed.UTC(),
			Ticker:      ticker,
			Title:       fmt.Sprintf("%s SEC filing: %s (%s)", ticker, recent.Form[i], recent.FilingDate[i]),
			Source:      "sec",
			URL:         fmt.Sprintf("https://www.sec.gov/Archives/edgar/data/%d/%s/%s", cikInt(cik), accNo, recent.PrimaryDocument[i]),
			Raw: map[string]any{
				"form":            recent.Form[i],
				"filingDate":      recent.FilingDate[i],
				"accessionNumber": recent.AccessionNumber[i],
			},
		})
		if len(out) >= s.maxItems {
			break
		}
	}
	return out, nil
}

// resolveCIK maps a ticker to its zero-padded 10 digit CIK, consulting the
// cache before hitting the SEC company index.
func (s *SECSource) resolveCIK(ctx context.Context, ticker string) (string, error) {
	if cik, ok := s.symbols.CIK(ctx, ticker); ok {
		return cik, nil
	}

	var index map[string]secCompanyRow
	if err := s.client.SendAndParse(ctx, xhttp.RequestOptions{URL: secTickerCIKURL}, &index); err != nil {
		return "", fmt.Errorf("sec company index: %w", err)
	}

	var found string
	for _, row := range index {
		t := strings.ToUpper(row.Ticker)
		cik := fmt.Sprintf("%010d", row.CIK)
		s.symbols.StoreCIK(ctx, t, cik)
		if t == ticker {
			found = cik
		}
	}
	return found, nil
}

func cikInt(cik string) int {
	n := 0
	for _, r := range cik {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
