package sources

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"EquityPulse/internal/domain/models"
	"EquityPulse/internal/news"
	xhttp "EquityPulse/pkg/http"
	applogger "EquityPulse/pkg/logger"
)

// FMPNewsSource is a best-effort FMP stock news fetcher. The endpoint path
// varies by plan, so it tries known candidates in order and returns empty on
// total failure instead of erroring the run.
type FMPNewsSource struct {
	client   *xhttp.Client
	apiKey   string
	log      *applogger.Logger
	maxItems int
	now      func() time.Time
}

// NewFMPNewsSource creates the FMP stock news source.
func NewFMPNewsSource(client *xhttp.Client, apiKey string, log *applogger.Logger, maxItems int) *FMPNewsSource {
	if maxItems <= 0 {
		maxItems = 100
	}
	return &FMPNewsSource{
		client:   client,
		apiKey:   apiKey,
		log:      log,
		maxItems: maxItems,
		now:      time.Now,
	}
}

func (s *FMPNewsSource) Name() string { return "fmp" }

type fmpArticle struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Link          string `json:"link"`
	PublishedDate string `json:"publishedDate"`
	Date          string `json:"date"`
	Text          string `json:"text"`
	Site          string `json:"site"`
	Publisher     string `json:"publisher"`
}

// Fetch tries candidate endpoints in order, keeping the first that yields rows.
func (s *FMPNewsSource) Fetch(ctx context.Context, ticker string, daysBack int) ([]models.NewsRecord, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	ticker = strings.ToUpper(ticker)
	limit := strconv.Itoa(s.maxItems)
	candidates := []struct {
		url   string
		query url.Values
	}{
		{"https://financialmodelingprep.com/api/v3/stock_news", url.Values{"tickers": {ticker}, "limit": {limit}, "apikey": {s.apiKey}}},
		{"https://financialmodelingprep.com/stable/news", url.Values{"symbol": {ticker}, "limit": {limit}, "apikey": {s.apiKey}}},
	}

	cutoff := s.now().UTC().AddDate(0, 0, -daysBack)

	for _, cand := range candidates {
		var articles []fmpArticle
		err := s.client.SendAndParse(ctx, xhttp.RequestOptions{URL: cand.url, Query: cand.query}, &articles)
		if err != nil {
			s.log.Debug("fmp news endpoint failed", applogger.String("url", cand.url), applogger.Error(err))
			continue
		}

		var out []models.NewsRecord
		for _, a := range articles {
			rawDate := a.PublishedDate
			if rawDate == "" {
				rawDate = a.Date
			}
			// Unparsable dates stay zero for the pipeline normalizer to
			// resolve, so they skip the cutoff check here.
			published, _ := news.ParseTimestamp(rawDate)
			if !published.IsZero() && published.Before(cutoff) {
				continue
			}

			link := a.URL
			if link == "" {
				link = a.Link
			}
			out = append(out, models.NewsRecord{
				PublishedAt: published,
				Ticker:      ticker,
				Title:       a.Title,
				Source:      "fmp",
				URL:         link,
				Summary:     a.Text,
				Raw: map[string]any{
					"site":      a.Site,
					"publisher": a.Publisher,
				},
			})
		}
		if len(out) > 0 {
			return out, nil
		}
	}
	return nil, nil
}
