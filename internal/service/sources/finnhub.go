package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"EquityPulse/internal/domain/models"
	xhttp "EquityPulse/pkg/http"
)

// FinnhubSource fetches per-article company news from the Finnhub REST API.
type FinnhubSource struct {
	client   *xhttp.Client
	baseURL  string
	apiKey   string
	maxItems int
	now      func() time.Time
}

// NewFinnhubSource creates the Finnhub company-news source.
func NewFinnhubSource(client *xhttp.Client, baseURL, apiKey string, maxItems int) *FinnhubSource {
	if maxItems <= 0 {
		maxItems = 200
	}
	return &FinnhubSource{
		client:   client,
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		maxItems: maxItems,
		now:      time.Now,
	}
}

func (s *FinnhubSource) Name() string { return "finnhub" }

type finnhubArticle struct {
	Datetime int64  `json:"datetime"`
	Headline string `json:"headline"`
	URL      string `json:"url"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
	Source   string `json:"source"`
	Related  string `json:"related"`
	ID       int64  `json:"id"`
}

// Fetch returns company news between now-daysBack and now.
func (s *FinnhubSource) Fetch(ctx context.Context, ticker string, daysBack int) ([]models.NewsRecord, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("finnhub: missing API key")
	}

	ticker = strings.ToUpper(ticker)
	end := s.now().UTC()
	start := end.AddDate(0, 0, -daysBack)

	var articles []finnhubArticle
	err := s.client.SendAndParse(ctx, xhttp.RequestOptions{
		URL: s.baseURL + "/company-news",
		Query: url.Values{
			"symbol": {ticker},
			"from":   {start.Format("2006-01-02")},
			"to":     {end.Format("2006-01-02")},
			"token":  {s.apiKey},
		},
	}, &articles)
	if err != nil {
		return nil, fmt.Errorf("finnhub company news for %s: %w", ticker, err)
	}

	out := make([]models.NewsRecord, 0, len(articles))
	for _, a := range articles {
		// A missing unix time stays zero for the pipeline normalizer.
		var published time.Time
		if a.Datetime > 0 {
			published = time.Unix(a.Datetime, 0).UTC()
		}

		out = append(out, models.NewsRecord{
			PublishedAt: published,
			Ticker:      ticker,
			Title:       a.Headline,
			Source:      "finnhub",
			URL:         a.URL,
			Summary:     a.Summary,
			Raw: map[string]any{
				"category": a.Category,
				"source":   a.Source,
				"related":  a.Related,
				"id":       a.ID,
			},
		})
		if len(out) >= s.maxItems {
			break
		}
	}
	return out, nil
}
