package sources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"EquityPulse/internal/domain/models"
	"EquityPulse/internal/news"
	xhttp "EquityPulse/pkg/http"
)

const gdeltMaxRecords = 250

// GDELTSource queries the GDELT 2 DOC API for broad low-trust coverage.
type GDELTSource struct {
	client   *xhttp.Client
	baseURL  string
	maxItems int
	now      func() time.Time
}

// NewGDELTSource creates the GDELT source.
func NewGDELTSource(client *xhttp.Client, baseURL string, maxItems int) *GDELTSource {
	if maxItems <= 0 {
		maxItems = 200
	}
	return &GDELTSource{
		client:   client,
		baseURL:  baseURL,
		maxItems: maxItems,
		now:      time.Now,
	}
}

func (s *GDELTSource) Name() string { return "gdelt" }

type gdeltResponse struct {
	Articles []gdeltArticle `json:"articles"`
}

type gdeltArticle struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	SeenDate      string `json:"seendate"`
	Snippet       string `json:"snippet"`
	SourceCountry string `json:"sourcecountry"`
	Domain        string `json:"domain"`
}

// Fetch queries the article list for the ticker within the window.
func (s *GDELTSource) Fetch(ctx context.Context, ticker string, daysBack int) ([]models.NewsRecord, error) {
	ticker = strings.ToUpper(ticker)
	end := s.now().UTC()
	start := end.AddDate(0, 0, -daysBack)

	maxRecords := s.maxItems
	if maxRecords > gdeltMaxRecords {
		maxRecords = gdeltMaxRecords
	}

	var resp gdeltResponse
	err := s.client.SendAndParse(ctx, xhttp.RequestOptions{
		URL: s.baseURL,
		Query: url.Values{
			"query":         {fmt.Sprintf("%q", ticker)},
			"mode":          {"ArtList"},
			"format":        {"json"},
			"startdatetime": {start.Format("20060102150405")},
			"enddatetime":   {end.Format("20060102150405")},
			"maxrecords":    {strconv.Itoa(maxRecords)},
			"sort":          {"datedesc"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("gdelt doc api for %s: %w", ticker, err)
	}

	out := make([]models.NewsRecord, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		// Unparsable seendates stay zero for the pipeline normalizer.
		published, _ := news.ParseTimestamp(a.SeenDate)

		out = append(out, models.NewsRecord{
			PublishedAt: published,
			Ticker:      ticker,
			Title:       a.Title,
			Source:      "gdelt",
			URL:         a.URL,
			Summary:     a.Snippet,
			Raw: map[string]any{
				"sourceCountry": a.SourceCountry,
				"domain":        a.Domain,
			},
		})
	}
	return out, nil
}
