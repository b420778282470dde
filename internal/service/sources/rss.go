package sources

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"EquityPulse/internal/domain/models"
	"EquityPulse/internal/news"
	xhttp "EquityPulse/pkg/http"
)

// RSSFeed describes one IR or press-release feed to poll.
type RSSFeed struct {
	URL    string
	Source string
	Ticker string
}

// RSSSource polls company IR and press-release RSS feeds. Feeds carrying no
// ticker of their own are attributed to the ticker under research.
type RSSSource struct {
	client   *xhttp.Client
	feeds    []RSSFeed
	maxItems int
}

// NewRSSSource creates the RSS source over a fixed feed list.
func NewRSSSource(client *xhttp.Client, feeds []RSSFeed, maxItems int) *RSSSource {
	if maxItems <= 0 {
		maxItems = 50
	}
	return &RSSSource{client: client, feeds: feeds, maxItems: maxItems}
}

func (s *RSSSource) Name() string { return "ir_rss" }

type rssDocument struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Date        string `xml:"date"`
	Description string `xml:"description"`
}

// Fetch polls each configured feed. A broken feed is skipped, not fatal.
func (s *RSSSource) Fetch(ctx context.Context, ticker string, _ int) ([]models.NewsRecord, error) {
	ticker = strings.ToUpper(ticker)

	var out []models.NewsRecord
	var lastErr error
	for _, feed := range s.feeds {
		if feed.Ticker != "" && !strings.EqualFold(feed.Ticker, ticker) {
			continue
		}

		records, err := s.fetchFeed(ctx, feed, ticker)
		if err != nil {
			lastErr = err
			continue
		}
		out = append(out, records...)
	}

	if len(out) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return out, nil
}

func (s *RSSSource) fetchFeed(ctx context.Context, feed RSSFeed, ticker string) ([]models.NewsRecord, error) {
	body, err := s.client.Send(ctx, xhttp.RequestOptions{URL: feed.URL})
	if err != nil {
		return nil, fmt.Errorf("rss feed %s: %w", feed.URL, err)
	}

	var doc rssDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("rss parse %s: %w", feed.URL, err)
	}

	sourceName := feed.Source
	if sourceName == "" {
		sourceName = "ir_rss"
	}

	var out []models.NewsRecord
	for _, item := range doc.Channel.Items {
		rawDate := item.PubDate
		if rawDate == "" {
			rawDate = item.Date
		}
		// Unparsable dates stay zero; the pipeline normalizer applies the
		// configured fallback policy.
		published, _ := news.ParseTimestamp(rawDate)

		out = append(out, models.NewsRecord{
			PublishedAt: published,
			Ticker:      ticker,
			Title:       strings.TrimSpace(item.Title),
			Source:      sourceName,
			URL:         strings.TrimSpace(item.Link),
			Summary:     strings.TrimSpace(item.Description),
			Raw:         map[string]any{"feed": feed.URL},
		})
		if len(out) >= s.maxItems {
			break
		}
	}
	return out, nil
}
