package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"EquityPulse/internal/domain/models"
	"EquityPulse/internal/news"
	applogger "EquityPulse/pkg/logger"

	"github.com/gorilla/websocket"
)

// NewswireSource collects headlines from a streaming newswire over WebSocket.
// The engine runs in batches, so it subscribes, drains frames for a bounded
// window, and disconnects.
type NewswireSource struct {
	url          string
	apiKey       string
	drainWindow  time.Duration
	pingInterval time.Duration
	log          *applogger.Logger
	now          func() time.Time
}

// NewNewswireSource creates the streaming newswire source.
func NewNewswireSource(url, apiKey string, drainWindow, pingInterval time.Duration, log *applogger.Logger) *NewswireSource {
	if drainWindow <= 0 {
		drainWindow = 10 * time.Second
	}
	if pingInterval <= 0 {
		pingInterval = 15 * time.Second
	}
	return &NewswireSource{
		url:          url,
		apiKey:       apiKey,
		drainWindow:  drainWindow,
		pingInterval: pingInterval,
		log:          log,
		now:          time.Now,
	}
}

func (s *NewswireSource) Name() string { return "newswire" }

type wireFrame struct {
	Type string         `json:"type"`
	Data []wireHeadline `json:"data"`
}

type wireHeadline struct {
	Ticker      string `json:"ticker"`
	Headline    string `json:"headline"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	Summary     string `json:"summary"`
	PublishedAt string `json:"published_at"`
}

// Fetch subscribes to the ticker and collects headline frames until the
// drain window closes. A clean window expiry is not an error.
func (s *NewswireSource) Fetch(ctx context.Context, ticker string, _ int) ([]models.NewsRecord, error) {
	ticker = strings.ToUpper(ticker)

	u := s.url
	if s.apiKey != "" {
		u = fmt.Sprintf("%s?token=%s", s.url, s.apiKey)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return nil, fmt.Errorf("newswire connect: %w", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]string{"type": "subscribe", "symbol": ticker}); err != nil {
		return nil, fmt.Errorf("newswire subscribe %s: %w", ticker, err)
	}

	deadline := s.now().Add(s.drainWindow)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = conn.SetReadDeadline(deadline)

	pingStop := make(chan struct{})
	defer close(pingStop)
	go func() {
		t := time.NewTicker(s.pingInterval)
		defer t.Stop()
		for {
			select {
			case <-pingStop:
				return
			case <-t.C:
				_ = conn.WriteMessage(websocket.PingMessage, nil)
			}
		}
	}()

	var out []models.NewsRecord
	for s.now().Before(deadline) {
		_, b, err := conn.ReadMessage()
		if err != nil {
			// Expired read deadline ends the drain.
			break
		}

		var frame wireFrame
		if err := json.Unmarshal(b, &frame); err != nil || frame.Type != "news" {
			continue
		}

		for _, h := range frame.Data {
			if h.Ticker != "" && !strings.EqualFold(h.Ticker, ticker) {
				continue
			}

			// Unparsable frame timestamps stay zero for the pipeline
			// normalizer.
			published, _ := news.ParseTimestamp(h.PublishedAt)
			source := h.Source
			if source == "" {
				source = "newswire"
			}

			out = append(out, models.NewsRecord{
				PublishedAt: published,
				Ticker:      ticker,
				Title:       h.Headline,
				Source:      source,
				URL:         h.URL,
				Summary:     h.Summary,
			})
		}
	}

	s.log.Debug("newswire drain complete",
		applogger.String("ticker", ticker),
		applogger.Int("records", len(out)),
	)
	return out, nil
}
