package news

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode"

	"EquityPulse/internal/domain/models"
)

// TimestampFallback names the policy applied when a record's published
// timestamp cannot be parsed. The two variants behave very differently
// downstream: FallbackNow keeps the record in the current windows (marked
// TimeInferred), FallbackEpoch dates it to the unix epoch so every window
// filter drops it.
type TimestampFallback string

const (
	FallbackNow   TimestampFallback = "fallback_now"
	FallbackEpoch TimestampFallback = "fallback_epoch"
)

// NormalizerConfig is injected at construction so tests can pin the clock
// and the fallback policy.
type NormalizerConfig struct {
	Fallback TimestampFallback
	Now      func() time.Time
}

// Normalizer maps raw adapter output into canonical records and derives the
// content dedupe key.
type Normalizer struct {
	fallback TimestampFallback
	now      func() time.Time
}

func NewNormalizer(cfg NormalizerConfig) *Normalizer {
	if cfg.Fallback == "" {
		cfg.Fallback = FallbackNow
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Normalizer{fallback: cfg.Fallback, now: cfg.Now}
}

// timeLayouts covers the ISO-8601 and RFC-2822 shapes the sources emit.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"20060102150405", // GDELT seendate
}

// ParseTimestamp parses s into UTC. ok is false when no layout matched.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Normalize fills the identity fields of r in place: ticker uppercased,
// timestamp resolved (with fallback when raw is unparsable) and the dedupe
// key derived. Optional fields stay empty strings, never absent.
func (n *Normalizer) Normalize(r *models.NewsRecord, rawTime string) {
	r.Ticker = strings.ToUpper(strings.TrimSpace(r.Ticker))
	r.Source = strings.TrimSpace(r.Source)
	r.Title = strings.TrimSpace(r.Title)

	if r.PublishedAt.IsZero() {
		if t, ok := ParseTimestamp(rawTime); ok {
			r.PublishedAt = t
		} else {
			r.TimeInferred = true
			switch n.fallback {
			case FallbackEpoch:
				r.PublishedAt = time.Unix(0, 0).UTC()
			default:
				r.PublishedAt = n.now().UTC()
			}
		}
	} else {
		r.PublishedAt = r.PublishedAt.UTC()
	}

	r.DedupeKey = DedupeKey(r.Ticker, r.PublishedAt, r.Title)
}

// NormalizeTitle lowercases, strips punctuation to spaces and collapses
// whitespace. It feeds both the dedupe key and the keyword matchers, so the
// two always agree on what a title "says".
func NormalizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	lastSpace := true
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// DedupeKey hashes (TICKER | calendar date | normalized title). Two records
// with the same key are duplicates regardless of which source carried them.
func DedupeKey(ticker string, published time.Time, title string) string {
	base := fmt.Sprintf("%s|%s|%s",
		strings.ToUpper(ticker),
		published.UTC().Format("2006-01-02"),
		NormalizeTitle(title),
	)
	sum := sha1.Sum([]byte(base))
	return hex.EncodeToString(sum[:])
}
