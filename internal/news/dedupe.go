package news

import (
	"EquityPulse/internal/domain/models"
)

// DedupePolicy names the record-retention rule applied when multiple records
// share a dedupe key.
type DedupePolicy string

const (
	// FirstSeen keeps the first record per key in source order.
	FirstSeen DedupePolicy = "first_seen"
	// HighestTrust keeps the record with the highest trust score per key,
	// ties broken by most recent publication time.
	HighestTrust DedupePolicy = "highest_trust"
)

// Deduplicator collapses records sharing a dedupe key. It holds no state
// between calls: same input order, same output.
type Deduplicator struct {
	policy DedupePolicy
	trust  *TrustTable
	wl     *Whitelist
}

func NewDeduplicator(policy DedupePolicy, trust *TrustTable, wl *Whitelist) *Deduplicator {
	if policy == "" {
		policy = FirstSeen
	}
	return &Deduplicator{policy: policy, trust: trust, wl: wl}
}

// Dedupe returns the surviving records in stable input order. Records with
// an empty dedupe key are keyed on the spot from their own fields.
func (d *Deduplicator) Dedupe(records []models.NewsRecord) []models.NewsRecord {
	switch d.policy {
	case HighestTrust:
		return d.dedupeHighestTrust(records)
	default:
		return d.dedupeFirstSeen(records)
	}
}

func (d *Deduplicator) dedupeFirstSeen(records []models.NewsRecord) []models.NewsRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]models.NewsRecord, 0, len(records))
	for _, r := range records {
		key := recordKey(r)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

func (d *Deduplicator) dedupeHighestTrust(records []models.NewsRecord) []models.NewsRecord {
	type kept struct {
		idx   int
		score float64
	}
	best := make(map[string]kept, len(records))
	order := make([]string, 0, len(records))

	for i, r := range records {
		key := recordKey(r)
		score := TrustScore(d.trust, d.wl, r.Source, r.URL)
		cur, ok := best[key]
		if !ok {
			best[key] = kept{idx: i, score: score}
			order = append(order, key)
			continue
		}
		if score > cur.score ||
			(score == cur.score && records[i].PublishedAt.After(records[cur.idx].PublishedAt)) {
			best[key] = kept{idx: i, score: score}
		}
	}

	out := make([]models.NewsRecord, 0, len(order))
	for _, key := range order {
		out = append(out, records[best[key].idx])
	}
	return out
}

func recordKey(r models.NewsRecord) string {
	if r.DedupeKey != "" {
		return r.DedupeKey
	}
	return DedupeKey(r.Ticker, r.PublishedAt, r.Title)
}
