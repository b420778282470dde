package news

import (
	"sort"
	"strings"

	"EquityPulse/internal/domain/models"
)

// ConfirmConfig controls when a risk tag counts as corroborated.
type ConfirmConfig struct {
	// MinConfirmations is the number of distinct qualifying sources a tag
	// needs before it is confirmed.
	MinConfirmations int
	// CredibilityThreshold is the minimum trust weight a source must carry
	// to qualify at all. One noisy aggregator repeating a story ten times
	// still counts as zero confirmations.
	CredibilityThreshold float64
}

func DefaultConfirmConfig() ConfirmConfig {
	return ConfirmConfig{MinConfirmations: 2, CredibilityThreshold: 1.5}
}

// Confirmer determines which risk tags are corroborated by multiple
// independent, sufficiently credible sources. Recomputed fresh per query.
type Confirmer struct {
	cfg   ConfirmConfig
	trust *TrustTable
}

func NewConfirmer(cfg ConfirmConfig, trust *TrustTable) *Confirmer {
	if cfg.MinConfirmations <= 0 {
		cfg.MinConfirmations = 2
	}
	if cfg.CredibilityThreshold <= 0 {
		cfg.CredibilityThreshold = 1.5
	}
	return &Confirmer{cfg: cfg, trust: trust}
}

// Confirmed groups records by risk tag (empty and OTHER excluded), keeps the
// distinct set of qualifying sources per tag, and returns the tags whose set
// is large enough. Source lists come back sorted for audit display.
func (c *Confirmer) Confirmed(records []models.NewsRecord) map[models.RiskTag]models.Confirmation {
	tagSources := make(map[models.RiskTag]map[string]struct{})

	for _, r := range records {
		tag := models.RiskTag(strings.ToUpper(strings.TrimSpace(string(r.RiskTag))))
		if tag == "" || tag == models.TagOther {
			continue
		}
		src := strings.ToLower(strings.TrimSpace(r.Source))
		if c.trust.Weight(src) < c.cfg.CredibilityThreshold {
			continue
		}
		if tagSources[tag] == nil {
			tagSources[tag] = make(map[string]struct{})
		}
		tagSources[tag][src] = struct{}{}
	}

	confirmed := make(map[models.RiskTag]models.Confirmation)
	for tag, srcs := range tagSources {
		if len(srcs) < c.cfg.MinConfirmations {
			continue
		}
		list := make([]string, 0, len(srcs))
		for s := range srcs {
			list = append(list, s)
		}
		sort.Strings(list)
		confirmed[tag] = models.Confirmation{
			Tag:           tag,
			Confirmations: len(srcs),
			Sources:       list,
		}
	}
	return confirmed
}
