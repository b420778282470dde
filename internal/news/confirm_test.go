package news

import (
	"testing"

	"EquityPulse/internal/domain/models"
)

func newConfirmer() *Confirmer {
	return NewConfirmer(DefaultConfirmConfig(), NewTrustTable(DefaultTrustWeights(), 0))
}

func TestConfirmedNeedsDistinctSources(t *testing.T) {
	c := newConfirmer()

	// One credible source repeating the story is not corroboration.
	records := []models.NewsRecord{
		{RiskTag: models.TagLabor, Source: "reuters"},
		{RiskTag: models.TagLabor, Source: "reuters"},
		{RiskTag: models.TagLabor, Source: "Reuters"},
	}
	if got := c.Confirmed(records); len(got) != 0 {
		t.Fatalf("single source confirmed: %v", got)
	}

	records = append(records, models.NewsRecord{RiskTag: models.TagLabor, Source: "wsj"})
	got := c.Confirmed(records)
	conf, ok := got[models.TagLabor]
	if !ok {
		t.Fatalf("expected LABOR confirmed")
	}
	if conf.Confirmations != 2 {
		t.Fatalf("got %d confirmations", conf.Confirmations)
	}
	if len(conf.Sources) != 2 || conf.Sources[0] != "reuters" || conf.Sources[1] != "wsj" {
		t.Fatalf("sources not sorted/distinct: %v", conf.Sources)
	}
}

func TestConfirmedCredibilityThreshold(t *testing.T) {
	c := newConfirmer()

	// gdelt (0.4) and finnhub (0.7) are below the 1.5 threshold.
	records := []models.NewsRecord{
		{RiskTag: models.TagRegulatory, Source: "gdelt"},
		{RiskTag: models.TagRegulatory, Source: "finnhub"},
		{RiskTag: models.TagRegulatory, Source: "fmp"},
	}
	if got := c.Confirmed(records); len(got) != 0 {
		t.Fatalf("low-trust sources confirmed a tag: %v", got)
	}
}

func TestConfirmedExcludesOther(t *testing.T) {
	c := newConfirmer()

	records := []models.NewsRecord{
		{RiskTag: models.TagOther, Source: "reuters"},
		{RiskTag: models.TagOther, Source: "wsj"},
		{RiskTag: "", Source: "sec"},
	}
	if got := c.Confirmed(records); len(got) != 0 {
		t.Fatalf("OTHER/empty tags must never be confirmed: %v", got)
	}
}
