package news

import (
	"strings"

	"EquityPulse/internal/domain/models"
)

// TagRule pairs a risk tag with its keyword set. Rules are scanned in order
// and the first tag with any keyword hit wins, so rule order is part of the
// tagging contract.
type TagRule struct {
	Tag      models.RiskTag
	Keywords []string
}

// DefaultTagRules is the priority-ordered keyword table. Keep the lists
// simple and explainable; they are tuned by editing config, not code.
func DefaultTagRules() []TagRule {
	return []TagRule{
		{models.TagLabor, []string{
			"union", "strike", "collective bargaining", "labor", "worker", "wage", "minimum wage",
			"driver classification", "employee status", "gig worker", "contractor", "benefits",
		}},
		{models.TagInsurance, []string{
			"insurance", "premium", "underwriting", "claims", "liability", "coverage", "actuarial",
			"accident", "injury", "fatal", "lawsuit", "settlement",
		}},
		{models.TagRegulatory, []string{
			"regulation", "regulatory", "ban", "permit", "license", "compliance", "antitrust",
			"probe", "investigation", "fine", "penalty", "doj", "ftc", "eu", "commission",
			"court", "appeal", "ruling",
		}},
		{models.TagSafety, []string{
			"safety", "assault", "harassment", "crash", "collision", "fraud", "scam",
			"data breach", "hack", "cyber", "security incident",
		}},
		{models.TagCompetition, []string{
			"competitor", "price war", "market share", "competition", "rival", "acquisition",
			"merger", "partnership", "exclusive",
		}},
		{models.TagMacro, []string{
			"inflation", "recession", "rates", "interest rate", "oil", "fuel", "macro", "slowdown",
			"consumer spending", "unemployment",
		}},
		{models.TagFinancial, []string{
			"earnings", "guidance", "forecast", "revenue", "profit", "loss", "margin", "cash flow",
			"buyback", "debt", "refinance", "liquidity", "bankruptcy",
		}},
	}
}

// ImpactKeywords holds the three keyword tiers for impact scoring, in strict
// priority: strong negative, medium negative, medium positive.
type ImpactKeywords struct {
	StrongNegative []string
	MediumNegative []string
	MediumPositive []string
}

func DefaultImpactKeywords() ImpactKeywords {
	return ImpactKeywords{
		StrongNegative: []string{
			"lawsuit", "settlement", "strike", "ban", "investigation", "probe", "fine",
			"fatal", "killed", "fraud", "data breach", "hack", "antitrust", "penalty",
		},
		MediumNegative: []string{
			"regulation", "regulatory", "union", "injury", "accident", "complaint", "court",
			"recall", "safety", "harassment",
		},
		MediumPositive: []string{
			"record", "beats", "beat", "raises guidance", "upgrade", "partnership", "expands",
			"profitable", "profit", "buyback", "cost cuts", "strong demand",
		},
	}
}

// Tagger assigns risk tags and bounded impact scores from title keywords.
// Pure and deterministic given the title text.
type Tagger struct {
	rules  []TagRule
	impact ImpactKeywords
}

func NewTagger(rules []TagRule, impact ImpactKeywords) *Tagger {
	if len(rules) == 0 {
		rules = DefaultTagRules()
	}
	if len(impact.StrongNegative)+len(impact.MediumNegative)+len(impact.MediumPositive) == 0 {
		impact = DefaultImpactKeywords()
	}
	return &Tagger{rules: rules, impact: impact}
}

// Tag returns the first rule whose keyword set matches the normalized title,
// or OTHER when nothing matches.
func (tg *Tagger) Tag(title string) models.RiskTag {
	t := NormalizeTitle(title)
	for _, rule := range tg.rules {
		for _, k := range rule.Keywords {
			if strings.Contains(t, k) {
				return rule.Tag
			}
		}
	}
	return models.TagOther
}

// Impact scores the title into {-3, -2, 0, +2}. Tiers are checked in strict
// priority order and the first hit returns immediately.
func (tg *Tagger) Impact(title string) int {
	t := NormalizeTitle(title)
	for _, k := range tg.impact.StrongNegative {
		if strings.Contains(t, k) {
			return -3
		}
	}
	for _, k := range tg.impact.MediumNegative {
		if strings.Contains(t, k) {
			return -2
		}
	}
	for _, k := range tg.impact.MediumPositive {
		if strings.Contains(t, k) {
			return 2
		}
	}
	return 0
}

// Score tags and impact-scores every record in place.
func (tg *Tagger) Score(records []models.NewsRecord) {
	for i := range records {
		records[i].RiskTag = tg.Tag(records[i].Title)
		records[i].ImpactScore = tg.Impact(records[i].Title)
	}
}
