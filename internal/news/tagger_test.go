package news

import (
	"testing"

	"EquityPulse/internal/domain/models"
)

func TestTagFirstMatchWins(t *testing.T) {
	tg := NewTagger(nil, ImpactKeywords{})

	// "strike" (labor) and "lawsuit" (insurance) both appear; labor is
	// scanned first.
	if got := tg.Tag("Drivers strike as lawsuit looms"); got != models.TagLabor {
		t.Fatalf("got %s want %s", got, models.TagLabor)
	}
}

func TestTagByCategory(t *testing.T) {
	tg := NewTagger(nil, ImpactKeywords{})

	cases := []struct {
		title string
		want  models.RiskTag
	}{
		{"Company faces class-action lawsuit over pricing", models.TagInsurance},
		{"FTC opens antitrust probe", models.TagRegulatory},
		{"Data breach exposes rider records", models.TagSafety},
		{"Rival announces aggressive price war", models.TagCompetition},
		{"Recession fears weigh on consumer spending", models.TagMacro},
		{"Quarterly earnings miss on weak revenue", models.TagFinancial},
		{"CEO rings opening bell", models.TagOther},
	}
	for _, c := range cases {
		if got := tg.Tag(c.title); got != c.want {
			t.Fatalf("tag %q: got %s want %s", c.title, got, c.want)
		}
	}
}

func TestTagCaseInsensitive(t *testing.T) {
	tg := NewTagger(nil, ImpactKeywords{})
	if got := tg.Tag("UNION Vote Passes"); got != models.TagLabor {
		t.Fatalf("got %s", got)
	}
}

func TestImpactTiers(t *testing.T) {
	tg := NewTagger(nil, ImpactKeywords{})

	cases := []struct {
		title string
		want  int
	}{
		{"Court approves record settlement", -3}, // strong negative beats positive "record"
		{"Safety recall announced", -2},
		{"Company beats estimates, raises guidance", 2},
		{"Company expands into new markets", 2},
		{"Shares unchanged in quiet session", 0},
	}
	for _, c := range cases {
		if got := tg.Impact(c.title); got != c.want {
			t.Fatalf("impact %q: got %d want %d", c.title, got, c.want)
		}
	}
}

func TestScoreInPlace(t *testing.T) {
	tg := NewTagger(nil, ImpactKeywords{})
	records := []models.NewsRecord{
		{Title: "Drivers strike over wages"},
		{Title: "Company opens new headquarters"},
	}
	tg.Score(records)

	if records[0].RiskTag != models.TagLabor || records[0].ImpactScore != -3 {
		t.Fatalf("got %s/%d", records[0].RiskTag, records[0].ImpactScore)
	}
	if records[1].RiskTag != models.TagOther || records[1].ImpactScore != 0 {
		t.Fatalf("got %s/%d", records[1].RiskTag, records[1].ImpactScore)
	}
}
