package di

import (
	"testing"

	internalrepo "EquityPulse/internal/repository"
	"EquityPulse/pkg/cache"
	"EquityPulse/pkg/config"
	xhttp "EquityPulse/pkg/http"
	"EquityPulse/pkg/logger"
)

func sourcesConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SEC.Enabled = true
	cfg.SEC.MaxItems = 10
	cfg.GDELT.Enabled = true
	cfg.GDELT.MaxItems = 10
	cfg.Finnhub.Enabled = true
	cfg.Finnhub.APIKey = "token"
	cfg.Finnhub.MaxItems = 10
	return cfg
}

func provideTestSources(t *testing.T, cfg *config.Config) []string {
	t.Helper()
	mem := cache.NewMemoryCache()
	t.Cleanup(func() { mem.Close() })

	srcs, err := ProvideSources(cfg, xhttp.NewClient(), internalrepo.NewCachedSymbolCache(mem), logger.Nop())
	if err != nil {
		t.Fatalf("provide sources: %v", err)
	}
	names := make([]string, len(srcs))
	for i, s := range srcs {
		names[i] = s.Name()
	}
	return names
}

func TestProvideSourcesEmptyAllowListEnablesAll(t *testing.T) {
	names := provideTestSources(t, sourcesConfig())
	if len(names) != 3 {
		t.Fatalf("expected 3 sources, got %v", names)
	}
	if names[0] != "sec" || names[1] != "finnhub" || names[2] != "gdelt" {
		t.Fatalf("trust order broken: %v", names)
	}
}

func TestProvideSourcesGatesOnAllowList(t *testing.T) {
	cfg := sourcesConfig()
	cfg.News.EnabledSources = []string{"GDELT", "sec"}

	names := provideTestSources(t, cfg)
	if len(names) != 2 {
		t.Fatalf("expected 2 sources, got %v", names)
	}
	if names[0] != "sec" || names[1] != "gdelt" {
		t.Fatalf("allow-list must keep sec and gdelt only: %v", names)
	}
}
