package repository

import (
	"context"
	"time"

	"EquityPulse/pkg/cache"
)

const cikTTL = 30 * 24 * time.Hour

// CachedSymbolCache resolves ticker to CIK mappings through the cache layer.
// The SEC company index changes rarely, so a long TTL is safe.
type CachedSymbolCache struct {
	cache cache.Service
}

func NewCachedSymbolCache(c cache.Service) *CachedSymbolCache {
	return &CachedSymbolCache{cache: c}
}

func (s *CachedSymbolCache) CIK(ctx context.Context, ticker string) (string, bool) {
	cik, err := s.cache.Get(ctx, "cik:"+ticker)
	if err != nil || cik == "" {
		return "", false
	}
	return cik, true
}

func (s *CachedSymbolCache) StoreCIK(ctx context.Context, ticker, cik string) {
	_ = s.cache.Set(ctx, "cik:"+ticker, cik, cikTTL)
}
