package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ardacaliskaan/RaporServisi/internal/database"
	"github.com/ardacaliskaan/RaporServisi/internal/logger"
)

// Vizite usage quotas, enforced locally so a denied request never reaches
// the upstream at all.
const (
	OpSearchByDate       = "raporAramaTarihile"
	OpWorkAccidentSearch = "hasIsKazasiSorguTarihile"
)

type RateLimitRule struct {
	MaxPerWindow int
	Window       time.Duration
	MinInterval  time.Duration
}

// The documented upstream rules: both query operations allow at most 2
// requests per employer per rolling 24 hours; work-accident queries
// additionally require 15 minutes between requests.
var rateLimitRules = map[string]RateLimitRule{
	OpSearchByDate:       {MaxPerWindow: 2, Window: 24 * time.Hour},
	OpWorkAccidentSearch: {MaxPerWindow: 2, Window: 24 * time.Hour, MinInterval: 15 * time.Minute},
}

var defaultRateLimitRule = RateLimitRule{MaxPerWindow: 2, Window: 24 * time.Hour}

type RateLimitDecision struct {
	Allowed       bool       `json:"allowed"`
	Remaining     int        `json:"remaining"`
	NextAvailable *time.Time `json:"nextAvailable,omitempty"`
	Message       string     `json:"message"`
}

type RateLimitStats struct {
	Key            string     `json:"key"`
	RequestCount   int        `json:"requestCount"`
	LastRequest    *time.Time `json:"lastRequest,omitempty"`
	CanMakeRequest bool       `json:"canMakeRequest"`
}

// RateLimitService keeps a sliding window of admitted requests per
// (operation, company) key. With a cache client it shares windows across
// instances, otherwise it falls back to a process-local map.
type RateLimitService struct {
	store windowStore
	log   logger.Logger
	mu    sync.Mutex
	now   func() time.Time
}

func NewRateLimitService(cache database.CacheClient) *RateLimitService {
	var store windowStore
	if cache != nil {
		store = newValkeyWindowStore(cache)
	} else {
		store = newMemoryWindowStore()
	}

	return &RateLimitService{
		store: store,
		log:   logger.New("rateLimitService"),
		now:   time.Now,
	}
}

func windowKey(companyCode, operation string) string {
	return operation + "_" + companyCode
}

// CheckAndRecord evaluates the rule for the operation and, when admitted,
// records the request timestamp in the same critical section.
func (s *RateLimitService) CheckAndRecord(
	ctx context.Context,
	companyCode, operation string,
) (RateLimitDecision, error) {
	log := s.log.Function("CheckAndRecord")

	rule, ok := rateLimitRules[operation]
	if !ok {
		rule = defaultRateLimitRule
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	key := windowKey(companyCode, operation)

	entries, err := s.store.Entries(ctx, key, now.Add(-rule.Window))
	if err != nil {
		return RateLimitDecision{}, log.Err("failed to load rate limit window", err, "key", key)
	}

	if len(entries) >= rule.MaxPerWindow {
		oldest := entries[0]
		for _, at := range entries[1:] {
			if at.Before(oldest) {
				oldest = at
			}
		}
		next := oldest.Add(rule.Window)

		log.Warn("rate limit exceeded", "key", key, "nextAvailable", next)
		return RateLimitDecision{
			Allowed:       false,
			Remaining:     0,
			NextAvailable: &next,
			Message: fmt.Sprintf(
				"24 saat içinde maksimum %d sorgu sınırına ulaştınız. Sonraki sorgu zamanı: %s",
				rule.MaxPerWindow, next.Format("02.01.2006 15:04")),
		}, nil
	}

	if rule.MinInterval > 0 && len(entries) > 0 {
		last := entries[0]
		for _, at := range entries[1:] {
			if at.After(last) {
				last = at
			}
		}

		if now.Sub(last) < rule.MinInterval {
			next := last.Add(rule.MinInterval)

			log.Warn("rate limit interval not elapsed", "key", key, "nextAvailable", next)
			return RateLimitDecision{
				Allowed:       false,
				Remaining:     rule.MaxPerWindow - len(entries),
				NextAvailable: &next,
				Message: fmt.Sprintf(
					"Sorgular arasında %d dakika beklemeniz gerekiyor. Sonraki sorgu zamanı: %s",
					int(rule.MinInterval.Minutes()), next.Format("15:04")),
			}, nil
		}
	}

	if err := s.store.Append(ctx, key, now); err != nil {
		return RateLimitDecision{}, log.Err("failed to record rate limit entry", err, "key", key)
	}

	remaining := rule.MaxPerWindow - len(entries) - 1
	log.Info("rate limit passed", "key", key, "remaining", remaining)

	return RateLimitDecision{
		Allowed:   true,
		Remaining: remaining,
		Message:   fmt.Sprintf("Kalan sorgu hakkı: %d", remaining),
	}, nil
}

// Reset clears one key's window. Operational recovery only, never called
// automatically.
func (s *RateLimitService) Reset(ctx context.Context, companyCode, operation string) error {
	log := s.log.Function("Reset")

	s.mu.Lock()
	defer s.mu.Unlock()

	key := windowKey(companyCode, operation)
	if err := s.store.Reset(ctx, key); err != nil {
		return log.Err("failed to reset rate limit window", err, "key", key)
	}

	log.Warn("rate limit window reset", "key", key)
	return nil
}

// Clear drops every window.
func (s *RateLimitService) Clear(ctx context.Context) error {
	log := s.log.Function("Clear")

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return log.Err("failed to clear rate limit windows", err)
	}

	log.Info("all rate limit windows cleared")
	return nil
}

// Stats reports per-key usage inside each key's window.
func (s *RateLimitService) Stats(ctx context.Context) ([]RateLimitStats, error) {
	log := s.log.Function("Stats")

	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.store.Keys(ctx)
	if err != nil {
		return nil, log.Err("failed to list rate limit keys", err)
	}

	now := s.now().UTC()
	stats := make([]RateLimitStats, 0, len(keys))
	for _, key := range keys {
		entries, err := s.store.Entries(ctx, key, now.Add(-defaultRateLimitRule.Window))
		if err != nil {
			return nil, log.Err("failed to load rate limit window", err, "key", key)
		}

		stat := RateLimitStats{
			Key:            key,
			RequestCount:   len(entries),
			CanMakeRequest: len(entries) < defaultRateLimitRule.MaxPerWindow,
		}
		for i := range entries {
			if stat.LastRequest == nil || entries[i].After(*stat.LastRequest) {
				stat.LastRequest = &entries[i]
			}
		}
		stats = append(stats, stat)
	}

	return stats, nil
}
