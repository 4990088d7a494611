package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRateLimitService(start time.Time) (*RateLimitService, *time.Time) {
	current := start
	service := NewRateLimitService(nil)
	service.now = func() time.Time { return current }
	return service, &current
}

func TestRateLimitService_AllowsUpToLimit(t *testing.T) {
	service, _ := newTestRateLimitService(time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first, err := service.CheckAndRecord(ctx, "12345678", OpSearchByDate)
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	second, err := service.CheckAndRecord(ctx, "12345678", OpSearchByDate)
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third, err := service.CheckAndRecord(ctx, "12345678", OpSearchByDate)
	require.NoError(t, err)
	assert.False(t, third.Allowed)
	assert.Contains(t, third.Message, "maksimum 2 sorgu")
}

func TestRateLimitService_NextAvailableIsOldestPlusWindow(t *testing.T) {
	start := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	service, current := newTestRateLimitService(start)
	ctx := context.Background()

	_, err := service.CheckAndRecord(ctx, "12345678", OpSearchByDate)
	require.NoError(t, err)

	*current = start.Add(2 * time.Hour)
	_, err = service.CheckAndRecord(ctx, "12345678", OpSearchByDate)
	require.NoError(t, err)

	*current = start.Add(3 * time.Hour)
	denied, err := service.CheckAndRecord(ctx, "12345678", OpSearchByDate)
	require.NoError(t, err)

	require.False(t, denied.Allowed)
	require.NotNil(t, denied.NextAvailable)
	assert.Equal(t, start.Add(24*time.Hour), *denied.NextAvailable)
}

func TestRateLimitService_WindowSlides(t *testing.T) {
	start := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	service, current := newTestRateLimitService(start)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		decision, err := service.CheckAndRecord(ctx, "12345678", OpSearchByDate)
		require.NoError(t, err)
		require.True(t, decision.Allowed)
	}

	// Just past the window of the first request, one slot frees up
	*current = start.Add(24*time.Hour + time.Minute)
	decision, err := service.CheckAndRecord(ctx, "12345678", OpSearchByDate)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestRateLimitService_WorkAccidentMinInterval(t *testing.T) {
	start := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	service, current := newTestRateLimitService(start)
	ctx := context.Background()

	first, err := service.CheckAndRecord(ctx, "12345678", OpWorkAccidentSearch)
	require.NoError(t, err)
	require.True(t, first.Allowed)

	// 10 minutes later: still inside the mandatory 15 minute gap
	*current = start.Add(10 * time.Minute)
	denied, err := service.CheckAndRecord(ctx, "12345678", OpWorkAccidentSearch)
	require.NoError(t, err)

	require.False(t, denied.Allowed)
	require.NotNil(t, denied.NextAvailable)
	assert.Equal(t, start.Add(15*time.Minute), *denied.NextAvailable)
	assert.Contains(t, denied.Message, "15 dakika")

	// After the gap the second slot is usable
	*current = start.Add(16 * time.Minute)
	allowed, err := service.CheckAndRecord(ctx, "12345678", OpWorkAccidentSearch)
	require.NoError(t, err)
	assert.True(t, allowed.Allowed)
}

func TestRateLimitService_SearchHasNoMinInterval(t *testing.T) {
	start := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	service, current := newTestRateLimitService(start)
	ctx := context.Background()

	_, err := service.CheckAndRecord(ctx, "12345678", OpSearchByDate)
	require.NoError(t, err)

	*current = start.Add(time.Minute)
	decision, err := service.CheckAndRecord(ctx, "12345678", OpSearchByDate)
	require.NoError(t, err)
	assert.True(t, decision.Allowed, "back to back date searches are allowed inside the quota")
}

func TestRateLimitService_KeysAreIndependent(t *testing.T) {
	service, _ := newTestRateLimitService(time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		decision, err := service.CheckAndRecord(ctx, "11111111", OpSearchByDate)
		require.NoError(t, err)
		require.True(t, decision.Allowed)
	}

	// A different company is unaffected
	other, err := service.CheckAndRecord(ctx, "22222222", OpSearchByDate)
	require.NoError(t, err)
	assert.True(t, other.Allowed)

	// A different operation for the same company is unaffected
	accident, err := service.CheckAndRecord(ctx, "11111111", OpWorkAccidentSearch)
	require.NoError(t, err)
	assert.True(t, accident.Allowed)
}

func TestRateLimitService_UnknownOperationGetsDefaultRule(t *testing.T) {
	service, _ := newTestRateLimitService(time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		decision, err := service.CheckAndRecord(ctx, "12345678", "someOtherOperation")
		require.NoError(t, err)
		require.True(t, decision.Allowed)
	}

	denied, err := service.CheckAndRecord(ctx, "12345678", "someOtherOperation")
	require.NoError(t, err)
	assert.False(t, denied.Allowed)
}

func TestRateLimitService_Reset(t *testing.T) {
	service, _ := newTestRateLimitService(time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := service.CheckAndRecord(ctx, "12345678", OpSearchByDate)
		require.NoError(t, err)
	}

	require.NoError(t, service.Reset(ctx, "12345678", OpSearchByDate))

	decision, err := service.CheckAndRecord(ctx, "12345678", OpSearchByDate)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestRateLimitService_Stats(t *testing.T) {
	start := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	service, current := newTestRateLimitService(start)
	ctx := context.Background()

	_, err := service.CheckAndRecord(ctx, "12345678", OpSearchByDate)
	require.NoError(t, err)

	*current = start.Add(time.Hour)
	_, err = service.CheckAndRecord(ctx, "12345678", OpSearchByDate)
	require.NoError(t, err)

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	assert.Equal(t, OpSearchByDate+"_12345678", stats[0].Key)
	assert.Equal(t, 2, stats[0].RequestCount)
	assert.False(t, stats[0].CanMakeRequest)
	require.NotNil(t, stats[0].LastRequest)
	assert.Equal(t, start.Add(time.Hour), *stats[0].LastRequest)

	require.NoError(t, service.Clear(ctx))

	stats, err = service.Stats(ctx)
	require.NoError(t, err)
	assert.Empty(t, stats)
}
