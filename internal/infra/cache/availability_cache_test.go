package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type countingSource struct {
	calls int
	data  map[string]availability.Availability
}

func (s *countingSource) Get(_ context.Context, id string) (*availability.Availability, error) {
	s.calls++
	a, ok := s.data[id]
	if !ok {
		return nil, httperr.NotFoundErr("provider_not_found")
	}
	return &a, nil
}

func setup(t *testing.T) (*miniredis.Miniredis, *countingSource, *AvailabilityCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	a := availability.Default("p1")
	day := calendar.MustDateKey("2026-10-20")
	a.OffHours = []availability.OffHours{{Start: calendar.MustTimeOfDay("16:00"), End: calendar.MustTimeOfDay("17:00"), Date: &day}}
	a.Version = 4

	src := &countingSource{data: map[string]availability.Availability{"p1": a}}
	return mr, src, NewAvailabilityCache(client, src, time.Minute, zap.NewNop())
}

func TestAvailabilityCache_ReadThrough(t *testing.T) {
	mr, src, c := setup(t)
	ctx := context.Background()

	first, err := c.Get(ctx, "p1")
	require.NoError(t, err)
	second, err := c.Get(ctx, "p1")
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, first.Version, second.Version)
	require.NotNil(t, second.LunchBreak)
	assert.Equal(t, "14:00", second.LunchBreak.Start.String())
	require.Len(t, second.OffHours, 1)
	assert.Equal(t, "2026-10-20", second.OffHours[0].Date.String())
	assert.True(t, mr.Exists("availability:p1"))

	mr.FastForward(2 * time.Minute)
	_, err = c.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestAvailabilityCache_Invalidate(t *testing.T) {
	mr, src, c := setup(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "p1")
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, "p1"))
	assert.False(t, mr.Exists("availability:p1"))

	_, err = c.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestAvailabilityCache_MissesAreNotCached(t *testing.T) {
	mr, _, c := setup(t)

	_, err := c.Get(context.Background(), "ghost")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
	assert.False(t, mr.Exists("availability:ghost"))
}

func TestAvailabilityCache_FallsBackWhenRedisIsDown(t *testing.T) {
	mr, src, c := setup(t)
	mr.Close()

	a, err := c.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", a.ProviderID)
	assert.Equal(t, 1, src.calls)
}
