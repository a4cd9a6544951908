package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/workdesk/work-control-api/internal/models"
)

func TestDivisionCacheRoundTrip(t *testing.T) {
	cache := NewDivisionCache(time.Minute)

	_, ok := cache.Works(5)
	require.False(t, ok)

	records := []models.WorkRecord{{DocumentNumber: "10/77"}}
	cache.SetWorks(5, records)
	cache.SetExecutors(5, []string{"Alice"})
	cache.SetApprovers(5, []string{"Dunn"})

	got, ok := cache.Works(5)
	require.True(t, ok)
	require.Equal(t, records, got)

	executors, ok := cache.Executors(5)
	require.True(t, ok)
	require.Equal(t, []string{"Alice"}, executors)
}

func TestDivisionCacheInvalidateDropsAllArtifacts(t *testing.T) {
	cache := NewDivisionCache(time.Minute)
	cache.SetWorks(5, []models.WorkRecord{{DocumentNumber: "10/77"}})
	cache.SetExecutors(5, []string{"Alice"})
	cache.SetApprovers(5, []string{"Dunn"})
	cache.SetWorks(6, []models.WorkRecord{{DocumentNumber: "11/80"}})

	cache.Invalidate(5)

	_, ok := cache.Works(5)
	require.False(t, ok)
	_, ok = cache.Executors(5)
	require.False(t, ok)
	_, ok = cache.Approvers(5)
	require.False(t, ok)

	// other divisions untouched
	_, ok = cache.Works(6)
	require.True(t, ok)
}

func TestDivisionCacheAbsoluteExpiry(t *testing.T) {
	cache := NewDivisionCache(30 * time.Millisecond)
	cache.SetWorks(5, []models.WorkRecord{{DocumentNumber: "10/77"}})

	_, ok := cache.Works(5)
	require.True(t, ok)

	time.Sleep(60 * time.Millisecond)

	_, ok = cache.Works(5)
	require.False(t, ok)
}
