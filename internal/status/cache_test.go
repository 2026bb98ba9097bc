package status

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestCache_HitWithinTTL(t *testing.T) {
	clock := newFakeClock()
	cache := NewCache(30*time.Second, clock.Now)

	calls := 0
	compute := func() ([]AgentStatus, bool) {
		calls++
		return []AgentStatus{{Name: "a", Status: StateActive}}, true
	}

	first := cache.Get(compute)
	clock.Advance(29 * time.Second)
	second := cache.Get(compute)
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	clock.Advance(time.Second)
	cache.Get(compute)
	assert.Equal(t, 2, calls, "entry expires once ttl has fully elapsed")
}

func TestCache_EmptyResultIsNotServed(t *testing.T) {
	cache := NewCache(time.Minute, newFakeClock().Now)

	calls := 0
	compute := func() ([]AgentStatus, bool) {
		calls++
		return []AgentStatus{}, true
	}
	cache.Get(compute)
	cache.Get(compute)
	assert.Equal(t, 2, calls)
}

func TestCache_IncompleteResultIsNotStored(t *testing.T) {
	cache := NewCache(time.Minute, newFakeClock().Now)

	got := cache.Get(func() ([]AgentStatus, bool) {
		return []AgentStatus{{Name: "partial"}}, false
	})
	assert.Len(t, got, 1)

	_, ok := cache.ComputedAt()
	assert.False(t, ok)
}

func TestCache_ReturnsCopies(t *testing.T) {
	cache := NewCache(time.Minute, newFakeClock().Now)
	compute := func() ([]AgentStatus, bool) {
		return []AgentStatus{{Name: "a", Usage: map[string]any{"input": 1}}}, true
	}

	first := cache.Get(compute)
	first[0].Name = "mutated"
	first[0].Usage["input"] = 99

	second := cache.Get(compute)
	assert.Equal(t, "a", second[0].Name)
	assert.Equal(t, 1, second[0].Usage["input"])
}

func TestCache_Invalidate(t *testing.T) {
	clock := newFakeClock()
	cache := NewCache(time.Minute, clock.Now)
	calls := 0
	compute := func() ([]AgentStatus, bool) {
		calls++
		return []AgentStatus{{Name: "a"}}, true
	}

	cache.Get(compute)
	at, ok := cache.ComputedAt()
	require.True(t, ok)
	assert.Equal(t, clock.Now(), at)

	cache.Invalidate()
	cache.Get(compute)
	assert.Equal(t, 2, calls)
}

func TestCache_ConcurrentReadersComputeOnce(t *testing.T) {
	cache := NewCache(time.Minute, newFakeClock().Now)

	var calls atomic.Int32
	compute := func() ([]AgentStatus, bool) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return []AgentStatus{{Name: "a"}}, true
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := cache.Get(compute)
			assert.Len(t, got, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}
