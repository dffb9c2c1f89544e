package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

func TestScaledClock_NowAdvancesByScale(t *testing.T) {
	fake := testingclock.NewFakeClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	clock := NewScaledClock(fake, 60)
	start := clock.Now()

	fake.Step(time.Second)

	assert.Equal(t, time.Minute, clock.Now().Sub(start))
}

func TestScaledClock_NonPositiveScaleRunsInRealTime(t *testing.T) {
	fake := testingclock.NewFakeClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	clock := NewScaledClock(fake, 0)
	start := clock.Now()

	fake.Step(time.Second)

	assert.Equal(t, time.Second, clock.Now().Sub(start))
}

func TestScaledClock_SleepWaitsForScaledDuration(t *testing.T) {
	fake := testingclock.NewFakeClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	clock := NewScaledClock(fake, 60)

	done := make(chan error, 1)
	go func() { done <- clock.Sleep(context.Background(), 10*time.Minute) }()
	require.Eventually(t, fake.HasWaiters, 5*time.Second, time.Millisecond)

	fake.Step(9 * time.Second)
	select {
	case <-done:
		t.Fatal("Sleep returned before the scaled duration elapsed")
	case <-time.After(20 * time.Millisecond):
	}

	fake.Step(time.Second)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Sleep did not return after the scaled duration elapsed")
	}
}

func TestScaledClock_SleepReturnsOnCancel(t *testing.T) {
	clock, fake := newFakeClock()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- clock.Sleep(ctx, time.Hour) }()
	require.Eventually(t, fake.HasWaiters, 5*time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Sleep ignored cancellation")
	}
	assert.False(t, fake.HasWaiters())
}

func TestScaledClock_SleepEdgeCases(t *testing.T) {
	clock, fake := newFakeClock()

	assert.NoError(t, clock.Sleep(context.Background(), 0))
	assert.False(t, fake.HasWaiters())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, clock.Sleep(ctx, time.Minute), context.Canceled)
}
