package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerFiresOnce(t *testing.T) {
	clock := NewManual()
	tm := New(clock)

	require.NotNil(t, tm.Schedule(time.Second))
	assert.True(t, tm.Pending())

	msgs := clock.Advance(time.Second)
	require.Len(t, msgs, 1)
	assert.True(t, tm.Fire(msgs[0]))
	assert.False(t, tm.Pending())
	assert.False(t, tm.Fire(msgs[0]), "a firing must not be accepted twice")
}

func TestTimerRescheduleDropsStaleFiring(t *testing.T) {
	clock := NewManual()
	tm := New(clock)

	tm.Schedule(3 * time.Second)
	clock.Advance(time.Second)
	tm.Schedule(3 * time.Second)

	stale := clock.Advance(2 * time.Second)
	require.Len(t, stale, 1)
	assert.False(t, tm.Fire(stale[0]))
	assert.True(t, tm.Pending())

	live := clock.Advance(time.Second)
	require.Len(t, live, 1)
	assert.True(t, tm.Fire(live[0]))
}

func TestTimerCancelAndStop(t *testing.T) {
	clock := NewManual()
	tm := New(clock)

	tm.Schedule(time.Second)
	tm.Cancel()
	for _, msg := range clock.Advance(time.Second) {
		assert.False(t, tm.Fire(msg))
	}

	tm.Schedule(time.Second)
	tm.Stop()
	assert.Nil(t, tm.Schedule(time.Second))
	for _, msg := range clock.Advance(time.Second) {
		assert.False(t, tm.Fire(msg))
	}
	assert.True(t, tm.Stopped())
}

func TestTimerIgnoresOtherTimers(t *testing.T) {
	clock := NewManual()
	a := New(clock)
	b := New(clock)

	a.Schedule(time.Second)
	b.Schedule(time.Second)
	msgs := clock.Advance(time.Second)
	require.Len(t, msgs, 2)
	assert.True(t, a.Fire(msgs[0]))
	assert.False(t, a.Fire(msgs[1]))
	assert.True(t, b.Fire(msgs[1]))
}

func TestManualOrdersByDeadline(t *testing.T) {
	clock := NewManual()
	clock.After(2*time.Second, "late")
	clock.After(time.Second, "early")

	msgs := clock.Advance(5 * time.Second)
	assert.Equal(t, []any{"early", "late"}, toAny(msgs))
	assert.Zero(t, clock.Pending())
	assert.Equal(t, 5*time.Second, clock.Now())
}

func toAny[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
