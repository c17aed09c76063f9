package uitest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRuntime_Advance(t *testing.T) {
	rt := NewRuntime()
	var events []string

	rt.AfterFunc(2*time.Second, func() { events = append(events, "once") })
	ticker := rt.Every(time.Second, func() { events = append(events, "tick") })

	rt.Advance(3 * time.Second)
	assert.Equal(t, []string{"tick", "once", "tick", "tick"}, events)
	assert.Equal(t, 3*time.Second, rt.Now())
	assert.Equal(t, 1, rt.Pending())

	assert.True(t, ticker.Stop())
	assert.False(t, ticker.Stop())
	assert.Equal(t, 0, rt.Pending())
}

func TestRuntime_NestedScheduling(t *testing.T) {
	rt := NewRuntime()
	fired := false

	rt.AfterFunc(time.Second, func() {
		rt.AfterFunc(time.Second, func() { fired = true })
	})

	rt.Advance(1500 * time.Millisecond)
	assert.False(t, fired)
	rt.Advance(500 * time.Millisecond)
	assert.True(t, fired)
}
