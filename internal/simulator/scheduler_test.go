package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduler_Jobs(t *testing.T) {
	s, _ := setupService(t)

	clockOnly, err := NewScheduler(s, SchedulerConfig{})
	require.NoError(t, err)
	assert.Len(t, clockOnly.sched.Jobs(), 1)
	clockOnly.Start()
	require.NoError(t, clockOnly.Shutdown())

	withHands, err := NewScheduler(s, SchedulerConfig{TickInterval: time.Second, HandInterval: 2 * time.Second})
	require.NoError(t, err)
	assert.Len(t, withHands.sched.Jobs(), 2)

	withHands.Start()
	assert.NoError(t, withHands.Shutdown())
}
