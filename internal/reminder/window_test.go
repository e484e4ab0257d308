package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeWindowResumesAfterWatermark(t *testing.T) {
	now := time.Unix(10_000, 0)

	w := ComputeWindow(9_000, true, now, 24*time.Hour)

	assert.Equal(t, int64(9_001), w.Start)
	assert.Equal(t, int64(10_000), w.End)
}

func TestComputeWindowFirstRunUsesCutoff(t *testing.T) {
	now := time.Unix(1_000_000, 0)

	w := ComputeWindow(0, false, now, 24*time.Hour)

	assert.Equal(t, now.Unix()-86_400, w.Start)
	assert.Equal(t, now.Unix(), w.End)
}

func TestConsecutiveWindowsAreContiguous(t *testing.T) {
	first := ComputeWindow(0, false, time.Unix(5_000_000, 0), 24*time.Hour)
	second := ComputeWindow(first.End, true, time.Unix(5_000_900, 0), 24*time.Hour)

	assert.Equal(t, first.End+1, second.Start)
	assert.False(t, second.Contains(first.End))
	assert.True(t, second.Contains(second.Start))
}

func TestWindowContainsIsInclusive(t *testing.T) {
	w := RunWindow{Start: 100, End: 200}

	assert.True(t, w.Contains(100))
	assert.True(t, w.Contains(200))
	assert.False(t, w.Contains(99))
	assert.False(t, w.Contains(201))
	assert.Equal(t, 101*time.Second, w.Duration())
}
