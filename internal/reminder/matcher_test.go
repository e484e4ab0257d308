package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AssignReminders/config"
)

func TestEnabledLeadTimesKeepsPrecedenceOrder(t *testing.T) {
	cfg := &config.Config{
		Remind1DayBefore:  true,
		Remind3DaysBefore: true,
		Remind7DaysBefore: true,
	}

	leads := EnabledLeadTimes(cfg)

	require.Len(t, leads, 3)
	assert.Equal(t, "1 day", leads[0].Label)
	assert.Equal(t, "3 days", leads[1].Label)
	assert.Equal(t, "7 days", leads[2].Label)
}

func TestEnabledLeadTimesHonorsSwitches(t *testing.T) {
	cfg := &config.Config{Remind7DaysBefore: true}

	leads := EnabledLeadTimes(cfg)

	require.Len(t, leads, 1)
	assert.Equal(t, "7 days", leads[0].Label)
	assert.Equal(t, int64(7*86_400), leads[0].Seconds)
}

func TestMatchAheadOneDayBeforeDue(t *testing.T) {
	// 上次水位 T，本次在 T+1 触发：窗口 [T+1, T+1]，
	// 截止时间 T+1+86400 的作业恰好命中一天档
	T := int64(1_700_000_000)
	window := RunWindow{Start: T + 1, End: T + 1}
	leads := []LeadTime{{Label: "1 day", Seconds: 86_400}}

	lead, ok := MatchAhead(T+1+86_400, window, leads)

	require.True(t, ok)
	assert.Equal(t, "1 day", lead.Label)
}

func TestMatchAheadShortestLeadWins(t *testing.T) {
	// 窗口足够宽时同一事件可能同时落进多个档位，取最近的档
	window := RunWindow{Start: 0, End: 3 * 86_400}
	leads := []LeadTime{
		{Label: "1 day", Seconds: 86_400},
		{Label: "3 days", Seconds: 3 * 86_400},
	}
	due := window.End + 86_400

	lead, ok := MatchAhead(due, window, leads)

	require.True(t, ok)
	assert.Equal(t, "1 day", lead.Label)
}

func TestMatchAheadRejectsOverdue(t *testing.T) {
	window := RunWindow{Start: 1_000, End: 200_000}
	leads := []LeadTime{{Label: "1 day", Seconds: 86_400}}

	// 截止时间落在窗口内（已过期），即使偏移命中也不匹配
	_, ok := MatchAhead(window.End-10, window, leads)
	assert.False(t, ok)

	_, ok = MatchAhead(window.End, window, leads)
	assert.False(t, ok)
}

func TestMatchAheadOutsideAllLeads(t *testing.T) {
	window := RunWindow{Start: 1_000, End: 2_000}
	leads := []LeadTime{{Label: "1 day", Seconds: 86_400}}

	// 截止时间太远，偏移后落在窗口之后
	_, ok := MatchAhead(window.End+2*86_400, window, leads)
	assert.False(t, ok)
}

func TestOffsets(t *testing.T) {
	leads := []LeadTime{
		{Label: "1 day", Seconds: 86_400},
		{Label: "7 days", Seconds: 7 * 86_400},
	}

	assert.Equal(t, []int64{86_400, 7 * 86_400}, Offsets(leads))
	assert.Empty(t, Offsets(nil))
}
