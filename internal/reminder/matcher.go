package reminder

import "AssignReminders/config"

// LeadTime is one configured reminder distance before a due date.
type LeadTime struct {
	Label   string
	Seconds int64
}

const daySeconds = 24 * 60 * 60

// Lead times in label precedence order. When an event is close enough
// to satisfy several lead times at once, the shortest one wins so the
// notification names the most urgent distance.
var allLeadTimes = []LeadTime{
	{Label: "1 day", Seconds: 1 * daySeconds},
	{Label: "3 days", Seconds: 3 * daySeconds},
	{Label: "7 days", Seconds: 7 * daySeconds},
}

// EnabledLeadTimes returns the lead times switched on in configuration,
// keeping precedence order.
func EnabledLeadTimes(cfg *config.Config) []LeadTime {
	enabled := map[int64]bool{
		1 * daySeconds: cfg.Remind1DayBefore,
		3 * daySeconds: cfg.Remind3DaysBefore,
		7 * daySeconds: cfg.Remind7DaysBefore,
	}
	var leads []LeadTime
	for _, lead := range allLeadTimes {
		if enabled[lead.Seconds] {
			leads = append(leads, lead)
		}
	}
	return leads
}

// Offsets returns the raw second offsets of the given lead times, for
// the event scan query.
func Offsets(leads []LeadTime) []int64 {
	offsets := make([]int64, 0, len(leads))
	for _, lead := range leads {
		offsets = append(offsets, lead.Seconds)
	}
	return offsets
}

// MatchAhead returns the lead time an event matches within the window.
//
// An event matches a lead time when the due date shifted back by it
// lands inside the window, and the due date itself lies beyond the
// window end. The first match in precedence order wins. ok is false
// when no lead time matches, which means the event should be skipped.
func MatchAhead(timeStart int64, window RunWindow, leads []LeadTime) (LeadTime, bool) {
	if timeStart <= window.End {
		// 截止时间已过，不再提醒
		return LeadTime{}, false
	}
	for _, lead := range leads {
		if window.Contains(timeStart - lead.Seconds) {
			return lead, true
		}
	}
	return LeadTime{}, false
}
