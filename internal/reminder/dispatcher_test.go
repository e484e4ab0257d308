package reminder

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AssignReminders/internal/model"
)

type memEvents struct {
	events []model.CalendarEvent
	err    error
}

// Scan applies the same window predicate the SQL scan does, so
// multi-run tests see realistic windowing behavior.
func (m *memEvents) Scan(ctx context.Context, window RunWindow, offsets []int64) ([]model.CalendarEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.CalendarEvent
	for _, event := range m.events {
		if event.TimeStart <= window.End {
			continue
		}
		for _, offset := range offsets {
			if window.Contains(event.TimeStart - offset) {
				out = append(out, event)
				break
			}
		}
	}
	return out, nil
}

type memWatermarks struct {
	times []int64
	types []string
}

func (m *memWatermarks) Latest(ctx context.Context) (int64, bool, error) {
	if len(m.times) == 0 {
		return 0, false, nil
	}
	return m.times[len(m.times)-1], true, nil
}

func (m *memWatermarks) Commit(ctx context.Context, end int64, logType string) error {
	m.times = append(m.times, end)
	m.types = append(m.types, logType)
	return nil
}

type fakeContent struct {
	course     model.Course
	assignment model.Assignment
	missing    map[int64]bool // instance -> coursework gone
}

func (f *fakeContent) CourseworkForEvent(ctx context.Context, courseID, instance int64) (model.Course, model.Assignment, bool, error) {
	if f.missing[instance] {
		return model.Course{}, model.Assignment{}, false, nil
	}
	return f.course, f.assignment, true, nil
}

type sentRecord struct {
	eventID int64
	userID  int64
	ahead   string
}

type fakeTransport struct {
	failFor map[int64]bool // 需要强制失败的 userID
	sent    []sentRecord
}

func (f *fakeTransport) Send(ctx context.Context, runID string, event model.CalendarEvent, n *Notification) error {
	if f.failFor[n.To.ID] {
		return fmt.Errorf("push rejected for user %d", n.To.ID)
	}
	f.sent = append(f.sent, sentRecord{eventID: event.ID, userID: n.To.ID, ahead: n.AheadLabel})
	return nil
}

type harness struct {
	dispatcher *Dispatcher
	events     *memEvents
	watermarks *memWatermarks
	transport  *fakeTransport
	now        *time.Time
}

func newHarness(events []model.CalendarEvent, recipients []model.User, failFor map[int64]bool) *harness {
	now := time.Unix(1_700_000_000, 0)
	h := &harness{
		events:     &memEvents{events: events},
		watermarks: &memWatermarks{},
		transport:  &fakeTransport{failFor: failFor},
		now:        &now,
	}

	roster := &fakeRoster{roleHolders: map[int64][]model.User{}}
	for _, event := range events {
		roster.roleHolders[event.CourseID] = recipients
	}

	h.dispatcher = NewDispatcher(Options{
		Events:     h.events,
		Watermarks: h.watermarks,
		Content:    &fakeContent{course: model.Course{FullName: "Maths"}, assignment: model.Assignment{ID: 10, Name: "hw1"}},
		Resolver:   NewResolver(roster, &fakeCoursework{}, []int64{5}),
		Transport:  h.transport,
		Leads:      []LeadTime{{Label: "1 day", Seconds: 86_400}},
		Template: TemplateSpec{
			Sender:     "admin",
			DateFormat: "2006-01-02 15:04",
			Location:   time.UTC,
		},
		SendTimeout:    time.Second,
		FirstRunCutoff: 24 * time.Hour,
		Now:            func() time.Time { return *h.now },
	})
	return h
}

func TestRunNoEventsCommitsNoEvents(t *testing.T) {
	h := newHarness(nil, nil, nil)

	out, err := h.dispatcher.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, out.Committed)
	assert.Equal(t, model.ReminderLogNoEvents, out.CommitType)
	require.Len(t, h.watermarks.times, 1)
	assert.Equal(t, h.now.Unix(), h.watermarks.times[0])
}

func TestRunPartialSuccessCommitsSent(t *testing.T) {
	now := int64(1_700_000_000)
	events := []model.CalendarEvent{{ID: 1, CourseID: 1, Instance: 10, TimeStart: now + 3_600 + 86_400}}
	recipients := []model.User{{ID: 1}, {ID: 2}}

	h := newHarness(events, recipients, map[int64]bool{2: true})
	// 让事件的偏移落进首轮窗口
	*h.now = time.Unix(now+3_600, 0)

	out, err := h.dispatcher.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, out.EventsMatched)
	assert.Equal(t, 1, out.RemindersSent)
	assert.Equal(t, 1, out.RemindersFailed)
	assert.True(t, out.Committed)
	assert.Equal(t, model.ReminderLogSent, out.CommitType)
}

func TestRunTotalFailureDoesNotAdvanceWatermark(t *testing.T) {
	now := int64(1_700_000_000)
	events := []model.CalendarEvent{{ID: 1, CourseID: 1, Instance: 10, TimeStart: now + 3_600 + 86_400}}
	recipients := []model.User{{ID: 1}, {ID: 2}}

	h := newHarness(events, recipients, map[int64]bool{1: true, 2: true})
	*h.now = time.Unix(now+3_600, 0)

	out, err := h.dispatcher.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, out.RemindersFailed)
	assert.False(t, out.Committed)
	assert.Empty(t, h.watermarks.times)

	// 投递恢复后重跑同一窗口，事件被重新处理
	h.transport.failFor = nil
	*h.now = h.now.Add(time.Minute)

	out, err = h.dispatcher.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, out.RemindersSent)
	assert.True(t, out.Committed)
}

func TestRunDoesNotResendAcrossRuns(t *testing.T) {
	now := int64(1_700_000_000)
	events := []model.CalendarEvent{{ID: 1, CourseID: 1, Instance: 10, TimeStart: now + 3_600 + 86_400}}
	recipients := []model.User{{ID: 1}}

	h := newHarness(events, recipients, nil)
	*h.now = time.Unix(now+3_600, 0)

	out, err := h.dispatcher.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, out.RemindersSent)

	// 下一轮窗口紧接水位之后，同一事件不再命中
	*h.now = h.now.Add(15 * time.Minute)

	out, err = h.dispatcher.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, out.RemindersSent)
	assert.Equal(t, model.ReminderLogNoEvents, out.CommitType)
	assert.Len(t, h.transport.sent, 1)
}

func TestRunSkipsStaleEventAndProcessesRest(t *testing.T) {
	now := int64(1_700_000_000)
	events := []model.CalendarEvent{
		{ID: 1, CourseID: 1, Instance: 10, TimeStart: now + 3_600 + 86_400},
		{ID: 2, CourseID: 1, Instance: 11, TimeStart: now + 3_000 + 86_400},
	}
	recipients := []model.User{{ID: 1}}

	h := newHarness(events, recipients, nil)
	content := &fakeContent{
		course:     model.Course{FullName: "Maths"},
		assignment: model.Assignment{ID: 10, Name: "hw1"},
		missing:    map[int64]bool{11: true},
	}
	h.dispatcher.content = content
	*h.now = time.Unix(now+3_600, 0)

	out, err := h.dispatcher.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, out.EventsMatched)
	assert.Equal(t, 1, out.EventsSkipped)
	assert.Equal(t, 1, out.RemindersSent)
	assert.True(t, out.Committed)
	require.Len(t, h.transport.sent, 1)
	assert.Equal(t, int64(1), h.transport.sent[0].eventID)
}

func TestRunDegenerateWindowDoesNotCommit(t *testing.T) {
	h := newHarness(nil, nil, nil)
	// 先提交一个水位，再把时钟拨回水位之前
	require.NoError(t, h.watermarks.Commit(context.Background(), h.now.Unix()+1_000, model.ReminderLogNoEvents))

	out, err := h.dispatcher.Run(context.Background())

	require.NoError(t, err)
	assert.False(t, out.Committed)
	assert.Len(t, h.watermarks.times, 1)
}

func TestRunScanErrorPropagates(t *testing.T) {
	h := newHarness(nil, nil, nil)
	h.events.err = fmt.Errorf("db down")

	_, err := h.dispatcher.Run(context.Background())

	assert.Error(t, err)
	assert.Empty(t, h.watermarks.times)
}

func TestRunNotificationCarriesRenderedContent(t *testing.T) {
	now := int64(1_700_000_000)
	events := []model.CalendarEvent{{ID: 1, CourseID: 1, Instance: 10, TimeStart: now + 3_600 + 86_400}}

	h := newHarness(events, []model.User{{ID: 1}}, nil)
	*h.now = time.Unix(now+3_600, 0)

	_, err := h.dispatcher.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, h.transport.sent, 1)
	assert.Equal(t, "1 day", h.transport.sent[0].ahead)
}
