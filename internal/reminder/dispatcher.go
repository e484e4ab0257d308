package reminder

import (
	"context"
	"time"

	"AssignReminders/internal/model"
	"AssignReminders/pkg/logger"
	"AssignReminders/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventSource scans calendar events for one window. Module name, event
// type and visibility policy are bound by the implementation.
type EventSource interface {
	Scan(ctx context.Context, window RunWindow, offsets []int64) ([]model.CalendarEvent, error)
}

// WatermarkStore persists run windows.
type WatermarkStore interface {
	Latest(ctx context.Context) (watermark int64, ok bool, err error)
	Commit(ctx context.Context, end int64, logType string) error
}

// ContentSource resolves the course and activity behind an event.
type ContentSource interface {
	CourseworkForEvent(ctx context.Context, courseID, instance int64) (model.Course, model.Assignment, bool, error)
}

// Transport delivers one notification. Implementations either push
// directly or hand the message to a queue; in queue mode a successful
// publish counts as a successful delivery attempt.
type Transport interface {
	Send(ctx context.Context, runID string, event model.CalendarEvent, notification *Notification) error
}

// Options wires a Dispatcher.
type Options struct {
	Events     EventSource
	Watermarks WatermarkStore
	Content    ContentSource
	Resolver   *Resolver
	Transport  Transport

	Leads          []LeadTime
	Template       TemplateSpec
	SendTimeout    time.Duration
	FirstRunCutoff time.Duration

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// Dispatcher runs one scan-and-send pass per invocation. It owns the
// commit policy: a run with no matching events advances the watermark
// with a no_events entry, a run with at least one successful delivery
// advances it with a sent entry, and a run where every delivery failed
// leaves the watermark alone so the same window is retried next time.
type Dispatcher struct {
	events     EventSource
	watermarks WatermarkStore
	content    ContentSource
	resolver   *Resolver
	transport  Transport

	leads          []LeadTime
	template       TemplateSpec
	sendTimeout    time.Duration
	firstRunCutoff time.Duration
	now            func() time.Time
}

func NewDispatcher(opts Options) *Dispatcher {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{
		events:         opts.Events,
		watermarks:     opts.Watermarks,
		content:        opts.Content,
		resolver:       opts.Resolver,
		transport:      opts.Transport,
		leads:          opts.Leads,
		template:       opts.Template,
		sendTimeout:    opts.SendTimeout,
		firstRunCutoff: opts.FirstRunCutoff,
		now:            now,
	}
}

// Run executes one pass. It returns an error only when the run could
// not reach a decision (scan or watermark failures); per-event problems
// are isolated, logged and counted in the outcome instead.
func (d *Dispatcher) Run(ctx context.Context) (*Outcome, error) {
	runID := uuid.NewString()
	started := d.now()

	watermark, ok, err := d.watermarks.Latest(ctx)
	if err != nil {
		return nil, err
	}
	window := ComputeWindow(watermark, ok, started, d.firstRunCutoff)
	if window.Start > window.End {
		// 时钟回拨会产生空窗口，提交会让水位倒退，直接放弃本轮
		logger.Logger.Warn("Degenerate window, skipping run",
			zap.String("run_id", runID),
			zap.Int64("window_start", window.Start),
			zap.Int64("window_end", window.End))
		return &Outcome{RunID: runID, Window: window}, nil
	}

	log := logger.Logger.With(
		zap.String("run_id", runID),
		zap.Int64("window_start", window.Start),
		zap.Int64("window_end", window.End),
	)
	log.Info("Reminder run started")

	events, err := d.events.Scan(ctx, window, Offsets(d.leads))
	if err != nil {
		return nil, err
	}

	out := &Outcome{RunID: runID, Window: window}

	if len(events) == 0 {
		if err := d.watermarks.Commit(ctx, window.End, model.ReminderLogNoEvents); err != nil {
			return nil, err
		}
		out.Committed = true
		out.CommitType = model.ReminderLogNoEvents
		log.Info("Reminder run finished, no events in window")
		metrics.RecordRun(ctx, model.ReminderLogNoEvents, d.now().Sub(started).Seconds())
		return out, nil
	}

	for _, event := range events {
		sent, failed, skipped := d.processEvent(ctx, log, runID, window, event)
		out.RemindersSent += sent
		out.RemindersFailed += failed
		if skipped {
			out.EventsSkipped++
		} else {
			out.EventsMatched++
		}
	}

	if out.RemindersSent > 0 {
		if err := d.watermarks.Commit(ctx, window.End, model.ReminderLogSent); err != nil {
			return nil, err
		}
		out.Committed = true
		out.CommitType = model.ReminderLogSent
	} else {
		// 全部失败，不推进水位，下次重扫同一窗口
		log.Warn("No reminder delivered, window will be rescanned",
			zap.Int("events", len(events)),
			zap.Int("failed", out.RemindersFailed))
	}

	log.Info("Reminder run finished",
		zap.Int("events_matched", out.EventsMatched),
		zap.Int("events_skipped", out.EventsSkipped),
		zap.Int("sent", out.RemindersSent),
		zap.Int("failed", out.RemindersFailed),
		zap.Bool("committed", out.Committed))
	metrics.RecordRun(ctx, runOutcomeLabel(out), d.now().Sub(started).Seconds())
	return out, nil
}

// processEvent handles one event end to end. A panic or error inside
// never aborts the run; the event is counted as skipped and the rest of
// the batch proceeds.
func (d *Dispatcher) processEvent(ctx context.Context, log *zap.Logger, runID string, window RunWindow, event model.CalendarEvent) (sent, failed int, skipped bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Panic while processing event",
				zap.Int64("event_id", event.ID),
				zap.Any("panic", r))
			metrics.RecordEventSkipped(ctx, "panic")
			sent, failed, skipped = 0, 0, true
		}
	}()

	lead, ok := MatchAhead(event.TimeStart, window, d.leads)
	if !ok {
		metrics.RecordEventSkipped(ctx, "out_of_window")
		return 0, 0, true
	}

	course, assignment, found, err := d.content.CourseworkForEvent(ctx, event.CourseID, event.Instance)
	if err != nil {
		log.Error("Failed to load coursework for event",
			zap.Int64("event_id", event.ID), zap.Error(err))
		metrics.RecordEventSkipped(ctx, "coursework_error")
		return 0, 0, true
	}
	if !found {
		// 课程或作业已删除，事件残留
		log.Warn("Stale event, coursework missing", zap.Int64("event_id", event.ID))
		metrics.RecordEventSkipped(ctx, "stale")
		return 0, 0, true
	}

	recipients, err := d.resolver.Resolve(ctx, event, assignment.ID)
	if err != nil {
		log.Error("Failed to resolve recipients",
			zap.Int64("event_id", event.ID), zap.Error(err))
		metrics.RecordEventSkipped(ctx, "resolve_error")
		return 0, 0, true
	}

	metrics.RecordEventMatched(ctx, lead.Label)

	tmpl := BuildTemplate(course, assignment, event.TimeStart, lead, d.template)
	defer tmpl.Close()

	for _, user := range recipients {
		notification, err := tmpl.Specialize(user)
		if err != nil {
			log.Error("Failed to specialize template",
				zap.Int64("event_id", event.ID),
				zap.Int64("user_id", user.ID),
				zap.Error(err))
			failed++
			continue
		}

		sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
		err = d.transport.Send(sendCtx, runID, event, notification)
		cancel()

		metrics.RecordSend(ctx, lead.Label, err == nil)
		if err != nil {
			log.Error("Failed to deliver reminder",
				zap.Int64("event_id", event.ID),
				zap.Int64("user_id", user.ID),
				zap.Error(err))
			failed++
			continue
		}
		sent++
	}

	log.Info("Event dispatched",
		zap.Int64("event_id", event.ID),
		zap.String("ahead", lead.Label),
		zap.Int("recipients", len(recipients)),
		zap.Int("sent", sent),
		zap.Int("failed", failed))
	return sent, failed, false
}

func runOutcomeLabel(out *Outcome) string {
	if out.Committed {
		return out.CommitType
	}
	return "retry"
}
