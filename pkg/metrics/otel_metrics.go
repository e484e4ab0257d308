package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics OpenTelemetry 指标集合
type OTelMetrics struct {
	// 提醒调度相关指标
	RemindersSentTotal   metric.Int64Counter
	RemindersFailedTotal metric.Int64Counter
	EventsMatchedTotal   metric.Int64Counter
	EventsSkippedTotal   metric.Int64Counter
	RunDuration          metric.Float64Histogram
	RunsTotal            metric.Int64Counter

	// 额度相关指标
	QuotaInsufficientTotal metric.Int64Counter
}

var (
	// 全局指标实例
	metrics *OTelMetrics
	meter   = otel.Meter("assignreminders")
)

// InitMetrics 初始化 OpenTelemetry 指标
func InitMetrics() error {
	var err error

	metrics = &OTelMetrics{}

	metrics.RemindersSentTotal, err = meter.Int64Counter(
		"reminders_sent_total",
		metric.WithDescription("Total number of reminders delivered"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return err
	}

	metrics.RemindersFailedTotal, err = meter.Int64Counter(
		"reminders_failed_total",
		metric.WithDescription("Total number of reminder delivery failures"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return err
	}

	metrics.EventsMatchedTotal, err = meter.Int64Counter(
		"due_events_matched_total",
		metric.WithDescription("Total number of due events matched by a lead-time threshold"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return err
	}

	metrics.EventsSkippedTotal, err = meter.Int64Counter(
		"due_events_skipped_total",
		metric.WithDescription("Total number of matched due events skipped"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return err
	}

	metrics.RunDuration, err = meter.Float64Histogram(
		"reminder_run_duration_seconds",
		metric.WithDescription("Time spent per reminder dispatch run in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	metrics.RunsTotal, err = meter.Int64Counter(
		"reminder_runs_total",
		metric.WithDescription("Total number of reminder dispatch runs by outcome"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return err
	}

	metrics.QuotaInsufficientTotal, err = meter.Int64Counter(
		"subscribe_quota_insufficient_total",
		metric.WithDescription("Total number of sends rejected for missing subscribe quota"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	return nil
}

func get() *OTelMetrics {
	return metrics
}

// RecordSend 记录一次投递结果
func RecordSend(ctx context.Context, ahead string, success bool) {
	m := get()
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("ahead", ahead))
	if success {
		m.RemindersSentTotal.Add(ctx, 1, attrs)
	} else {
		m.RemindersFailedTotal.Add(ctx, 1, attrs)
	}
}

// RecordEventMatched 记录事件被档位命中
func RecordEventMatched(ctx context.Context, ahead string) {
	m := get()
	if m == nil {
		return
	}
	m.EventsMatchedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("ahead", ahead)))
}

// RecordEventSkipped 记录事件被跳过及原因
func RecordEventSkipped(ctx context.Context, reason string) {
	m := get()
	if m == nil {
		return
	}
	m.EventsSkippedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordRun 记录一次调度运行
func RecordRun(ctx context.Context, outcome string, seconds float64) {
	m := get()
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.RunsTotal.Add(ctx, 1, attrs)
	m.RunDuration.Record(ctx, seconds, attrs)
}

// RecordQuotaInsufficient 记录缺少订阅额度导致的拒发
func RecordQuotaInsufficient(ctx context.Context) {
	m := get()
	if m == nil {
		return
	}
	m.QuotaInsufficientTotal.Add(ctx, 1)
}
