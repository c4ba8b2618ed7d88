package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/drapebook/drapebook/internal/booking"
	jobmetrics "github.com/drapebook/drapebook/internal/jobs"
	"github.com/drapebook/drapebook/internal/notify"
	"github.com/drapebook/drapebook/internal/reports"
)

// DashboardSource supplies today's notification sets.
type DashboardSource interface {
	Dashboard(ctx context.Context) (reports.Dashboard, error)
}

// SettingsSource supplies the business profile and phone rules.
type SettingsSource interface {
	GetSettings(ctx context.Context) (booking.Settings, error)
	Phones() booking.PhoneCanonicalizer
}

// DailyDigestJob sends the owner a morning summary of the dashboard.
type DailyDigestJob struct {
	Reports  DashboardSource
	Settings SettingsSource
	Sender   notify.Sender
	Locale   string
	Logger   *slog.Logger
	Metrics  *jobmetrics.Metrics
}

// NewDailyDigestJob wires the digest handler.
func NewDailyDigestJob(reportsSvc DashboardSource, settings SettingsSource, sender notify.Sender, locale string, logger *slog.Logger, metrics *jobmetrics.Metrics) *DailyDigestJob {
	return &DailyDigestJob{
		Reports:  reportsSvc,
		Settings: settings,
		Sender:   sender,
		Locale:   locale,
		Logger:   logger,
		Metrics:  metrics,
	}
}

// Handle processes TaskDailyDigest tasks.
func (j *DailyDigestJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reports == nil || j.Settings == nil || j.Sender == nil {
		return errors.New("daily digest: handler not configured")
	}
	var payload DailyDigestPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}
	if payload.Channel == "" {
		payload.Channel = notify.ChannelWhatsApp
	}

	tracker := jobMetrics(j.Metrics).Track(TaskDailyDigest)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()
	logger := jobLogger(j.Logger, TaskDailyDigest)

	settings, err := j.Settings.GetSettings(ctx)
	if err != nil {
		resultErr = fmt.Errorf("load settings: %w", err)
		return resultErr
	}
	composer := notify.NewComposer(settings.Profile, j.Settings.Phones(), j.Locale)
	number := composer.InternationalNumber(settings.Profile.Phone)
	if number == "" {
		logger.Info("owner phone not set, skipping digest")
		return nil
	}

	dashboard, err := j.Reports.Dashboard(ctx)
	if err != nil {
		resultErr = fmt.Errorf("build dashboard: %w", err)
		return resultErr
	}

	msg := notify.Message{To: "+" + number, Body: DigestText(settings.Profile, dashboard), Channel: payload.Channel}
	ref, err := j.Sender.Send(ctx, msg)
	jobMetrics(j.Metrics).AddMessages(string(payload.Channel), err == nil, 1)
	if err != nil {
		resultErr = err
		logger.Error("send digest", slog.Any("error", err))
		return resultErr
	}
	logger.Info("digest sent", slog.String("date", dashboard.Date), slog.Int("notifications", dashboard.TotalNotifications), slog.String("reference", ref))
	return resultErr
}

// DigestText renders the owner summary for one dashboard.
func DigestText(profile booking.BusinessProfile, d reports.Dashboard) string {
	var b strings.Builder
	name := strings.TrimSpace(profile.OwnerName)
	if name == "" {
		name = strings.TrimSpace(profile.BusinessName)
	}
	if name != "" {
		fmt.Fprintf(&b, "Good morning %s!\n", name)
	}
	fmt.Fprintf(&b, "Summary for %s\n", d.Date)
	fmt.Fprintf(&b, "Events today: %d\n", len(d.TodayEvents))
	for _, o := range d.TodayEvents {
		fmt.Fprintf(&b, "  - %s (%s, %d sarees)\n", o.CustomerName, o.ServiceType, o.SareeCount)
	}
	fmt.Fprintf(&b, "Events tomorrow: %d\n", len(d.TomorrowEvents))
	fmt.Fprintf(&b, "Pending payments: %d\n", len(d.PendingPayments))
	fmt.Fprintf(&b, "New enquiries: %d\n", len(d.NewEnquiries))
	fmt.Fprintf(&b, "Overdue collections: %d", len(d.OverdueCollections))
	return b.String()
}
