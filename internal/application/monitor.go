package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/petwatch/internal/domain"
	"github.com/bnema/petwatch/internal/ports"
)

const DefaultAlertCooldown = 30 * time.Minute

// Monitor runs observation cycles: capture a frame, have the analyzer
// describe it, journal the result, and dispatch alerts for danger or
// obstruction findings. A nil notifier disables alert dispatch.
type Monitor struct {
	camera   ports.SnapshotSource
	analyzer ports.Analyzer
	journal  ports.Journal
	notifier ports.Notifier
	clock    ports.Clock
	cooldown time.Duration
}

func NewMonitor(camera ports.SnapshotSource, analyzer ports.Analyzer, journal ports.Journal, notifier ports.Notifier, clock ports.Clock, cooldown time.Duration) *Monitor {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if cooldown <= 0 {
		cooldown = DefaultAlertCooldown
	}

	return &Monitor{
		camera:   camera,
		analyzer: analyzer,
		journal:  journal,
		notifier: notifier,
		clock:    clock,
		cooldown: cooldown,
	}
}

func (m *Monitor) RunCycle(ctx context.Context) (Report, error) {
	snapshot, err := m.camera.Capture(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("capture snapshot: %w", err)
	}

	observation, err := m.analyzer.Analyze(ctx, snapshot)
	if err != nil {
		return Report{}, fmt.Errorf("analyze snapshot: %w", err)
	}

	observation.ID = domain.NewObservationID()
	observation.CapturedAt = m.clock.Now().UTC()
	observation.SnapshotBytes = len(snapshot.Data)

	if err := m.journal.Append(ctx, observation); err != nil {
		return Report{}, fmt.Errorf("append observation to journal: %w", err)
	}

	report := Report{Observation: observation}
	m.dispatchAlerts(ctx, observation, &report)

	return report, nil
}

func (m *Monitor) dispatchAlerts(ctx context.Context, observation domain.Observation, report *Report) {
	candidates := alertCandidates(observation)
	if len(candidates) == 0 {
		return
	}

	if m.notifier == nil {
		report.AlertsDisabled = true
		return
	}

	for _, alert := range candidates {
		report.Alerts = append(report.Alerts, m.dispatchAlert(ctx, alert))
	}
}

func (m *Monitor) dispatchAlert(ctx context.Context, alert domain.Alert) AlertResult {
	result := AlertResult{Alert: alert}

	previous, err := m.journal.LastAlert(ctx, alert.Kind)
	if err != nil && !errors.Is(err, domain.ErrAlertNotFound) {
		result.Error = fmt.Sprintf("load last %s alert: %v", alert.Kind, err)
		return result
	}
	if err == nil && alert.SentAt.Sub(previous.SentAt) < m.cooldown {
		result.Suppressed = true
		return result
	}

	if err := m.notifier.Notify(ctx, alert); err != nil {
		result.Error = fmt.Sprintf("send %s alert: %v", alert.Kind, err)
		return result
	}
	result.Delivered = true

	// Record only delivered alerts so a failed send retries next cycle.
	if err := m.journal.RecordAlert(ctx, alert); err != nil {
		result.Error = fmt.Sprintf("record %s alert: %v", alert.Kind, err)
	}

	return result
}

func alertCandidates(observation domain.Observation) []domain.Alert {
	alerts := make([]domain.Alert, 0, 2)

	if observation.Danger {
		alerts = append(alerts, domain.Alert{
			Kind:    domain.AlertDanger,
			Message: alertMessage("Safety concern", observation.DangerDetails),
			SentAt:  observation.CapturedAt,
		})
	}
	if observation.Obstruction {
		alerts = append(alerts, domain.Alert{
			Kind:    domain.AlertObstruction,
			Message: alertMessage("Cleanliness or obstruction issue", observation.ObstructionDetails),
			SentAt:  observation.CapturedAt,
		})
	}

	return alerts
}

func alertMessage(label, details string) string {
	details = strings.TrimSpace(details)
	if details == "" {
		return label + " detected on the pet camera."
	}

	return fmt.Sprintf("%s: %s", label, details)
}
