package application

import (
	"context"
	"fmt"

	"github.com/bnema/petwatch/internal/domain"
)

// Report is the outcome of one cycle: the observation plus what happened
// to each alert the observation warranted.
type Report struct {
	Observation    domain.Observation
	Alerts         []AlertResult
	AlertsDisabled bool
}

type AlertResult struct {
	Alert      domain.Alert
	Delivered  bool
	Suppressed bool
	Error      string
}

func (m *Monitor) LatestObservation(ctx context.Context) (domain.Observation, error) {
	observation, err := m.journal.Latest(ctx)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("load latest observation: %w", err)
	}

	return observation, nil
}

func (m *Monitor) History(ctx context.Context, limit int) ([]domain.Observation, error) {
	observations, err := m.journal.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}

	return observations, nil
}

func (m *Monitor) AlertsEnabled() bool {
	return m.notifier != nil
}
