package report

import (
	"testing"
	"time"

	"github.com/bnema/petwatch/internal/application"
	"github.com/bnema/petwatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderQuietReport(t *testing.T) {
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	output, err := Render(application.Report{
		Observation: domain.Observation{
			ID:         "obs-1",
			CapturedAt: now.Add(-5 * time.Minute),
			Model:      "gpt-4o",
			PetPresent: true,
			Location:   "on the couch",
			Activity:   "sleeping",
			Assessment: "All quiet, nothing out of place.",
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "Pet Camera Report")
	assert.Contains(t, output, "pet visible — on the couch")
	assert.Contains(t, output, "activity: sleeping")
	assert.Contains(t, output, "no concerns")
	assert.Contains(t, output, "All quiet, nothing out of place.")
	assert.Contains(t, output, "5 min ago")
	assert.Contains(t, output, "gpt-4o")
	assert.NotContains(t, output, "DANGER")
}

func TestRenderReportWithFindingsAndAlerts(t *testing.T) {
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	output, err := Render(application.Report{
		Observation: domain.Observation{
			CapturedAt:         now,
			PetPresent:         true,
			Danger:             true,
			DangerDetails:      "chocolate bar within reach",
			Obstruction:        true,
			ObstructionDetails: "spilled water bowl",
		},
		Alerts: []application.AlertResult{
			{Alert: domain.Alert{Kind: domain.AlertDanger}, Delivered: true},
			{Alert: domain.Alert{Kind: domain.AlertObstruction}, Suppressed: true},
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "DANGER: chocolate bar within reach")
	assert.Contains(t, output, "OBSTRUCTION: spilled water bowl")
	assert.Contains(t, output, "danger alert:")
	assert.Contains(t, output, "sent")
	assert.Contains(t, output, "obstruction alert:")
	assert.Contains(t, output, "suppressed (cooldown)")
}

func TestRenderReportAlertsDisabled(t *testing.T) {
	output, err := Render(application.Report{
		Observation:    domain.Observation{Danger: true},
		AlertsDisabled: true,
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "alerts disabled")
	assert.Contains(t, output, "PUSHOVER_TOKEN")
}

func TestRenderReportPetNotVisible(t *testing.T) {
	output, err := Render(application.Report{
		Observation: domain.Observation{PetPresent: false},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "pet not visible")
}

func TestRenderHistory(t *testing.T) {
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	output, err := RenderHistory([]domain.Observation{
		{
			CapturedAt: now.Add(-time.Hour),
			PetPresent: true,
			Location:   "by the door",
			Danger:     true,
		},
		{
			CapturedAt: now.Add(-2 * time.Hour),
			PetPresent: false,
			Assessment: "Room is empty.",
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "Pet Camera History")
	assert.Contains(t, output, "observations: 2")
	assert.Contains(t, output, "pet visible — by the door")
	assert.Contains(t, output, "pet not visible")
	assert.Contains(t, output, "Room is empty.")
}

func TestRenderHistoryEmpty(t *testing.T) {
	output, err := RenderHistory(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "observations: 0")
	assert.Contains(t, output, "No observations recorded yet.")
}
