package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/petwatch/internal/application"
	"github.com/bnema/petwatch/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time
}

func renderReportView(report application.Report, opts RenderOptions, s styles) string {
	observation := report.Observation

	lines := []string{
		s.title.Render("Pet Camera Report"),
		s.header.Render(headerLine(observation, opts)),
		presenceLine(observation, s),
	}

	if activity := strings.TrimSpace(observation.Activity); activity != "" {
		lines = append(lines, s.detail.Render("activity: "+activity))
	}

	lines = append(lines, findingLines(observation, s)...)

	if assessment := strings.TrimSpace(observation.Assessment); assessment != "" {
		lines = append(lines, s.section.Render(s.detail.Render(assessment)))
	}

	if alertSection := renderAlertSection(report, s); alertSection != "" {
		lines = append(lines, s.section.Render(alertSection))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderHistoryView(observations []domain.Observation, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Pet Camera History"),
		s.header.Render(fmt.Sprintf("observations: %d", len(observations))),
	}

	if len(observations) == 0 {
		lines = append(lines, s.empty.Render("No observations recorded yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, observation := range observations {
		lines = append(lines, s.section.Render(renderHistoryEntry(observation, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderHistoryEntry(observation domain.Observation, opts RenderOptions, s styles) string {
	parts := []string{
		s.presence.Render(historyTitle(observation, opts)),
		presenceLine(observation, s),
	}
	parts = append(parts, findingLines(observation, s)...)

	if assessment := strings.TrimSpace(observation.Assessment); assessment != "" {
		parts = append(parts, s.detail.Render(truncate(assessment, 96)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func headerLine(observation domain.Observation, opts RenderOptions) string {
	captured := formatCaptured(observation.CapturedAt, opts.Now)
	if observation.Model == "" {
		return "captured " + captured
	}

	return fmt.Sprintf("captured %s · model %s", captured, observation.Model)
}

func historyTitle(observation domain.Observation, opts RenderOptions) string {
	return formatCaptured(observation.CapturedAt, opts.Now)
}

func presenceLine(observation domain.Observation, s styles) string {
	if !observation.PetPresent {
		return s.empty.Render("pet not visible")
	}

	location := strings.TrimSpace(observation.Location)
	if location == "" {
		return s.presence.Render("pet visible")
	}

	return s.presence.Render("pet visible — " + location)
}

func findingLines(observation domain.Observation, s styles) []string {
	lines := make([]string, 0, 2)

	if observation.Danger {
		lines = append(lines, s.warning.Render("DANGER: "+detailOrDefault(observation.DangerDetails, "safety concern reported")))
	}
	if observation.Obstruction {
		lines = append(lines, s.notice.Render("OBSTRUCTION: "+detailOrDefault(observation.ObstructionDetails, "cleanliness issue reported")))
	}
	if len(lines) == 0 {
		lines = append(lines, s.ok.Render("no concerns"))
	}

	return lines
}

func renderAlertSection(report application.Report, s styles) string {
	if report.AlertsDisabled {
		return s.empty.Render("alerts disabled (set PUSHOVER_TOKEN and PUSHOVER_USER)")
	}
	if len(report.Alerts) == 0 {
		return ""
	}

	lines := make([]string, 0, len(report.Alerts))
	for _, result := range report.Alerts {
		lines = append(lines, alertLine(result, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func alertLine(result application.AlertResult, s styles) string {
	label := s.alertMeta.Render(fmt.Sprintf("%s alert:", result.Alert.Kind))

	switch {
	case result.Delivered:
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.ok.Render("sent"))
	case result.Suppressed:
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.empty.Render("suppressed (cooldown)"))
	case result.Error != "":
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.warning.Render(result.Error))
	default:
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.empty.Render("skipped"))
	}
}

func formatCaptured(capturedAt, now time.Time) string {
	if capturedAt.IsZero() {
		return "unknown time"
	}

	stamp := capturedAt.UTC().Format("2006-01-02 15:04 MST")
	if now.IsZero() {
		return stamp
	}

	return fmt.Sprintf("%s (%s ago)", stamp, formatAge(now.Sub(capturedAt)))
}

func formatAge(age time.Duration) string {
	switch {
	case age < time.Minute:
		return "moments"
	case age < time.Hour:
		return fmt.Sprintf("%d min", int(age.Minutes()))
	case age < 48*time.Hour:
		return fmt.Sprintf("%.0f hours", age.Hours())
	default:
		return fmt.Sprintf("%d days", int(age.Hours()/24))
	}
}

func detailOrDefault(details, fallback string) string {
	details = strings.TrimSpace(details)
	if details == "" {
		return fallback
	}

	return details
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}

	return strings.TrimSpace(value[:limit]) + "…"
}
