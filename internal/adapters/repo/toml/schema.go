package toml

import (
	"fmt"
	"time"

	"github.com/bnema/petwatch/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version      int                 `toml:"version"`
	Observations []observationSchema `toml:"observations"`
	LastAlerts   []alertSchema       `toml:"last_alerts,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported journal schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type observationSchema struct {
	ID                 string `toml:"id"`
	CapturedAt         string `toml:"captured_at"`
	Model              string `toml:"model,omitempty"`
	SnapshotBytes      int    `toml:"snapshot_bytes,omitempty"`
	PetPresent         bool   `toml:"pet_present"`
	Location           string `toml:"location,omitempty"`
	Activity           string `toml:"activity,omitempty"`
	Danger             bool   `toml:"danger"`
	DangerDetails      string `toml:"danger_details,omitempty"`
	Obstruction        bool   `toml:"obstruction"`
	ObstructionDetails string `toml:"obstruction_details,omitempty"`
	Assessment         string `toml:"assessment,omitempty"`
}

type alertSchema struct {
	Kind    string `toml:"kind"`
	Message string `toml:"message"`
	SentAt  string `toml:"sent_at"`
}

func toSchema(observation domain.Observation) observationSchema {
	return observationSchema{
		ID:                 string(observation.ID),
		CapturedAt:         formatTime(observation.CapturedAt),
		Model:              observation.Model,
		SnapshotBytes:      observation.SnapshotBytes,
		PetPresent:         observation.PetPresent,
		Location:           observation.Location,
		Activity:           observation.Activity,
		Danger:             observation.Danger,
		DangerDetails:      observation.DangerDetails,
		Obstruction:        observation.Obstruction,
		ObstructionDetails: observation.ObstructionDetails,
		Assessment:         observation.Assessment,
	}
}

func fromSchema(entry observationSchema) domain.Observation {
	return domain.Observation{
		ID:                 domain.ObservationID(entry.ID),
		CapturedAt:         parseTime(entry.CapturedAt),
		Model:              entry.Model,
		SnapshotBytes:      entry.SnapshotBytes,
		PetPresent:         entry.PetPresent,
		Location:           entry.Location,
		Activity:           entry.Activity,
		Danger:             entry.Danger,
		DangerDetails:      entry.DangerDetails,
		Obstruction:        entry.Obstruction,
		ObstructionDetails: entry.ObstructionDetails,
		Assessment:         entry.Assessment,
	}
}

func toAlertSchema(alert domain.Alert) alertSchema {
	return alertSchema{
		Kind:    string(alert.Kind),
		Message: alert.Message,
		SentAt:  formatTime(alert.SentAt),
	}
}

func fromAlertSchema(entry alertSchema) domain.Alert {
	return domain.Alert{
		Kind:    domain.AlertKind(entry.Kind),
		Message: entry.Message,
		SentAt:  parseTime(entry.SentAt),
	}
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}

	return parsed.UTC()
}
