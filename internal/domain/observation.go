package domain

import (
	"time"

	"github.com/google/uuid"
)

type ObservationID string

func NewObservationID() ObservationID {
	return ObservationID(uuid.NewString())
}

// Snapshot is a single frame fetched from the camera endpoint.
type Snapshot struct {
	Data        []byte
	ContentType string
}

// Observation is the structured result of one analysis cycle. Frames are
// not persisted; only the byte size of the analyzed snapshot is kept.
type Observation struct {
	ID                 ObservationID
	CapturedAt         time.Time
	Model              string
	SnapshotBytes      int
	PetPresent         bool
	Location           string
	Activity           string
	Danger             bool
	DangerDetails      string
	Obstruction        bool
	ObstructionDetails string
	Assessment         string
}
