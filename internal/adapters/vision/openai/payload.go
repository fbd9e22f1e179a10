package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bnema/petwatch/internal/domain"
)

// observationPayload is the JSON contract requested from the model. The
// model does not honor field types reliably: booleans arrive as strings,
// concern fields arrive as null, false, a sentence, or an array of them.
type observationPayload struct {
	PetPresent        flexBool    `json:"pet_present"`
	Location          string      `json:"location"`
	Activity          string      `json:"activity"`
	SafetyConcerns    flexFinding `json:"safety_concerns"`
	CleanlinessIssues flexFinding `json:"cleanliness_issues"`
	OverallAssessment string      `json:"overall_assessment"`
}

func decodeObservationPayload(content string) (observationPayload, error) {
	var payload observationPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return observationPayload{}, fmt.Errorf("decode analysis payload: %w", err)
	}

	return payload, nil
}

func (p observationPayload) toObservation() domain.Observation {
	return domain.Observation{
		PetPresent:         bool(p.PetPresent),
		Location:           strings.TrimSpace(p.Location),
		Activity:           strings.TrimSpace(p.Activity),
		Danger:             p.SafetyConcerns.Present,
		DangerDetails:      p.SafetyConcerns.Details,
		Obstruction:        p.CleanlinessIssues.Present,
		ObstructionDetails: p.CleanlinessIssues.Details,
		Assessment:         strings.TrimSpace(p.OverallAssessment),
	}
}

type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var asBool bool
	if err := json.Unmarshal(data, &asBool); err == nil {
		*b = flexBool(asBool)
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		switch strings.ToLower(strings.TrimSpace(asString)) {
		case "true", "yes":
			*b = true
		default:
			*b = false
		}
		return nil
	}

	*b = false
	return nil
}

// flexFinding normalizes a concern field to present/details.
type flexFinding struct {
	Present bool
	Details string
}

func (f *flexFinding) UnmarshalJSON(data []byte) error {
	f.Present = false
	f.Details = ""

	var asBool bool
	if err := json.Unmarshal(data, &asBool); err == nil {
		f.Present = asBool
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		f.setDetails(asString)
		return nil
	}

	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		f.setDetails(strings.Join(asList, "; "))
		return nil
	}

	// null or an unexpected shape reads as "no finding".
	return nil
}

func (f *flexFinding) setDetails(details string) {
	details = strings.TrimSpace(details)
	if details == "" || isNegativeFinding(details) {
		return
	}

	f.Present = true
	f.Details = details
}

func isNegativeFinding(details string) bool {
	switch strings.ToLower(strings.TrimRight(details, ".")) {
	case "none", "no", "n/a", "nothing", "none observed", "none detected", "no issues", "no concerns":
		return true
	default:
		return false
	}
}
