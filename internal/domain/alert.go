package domain

import "time"

type AlertKind string

const (
	AlertDanger      AlertKind = "danger"
	AlertObstruction AlertKind = "obstruction"
)

func (k AlertKind) Valid() bool {
	switch k {
	case AlertDanger, AlertObstruction:
		return true
	default:
		return false
	}
}

type Alert struct {
	Kind    AlertKind
	Message string
	SentAt  time.Time
}
