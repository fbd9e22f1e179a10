package ports

import (
	"context"

	"github.com/bnema/petwatch/internal/domain"
)

type Journal interface {
	Append(ctx context.Context, observation domain.Observation) error
	Latest(ctx context.Context) (domain.Observation, error)
	List(ctx context.Context, limit int) ([]domain.Observation, error)
	LastAlert(ctx context.Context, kind domain.AlertKind) (domain.Alert, error)
	RecordAlert(ctx context.Context, alert domain.Alert) error
}
