package ports

import (
	"context"

	"github.com/bnema/petwatch/internal/domain"
)

type Analyzer interface {
	Analyze(ctx context.Context, snapshot domain.Snapshot) (domain.Observation, error)
}
