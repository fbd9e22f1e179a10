package ports

import (
	"context"

	"github.com/bnema/petwatch/internal/domain"
)

type SnapshotSource interface {
	Capture(ctx context.Context) (domain.Snapshot, error)
}
