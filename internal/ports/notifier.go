package ports

import (
	"context"

	"github.com/bnema/petwatch/internal/domain"
)

type Notifier interface {
	Notify(ctx context.Context, alert domain.Alert) error
}
