package ports

import (
	"context"

	"driftlens/domain/core"
	"driftlens/domain/drift"
)

// RunRepository persists completed analysis runs
type RunRepository interface {
	Save(ctx context.Context, run *drift.Run) error
	GetByID(ctx context.Context, id core.RunID) (*drift.Run, error)
	ListRecent(ctx context.Context, limit int) ([]*drift.Run, error)
}
