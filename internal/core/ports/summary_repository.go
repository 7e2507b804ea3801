package ports

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/summary"
)

// SummaryRepository persists order rollups keyed by (department, day).
type SummaryRepository interface {
	// Upsert inserts the row of s.Key() or overwrites every count of the existing one.
	Upsert(ctx context.Context, s summary.Summary) error

	// GetRange returns the stored rows with from <= day <= to.
	GetRange(ctx context.Context, from, to kernel.Day) ([]summary.Summary, error)
}
