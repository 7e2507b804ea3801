package summaryrepo

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/summary"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSummaryRepository implements ports.SummaryRepository using GORM.
type GormSummaryRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormSummaryRepository stamps updated_at with time.Now.
func NewGormSummaryRepository(db *gorm.DB) *GormSummaryRepository {
	return &GormSummaryRepository{db: db, now: time.Now}
}

// countsChanged limits the conflict update to rows whose counts differ, so
// writing the same rollup again leaves the row (updated_at included) untouched.
const countsChanged = `(order_summaries.total_orders, order_summaries.approved_count,
	order_summaries.rejected_count, order_summaries.pending_count)
	IS DISTINCT FROM
	(excluded.total_orders, excluded.approved_count, excluded.rejected_count, excluded.pending_count)`

// Upsert writes the row of s.Key(), replacing the counts of an existing row
// when they differ. Re-running an aggregation over unchanged orders is a no-op.
func (r *GormSummaryRepository) Upsert(ctx context.Context, s summary.Summary) error {
	dto := fromDomain(s, r.now().UTC())
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "department_id"}, {Name: "summary_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_orders",
			"approved_count",
			"rejected_count",
			"pending_count",
			"updated_at",
		}),
		Where: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: countsChanged}}},
	}).Create(&dto).Error
}

// GetRange returns rows with from <= day <= to, sorted by day then department.
func (r *GormSummaryRepository) GetRange(ctx context.Context, from, to kernel.Day) ([]summary.Summary, error) {
	var dtos []SummaryDTO
	if err := r.db.WithContext(ctx).
		Where("summary_date BETWEEN ? AND ?", from.String(), to.String()).
		Order("summary_date, department_id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	summaries := make([]summary.Summary, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
