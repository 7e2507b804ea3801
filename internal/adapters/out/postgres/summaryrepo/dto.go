// Package summaryrepo persists the per-department daily order rollups.
package summaryrepo

import (
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/summary"

	"github.com/google/uuid"
)

// SummaryDTO is a row of order_summaries, unique per (department_id, summary_date).
type SummaryDTO struct {
	ID            uint      `gorm:"primaryKey"`
	DepartmentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_summaries_department_date"`
	SummaryDate   time.Time `gorm:"type:date;not null;uniqueIndex:idx_order_summaries_department_date"`
	TotalOrders   int       `gorm:"not null"`
	ApprovedCount int       `gorm:"not null"`
	RejectedCount int       `gorm:"not null"`
	PendingCount  int       `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (SummaryDTO) TableName() string {
	return "order_summaries"
}

func fromDomain(s summary.Summary, now time.Time) SummaryDTO {
	return SummaryDTO{
		DepartmentID:  s.Key().DepartmentID.Bytes(),
		SummaryDate:   s.Key().Day.Start(time.UTC),
		TotalOrders:   s.TotalOrders(),
		ApprovedCount: s.ApprovedCount(),
		RejectedCount: s.RejectedCount(),
		PendingCount:  s.PendingCount(),
		UpdatedAt:     now,
	}
}

func toDomain(dto SummaryDTO) (summary.Summary, error) {
	departmentID, err := kernel.UUIDOf(dto.DepartmentID)
	if err != nil {
		return summary.Summary{}, err
	}
	key := summary.Key{
		DepartmentID: departmentID,
		Day:          kernel.DayOf(dto.SummaryDate, time.UTC),
	}
	return summary.NewSummary(key, dto.TotalOrders, dto.ApprovedCount, dto.RejectedCount)
}
