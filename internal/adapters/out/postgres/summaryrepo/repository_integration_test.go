package summaryrepo_test

import (
	"context"
	"testing"
	"time"

	"procurement/internal/adapters/out/postgres"
	"procurement/internal/adapters/out/postgres/summaryrepo"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/summary"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

type SummaryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *tcpostgres.PostgresContainer
	db         *gorm.DB
	repository *summaryrepo.GormSummaryRepository
}

func (suite *SummaryRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgres.Open(connStr)
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres.Migrate(db))
	suite.repository = summaryrepo.NewGormSummaryRepository(db)
}

func (suite *SummaryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_summaries").Error)
}

func (suite *SummaryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *SummaryRepositoryIntegrationTestSuite) summaryOf(dept kernel.UUID, day kernel.Day, total, approved, rejected int) summary.Summary {
	s, err := summary.NewSummary(summary.Key{DepartmentID: dept, Day: day}, total, approved, rejected)
	suite.Require().NoError(err)
	return s
}

func (suite *SummaryRepositoryIntegrationTestSuite) TestUpsert_OverwritesExistingKey() {
	ctx := context.Background()
	dept := kernel.NewUUID()
	day := kernel.NewDay(2025, time.June, 3)

	suite.Require().NoError(suite.repository.Upsert(ctx, suite.summaryOf(dept, day, 5, 1, 1)))
	suite.Require().NoError(suite.repository.Upsert(ctx, suite.summaryOf(dept, day, 6, 4, 2)))

	rows, err := suite.repository.GetRange(ctx, day, day)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(day, rows[0].Key().Day)
	suite.Equal(dept, rows[0].Key().DepartmentID)
	suite.Equal(6, rows[0].TotalOrders())
	suite.Equal(4, rows[0].ApprovedCount())
	suite.Equal(2, rows[0].RejectedCount())
	suite.Equal(0, rows[0].PendingCount())

	var stored summaryrepo.SummaryDTO
	suite.Require().NoError(suite.db.First(&stored).Error)
	suite.Equal(0, stored.PendingCount)
}

func (suite *SummaryRepositoryIntegrationTestSuite) TestUpsert_SameInputTwiceIsIdempotent() {
	ctx := context.Background()
	s := suite.summaryOf(kernel.NewUUID(), kernel.NewDay(2025, time.June, 3), 3, 1, 0)

	suite.Require().NoError(suite.repository.Upsert(ctx, s))
	suite.Require().NoError(suite.repository.Upsert(ctx, s))

	var count int64
	suite.Require().NoError(suite.db.Model(&summaryrepo.SummaryDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *SummaryRepositoryIntegrationTestSuite) storedRow() summaryrepo.SummaryDTO {
	var row summaryrepo.SummaryDTO
	suite.Require().NoError(suite.db.First(&row).Error)
	return row
}

func (suite *SummaryRepositoryIntegrationTestSuite) TestUpsert_UnchangedCountsLeaveRowUntouched() {
	ctx := context.Background()
	s := suite.summaryOf(kernel.NewUUID(), kernel.NewDay(2025, time.June, 3), 3, 1, 0)

	suite.Require().NoError(suite.repository.Upsert(ctx, s))
	first := suite.storedRow()

	time.Sleep(10 * time.Millisecond)
	suite.Require().NoError(suite.repository.Upsert(ctx, s))
	second := suite.storedRow()

	suite.Equal(first, second)
	suite.True(first.UpdatedAt.Equal(second.UpdatedAt))
}

func (suite *SummaryRepositoryIntegrationTestSuite) TestUpsert_ChangedCountsRefreshUpdatedAt() {
	ctx := context.Background()
	dept := kernel.NewUUID()
	day := kernel.NewDay(2025, time.June, 3)

	suite.Require().NoError(suite.repository.Upsert(ctx, suite.summaryOf(dept, day, 3, 1, 0)))
	first := suite.storedRow()

	time.Sleep(10 * time.Millisecond)
	suite.Require().NoError(suite.repository.Upsert(ctx, suite.summaryOf(dept, day, 3, 2, 0)))
	second := suite.storedRow()

	suite.Equal(first.ID, second.ID)
	suite.Equal(2, second.ApprovedCount)
	suite.Equal(1, second.PendingCount)
	suite.True(second.UpdatedAt.After(first.UpdatedAt))
}

func (suite *SummaryRepositoryIntegrationTestSuite) TestGetRange_InclusiveBounds() {
	ctx := context.Background()
	dept := kernel.NewUUID()
	first := kernel.NewDay(2025, time.June, 1)

	for i, day := range kernel.DaysInRange(first, kernel.NewDay(2025, time.June, 5)) {
		suite.Require().NoError(suite.repository.Upsert(ctx, suite.summaryOf(dept, day, i+1, 0, 0)))
	}

	rows, err := suite.repository.GetRange(ctx, kernel.NewDay(2025, time.June, 2), kernel.NewDay(2025, time.June, 4))

	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)
	suite.Equal(kernel.NewDay(2025, time.June, 2), rows[0].Key().Day)
	suite.Equal(kernel.NewDay(2025, time.June, 4), rows[2].Key().Day)
	suite.Equal(4, rows[2].TotalOrders())
}

func TestSummaryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(SummaryRepositoryIntegrationTestSuite))
}
