package itemrepo_test

import (
	"context"
	"testing"
	"time"

	"warehouse/internal/adapters/out/postgres/itemrepo"
	"warehouse/internal/core/domain/model/item"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// ItemRepositoryIntegrationTestSuite provides integration tests for
// ItemRepository using PostgreSQL containers.
type ItemRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *itemrepo.GormItemRepository
	tracker    *MockAggregateTracker
}

func (suite *ItemRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&itemrepo.ItemDTO{}))
}

func (suite *ItemRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = itemrepo.NewGormItemRepository(suite.db, suite.tracker)
}

func (suite *ItemRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ItemRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsItem() {
	ctx := context.Background()

	testItem := suite.createTestItem("Tamiya RC kit", 12800)
	suite.tracker.On("TrackAggregate", testItem.ID(), testItem).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testItem))

	retrieved, err := suite.repository.Get(ctx, testItem.ID())
	suite.Require().NoError(err)

	suite.Equal(testItem.ID(), retrieved.ID())
	suite.Require().NotNil(retrieved.PurchaseOrderID())
	suite.Equal(*testItem.PurchaseOrderID(), *retrieved.PurchaseOrderID())
	suite.Equal("Tamiya RC kit", retrieved.Name())
	suite.Equal(int64(12800), retrieved.PriceYen())
	suite.Equal(1, retrieved.Quantity())
	suite.Equal("https://shop.example.com/item/1", retrieved.ProductURL())
	suite.False(retrieved.IsAggregate())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsAggregateItem() {
	ctx := context.Background()

	first := suite.createTestItem("Figure A", 3000)
	second := suite.createTestItem("Figure B", 4500)
	aggregate, err := item.NewAggregateItem(kernel.NewUUID(), []*item.Item{first, second})
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Nil(retrieved.PurchaseOrderID())
	suite.Equal("Figure A + Figure B", retrieved.Name())
	suite.Equal(int64(7500), retrieved.PriceYen())
	suite.True(retrieved.IsAggregate())
	suite.Require().Len(retrieved.ComponentItemIDs(), 2)
	suite.Equal(first.ID(), retrieved.ComponentItemIDs()[0])
	suite.Equal(second.ID(), retrieved.ComponentItemIDs()[1])

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestGetMany_MissingIdentifier_ReturnsNotFoundError() {
	ctx := context.Background()

	existing := suite.createTestItem("Figure", 3000)
	suite.tracker.On("TrackAggregate", existing.ID(), existing).Once()
	suite.Require().NoError(suite.repository.Add(ctx, existing))

	items, err := suite.repository.GetMany(ctx, []kernel.UUID{existing.ID(), kernel.NewUUID()})

	suite.Nil(items)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestDelete_RemovesItem() {
	ctx := context.Background()

	testItem := suite.createTestItem("Figure", 3000)
	suite.tracker.On("TrackAggregate", testItem.ID(), testItem).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testItem))

	suite.Require().NoError(suite.repository.Delete(ctx, testItem.ID()))

	_, err := suite.repository.Get(ctx, testItem.ID())
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestDelete_NonExistentItem_ReturnsNotFoundError() {
	ctx := context.Background()

	err := suite.repository.Delete(ctx, kernel.NewUUID())
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

// createTestItem creates a test item with default order and URL values.
func (suite *ItemRepositoryIntegrationTestSuite) createTestItem(name string, priceYen int64) *item.Item {
	testItem, err := item.NewItem(
		kernel.NewUUID(),
		kernel.NewUUID(),
		name,
		priceYen,
		1,
		"https://shop.example.com/item/1",
	)
	suite.Require().NoError(err)
	return testItem
}

func TestItemRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ItemRepositoryIntegrationTestSuite))
}
