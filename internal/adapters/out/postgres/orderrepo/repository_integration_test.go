package orderrepo_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/outboxrepo"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/vendor"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAggregateTracker records aggregates written by the repository.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	vendor     *vendor.Vendor
	customer   identity.Customer
	placedAt   time.Time
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.pg.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = orderrepo.NewGormOrderRepository(suite.pg.DB, suite.tracker)

	v, err := suite.pg.SeedVendor(ctx, "Mama Put", "Africa/Lagos")
	suite.Require().NoError(err)
	suite.vendor = v

	userID, err := suite.pg.SeedUser(ctx, "ada", "Ada", "Obi")
	suite.Require().NoError(err)
	suite.customer, err = identity.NewCustomer(userID)
	suite.Require().NoError(err)

	suite.placedAt = time.Now().UTC().Truncate(time.Microsecond).Add(-time.Hour)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder() *order.Order {
	ctx := context.Background()
	jollof, err := suite.pg.SeedMenuItem(ctx, suite.vendor.ID(), "Jollof Rice", 250000)
	suite.Require().NoError(err)
	suya, err := suite.pg.SeedMenuItem(ctx, suite.vendor.ID(), "Suya", 120000)
	suite.Require().NoError(err)

	first, err := order.NewLineItem(jollof.ID(), jollof.DishName(), jollof.Price(), 2)
	suite.Require().NoError(err)
	second, err := order.NewLineItem(suya.ID(), suya.DishName(), suya.Price(), 1)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), suite.customer.UserID(), suite.vendor.ID(), "",
		"12 Allen Avenue", []order.LineItem{first, second}, suite.placedAt)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) vendorPrincipal() identity.Vendor {
	p, err := identity.NewVendor(suite.vendor.UserID(), suite.vendor.ID())
	suite.Require().NoError(err)
	return p
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTripsItemsInOrder() {
	ctx := context.Background()
	o := suite.newOrder()

	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.GetForUpdate(ctx, o.ID(), suite.customer)
	suite.Require().NoError(err)
	suite.Equal(o.Snapshot().Items, loaded.Snapshot().Items)
	suite.Equal(int64(620000), loaded.TotalPrice().Minor())
	suite.Equal("Jollof Rice, Suya", loaded.Name())
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal(1, loaded.Version())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RejectsUnconstructedOrder() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.ErrorIs(err, order.ErrOrderIsNotConstructed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_ScopesByPrincipal() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	_, err := suite.repository.GetForUpdate(ctx, o.ID(), suite.vendorPrincipal())
	suite.NoError(err, "owning vendor")

	stranger, err := identity.NewCustomer(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = suite.repository.GetForUpdate(ctx, o.ID(), stranger)
	suite.ErrorIs(err, errs.ErrObjectNotFound, "another customer")

	otherVendor, err := identity.NewVendor(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = suite.repository.GetForUpdate(ctx, o.ID(), otherVendor)
	suite.ErrorIs(err, errs.ErrObjectNotFound, "another vendor")

	courier, err := identity.NewCourier(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = suite.repository.GetForUpdate(ctx, o.ID(), courier)
	suite.ErrorIs(err, errs.ErrObjectNotFound, "courier")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_UnknownOrder() {
	_, err := suite.repository.GetForUpdate(context.Background(), kernel.NewUUID(), suite.customer)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitionAndWritesOutbox() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.GetForUpdate(ctx, o.ID(), suite.vendorPrincipal())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.ConfirmPayment(suite.placedAt.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.GetForUpdate(ctx, o.ID(), suite.customer)
	suite.Require().NoError(err)
	suite.Equal(order.PaymentConfirmed, reloaded.Status())
	suite.True(reloaded.PaymentConfirmed())
	suite.Equal(2, reloaded.Version())

	messages, err := outboxrepo.NewGormOutboxRepository(suite.pg.DB).ClaimBatch(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(messages, 1)
	suite.Equal(order.EventStatusChanged, messages[0].EventType)
	suite.Equal(suite.vendor.ID().String(), messages[0].PartitionKey)

	var event order.StatusChanged
	suite.Require().NoError(json.Unmarshal(messages[0].Payload, &event))
	suite.Equal("pending", event.From)
	suite.Equal("payment_confirmed", event.To)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersionConflicts() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.GetForUpdate(ctx, o.ID(), suite.vendorPrincipal())
	suite.Require().NoError(err)
	second, err := suite.repository.GetForUpdate(ctx, o.ID(), suite.vendorPrincipal())
	suite.Require().NoError(err)

	suite.Require().NoError(first.ConfirmPayment(suite.placedAt.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.ConfirmPayment(suite.placedAt.Add(2 * time.Minute)))
	err = suite.repository.Update(ctx, second)

	suite.ErrorIs(err, errs.ErrConflict)
	var count int64
	suite.Require().NoError(suite.pg.DB.Table("outbox_messages").Count(&count).Error)
	suite.Equal(int64(1), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
