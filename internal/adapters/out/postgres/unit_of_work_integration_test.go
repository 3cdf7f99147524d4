package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/suite"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(pg.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(ctx context.Context) (*order.Order, identity.Customer) {
	v, err := suite.pg.SeedVendor(ctx, "Mama Put", "Africa/Lagos")
	suite.Require().NoError(err)
	item, err := suite.pg.SeedMenuItem(ctx, v.ID(), "Amala", 150000)
	suite.Require().NoError(err)
	userID, err := suite.pg.SeedUser(ctx, "tunde", "Tunde", "Bakare")
	suite.Require().NoError(err)

	line, err := order.NewLineItem(item.ID(), item.DishName(), item.Price(), 1)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), userID, v.ID(), "", "5 Broad Street",
		[]order.LineItem{line}, time.Now().Add(-time.Minute))
	suite.Require().NoError(err)

	customer, err := identity.NewCustomer(userID)
	suite.Require().NoError(err)
	return o, customer
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesSeparateInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow2.PaymentRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "nested Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Error(uow.Commit(ctx), "commit without transaction")
	suite.Error(uow.Rollback(ctx), "rollback without transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrder() {
	ctx := context.Background()
	o, customer := suite.newOrder(ctx)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	check := suite.factory.Create()
	suite.Require().NoError(check.Begin(ctx))
	defer func() { _ = check.Rollback(ctx) }()
	loaded, err := check.OrderRepository().GetForUpdate(ctx, o.ID(), customer)
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(o))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrder() {
	ctx := context.Background()
	o, _ := suite.newOrder(ctx)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	var count int64
	suite.Require().NoError(suite.pg.DB.Table("orders").Count(&count).Error)
	suite.Zero(count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTrackAggregate() {
	ctx := context.Background()
	o, _ := suite.newOrder(ctx)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	gormUoW, ok := uow.(*postgres_adapter.GormUnitOfWork)
	suite.Require().True(ok)
	suite.Equal(1, gormUoW.TrackedCount())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
