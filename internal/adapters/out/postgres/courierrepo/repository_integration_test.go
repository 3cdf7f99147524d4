package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/courierrepo"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *courierrepo.GormCourierRepository
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.repository = courierrepo.NewGormCourierRepository(suite.pg.DB)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) courier(userID kernel.UUID, phone string) *courier.Courier {
	c, err := courier.NewCourier(kernel.NewUUID(), userID, courier.Profile{
		Phone:                  phone,
		ServiceAreas:           []string{"Yaba", "Surulere"},
		DeliveryRadius:         "5km",
		OpeningHours:           "08:00",
		ClosingHours:           "20:00",
		HasBike:                true,
		VehicleType:            courier.VehicleBike,
		VerificationPreference: courier.DocumentDriversLicense,
		AgreedToTerms:          true,
	}, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return c
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAdd_RoundTripsProfile() {
	ctx := context.Background()
	userID, err := suite.pg.SeedUser(ctx, "rider", "Tunde", "Bello")
	suite.Require().NoError(err)
	c := suite.courier(userID, "+2348098765432")

	suite.Require().NoError(suite.repository.Add(ctx, c))

	loaded, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal(c.Profile(), loaded.Profile())
	suite.Equal(courier.VerificationPending, loaded.Verification())
	suite.True(c.CreatedAt().Equal(loaded.CreatedAt()))

	exists, err := suite.repository.ExistsForUser(ctx, userID)
	suite.Require().NoError(err)
	suite.True(exists)

	taken, err := suite.repository.PhoneTaken(ctx, "+2348098765432")
	suite.Require().NoError(err)
	suite.True(taken)

	taken, err = suite.repository.PhoneTaken(ctx, "+2348000000000")
	suite.Require().NoError(err)
	suite.False(taken)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAdd_OneProfilePerUser() {
	ctx := context.Background()
	userID, err := suite.pg.SeedUser(ctx, "rider", "Tunde", "Bello")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, suite.courier(userID, "+2348098765432")))

	err = suite.repository.Add(ctx, suite.courier(userID, "+2348011111111"))

	suite.Error(err)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_Unknown() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
