package vendorrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/adapters/out/postgres/vendorrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/vendor"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type VendorRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *vendorrepo.GormVendorRepository
}

func (suite *VendorRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *VendorRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.repository = vendorrepo.NewGormVendorRepository(suite.pg.DB)
}

func (suite *VendorRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *VendorRepositoryIntegrationTestSuite) TestAdd_RoundTripsServiceAreas() {
	ctx := context.Background()
	userID, err := suite.pg.SeedUser(ctx, "chef", "Bisi", "Ade")
	suite.Require().NoError(err)

	v, err := vendor.NewVendor(kernel.NewUUID(), userID, vendor.Profile{
		BusinessName:   "Bisi Kitchen",
		Category:       "Restaurant",
		Address:        "3 Herbert Macaulay Way",
		Phone:          "+2348012345678",
		ServiceAreas:   []string{"Yaba", "Surulere", "Ebute Metta"},
		TimeZone:       "Africa/Lagos",
		OffersDelivery: true,
	}, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, v))

	loaded, err := suite.repository.Get(ctx, v.ID())
	suite.Require().NoError(err)
	suite.Equal(v.Profile(), loaded.Profile())
	suite.Equal(vendor.VerificationPending, loaded.Verification())
	suite.Equal("Africa/Lagos", loaded.Location().String())

	exists, err := suite.repository.ExistsForUser(ctx, userID)
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = suite.repository.ExistsForUser(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *VendorRepositoryIntegrationTestSuite) TestGet_Unknown() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestVendorRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(VendorRepositoryIntegrationTestSuite))
}
