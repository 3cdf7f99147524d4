package http_test

import (
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"marketplace/api"
	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/paystack"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	jwtSecret     = "test-secret"
	paystackKey   = "sk_test_secret"
	webhookTarget = httpin.BasePath + "/paystack/webhook"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

type recordingFeed struct {
	vendorIDs []string
}

func (f *recordingFeed) Serve(w nethttp.ResponseWriter, _ *nethttp.Request, vendorID string) error {
	f.vendorIDs = append(f.vendorIDs, vendorID)
	w.WriteHeader(nethttp.StatusSwitchingProtocols)
	return nil
}

type ServerTestSuite struct {
	suite.Suite
	auth   *httpin.Authenticator
	feed   *recordingFeed
	router *echo.Echo
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	gateway := paystack.NewClient(paystack.DefaultBaseURL, paystackKey, nethttp.DefaultClient, logger)

	handlers := httpin.Handlers{
		ApplyOrderAction: commands.NewApplyOrderActionCommandHandler(nil, order.DefaultTransitionTable(), fixedClock(now)),
		PaymentWebhook:   commands.NewHandlePaymentWebhookCommandHandler(nil, gateway, fixedClock(now)),
	}

	doc, err := api.Load(s.T().Context())
	s.Require().NoError(err)

	s.auth = httpin.NewAuthenticator(jwtSecret)
	s.feed = &recordingFeed{}
	s.router, err = httpin.NewRouter(httpin.NewServer(handlers, s.feed, fixedClock(now), logger), s.auth, doc, logger)
	s.Require().NoError(err)
}

func (s *ServerTestSuite) token(kind identity.Kind, userID, profileID kernel.UUID) string {
	claims := httpin.Claims{
		Kind: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	if kind != identity.KindCustomer {
		claims.ProfileID = profileID.String()
	}

	token, err := s.auth.Sign(claims)
	s.Require().NoError(err)
	return token
}

func (s *ServerTestSuite) do(method, target, token, body string) *httptest.ResponseRecorder {
	return s.send(method, target, token, body, nil)
}

// handshake sends a websocket upgrade request without an Authorization header.
func (s *ServerTestSuite) handshake(target string) *httptest.ResponseRecorder {
	return s.send(nethttp.MethodGet, target, "", "", nethttp.Header{
		"Connection":            {"Upgrade"},
		"Upgrade":               {"websocket"},
		"Sec-Websocket-Version": {"13"},
		"Sec-Websocket-Key":     {"dGhlIHNhbXBsZSBub25jZQ=="},
	})
}

func (s *ServerTestSuite) send(method, target, token, body string, header nethttp.Header) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	for key, values := range header {
		req.Header[key] = values
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) TestHealthNeedsNoToken() {
	rec := s.do(nethttp.MethodGet, httpin.BasePath+"/health", "", "")

	s.Equal(nethttp.StatusOK, rec.Code)
	s.Equal("Healthy", rec.Body.String())
}

func (s *ServerTestSuite) TestSecuredRoutesRequireToken() {
	rec := s.do(nethttp.MethodGet, httpin.BasePath+"/vendor/dashboard", "", "")
	s.Equal(nethttp.StatusUnauthorized, rec.Code)

	rec = s.do(nethttp.MethodGet, httpin.BasePath+"/vendor/dashboard", "not-a-jwt", "")
	s.Equal(nethttp.StatusUnauthorized, rec.Code)
}

func (s *ServerTestSuite) TestCustomerCannotOpenVendorDashboard() {
	token := s.token(identity.KindCustomer, kernel.NewUUID(), kernel.UUID{})

	rec := s.do(nethttp.MethodGet, httpin.BasePath+"/vendor/dashboard", token, "")

	s.Equal(nethttp.StatusForbidden, rec.Code)
	s.Contains(rec.Body.String(), `"code":403`)
}

func (s *ServerTestSuite) TestDashboardMonthIsValidatedAgainstDocument() {
	token := s.token(identity.KindVendor, kernel.NewUUID(), kernel.NewUUID())

	rec := s.do(nethttp.MethodGet, httpin.BasePath+"/vendor/dashboard?month=13", token, "")

	s.Equal(nethttp.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestCreateOrderRequiresItems() {
	token := s.token(identity.KindCustomer, kernel.NewUUID(), kernel.UUID{})
	body := fmt.Sprintf(`{"vendor_id":%q,"delivery_address":"12 Allen Avenue"}`, kernel.NewUUID())

	rec := s.do(nethttp.MethodPost, httpin.BasePath+"/orders", token, body)

	s.Equal(nethttp.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestUnknownActionIsBadRequest() {
	token := s.token(identity.KindVendor, kernel.NewUUID(), kernel.NewUUID())
	target := fmt.Sprintf("%s/vendor/orders/%s/fly-away", httpin.BasePath, kernel.NewUUID())

	rec := s.do(nethttp.MethodPost, target, token, "")

	s.Equal(nethttp.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "fly-away")
}

func (s *ServerTestSuite) TestCustomerCannotApplyVendorAction() {
	token := s.token(identity.KindCustomer, kernel.NewUUID(), kernel.UUID{})
	target := fmt.Sprintf("%s/vendor/orders/%s/mark-ready", httpin.BasePath, kernel.NewUUID())

	rec := s.do(nethttp.MethodPost, target, token, "")

	s.Equal(nethttp.StatusForbidden, rec.Code)
}

func (s *ServerTestSuite) TestMalformedOrderIDIsBadRequest() {
	token := s.token(identity.KindCustomer, kernel.NewUUID(), kernel.UUID{})

	rec := s.do(nethttp.MethodPost, httpin.BasePath+"/orders/not-a-uuid/confirm-receipt", token, "")

	s.Equal(nethttp.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestCourierSignupIsValidatedAgainstDocument() {
	token := s.token(identity.KindCustomer, kernel.NewUUID(), kernel.UUID{})
	valid := `"phone":"+2348098765432","service_areas":["Yaba"],"delivery_radius":"5km",` +
		`"opening_hours":"08:00","closing_hours":"20:00","verification_preference":"DL","agreed_to_terms":true`

	rec := s.do(nethttp.MethodPost, httpin.BasePath+"/couriers", token, `{"phone":"+2348098765432"}`)
	s.Equal(nethttp.StatusBadRequest, rec.Code)

	rec = s.do(nethttp.MethodPost, httpin.BasePath+"/couriers", token, `{`+valid+`,"vehicle_type":"rocket"}`)
	s.Equal(nethttp.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "vehicle_type")

	rec = s.do(nethttp.MethodPost, httpin.BasePath+"/couriers", "", `{`+valid+`}`)
	s.Equal(nethttp.StatusUnauthorized, rec.Code)
}

func (s *ServerTestSuite) TestCustomerCannotManageMenuItems() {
	token := s.token(identity.KindCustomer, kernel.NewUUID(), kernel.UUID{})
	target := fmt.Sprintf("%s/vendor/menu-items/%s", httpin.BasePath, kernel.NewUUID())

	s.Equal(nethttp.StatusForbidden, s.do(nethttp.MethodGet, target, token, "").Code)
	s.Equal(nethttp.StatusForbidden, s.do(nethttp.MethodPatch, target, token, `{"quantity":3}`).Code)
	s.Equal(nethttp.StatusForbidden, s.do(nethttp.MethodDelete, target, token, "").Code)
}

func (s *ServerTestSuite) TestMenuItemRoutesValidateInput() {
	token := s.token(identity.KindVendor, kernel.NewUUID(), kernel.NewUUID())
	target := fmt.Sprintf("%s/vendor/menu-items/%s", httpin.BasePath, kernel.NewUUID())

	rec := s.do(nethttp.MethodDelete, httpin.BasePath+"/vendor/menu-items/not-a-uuid", token, "")
	s.Equal(nethttp.StatusBadRequest, rec.Code)

	rec = s.do(nethttp.MethodPatch, target, token, `{}`)
	s.Equal(nethttp.StatusBadRequest, rec.Code)

	rec = s.do(nethttp.MethodPatch, target, token, `{"price":-5}`)
	s.Equal(nethttp.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestWebhookWithBadSignatureIsRejected() {
	req := httptest.NewRequest(nethttp.MethodPost, webhookTarget, strings.NewReader(`{"event":"charge.success"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(paystack.SignatureHeader, "deadbeef")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(nethttp.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "signature")
}

func (s *ServerTestSuite) TestFeedSubscribesCallingVendor() {
	vendorID := kernel.NewUUID()
	token := s.token(identity.KindVendor, kernel.NewUUID(), vendorID)

	rec := s.handshake(httpin.BasePath + "/vendor/orders/feed?access_token=" + token)

	s.Equal(nethttp.StatusSwitchingProtocols, rec.Code)
	s.Equal([]string{vendorID.String()}, s.feed.vendorIDs)
}

func (s *ServerTestSuite) TestQueryTokenIsOnlyAcceptedOnHandshakes() {
	token := s.token(identity.KindVendor, kernel.NewUUID(), kernel.NewUUID())

	rec := s.do(nethttp.MethodGet, httpin.BasePath+"/vendor/transactions?access_token="+token, "", "")
	s.Equal(nethttp.StatusUnauthorized, rec.Code)

	rec = s.do(nethttp.MethodGet, httpin.BasePath+"/vendor/orders/feed?access_token="+token, "", "")
	s.Equal(nethttp.StatusUnauthorized, rec.Code)
	s.Empty(s.feed.vendorIDs)
}

func TestAuthenticator_Resolve(t *testing.T) {
	auth := httpin.NewAuthenticator(jwtSecret)
	userID, vendorID := kernel.NewUUID(), kernel.NewUUID()

	t.Run("vendor", func(t *testing.T) {
		token, err := auth.Sign(httpin.Claims{
			Kind:             "vendor",
			ProfileID:        vendorID.String(),
			RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
		})
		require.NoError(t, err)

		principal, err := auth.Resolve(token)

		require.NoError(t, err)
		v, ok := principal.(identity.Vendor)
		require.True(t, ok)
		assert.True(t, v.UserID().IsEqual(userID))
		assert.True(t, v.VendorID().IsEqual(vendorID))
	})

	t.Run("vendor without profile", func(t *testing.T) {
		token, err := auth.Sign(httpin.Claims{
			Kind:             "vendor",
			RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
		})
		require.NoError(t, err)

		_, err = auth.Resolve(token)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown kind", func(t *testing.T) {
		token, err := auth.Sign(httpin.Claims{
			Kind:             "admin",
			RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
		})
		require.NoError(t, err)

		_, err = auth.Resolve(token)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("other signing method", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, httpin.Claims{
			Kind:             "customer",
			RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
		}).SignedString([]byte(jwtSecret))
		require.NoError(t, err)

		_, err = auth.Resolve(token)

		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := auth.Sign(httpin.Claims{
			Kind: "customer",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   userID.String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		})
		require.NoError(t, err)

		_, err = auth.Resolve(token)

		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errs.NewObjectNotFoundError("order", "1"), nethttp.StatusNotFound},
		{"transition", errs.NewInvalidTransitionError("mark-ready", "pending", "payment not confirmed"), nethttp.StatusConflict},
		{"conflict", errs.NewConflictError("order", "1"), nethttp.StatusConflict},
		{"action", errs.NewInvalidActionError("fly"), nethttp.StatusBadRequest},
		{"required", errs.NewValueIsRequiredError("name"), nethttp.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("month", 13, 1, 12), nethttp.StatusBadRequest},
		{"forbidden", errs.NewForbiddenError("view dashboard", "not a vendor"), nethttp.StatusForbidden},
		{"gateway", fmt.Errorf("%w: timeout", errs.ErrGatewayUnavailable), nethttp.StatusBadGateway},
		{"joined", errors.Join(errs.NewValueIsRequiredError("a"), errs.NewValueIsInvalidError("b")), nethttp.StatusBadRequest},
		{"unknown", errors.New("boom"), nethttp.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, httpin.StatusFor(tt.err))
		})
	}
}
