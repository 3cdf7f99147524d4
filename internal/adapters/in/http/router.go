package http

import (
	"marketplace/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const BasePath = "/api/v1"

// NewRouter mounts the server's routes under BasePath. Every route except
// health and the payment webhook requires a bearer token.
func NewRouter(s *Server, auth *Authenticator, doc *openapi3.T, logger *logrus.Logger) (*echo.Echo, error) {
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = api.RegisterSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group(BasePath, validator)
	v1.GET("/health", s.Health)
	v1.POST("/paystack/webhook", s.PaystackWebhook)

	secured := v1.Group("", auth.Middleware())
	secured.POST("/vendors", s.RegisterVendor)
	secured.POST("/couriers", s.RegisterCourier)

	secured.GET("/vendor/menu-items", s.ListMenuItems)
	secured.POST("/vendor/menu-items", s.CreateMenuItem)
	secured.GET("/vendor/menu-items/:itemId", s.GetMenuItem)
	secured.PATCH("/vendor/menu-items/:itemId", s.UpdateMenuItem)
	secured.DELETE("/vendor/menu-items/:itemId", s.DeleteMenuItem)
	secured.GET("/vendor/orders/tracking", s.VendorOrderTracking)
	secured.GET("/vendor/orders/feed", s.VendorOrderFeed)
	secured.POST("/vendor/orders/:orderId/:action", s.ApplyVendorOrderAction)
	secured.GET("/vendor/dashboard", s.VendorDashboard)
	secured.GET("/vendor/transactions", s.VendorTransactions)

	secured.GET("/analytics/top-dishes", s.TopDishes)
	secured.GET("/analytics/order-activity", s.OrderActivity)

	secured.POST("/orders", s.CreateOrder)
	secured.GET("/orders", s.ListUserOrders)
	secured.POST("/orders/:orderId/confirm-receipt", s.ConfirmReceipt)

	secured.POST("/payments", s.CreatePayment)
	secured.GET("/payments", s.ListUserPayments)

	secured.POST("/bookings", s.CreateBooking)
	secured.GET("/bookings", s.ListUserBookings)

	return e, nil
}
