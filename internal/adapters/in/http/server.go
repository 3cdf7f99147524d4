package http

import (
	"io"
	"net/http"

	"marketplace/internal/adapters/out/paystack"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/ports"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/sirupsen/logrus"
)

// Handlers are the use cases served over HTTP.
type Handlers struct {
	RegisterVendor   commands.RegisterVendorCommandHandler
	RegisterCourier  commands.RegisterCourierCommandHandler
	CreateMenuItem   commands.CreateMenuItemCommandHandler
	UpdateMenuItem   commands.UpdateMenuItemCommandHandler
	DeleteMenuItem   commands.DeleteMenuItemCommandHandler
	CreateOrder      commands.CreateOrderCommandHandler
	ApplyOrderAction commands.ApplyOrderActionCommandHandler
	CreatePayment    commands.CreatePaymentCommandHandler
	PaymentWebhook   commands.HandlePaymentWebhookCommandHandler
	CreateBooking    commands.CreateBookingCommandHandler

	ListMenuItems       queries.ListMenuItemsQueryHandler
	GetMenuItem         queries.GetMenuItemQueryHandler
	ListUserOrders      queries.ListUserOrdersQueryHandler
	VendorOrderTracking queries.GetVendorOrderTrackingQueryHandler
	VendorDashboard     queries.GetVendorDashboardQueryHandler
	VendorTransactions  queries.GetVendorTransactionsQueryHandler
	TopDishes           queries.GetTopDishesQueryHandler
	OrderActivity       queries.GetOrderActivityQueryHandler
	ListUserPayments    queries.ListUserPaymentsQueryHandler
	ListUserBookings    queries.ListUserBookingsQueryHandler
}

// Feed upgrades a request into a vendor's live order feed.
type Feed interface {
	Serve(w http.ResponseWriter, r *http.Request, vendorID string) error
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	feed     Feed
	clock    ports.Clock
	logger   *logrus.Entry
}

func NewServer(handlers Handlers, feed Feed, clock ports.Clock, logger *logrus.Logger) *Server {
	return &Server{
		handlers: handlers,
		feed:     feed,
		clock:    clock,
		logger:   logger.WithField("component", "http"),
	}
}

// Health handles GET /api/v1/health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// RegisterVendor handles POST /api/v1/vendors.
func (s *Server) RegisterVendor(ctx echo.Context) error {
	var body NewVendor
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewRegisterVendorCommand(principalOf(ctx), kernel.NewUUID(), body.profile())
	if err != nil {
		return s.fail(ctx, err)
	}

	v, err := s.handlers.RegisterVendor.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toVendor(v))
}

// RegisterCourier handles POST /api/v1/couriers.
func (s *Server) RegisterCourier(ctx echo.Context) error {
	var body NewCourier
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewRegisterCourierCommand(principalOf(ctx), kernel.NewUUID(), body.profile())
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.handlers.RegisterCourier.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toCourier(c))
}

// ListMenuItems handles GET /api/v1/vendor/menu-items.
func (s *Server) ListMenuItems(ctx echo.Context) error {
	query, err := queries.NewListMenuItemsQuery(principalOf(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	items, err := s.handlers.ListMenuItems.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toMenuItems(items))
}

// CreateMenuItem handles POST /api/v1/vendor/menu-items.
func (s *Server) CreateMenuItem(ctx echo.Context) error {
	var body NewMenuItem
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	details, err := body.details()
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateMenuItemCommand(principalOf(ctx), kernel.NewUUID(), details)
	if err != nil {
		return s.fail(ctx, err)
	}

	item, err := s.handlers.CreateMenuItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toMenuItem(item))
}

// GetMenuItem handles GET /api/v1/vendor/menu-items/{itemId}.
func (s *Server) GetMenuItem(ctx echo.Context) error {
	itemID, err := uuidParam(ctx, "itemId")
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid format for parameter itemId: "+err.Error())
	}

	query, err := queries.NewGetMenuItemQuery(principalOf(ctx), itemID)
	if err != nil {
		return s.fail(ctx, err)
	}

	item, err := s.handlers.GetMenuItem.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toMenuItemView(item))
}

// UpdateMenuItem handles PATCH /api/v1/vendor/menu-items/{itemId}.
func (s *Server) UpdateMenuItem(ctx echo.Context) error {
	itemID, err := uuidParam(ctx, "itemId")
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid format for parameter itemId: "+err.Error())
	}

	var body MenuItemPatch
	if err = ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	patch, err := body.patch()
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateMenuItemCommand(principalOf(ctx), itemID, patch)
	if err != nil {
		return s.fail(ctx, err)
	}

	item, err := s.handlers.UpdateMenuItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toMenuItem(item))
}

// DeleteMenuItem handles DELETE /api/v1/vendor/menu-items/{itemId}.
func (s *Server) DeleteMenuItem(ctx echo.Context) error {
	itemID, err := uuidParam(ctx, "itemId")
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid format for parameter itemId: "+err.Error())
	}

	cmd, err := commands.NewDeleteMenuItemCommand(principalOf(ctx), itemID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.DeleteMenuItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	vendorID, err := fromUUID(body.VendorID)
	if err != nil {
		return s.fail(ctx, err)
	}
	items, err := body.items()
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(principalOf(ctx), kernel.NewUUID(), vendorID,
		body.OrderName, body.DeliveryAddress, items)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{
		OrderID:    result.OrderID,
		OrderName:  result.Name,
		TotalPrice: result.TotalPrice.Major(),
		Status:     result.Status.String(),
	})
}

// ListUserOrders handles GET /api/v1/orders.
func (s *Server) ListUserOrders(ctx echo.Context) error {
	query, err := queries.NewListUserOrdersQuery(principalOf(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.handlers.ListUserOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toUserOrders(orders))
}

// ConfirmReceipt handles POST /api/v1/orders/{orderId}/confirm-receipt.
func (s *Server) ConfirmReceipt(ctx echo.Context) error {
	return s.applyOrderAction(ctx, order.ActionConfirmReceipt.String())
}

// ApplyVendorOrderAction handles POST /api/v1/vendor/orders/{orderId}/{action}.
func (s *Server) ApplyVendorOrderAction(ctx echo.Context) error {
	var action string
	if err := runtime.BindStyledParameterWithOptions("simple", "action", ctx.Param("action"), &action,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true}); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid format for parameter action: "+err.Error())
	}

	return s.applyOrderAction(ctx, action)
}

func (s *Server) applyOrderAction(ctx echo.Context, action string) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid format for parameter orderId: "+err.Error())
	}

	cmd, err := commands.NewApplyOrderActionCommand(principalOf(ctx), orderID, action)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.ApplyOrderAction.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderActionResult{
		OrderID:   result.OrderID,
		Status:    result.Status.String(),
		UpdatedAt: result.UpdatedAt,
		Message:   result.Message,
	})
}

// VendorOrderTracking handles GET /api/v1/vendor/orders/tracking.
func (s *Server) VendorOrderTracking(ctx echo.Context) error {
	query, err := queries.NewGetVendorOrderTrackingQuery(principalOf(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.handlers.VendorOrderTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTrackedOrders(orders))
}

// VendorOrderFeed handles GET /api/v1/vendor/orders/feed.
func (s *Server) VendorOrderFeed(ctx echo.Context) error {
	v, err := identity.AsVendor(principalOf(ctx), "subscribe to order feed")
	if err != nil {
		return s.fail(ctx, err)
	}

	// Serve answers its own failures.
	_ = s.feed.Serve(ctx.Response(), ctx.Request(), v.VendorID().String())
	return nil
}

// VendorDashboard handles GET /api/v1/vendor/dashboard.
func (s *Server) VendorDashboard(ctx echo.Context) error {
	var month, year int
	if err := runtime.BindQueryParameter("form", true, false, "month", ctx.QueryParams(), &month); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid format for parameter month: "+err.Error())
	}
	if err := runtime.BindQueryParameter("form", true, false, "year", ctx.QueryParams(), &year); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid format for parameter year: "+err.Error())
	}

	query, err := queries.NewGetVendorDashboardQuery(principalOf(ctx), s.clock.Now(), month, year)
	if err != nil {
		return s.fail(ctx, err)
	}

	dashboard, err := s.handlers.VendorDashboard.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, dashboard)
}

// VendorTransactions handles GET /api/v1/vendor/transactions.
func (s *Server) VendorTransactions(ctx echo.Context) error {
	query, err := queries.NewGetVendorTransactionsQuery(principalOf(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	response, err := s.handlers.VendorTransactions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTransactions(response))
}

// TopDishes handles GET /api/v1/analytics/top-dishes.
func (s *Server) TopDishes(ctx echo.Context) error {
	scope, err := s.scope(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetTopDishesQuery(scope, s.clock.Now())
	if err != nil {
		return s.fail(ctx, err)
	}

	dishes, err := s.handlers.TopDishes.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTopDishes(dishes))
}

// OrderActivity handles GET /api/v1/analytics/order-activity.
func (s *Server) OrderActivity(ctx echo.Context) error {
	scope, err := s.scope(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderActivityQuery(scope, s.clock.Now())
	if err != nil {
		return s.fail(ctx, err)
	}

	activity, err := s.handlers.OrderActivity.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderActivity(activity))
}

func (s *Server) scope(ctx echo.Context) (queries.Scope, error) {
	var name string
	if err := runtime.BindQueryParameter("form", true, false, "scope", ctx.QueryParams(), &name); err != nil {
		return queries.Scope{}, err
	}
	return queries.NewScope(queries.ScopeName(name), principalOf(ctx))
}

// CreatePayment handles POST /api/v1/payments.
func (s *Server) CreatePayment(ctx echo.Context) error {
	var body NewPayment
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	amount, err := kernel.ParseMoney(body.Amount.String())
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreatePaymentCommand(principalOf(ctx), kernel.NewUUID(), amount,
		body.Currency, payment.Method(body.PaymentMethod), body.Description)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.CreatePayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PaymentCreated{
		PaymentID:        result.PaymentID,
		Reference:        result.Reference,
		AuthorizationURL: result.AuthorizationURL,
		AccessCode:       result.AccessCode,
	})
}

// ListUserPayments handles GET /api/v1/payments.
func (s *Server) ListUserPayments(ctx echo.Context) error {
	query, err := queries.NewListUserPaymentsQuery(principalOf(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	payments, err := s.handlers.ListUserPayments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPayments(payments))
}

// PaystackWebhook handles POST /api/v1/paystack/webhook. The signature
// covers the raw body, so it is read before any decoding.
func (s *Server) PaystackWebhook(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewHandlePaymentWebhookCommand(body, ctx.Request().Header.Get(paystack.SignatureHeader))
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.PaymentWebhook.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	if !result.Applied {
		s.logger.WithFields(logrus.Fields{
			"event":     result.Event,
			"reference": result.Reference,
		}).Info("Payment webhook acknowledged without changes")
	}

	return ctx.NoContent(http.StatusOK)
}

// CreateBooking handles POST /api/v1/bookings.
func (s *Server) CreateBooking(ctx echo.Context) error {
	var body NewBooking
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	request, err := body.request()
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateBookingCommand(principalOf(ctx), kernel.NewUUID(), request)
	if err != nil {
		return s.fail(ctx, err)
	}

	b, err := s.handlers.CreateBooking.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toBooking(b))
}

// ListUserBookings handles GET /api/v1/bookings.
func (s *Server) ListUserBookings(ctx echo.Context) error {
	query, err := queries.NewListUserBookingsQuery(principalOf(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	bookings, err := s.handlers.ListUserBookings.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toBookings(bookings))
}

func uuidParam(ctx echo.Context, name string) (kernel.UUID, error) {
	var id uuid.UUID
	if err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true}); err != nil {
		return kernel.UUID{}, err
	}
	return fromUUID(id)
}
