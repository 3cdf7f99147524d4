package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"marketplace/api"
	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/in/ws"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/paystack"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/rabbitmq"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type closer interface {
	Close() error
}

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	table      order.TransitionTable
	location   *time.Location
	clock      ports.Clock
	gateway    *paystack.Client
	hub        *ws.Hub
	publishers []ports.EventPublisher
	closers    []closer
	logger     *logrus.Logger
}

// NewCompositionRoot resolves derived configuration and connects the event
// broker selected by EVENTS_BROKER.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *logrus.Logger) (*CompositionRoot, error) {
	table, err := config.TransitionTable()
	if err != nil {
		return nil, err
	}
	location, err := config.Location()
	if err != nil {
		return nil, err
	}

	gateway := paystack.NewClient(config.PaystackBaseURL, config.PaystackSecretKey,
		&http.Client{Timeout: 15 * time.Second}, logger)

	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		table:      table,
		location:   location,
		clock:      SystemClock{},
		gateway:    gateway,
		hub:        ws.NewHub(logger),
		logger:     logger,
	}

	broker, err := c.connectBroker()
	if err != nil {
		return nil, err
	}
	if broker != nil {
		c.publishers = append(c.publishers, broker)
	}
	c.publishers = append(c.publishers, c.hub)

	return c, nil
}

func (c *CompositionRoot) connectBroker() (ports.EventPublisher, error) {
	switch c.config.EventsBroker {
	case BrokerKafka:
		topic := c.config.KafkaTopic
		if topic == "" {
			topic = kafka.DefaultTopic
		}
		p, err := kafka.NewPublisher(c.config.Brokers(), topic, c.logger)
		if err != nil {
			return nil, fmt.Errorf("connect kafka: %w", err)
		}
		c.closers = append(c.closers, p)
		return p, nil

	case BrokerRabbitMQ:
		exchange := c.config.RabbitMQExchange
		if exchange == "" {
			exchange = rabbitmq.DefaultExchange
		}
		p, err := rabbitmq.Dial(c.config.RabbitMQURL, exchange, c.logger)
		if err != nil {
			return nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		c.closers = append(c.closers, p)
		return p, nil

	case BrokerNone, "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown EVENTS_BROKER %q", c.config.EventsBroker)
	}
}

// RunFeed serves the vendor websocket hub until ctx is done.
func (c *CompositionRoot) RunFeed(ctx context.Context) {
	c.hub.Run(ctx)
}

// Close releases broker connections.
func (c *CompositionRoot) Close() {
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close publisher")
		}
	}
}

func (c *CompositionRoot) CreateRegisterVendorCommandHandler() commands.RegisterVendorCommandHandler {
	return commands.NewRegisterVendorCommandHandler(c.catalogUoWFactory(), c.clock, c.location.String())
}

func (c *CompositionRoot) CreateCreateMenuItemCommandHandler() commands.CreateMenuItemCommandHandler {
	return commands.NewCreateMenuItemCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateUpdateMenuItemCommandHandler() commands.UpdateMenuItemCommandHandler {
	return commands.NewUpdateMenuItemCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateDeleteMenuItemCommandHandler() commands.DeleteMenuItemCommandHandler {
	return commands.NewDeleteMenuItemCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateRegisterCourierCommandHandler() commands.RegisterCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterCourierCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.PlaceOrderUoWFactory = FuncPlaceOrderUoWFactory(func() commands.PlaceOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateApplyOrderActionCommandHandler() commands.ApplyOrderActionCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyOrderActionCommandHandler(f, c.table, c.clock)
}

func (c *CompositionRoot) CreateCreatePaymentCommandHandler() commands.CreatePaymentCommandHandler {
	return commands.NewCreatePaymentCommandHandler(c.paymentUoWFactory(), c.gateway, c.clock, c.config.PaystackCallbackURL)
}

func (c *CompositionRoot) CreateHandlePaymentWebhookCommandHandler() commands.HandlePaymentWebhookCommandHandler {
	return commands.NewHandlePaymentWebhookCommandHandler(c.paymentUoWFactory(), c.gateway, c.clock)
}

func (c *CompositionRoot) CreateCreateBookingCommandHandler() commands.CreateBookingCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateBookingCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, c.clock, c.publishers...)
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

// Handlers assembles every use case served over HTTP.
func (c *CompositionRoot) Handlers() httpin.Handlers {
	return httpin.Handlers{
		RegisterVendor:   c.CreateRegisterVendorCommandHandler(),
		RegisterCourier:  c.CreateRegisterCourierCommandHandler(),
		CreateMenuItem:   c.CreateCreateMenuItemCommandHandler(),
		UpdateMenuItem:   c.CreateUpdateMenuItemCommandHandler(),
		DeleteMenuItem:   c.CreateDeleteMenuItemCommandHandler(),
		CreateOrder:      c.CreateCreateOrderCommandHandler(),
		ApplyOrderAction: c.CreateApplyOrderActionCommandHandler(),
		CreatePayment:    c.CreateCreatePaymentCommandHandler(),
		PaymentWebhook:   c.CreateHandlePaymentWebhookCommandHandler(),
		CreateBooking:    c.CreateCreateBookingCommandHandler(),

		ListMenuItems:       queries.NewListMenuItemsQueryHandler(c.gormDB),
		GetMenuItem:         queries.NewGetMenuItemQueryHandler(c.gormDB),
		ListUserOrders:      queries.NewListUserOrdersQueryHandler(c.gormDB),
		VendorOrderTracking: queries.NewGetVendorOrderTrackingQueryHandler(c.gormDB),
		VendorDashboard:     queries.NewGetVendorDashboardQueryHandler(c.gormDB),
		VendorTransactions:  queries.NewGetVendorTransactionsQueryHandler(c.gormDB),
		TopDishes:           queries.NewGetTopDishesQueryHandler(c.gormDB, c.location),
		OrderActivity:       queries.NewGetOrderActivityQueryHandler(c.gormDB, c.location),
		ListUserPayments:    queries.NewListUserPaymentsQueryHandler(c.gormDB),
		ListUserBookings:    queries.NewListUserBookingsQueryHandler(c.gormDB),
	}
}

// Router builds the echo instance serving the API, its docs and the feed.
func (c *CompositionRoot) Router(ctx context.Context) (*echo.Echo, error) {
	doc, err := api.Load(ctx)
	if err != nil {
		return nil, err
	}

	server := httpin.NewServer(c.Handlers(), c.hub, c.clock, c.logger)
	return httpin.NewRouter(server, httpin.NewAuthenticator(c.config.JWTSecret), doc, c.logger)
}

// JobManager schedules the outbox relay.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	relay := c.CreateRelayOutboxCommandHandler()
	return jobs.NewJobManager(&relay, jobs.Config{
		RelaySchedule:  c.config.OutboxRelaySchedule,
		RelayBatchSize: c.config.OutboxRelayBatchSize,
	}, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPlaceOrderUoWFactory func() commands.PlaceOrderUoW

func (f FuncPlaceOrderUoWFactory) Create() commands.PlaceOrderUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncBookingUoWFactory func() commands.BookingUoW

func (f FuncBookingUoWFactory) Create() commands.BookingUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
