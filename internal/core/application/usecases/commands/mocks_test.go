package commands_test

import (
	"context"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/booking"
	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/vendor"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID, owner identity.Principal) (*order.Order, error) {
	args := m.Called(ctx, id, owner)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockVendorRepository struct{ mock.Mock }

func (m *MockVendorRepository) Add(ctx context.Context, v *vendor.Vendor) error {
	return m.Called(ctx, v).Error(0)
}
func (m *MockVendorRepository) Get(ctx context.Context, id kernel.UUID) (*vendor.Vendor, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*vendor.Vendor)
	return v, args.Error(1)
}
func (m *MockVendorRepository) ExistsForUser(ctx context.Context, userID kernel.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*courier.Courier)
	return c, args.Error(1)
}
func (m *MockCourierRepository) ExistsForUser(ctx context.Context, userID kernel.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockCourierRepository) PhoneTaken(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

type MockMenuRepository struct{ mock.Mock }

func (m *MockMenuRepository) Add(ctx context.Context, item *menu.Item) error {
	return m.Called(ctx, item).Error(0)
}
func (m *MockMenuRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*menu.Item, error) {
	args := m.Called(ctx, ids)
	items, _ := args.Get(0).([]*menu.Item)
	return items, args.Error(1)
}
func (m *MockMenuRepository) GetForUpdate(ctx context.Context, id, vendorID kernel.UUID) (*menu.Item, error) {
	args := m.Called(ctx, id, vendorID)
	item, _ := args.Get(0).(*menu.Item)
	return item, args.Error(1)
}
func (m *MockMenuRepository) Update(ctx context.Context, item *menu.Item) error {
	return m.Called(ctx, item).Error(0)
}
func (m *MockMenuRepository) Remove(ctx context.Context, id, vendorID kernel.UUID) error {
	return m.Called(ctx, id, vendorID).Error(0)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPaymentRepository) GetByReferenceForUpdate(ctx context.Context, reference string) (*payment.Payment, error) {
	args := m.Called(ctx, reference)
	p, _ := args.Get(0).(*payment.Payment)
	return p, args.Error(1)
}

type MockBookingRepository struct{ mock.Mock }

func (m *MockBookingRepository) Add(ctx context.Context, b *booking.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *MockBookingRepository) AccommodationIsActive(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) ClaimBatch(ctx context.Context, limit int) ([]outbox.Message, error) {
	args := m.Called(ctx, limit)
	msgs, _ := args.Get(0).([]outbox.Message)
	return msgs, args.Error(1)
}
func (m *MockOutboxRepository) MarkProcessed(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	return m.Called(ctx, ids, at).Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (identity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(identity.User)
	return u, args.Error(1)
}

// MockUoW satisfies every unit of work interface declared by the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}
func (m *MockUoW) VendorRepository() ports.VendorRepository {
	return m.Called().Get(0).(ports.VendorRepository)
}
func (m *MockUoW) CourierRepository() ports.CourierRepository {
	return m.Called().Get(0).(ports.CourierRepository)
}
func (m *MockUoW) MenuRepository() ports.MenuRepository {
	return m.Called().Get(0).(ports.MenuRepository)
}
func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	return m.Called().Get(0).(ports.PaymentRepository)
}
func (m *MockUoW) BookingRepository() ports.BookingRepository {
	return m.Called().Get(0).(ports.BookingRepository)
}
func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	return m.Called().Get(0).(ports.OutboxRepository)
}
func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

// uowFactory hands out the same MockUoW for every factory interface.
type uowFactory struct{ uow *MockUoW }

type (
	orderUoWFactory      uowFactory
	placeOrderUoWFactory uowFactory
	catalogUoWFactory    uowFactory
	courierUoWFactory    uowFactory
	paymentUoWFactory    uowFactory
	bookingUoWFactory    uowFactory
	outboxUoWFactory     uowFactory
)

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }
func (f placeOrderUoWFactory) Create() commands.PlaceOrderUoW { return f.uow }
func (f catalogUoWFactory) Create() commands.CatalogUoW { return f.uow }
func (f courierUoWFactory) Create() commands.CourierUoW { return f.uow }
func (f paymentUoWFactory) Create() commands.PaymentUoW { return f.uow }
func (f bookingUoWFactory) Create() commands.BookingUoW { return f.uow }
func (f outboxUoWFactory) Create() commands.OutboxUoW { return f.uow }

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Initialize(ctx context.Context, req ports.InitializeRequest) (ports.InitializeResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.InitializeResult), args.Error(1)
}
func (m *MockPaymentGateway) VerifySignature(body []byte, signature string) bool {
	return m.Called(body, signature).Bool(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, msg outbox.Message) error {
	return m.Called(ctx, msg).Error(0)
}
