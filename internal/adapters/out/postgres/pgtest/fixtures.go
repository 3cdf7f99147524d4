package pgtest

import (
	"context"
	"time"

	"marketplace/internal/adapters/out/postgres/menurepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/userrepo"
	"marketplace/internal/adapters/out/postgres/vendorrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/vendor"
)

// SeedUser inserts an account row and returns its id.
func (d *Database) SeedUser(ctx context.Context, username, first, last string) (kernel.UUID, error) {
	id := kernel.NewUUID()
	dto := userrepo.UserDTO{
		ID:        id.Bytes(),
		Username:  username,
		FirstName: first,
		LastName:  last,
		Email:     username + "@example.com",
	}
	return id, d.DB.WithContext(ctx).Create(&dto).Error
}

// SeedVendor registers a vendor owned by a fresh user.
func (d *Database) SeedVendor(ctx context.Context, businessName, timeZone string) (*vendor.Vendor, error) {
	userID, err := d.SeedUser(ctx, "owner-"+kernel.NewUUID().String()[:8], "", "")
	if err != nil {
		return nil, err
	}
	v, err := vendor.NewVendor(kernel.NewUUID(), userID, vendor.Profile{
		BusinessName: businessName,
		Category:     "Restaurant",
		Address:      "1 Marina Road",
		ServiceAreas: []string{"Yaba"},
		TimeZone:     timeZone,
	}, time.Now())
	if err != nil {
		return nil, err
	}
	return v, vendorrepo.NewGormVendorRepository(d.DB).Add(ctx, v)
}

// SeedMenuItem adds a dish priced in kobo to the vendor's menu.
func (d *Database) SeedMenuItem(ctx context.Context, vendorID kernel.UUID, dish string, priceKobo int64) (*menu.Item, error) {
	price, err := kernel.NewMoney(priceKobo)
	if err != nil {
		return nil, err
	}
	item, err := menu.NewItem(kernel.NewUUID(), vendorID, menu.Details{
		DishName:     dish,
		Price:        price,
		Category:     "Mains",
		Quantity:     10,
		AvailableNow: true,
	})
	if err != nil {
		return nil, err
	}
	return item, menurepo.NewGormMenuRepository(d.DB).Add(ctx, item)
}

// SeedLine is one line of a seeded order.
type SeedLine struct {
	MenuItemID kernel.UUID
	DishName   string
	UnitPrice  int64
	Quantity   int
}

// OrderSeed describes an order row written as-is, bypassing the lifecycle.
// PlacedAt doubles as created_at.
type OrderSeed struct {
	UserID           kernel.UUID
	VendorID         kernel.UUID
	Lines            []SeedLine
	Status           order.Status
	PaymentConfirmed bool
	ReceiptConfirmed bool
	PlacedAt         time.Time
	DeliveredAt      *time.Time
}

// SeedOrder inserts the order and returns its id.
func (d *Database) SeedOrder(ctx context.Context, s OrderSeed) (kernel.UUID, error) {
	id := kernel.NewUUID()
	dto := orderrepo.OrderDTO{
		ID:                   id.Bytes(),
		UserID:               s.UserID.Bytes(),
		VendorID:             s.VendorID.Bytes(),
		OrderName:            "Seeded order",
		DeliveryAddress:      "12 Allen Avenue, Ikeja",
		Status:               s.Status.String(),
		PaymentConfirmed:     s.PaymentConfirmed,
		UserReceiptConfirmed: s.ReceiptConfirmed,
		OrderPlacedAt:        s.PlacedAt,
		DeliveredAt:          s.DeliveredAt,
		CreatedAt:            s.PlacedAt,
		UpdatedAt:            s.PlacedAt,
		Version:              1,
	}
	if s.PaymentConfirmed {
		dto.PaymentConfirmedAt = &s.PlacedAt
	}
	if s.ReceiptConfirmed {
		at := s.PlacedAt
		if s.DeliveredAt != nil {
			at = *s.DeliveredAt
		}
		dto.UserReceiptConfirmedAt = &at
	}

	for i, line := range s.Lines {
		dto.TotalPrice += line.UnitPrice * int64(line.Quantity)
		dto.Items = append(dto.Items, orderrepo.OrderItemDTO{
			OrderID:    id.Bytes(),
			Position:   i,
			MenuItemID: line.MenuItemID.Bytes(),
			DishName:   line.DishName,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
		})
	}

	return id, d.DB.WithContext(ctx).Create(&dto).Error
}
