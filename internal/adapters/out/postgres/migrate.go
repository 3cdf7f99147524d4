package postgres

import (
	"marketplace/internal/adapters/out/postgres/bookingrepo"
	"marketplace/internal/adapters/out/postgres/courierrepo"
	"marketplace/internal/adapters/out/postgres/menurepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/outboxrepo"
	"marketplace/internal/adapters/out/postgres/paymentrepo"
	"marketplace/internal/adapters/out/postgres/userrepo"
	"marketplace/internal/adapters/out/postgres/vendorrepo"

	"gorm.io/gorm"
)

// Tables lists every table in dependency-free truncation order.
var Tables = []string{
	"order_items", "orders", "menu_items", "vendor_profiles", "courier_profiles", "payments",
	"bookings", "accommodations", "outbox_messages", "users",
}

// AutoMigrate creates or updates the schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.UserDTO{},
		&vendorrepo.VendorDTO{},
		&courierrepo.CourierDTO{},
		&menurepo.MenuItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&paymentrepo.PaymentDTO{},
		&bookingrepo.AccommodationDTO{},
		&bookingrepo.BookingDTO{},
		&outboxrepo.MessageDTO{},
	)
}
