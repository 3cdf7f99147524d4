// Package commands contains business operations that modify system state.
// Every command is a constructor-guarded value handled by a handler that
// opens a unit of work, loads aggregates, applies domain behavior and commits.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces give each handler only the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	VendorRepoFactory interface {
		VendorRepository() ports.VendorRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	MenuRepoFactory interface {
		MenuRepository() ports.MenuRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	BookingRepoFactory interface {
		BookingRepository() ports.BookingRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// OrderUoW is used by lifecycle actions on an existing order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PlaceOrderUoW checks the vendor and its menu before storing a new order.
	PlaceOrderUoW interface {
		TxManager
		OrderRepoFactory
		VendorRepoFactory
		MenuRepoFactory
	}

	PlaceOrderUoWFactory interface {
		Create() PlaceOrderUoW
	}

	// CatalogUoW covers vendor registration and menu management.
	CatalogUoW interface {
		TxManager
		VendorRepoFactory
		MenuRepoFactory
	}

	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// PaymentUoW reads the payer's account and stores gateway payments.
	PaymentUoW interface {
		TxManager
		PaymentRepoFactory
		UserRepoFactory
	}

	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	BookingUoW interface {
		TxManager
		BookingRepoFactory
	}

	BookingUoWFactory interface {
		Create() BookingUoW
	}

	// OutboxUoW claims and acknowledges relayed messages.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
