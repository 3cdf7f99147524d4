// Package orderrepo maps the order aggregate to the orders and order_items tables.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders row. Status is stored as its string code and
// Version is the optimistic concurrency token.
type OrderDTO struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID                 uuid.UUID  `gorm:"type:uuid;not null;index"`
	VendorID               uuid.UUID  `gorm:"type:uuid;not null;index"`
	TotalPrice             int64      `gorm:"not null"`
	OrderName              string     `gorm:"size:255"`
	DeliveryAddress        string     `gorm:"not null"`
	Status                 string     `gorm:"size:20;not null;index"`
	PaymentConfirmed       bool       `gorm:"not null;default:false"`
	PaymentConfirmedAt     *time.Time
	UserReceiptConfirmed   bool `gorm:"not null;default:false"`
	UserReceiptConfirmedAt *time.Time
	OrderPlacedAt          time.Time `gorm:"not null"`
	OrderReadyAt           *time.Time
	OutForDeliveryAt       *time.Time
	DeliveredAt            *time.Time
	CreatedAt              time.Time      `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt              time.Time      `gorm:"not null;autoUpdateTime:false"`
	Version                int            `gorm:"not null;default:1"`
	Items                  []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line of an order, keyed by position.
type OrderItemDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"primaryKey;autoIncrement:false"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	DishName   string    `gorm:"size:255;not null"`
	UnitPrice  int64     `gorm:"not null"`
	Quantity   int       `gorm:"not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	items := make([]OrderItemDTO, len(s.Items))
	for i, item := range s.Items {
		items[i] = OrderItemDTO{
			OrderID:    s.ID.Bytes(),
			Position:   i,
			MenuItemID: item.MenuItemID.Bytes(),
			DishName:   item.DishName,
			UnitPrice:  item.UnitPrice.Minor(),
			Quantity:   item.Quantity,
		}
	}

	return OrderDTO{
		ID:                     s.ID.Bytes(),
		UserID:                 s.UserID.Bytes(),
		VendorID:               s.VendorID.Bytes(),
		TotalPrice:             s.TotalPrice.Minor(),
		OrderName:              s.Name,
		DeliveryAddress:        s.DeliveryAddress,
		Status:                 s.Status.String(),
		PaymentConfirmed:       s.PaymentConfirmed,
		PaymentConfirmedAt:     s.PaymentConfirmedAt,
		UserReceiptConfirmed:   s.UserReceiptConfirmed,
		UserReceiptConfirmedAt: s.UserReceiptConfirmedAt,
		OrderPlacedAt:          s.PlacedAt,
		OrderReadyAt:           s.ReadyAt,
		OutForDeliveryAt:       s.OutForDeliveryAt,
		DeliveredAt:            s.DeliveredAt,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
		Version:                s.Version,
		Items:                  items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	ids := make([]kernel.UUID, 3)
	for i, raw := range []uuid.UUID{dto.ID, dto.UserID, dto.VendorID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	status, err := order.StatusFromCode(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, it := range dto.Items {
		menuItemID, idErr := kernel.UUIDFromBytes(it.MenuItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, moneyErr := kernel.NewMoney(it.UnitPrice)
		if moneyErr != nil {
			return nil, moneyErr
		}
		item, itemErr := order.NewLineItem(menuItemID, it.DishName, price, it.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                     ids[0],
		UserID:                 ids[1],
		VendorID:               ids[2],
		Items:                  items,
		TotalPrice:             total,
		Name:                   dto.OrderName,
		DeliveryAddress:        dto.DeliveryAddress,
		Status:                 status,
		PaymentConfirmed:       dto.PaymentConfirmed,
		PaymentConfirmedAt:     dto.PaymentConfirmedAt,
		UserReceiptConfirmed:   dto.UserReceiptConfirmed,
		UserReceiptConfirmedAt: dto.UserReceiptConfirmedAt,
		PlacedAt:               dto.OrderPlacedAt,
		ReadyAt:                dto.OrderReadyAt,
		OutForDeliveryAt:       dto.OutForDeliveryAt,
		DeliveredAt:            dto.DeliveredAt,
		CreatedAt:              dto.CreatedAt,
		UpdatedAt:              dto.UpdatedAt,
		Version:                dto.Version,
	})
}
