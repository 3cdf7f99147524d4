package http

import (
	"encoding/json"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/analytics"
	"marketplace/internal/core/domain/model/booking"
	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/vendor"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewVendor struct {
	BusinessName     string   `json:"business_name"`
	BusinessCategory string   `json:"business_category"`
	BusinessAddress  string   `json:"business_address"`
	Phone            string   `json:"phone"`
	ServiceAreas     []string `json:"service_areas"`
	TimeZone         string   `json:"time_zone"`
	OffersDelivery   bool     `json:"offers_delivery"`
}

type Vendor struct {
	ID                 kernel.UUID `json:"id"`
	BusinessName       string      `json:"business_name"`
	TimeZone           string      `json:"time_zone"`
	VerificationStatus string      `json:"verification_status"`
}

type NewCourier struct {
	Phone                  string   `json:"phone"`
	ServiceAreas           []string `json:"service_areas"`
	DeliveryRadius         string   `json:"delivery_radius"`
	OpeningHours           string   `json:"opening_hours"`
	ClosingHours           string   `json:"closing_hours"`
	HasBike                bool     `json:"has_bike"`
	VehicleType            string   `json:"vehicle_type"`
	VerificationPreference string   `json:"verification_preference"`
	NINNumber              string   `json:"nin_number"`
	AgreedToTerms          bool     `json:"agreed_to_terms"`
}

type Courier struct {
	ID                 kernel.UUID `json:"id"`
	Phone              string      `json:"phone"`
	ServiceAreas       []string    `json:"service_areas"`
	OpeningHours       string      `json:"opening_hours"`
	ClosingHours       string      `json:"closing_hours"`
	VehicleType        string      `json:"vehicle_type,omitempty"`
	VerificationStatus string      `json:"verification_status"`
}

type NewMenuItem struct {
	DishName     string      `json:"dish_name"`
	Description  string      `json:"item_description"`
	Price        json.Number `json:"price"`
	Category     string      `json:"category"`
	Quantity     int         `json:"quantity"`
	AvailableNow *bool       `json:"available_now"`
}

// MenuItemPatch changes only the fields that are present.
type MenuItemPatch struct {
	DishName     *string      `json:"dish_name"`
	Description  *string      `json:"item_description"`
	Price        *json.Number `json:"price"`
	Category     *string      `json:"category"`
	Quantity     *int         `json:"quantity"`
	AvailableNow *bool        `json:"available_now"`
}

type MenuItem struct {
	ID           kernel.UUID `json:"id"`
	DishName     string      `json:"dish_name"`
	Description  string      `json:"item_description"`
	Price        float64     `json:"price"`
	Category     string      `json:"category"`
	Quantity     int         `json:"quantity"`
	AvailableNow bool        `json:"available_now"`
}

type NewOrderItem struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
}

type NewOrder struct {
	VendorID        uuid.UUID      `json:"vendor_id"`
	OrderName       string         `json:"order_name"`
	DeliveryAddress string         `json:"delivery_address"`
	Items           []NewOrderItem `json:"items"`
}

type OrderCreated struct {
	OrderID    kernel.UUID `json:"order_id"`
	OrderName  string      `json:"order_name"`
	TotalPrice float64     `json:"total_price"`
	Status     string      `json:"status"`
}

type OrderActionResult struct {
	OrderID   kernel.UUID `json:"order_id"`
	Status    string      `json:"status"`
	UpdatedAt time.Time   `json:"updated_at"`
	Message   string      `json:"message"`
}

type OrderLine struct {
	MenuItemID kernel.UUID `json:"menu_item_id"`
	DishName   string      `json:"dish_name"`
	UnitPrice  float64     `json:"unit_price"`
	Quantity   int         `json:"quantity"`
}

type UserOrder struct {
	ID                   kernel.UUID `json:"id"`
	VendorID             kernel.UUID `json:"vendor_id"`
	VendorName           string      `json:"vendor_name"`
	OrderName            string      `json:"order_name"`
	DeliveryAddress      string      `json:"delivery_address"`
	TotalPrice           float64     `json:"total_price"`
	Status               string      `json:"status"`
	PaymentConfirmed     bool        `json:"payment_confirmed"`
	UserReceiptConfirmed bool        `json:"user_receipt_confirmed"`
	PlacedAt             time.Time   `json:"order_placed_at"`
	DeliveredAt          *time.Time  `json:"delivered_at"`
	Items                []OrderLine `json:"items"`
}

type TrackedOrder struct {
	ID       kernel.UUID `json:"id"`
	Username string      `json:"username"`
	DishName string      `json:"dish_name"`
	Address  string      `json:"address"`
	Items    []string    `json:"item"`
	Total    float64     `json:"total"`
	Status   string      `json:"status"`
}

type Transaction struct {
	OrderID  kernel.UUID `json:"order_id"`
	Amount   float64     `json:"amount"`
	Date     string      `json:"date"`
	Status   string      `json:"status"`
	Customer string      `json:"customer"`
}

type Transactions struct {
	TotalEarnings float64       `json:"total_earnings"`
	Transactions  []Transaction `json:"transactions"`
}

type TopDish struct {
	MenuItemID kernel.UUID `json:"menu_item_id"`
	DishName   string      `json:"dish_name"`
	Orders     int64       `json:"orders"`
	Revenue    float64     `json:"revenue"`
	ChangePct  float64     `json:"change_pct"`
}

type OrderActivity struct {
	Total              int64   `json:"total"`
	Completed          int64   `json:"completed"`
	Rejected           int64   `json:"rejected"`
	TotalRevenue       float64 `json:"total_revenue"`
	CompletedChangePct float64 `json:"completed_change_pct"`
	RejectedChangePct  float64 `json:"rejected_change_pct"`
}

type NewPayment struct {
	Amount        json.Number `json:"amount"`
	Currency      string      `json:"currency"`
	PaymentMethod string      `json:"payment_method"`
	Description   string      `json:"description"`
}

type PaymentCreated struct {
	PaymentID        kernel.UUID `json:"payment_id"`
	Reference        string      `json:"reference"`
	AuthorizationURL string      `json:"authorization_url"`
	AccessCode       string      `json:"access_code"`
}

type Payment struct {
	ID            kernel.UUID `json:"id"`
	Amount        float64     `json:"amount"`
	Currency      string      `json:"currency"`
	PaymentMethod string      `json:"payment_method"`
	Reference     string      `json:"paystack_reference"`
	TransactionID string      `json:"paystack_transaction_id,omitempty"`
	Status        string      `json:"status"`
	Description   string      `json:"description"`
	CreatedAt     time.Time   `json:"created_at"`
}

type NewBooking struct {
	AccommodationID uuid.UUID `json:"accommodation_id"`
	BookingDate     string    `json:"booking_date"`
	BookingTime     string    `json:"booking_time"`
	NumberOfPeople  int       `json:"number_of_people"`
	RoomType        string    `json:"room_type"`
	SpecialRequests string    `json:"special_requests"`
}

type Booking struct {
	ID                kernel.UUID `json:"id"`
	AccommodationID   kernel.UUID `json:"accommodation_id"`
	AccommodationName string      `json:"accommodation_name,omitempty"`
	City              string      `json:"city,omitempty"`
	BookingDate       string      `json:"booking_date"`
	BookingTime       string      `json:"booking_time"`
	NumberOfPeople    int         `json:"number_of_people"`
	RoomType          string      `json:"room_type"`
	SpecialRequests   string      `json:"special_requests"`
	Status            string      `json:"status"`
	CreatedAt         time.Time   `json:"created_at"`
}

const bookingDateLayout = "2006-01-02"

func (v NewVendor) profile() vendor.Profile {
	return vendor.Profile{
		BusinessName:   v.BusinessName,
		Category:       v.BusinessCategory,
		Address:        v.BusinessAddress,
		Phone:          v.Phone,
		ServiceAreas:   v.ServiceAreas,
		TimeZone:       v.TimeZone,
		OffersDelivery: v.OffersDelivery,
	}
}

func (c NewCourier) profile() courier.Profile {
	return courier.Profile{
		Phone:                  c.Phone,
		ServiceAreas:           c.ServiceAreas,
		DeliveryRadius:         c.DeliveryRadius,
		OpeningHours:           c.OpeningHours,
		ClosingHours:           c.ClosingHours,
		HasBike:                c.HasBike,
		VehicleType:            courier.VehicleType(c.VehicleType),
		VerificationPreference: courier.Document(c.VerificationPreference),
		NINNumber:              c.NINNumber,
		AgreedToTerms:          c.AgreedToTerms,
	}
}

func (m NewMenuItem) details() (menu.Details, error) {
	price, err := kernel.ParseMoney(m.Price.String())
	if err != nil {
		return menu.Details{}, err
	}

	available := true
	if m.AvailableNow != nil {
		available = *m.AvailableNow
	}

	return menu.Details{
		DishName:     m.DishName,
		Description:  m.Description,
		Price:        price,
		Category:     m.Category,
		Quantity:     m.Quantity,
		AvailableNow: available,
	}, nil
}

func (m MenuItemPatch) patch() (menu.Patch, error) {
	p := menu.Patch{
		DishName:     m.DishName,
		Description:  m.Description,
		Category:     m.Category,
		Quantity:     m.Quantity,
		AvailableNow: m.AvailableNow,
	}
	if m.Price != nil {
		price, err := kernel.ParseMoney(m.Price.String())
		if err != nil {
			return menu.Patch{}, err
		}
		p.Price = &price
	}
	return p, nil
}

func (o NewOrder) items() ([]commands.OrderItemRequest, error) {
	items := make([]commands.OrderItemRequest, 0, len(o.Items))
	for _, item := range o.Items {
		id, err := fromUUID(item.MenuItemID)
		if err != nil {
			return nil, err
		}
		items = append(items, commands.OrderItemRequest{MenuItemID: id, Quantity: item.Quantity})
	}
	return items, nil
}

func (b NewBooking) request() (booking.Request, error) {
	accommodationID, err := fromUUID(b.AccommodationID)
	if err != nil {
		return booking.Request{}, err
	}

	date, err := time.Parse(bookingDateLayout, b.BookingDate)
	if err != nil {
		return booking.Request{}, errs.NewValueIsInvalidErrorWithCause("booking date", err)
	}

	return booking.Request{
		AccommodationID: accommodationID,
		Date:            date,
		Time:            b.BookingTime,
		NumberOfPeople:  b.NumberOfPeople,
		RoomType:        b.RoomType,
		SpecialRequests: b.SpecialRequests,
	}, nil
}

func fromUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toVendor(v *vendor.Vendor) Vendor {
	return Vendor{
		ID:                 v.ID(),
		BusinessName:       v.BusinessName(),
		TimeZone:           v.Location().String(),
		VerificationStatus: string(v.Verification()),
	}
}

func toCourier(c *courier.Courier) Courier {
	p := c.Profile()
	return Courier{
		ID:                 c.ID(),
		Phone:              p.Phone,
		ServiceAreas:       p.ServiceAreas,
		OpeningHours:       p.OpeningHours,
		ClosingHours:       p.ClosingHours,
		VehicleType:        string(p.VehicleType),
		VerificationStatus: string(c.Verification()),
	}
}

func toMenuItem(item *menu.Item) MenuItem {
	return MenuItem{
		ID:           item.ID(),
		DishName:     item.DishName(),
		Description:  item.Description(),
		Price:        item.Price().Major(),
		Category:     item.Category(),
		Quantity:     item.Quantity(),
		AvailableNow: item.AvailableNow(),
	}
}

func toMenuItemView(item queries.MenuItem) MenuItem {
	return MenuItem{
		ID:           item.ID,
		DishName:     item.DishName,
		Description:  item.Description,
		Price:        item.Price.Major(),
		Category:     item.Category,
		Quantity:     item.Quantity,
		AvailableNow: item.AvailableNow,
	}
}

func toMenuItems(items []queries.MenuItem) []MenuItem {
	out := make([]MenuItem, 0, len(items))
	for _, item := range items {
		out = append(out, toMenuItemView(item))
	}
	return out
}

func toUserOrders(orders []queries.UserOrder) []UserOrder {
	out := make([]UserOrder, 0, len(orders))
	for _, o := range orders {
		lines := make([]OrderLine, 0, len(o.Lines))
		for _, l := range o.Lines {
			lines = append(lines, OrderLine{
				MenuItemID: l.MenuItemID,
				DishName:   l.DishName,
				UnitPrice:  l.UnitPrice.Major(),
				Quantity:   l.Quantity,
			})
		}
		out = append(out, UserOrder{
			ID:                   o.ID,
			VendorID:             o.VendorID,
			VendorName:           o.VendorName,
			OrderName:            o.Name,
			DeliveryAddress:      o.DeliveryAddress,
			TotalPrice:           o.Total.Major(),
			Status:               o.Status.String(),
			PaymentConfirmed:     o.PaymentConfirmed,
			UserReceiptConfirmed: o.UserReceiptConfirmed,
			PlacedAt:             o.PlacedAt,
			DeliveredAt:          o.DeliveredAt,
			Items:                lines,
		})
	}
	return out
}

func toTrackedOrders(orders []queries.TrackedOrder) []TrackedOrder {
	out := make([]TrackedOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, TrackedOrder{
			ID:       o.ID,
			Username: o.Customer,
			DishName: o.DishName,
			Address:  o.Address,
			Items:    o.Items,
			Total:    o.Total.Major(),
			Status:   o.Status.String(),
		})
	}
	return out
}

func toTransactions(r queries.GetVendorTransactionsQueryResponse) Transactions {
	out := Transactions{
		TotalEarnings: r.TotalEarnings.Major(),
		Transactions:  make([]Transaction, 0, len(r.Transactions)),
	}
	for _, t := range r.Transactions {
		out.Transactions = append(out.Transactions, Transaction{
			OrderID:  t.OrderID,
			Amount:   t.Amount.Major(),
			Date:     t.Date,
			Status:   t.Status.String(),
			Customer: t.Customer,
		})
	}
	return out
}

func toTopDishes(stats []analytics.DishStat) []TopDish {
	out := make([]TopDish, 0, len(stats))
	for _, s := range stats {
		out = append(out, TopDish{
			MenuItemID: s.MenuItemID,
			DishName:   s.DishName,
			Orders:     s.Orders,
			Revenue:    s.Revenue.Major(),
			ChangePct:  s.Change,
		})
	}
	return out
}

func toOrderActivity(a analytics.Activity) OrderActivity {
	return OrderActivity{
		Total:              a.Total,
		Completed:          a.Completed,
		Rejected:           a.Rejected,
		TotalRevenue:       a.TotalRevenue.Major(),
		CompletedChangePct: a.CompletedChangePct,
		RejectedChangePct:  a.RejectedChangePct,
	}
}

func toPayments(payments []queries.UserPayment) []Payment {
	out := make([]Payment, 0, len(payments))
	for _, p := range payments {
		out = append(out, Payment{
			ID:            p.ID,
			Amount:        p.Amount.Major(),
			Currency:      p.Currency,
			PaymentMethod: string(p.Method),
			Reference:     p.Reference,
			TransactionID: p.TransactionID,
			Status:        string(p.Status),
			Description:   p.Description,
			CreatedAt:     p.CreatedAt,
		})
	}
	return out
}

func toBooking(b *booking.Booking) Booking {
	r := b.Request()
	return Booking{
		ID:              b.ID(),
		AccommodationID: r.AccommodationID,
		BookingDate:     r.Date.Format(bookingDateLayout),
		BookingTime:     r.Time,
		NumberOfPeople:  r.NumberOfPeople,
		RoomType:        r.RoomType,
		SpecialRequests: r.SpecialRequests,
		Status:          string(b.Status()),
		CreatedAt:       b.CreatedAt(),
	}
}

func toBookings(bookings []queries.UserBooking) []Booking {
	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, Booking{
			ID:                b.ID,
			AccommodationID:   b.AccommodationID,
			AccommodationName: b.AccommodationName,
			City:              b.City,
			BookingDate:       b.Date.Format(bookingDateLayout),
			BookingTime:       b.Time,
			NumberOfPeople:    b.NumberOfPeople,
			RoomType:          b.RoomType,
			SpecialRequests:   b.SpecialRequests,
			Status:            string(b.Status),
			CreatedAt:         b.CreatedAt,
		})
	}
	return out
}
