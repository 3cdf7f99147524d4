package queries

import (
	"context"

	"marketplace/internal/core/domain/model/booking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListUserBookingsQueryHandler struct {
	db *gorm.DB
}

func NewListUserBookingsQueryHandler(db *gorm.DB) ListUserBookingsQueryHandler {
	return ListUserBookingsQueryHandler{db: db}
}

func (h ListUserBookingsQueryHandler) Handle(ctx context.Context, query ListUserBookingsQuery) ([]UserBooking, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			b.id,
			b.accommodation_id,
			COALESCE(a.name, ''),
			COALESCE(a.city, ''),
			b.booking_date,
			b.booking_time,
			b.number_of_people,
			COALESCE(b.room_type, ''),
			COALESCE(b.special_requests, ''),
			b.status,
			b.created_at
		FROM bookings b
		LEFT JOIN accommodations a ON a.id = b.accommodation_id
		WHERE b.user_id = ?
		ORDER BY b.created_at DESC, b.id DESC
	`, query.userID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]UserBooking, 0)
	for rows.Next() {
		var (
			id, accommodationID uuid.UUID
			status              string
			b                   UserBooking
		)
		err = rows.Scan(&id, &accommodationID, &b.AccommodationName, &b.City, &b.Date, &b.Time,
			&b.NumberOfPeople, &b.RoomType, &b.SpecialRequests, &status, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		if b.ID, err = fromUUID(id); err != nil {
			return nil, err
		}
		if b.AccommodationID, err = fromUUID(accommodationID); err != nil {
			return nil, err
		}
		b.Status = booking.Status(status)
		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
