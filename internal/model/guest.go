package model

import "time"

// Guest гость без регистрации, бронирование ищется по BookingReference
type Guest struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
