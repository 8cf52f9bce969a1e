package model

// Actor описывает того, кто выполняет операцию.
// Проверка ролей живёт снаружи, сюда приходит уже готовый флаг CanManage.
type Actor struct {
	UserID         *int64 `json:"user_id,omitempty"`
	GuestReference string `json:"guest_reference,omitempty"`
	CanManage      bool   `json:"can_manage"`
}

// SystemActor используется фоновыми задачами
func SystemActor() Actor {
	return Actor{CanManage: true}
}

// Owns проверяет что бронирование принадлежит актору
func (a Actor) Owns(b *Booking) bool {
	if b.IsGuestBooking {
		return a.GuestReference != "" && a.GuestReference == b.BookingReference
	}
	return a.UserID != nil && b.UserID != nil && *a.UserID == *b.UserID
}
