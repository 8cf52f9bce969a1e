package formatting

import "github.com/Freeeeeet/courtbooking/internal/model"

// StatusDisplay emoji и текст для отображения статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetBookingStatusDisplay возвращает emoji и текст для статуса бронирования
func GetBookingStatusDisplay(status model.BookingStatus) StatusDisplay {
	displays := map[model.BookingStatus]StatusDisplay{
		model.BookingStatusPending:   {"⏳", "Ожидает подтверждения"},
		model.BookingStatusConfirmed: {"✅", "Подтверждено"},
		model.BookingStatusCompleted: {"✔️", "Завершено"},
		model.BookingStatusCancelled: {"❌", "Отменено"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// GetPaymentStatusDisplay возвращает emoji и текст для статуса оплаты
func GetPaymentStatusDisplay(status model.PaymentStatus) StatusDisplay {
	displays := map[model.PaymentStatus]StatusDisplay{
		model.PaymentStatusUnpaid:   {"💳", "Не оплачено"},
		model.PaymentStatusPaid:     {"💰", "Оплачено"},
		model.PaymentStatusRefunded: {"↩️", "Возвращено"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// GetPurposeName возвращает название цели бронирования
func GetPurposeName(purpose model.BookingPurpose) string {
	switch purpose {
	case model.PurposeRental:
		return "Аренда"
	case model.PurposeTraining:
		return "Тренировка"
	case model.PurposeMatch:
		return "Матч"
	case model.PurposeOther:
		return "Другое"
	}
	return string(purpose)
}
