package service

import (
	"github.com/Freeeeeet/courtbooking/internal/model"
)

// managementTransitions допустимые переходы статуса по действию администратора
var managementTransitions = map[model.BookingStatus][]model.BookingStatus{
	model.BookingStatusPending: {
		model.BookingStatusConfirmed,
		model.BookingStatusCancelled,
		model.BookingStatusCompleted,
	},
	model.BookingStatusConfirmed: {
		model.BookingStatusCancelled,
		model.BookingStatusCompleted,
	},
}

// CheckInitialStatus проверяет статус, с которым создаётся бронирование.
// Confirmed допустим только для администратора (путь расписания).
func CheckInitialStatus(status model.BookingStatus, actor model.Actor) error {
	switch status {
	case model.BookingStatusPending:
		return nil
	case model.BookingStatusConfirmed:
		if !actor.CanManage {
			return ErrForbidden
		}
		return nil
	}
	return &InvalidTransitionError{Field: "status", To: string(status)}
}

// CheckTransition проверяет переход статуса по действию администратора
func CheckTransition(from, to model.BookingStatus) error {
	for _, allowed := range managementTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return &InvalidTransitionError{Field: "status", From: string(from), To: string(to)}
}

// CheckSelfCancel владелец может отменить только активное бронирование
func CheckSelfCancel(from model.BookingStatus) error {
	if from.Blocking() {
		return nil
	}
	return &InvalidTransitionError{Field: "status", From: string(from), To: string(model.BookingStatusCancelled)}
}

// CheckPaymentTransition проверяет переход статуса оплаты.
// unpaid -> paid пока бронирование не отменено, paid -> refunded.
// Статус бронирования при этом не меняется.
func CheckPaymentTransition(b *model.Booking, to model.PaymentStatus) error {
	invalid := &InvalidTransitionError{Field: "payment status", From: string(b.PaymentStatus), To: string(to)}

	if b.Purpose != model.PurposeRental {
		return invalid
	}

	switch {
	case b.PaymentStatus == model.PaymentStatusUnpaid && to == model.PaymentStatusPaid:
		if b.Status == model.BookingStatusCancelled {
			return invalid
		}
		return nil
	case b.PaymentStatus == model.PaymentStatusPaid && to == model.PaymentStatusRefunded:
		return nil
	}
	return invalid
}
