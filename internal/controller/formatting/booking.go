package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/courtbooking/internal/model"
	"github.com/Freeeeeet/courtbooking/internal/service"
)

// FormatBooking форматирует бронирование для отображения
func FormatBooking(b *model.Booking, loc *time.Location) string {
	status := GetBookingStatusDisplay(b.Status)
	start := b.StartTime.In(loc)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <b>Бронирование #%d</b>\n\n", status.Emoji, b.ID)
	fmt.Fprintf(&sb, "🎾 Корт: #%d\n", b.CourtID)
	fmt.Fprintf(&sb, "📅 Дата: %s\n", FormatDateWithWeekday(start))
	fmt.Fprintf(&sb, "🕐 Время: %s (%s)\n", FormatTimeRange(start, b.EndTime.In(loc)), FormatDuration(b.Duration()))
	fmt.Fprintf(&sb, "🏷 Цель: %s\n", GetPurposeName(b.Purpose))
	fmt.Fprintf(&sb, "📊 Статус: %s", status.Text)

	if b.Purpose == model.PurposeRental {
		payment := GetPaymentStatusDisplay(b.PaymentStatus)
		fmt.Fprintf(&sb, "\n%s Стоимость: %s, %s", payment.Emoji, FormatPrice(b.TotalPriceCents), strings.ToLower(payment.Text))
	}
	if b.BookingReference != "" {
		fmt.Fprintf(&sb, "\n🔖 Код: <code>%s</code>", b.BookingReference)
	}
	if b.Guest != nil {
		fmt.Fprintf(&sb, "\n👤 Гость: %s", b.Guest.Name)
	}

	return sb.String()
}

// FormatRecurringSchedule форматирует серию: "Пн, Ср 18:00-20:00 с 05.01.2026"
func FormatRecurringSchedule(s *model.RecurringSchedule) string {
	return fmt.Sprintf("%s %s-%s с %s",
		FormatWeekdayRange(s.DaysOfWeek),
		s.StartTimeOfDay,
		s.EndTimeOfDay,
		FormatDate(s.EffectiveFrom))
}

// FormatCourts форматирует список кортов со ставкой
func FormatCourts(courts []*model.Court) string {
	if len(courts) == 0 {
		return "🎾 Кортов пока нет."
	}

	var sb strings.Builder
	sb.WriteString("🎾 <b>Корты</b>\n")
	for _, c := range courts {
		fmt.Fprintf(&sb, "\n#%d %s, %s/ч", c.ID, c.Name, FormatPriceShort(c.HourlyRateCents))
	}
	return sb.String()
}

// FormatDayAvailability форматирует картину дня корта: открытые слоты,
// занятые окна и то, что осталось свободным
func FormatDayAvailability(court *model.Court, day *service.DayAvailability, loc *time.Location) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🎾 <b>%s</b>\n📅 %s\n", court.Name, FormatDateWithWeekday(day.Date))

	if len(day.Slots) == 0 {
		sb.WriteString("\n🚫 В этот день корт закрыт.")
		return sb.String()
	}

	slots := make([]string, len(day.Slots))
	for i, slot := range day.Slots {
		slots[i] = slot.String()
	}
	fmt.Fprintf(&sb, "\n🕐 Часы работы: %s\n", strings.Join(slots, ", "))

	if len(day.Bookings) > 0 {
		fmt.Fprintf(&sb, "\n🔴 Занято (%d %s):\n", len(day.Bookings), PluralizeBookings(len(day.Bookings)))
		for _, b := range day.Bookings {
			fmt.Fprintf(&sb, "  %s\n", FormatTimeRange(b.StartTime.In(loc), b.EndTime.In(loc)))
		}
	}

	if len(day.Free) == 0 {
		sb.WriteString("\n⚫️ Свободных окон нет.")
		return sb.String()
	}

	fmt.Fprintf(&sb, "\n🟢 Свободно (%d %s):\n", len(day.Free), PluralizeWindows(len(day.Free)))
	for _, w := range day.Free {
		fmt.Fprintf(&sb, "  %s\n", FormatTimeRange(w.Start.In(loc), w.End.In(loc)))
	}

	return strings.TrimRight(sb.String(), "\n")
}
