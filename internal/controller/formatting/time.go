package formatting

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateWithWeekday форматирует дату с днём недели на русском
func FormatDateWithWeekday(t time.Time) string {
	return fmt.Sprintf("%s (%s)", FormatDate(t), GetWeekdayName(t.Weekday()))
}

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(start, end time.Time) string {
	return fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))
}

// FormatDuration форматирует длительность
func FormatDuration(d time.Duration) string {
	minutes := int(d / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

var weekdayNames = []string{
	"Воскресенье",
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
}

var weekdayShortNames = []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

// GetWeekdayName возвращает название дня недели на русском
func GetWeekdayName(weekday time.Weekday) string {
	if weekday >= 0 && int(weekday) < len(weekdayNames) {
		return weekdayNames[weekday]
	}
	return "Неизвестно"
}

// GetWeekdayShort возвращает короткое название дня недели
func GetWeekdayShort(weekday time.Weekday) string {
	if weekday >= 0 && int(weekday) < len(weekdayShortNames) {
		return weekdayShortNames[weekday]
	}
	return "?"
}

// FormatWeekdayRange форматирует набор дней недели.
// Например: [1,2,3] -> "Пн-Ср", [1,3,5] -> "Пн, Ср, Пт"
func FormatWeekdayRange(weekdays []time.Weekday) string {
	if len(weekdays) == 0 {
		return ""
	}

	sorted := make([]time.Weekday, len(weekdays))
	copy(sorted, weekdays)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	isSequence := true
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			isSequence = false
			break
		}
	}

	if isSequence && len(sorted) > 2 {
		return fmt.Sprintf("%s-%s", GetWeekdayShort(sorted[0]), GetWeekdayShort(sorted[len(sorted)-1]))
	}

	names := make([]string, len(sorted))
	for i, wd := range sorted {
		names[i] = GetWeekdayShort(wd)
	}
	return strings.Join(names, ", ")
}
