package formatting

// PluralizeBookings возвращает правильное склонение слова "бронирование"
func PluralizeBookings(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "бронирование"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "бронирования"
	}
	return "бронирований"
}

// PluralizeWindows возвращает правильное склонение слова "окно"
func PluralizeWindows(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "окно"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "окна"
	}
	return "окон"
}
