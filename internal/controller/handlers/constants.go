package handlers

const (
	// Формат даты в аргументах команд
	dateLayout = "2006-01-02"

	// Префикс кода гостевого бронирования
	referencePrefix = "BK-"
)
