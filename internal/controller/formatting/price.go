package formatting

import "fmt"

// FormatPrice форматирует цену из копеек в рубли
func FormatPrice(priceInCents int64) string {
	return fmt.Sprintf("%d.%02d ₽", priceInCents/100, priceInCents%100)
}

// FormatPriceShort форматирует цену без копеек если они равны 0
func FormatPriceShort(priceInCents int64) string {
	if priceInCents%100 == 0 {
		return fmt.Sprintf("%d ₽", priceInCents/100)
	}
	return FormatPrice(priceInCents)
}
