package repository

import "errors"

// ErrOverlap запись бронирования отклонена ограничением на пересечение окон корта
var ErrOverlap = errors.New("booking overlaps existing booking")
