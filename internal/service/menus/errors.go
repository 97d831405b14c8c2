package menus

import "errors"

var (
	// ErrMenuNotFound возвращается, когда меню не найдено
	ErrMenuNotFound = errors.New("menu not found")

	// ErrMenuReserved возвращается при попытке удалить меню с бронированиями
	ErrMenuReserved = errors.New("menu has active reservations")

	// ErrDuplicateMenuNo возвращается, когда номер меню уже занят
	ErrDuplicateMenuNo = errors.New("menu number already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
