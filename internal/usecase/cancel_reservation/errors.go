package cancel_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrAccessDenied возвращается при попытке отменить чужое бронирование
	ErrAccessDenied = errors.New("cancel_reservation: reservation belongs to another user")

	// ErrTooLateToCancel возвращается после дедлайна отмены
	ErrTooLateToCancel = errors.New("cancel_reservation: cancellation window for this date is closed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrStorageUnavailable возвращается, когда конкурентные транзакции не
	// удалось сериализовать за отведенное число попыток
	ErrStorageUnavailable = errors.New("cancel_reservation: storage temporarily unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_reservation: internal error")
)
