package create_reservation

import "errors"

var (
	// ErrMenuNotFound возвращается, когда меню не найдено
	ErrMenuNotFound = errors.New("create_reservation: menu not found")

	// ErrMenuConflict возвращается, когда на дату уже закреплено другое меню
	ErrMenuConflict = errors.New("create_reservation: another menu is already reserved for this date")

	// ErrTooSoonToReserve возвращается при нарушении минимального срока бронирования
	ErrTooSoonToReserve = errors.New("create_reservation: reservation window for this date is closed")

	// ErrHoliday возвращается, когда столовая не работает в указанную дату
	ErrHoliday = errors.New("create_reservation: dining hall is closed on this date")

	// ErrSlotNotAvailable возвращается, когда слот вне сетки или рабочего окна
	ErrSlotNotAvailable = errors.New("create_reservation: time slot is not available")

	// ErrDuplicateReservation возвращается, когда у пользователя уже есть
	// бронирование на этот слот
	ErrDuplicateReservation = errors.New("create_reservation: reservation already exists for this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrStorageUnavailable возвращается, когда конкурентные транзакции не
	// удалось сериализовать за отведенное число попыток
	ErrStorageUnavailable = errors.New("create_reservation: storage temporarily unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
