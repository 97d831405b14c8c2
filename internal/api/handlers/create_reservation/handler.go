package create_reservation

import (
	"errors"
	"net/http"

	"github.com/shuchan/DH-ReservationService/internal/api/handlers"
	"github.com/shuchan/DH-ReservationService/internal/api/middleware"
	createReservation "github.com/shuchan/DH-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidTime          = "некорректный формат времени слота, ожидается HH:MM"
	msgMenuNotFound         = "меню не найдено"
	msgMenuConflict         = "на эту дату уже закреплено другое меню"
	msgTooSoonToReserve     = "бронирование на эту дату уже закрыто"
	msgHoliday              = "столовая не работает в выбранную дату"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgDuplicateReservation = "у вас уже есть бронирование на этот слот"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrMenuNotFound):
			h.logger.Warn("POST /reservations - Menu not found: menu_id=%d", req.MenuID)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, createReservation.ErrMenuConflict):
			h.logger.Warn("POST /reservations - Menu conflict: user_id=%d, menu_id=%d", userID, req.MenuID)
			handlers.RespondError(w, http.StatusConflict, msgMenuConflict)

		case errors.Is(err, createReservation.ErrDuplicateReservation):
			h.logger.Warn("POST /reservations - Duplicate reservation: user_id=%d, menu_id=%d", userID, req.MenuID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateReservation)

		case errors.Is(err, createReservation.ErrTooSoonToReserve):
			h.logger.Warn("POST /reservations - Reservation window closed: user_id=%d, menu_id=%d", userID, req.MenuID)
			handlers.RespondBadRequest(w, msgTooSoonToReserve)

		case errors.Is(err, createReservation.ErrHoliday):
			h.logger.Warn("POST /reservations - Holiday: menu_id=%d", req.MenuID)
			handlers.RespondBadRequest(w, msgHoliday)

		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: user_id=%d, slot=%s", userID, req.TimeSlot)
			handlers.RespondBadRequest(w, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createReservation.ErrStorageUnavailable):
			h.logger.Error("POST /reservations - Storage unavailable: user_id=%d, error=%v", userID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, menu_id=%d, error=%v",
				userID, req.MenuID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, menu_id=%d",
		result.ID, userID, req.MenuID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
