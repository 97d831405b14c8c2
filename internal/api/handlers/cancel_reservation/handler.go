package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/shuchan/DH-ReservationService/internal/api/handlers"
	"github.com/shuchan/DH-ReservationService/internal/api/middleware"
	cancelReservation "github.com/shuchan/DH-ReservationService/internal/usecase/cancel_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgReservationNotFound  = "бронирование не найдено"
	msgAccessDenied         = "нельзя отменить чужое бронирование"
	msgTooLateToCancel      = "срок отмены бронирования истек"
)

type Handler struct {
	useCase CancelReservationUseCase
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("DELETE /reservations/{id} - Invalid reservation ID: %s", vars["reservationId"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	err = h.useCase.Execute(r.Context(), &cancelReservation.Request{
		ReservationID: reservationID,
		UserID:        userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelReservation.ErrReservationNotFound):
			h.logger.Warn("DELETE /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, cancelReservation.ErrAccessDenied):
			h.logger.Warn("DELETE /reservations/{id} - Access denied: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, cancelReservation.ErrTooLateToCancel):
			h.logger.Warn("DELETE /reservations/{id} - Too late to cancel: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgTooLateToCancel)

		case errors.Is(err, cancelReservation.ErrInvalidInput):
			h.logger.Warn("DELETE /reservations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		case errors.Is(err, cancelReservation.ErrStorageUnavailable):
			h.logger.Error("DELETE /reservations/{id} - Storage unavailable: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to cancel reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Reservation cancelled successfully: reservation_id=%d, user_id=%d",
		reservationID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
