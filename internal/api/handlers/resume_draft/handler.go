package resume_draft

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shuchan/DH-ReservationService/internal/api/handlers"
	"github.com/shuchan/DH-ReservationService/internal/api/middleware"
	draftsService "github.com/shuchan/DH-ReservationService/internal/service/drafts"
	createReservation "github.com/shuchan/DH-ReservationService/internal/usecase/create_reservation"
)

const (
	msgDraftNotFound    = "черновик не найден или истек"
	msgAccessDenied     = "нельзя использовать чужой черновик"
	msgMenuNotFound     = "меню не найдено"
	msgMenuConflict     = "на эту дату уже закреплено другое меню"
	msgTooSoonToReserve = "бронирование на эту дату уже закрыто"
	msgSlotNotAvailable = "выбранный временной слот недоступен"
)

type Handler struct {
	service DraftsService
	logger  Logger
}

func NewHandler(service DraftsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts/{token}/confirm
// Черновик потребляется единожды: при любой ошибке создания
// повторный confirm вернет 404.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	token := mux.Vars(r)["token"]

	result, err := h.service.Resume(r.Context(), token, userID)
	if err != nil {
		switch {
		case errors.Is(err, draftsService.ErrDraftNotFound):
			h.logger.Warn("POST /drafts/{token}/confirm - Draft not found: token=%s", token)
			handlers.RespondNotFound(w, msgDraftNotFound)

		case errors.Is(err, draftsService.ErrAccessDenied):
			h.logger.Warn("POST /drafts/{token}/confirm - Access denied: token=%s, user_id=%d", token, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, createReservation.ErrMenuNotFound):
			h.logger.Warn("POST /drafts/{token}/confirm - Menu not found: token=%s", token)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, createReservation.ErrMenuConflict):
			h.logger.Warn("POST /drafts/{token}/confirm - Menu conflict: token=%s", token)
			handlers.RespondError(w, http.StatusConflict, msgMenuConflict)

		case errors.Is(err, createReservation.ErrTooSoonToReserve):
			h.logger.Warn("POST /drafts/{token}/confirm - Reservation window closed: token=%s", token)
			handlers.RespondBadRequest(w, msgTooSoonToReserve)

		case errors.Is(err, createReservation.ErrSlotNotAvailable),
			errors.Is(err, createReservation.ErrHoliday):
			h.logger.Warn("POST /drafts/{token}/confirm - Slot not available: token=%s", token)
			handlers.RespondBadRequest(w, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrStorageUnavailable):
			h.logger.Error("POST /drafts/{token}/confirm - Storage unavailable: token=%s, error=%v", token, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /drafts/{token}/confirm - Failed to resume draft: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drafts/{token}/confirm - Reservation created from draft: reservation_id=%d, user_id=%d",
		result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
