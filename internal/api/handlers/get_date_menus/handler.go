package get_date_menus

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/shuchan/DH-ReservationService/internal/api/handlers"
	"github.com/shuchan/DH-ReservationService/internal/domain"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	service MenusService
	logger  Logger
}

func NewHandler(service MenusService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dates/{date}/menus
// Возвращает меню, доступные для бронирования: пока дата свободна - все
// меню даты, после первого бронирования - только закрепленное.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /dates/{date}/menus - Invalid date: %s", vars["date"])
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.MenusForDate(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /dates/{date}/menus - Failed to get menus: date=%s, error=%v", vars["date"], err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
