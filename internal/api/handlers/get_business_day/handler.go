package get_business_day

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/shuchan/DH-ReservationService/internal/api/handlers"
	"github.com/shuchan/DH-ReservationService/internal/domain"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/business-days/{date}
// Для дат без явного расписания возвращает расписание по умолчанию
// с признаком isDefault.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /business-days/{date} - Invalid date: %s", vars["date"])
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetByDate(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /business-days/{date} - Failed to get business day: date=%s, error=%v",
			vars["date"], err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
