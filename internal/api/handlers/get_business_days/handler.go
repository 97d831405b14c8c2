package get_business_days

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shuchan/DH-ReservationService/internal/api/handlers"
	calendarService "github.com/shuchan/DH-ReservationService/internal/service/calendar"
)

const msgInvalidMonth = "некорректные параметры year/month"

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

// Handle GET /api/v1/business-days?year=2026&month=3
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		h.logger.Warn("GET /business-days - Invalid year: %s", r.URL.Query().Get("year"))
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		h.logger.Warn("GET /business-days - Invalid month: %s", r.URL.Query().Get("month"))
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.service.ListMonth(r.Context(), year, time.Month(month))
	if err != nil {
		if errors.Is(err, calendarService.ErrInvalidInput) {
			h.logger.Warn("GET /business-days - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)
			return
		}
		h.logger.Error("GET /business-days - Failed to list month %d-%02d: %v", year, month, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
