package upsert_business_day

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/shuchan/DH-ReservationService/internal/api/handlers"
	"github.com/shuchan/DH-ReservationService/internal/domain"
	calendarService "github.com/shuchan/DH-ReservationService/internal/service/calendar"
	"github.com/shuchan/DH-ReservationService/internal/service/calendar/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
)

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

// Handle PUT /api/v1/business-days/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("PUT /business-days/{date} - Invalid date: %s", vars["date"])
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req models.UpsertBusinessDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /business-days/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), date, &req)
	if err != nil {
		if errors.Is(err, calendarService.ErrInvalidInput) {
			h.logger.Warn("PUT /business-days/{date} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		h.logger.Error("PUT /business-days/{date} - Failed to upsert: date=%s, error=%v", vars["date"], err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /business-days/{date} - Business day saved: date=%s, holiday=%v", vars["date"], req.IsHoliday)
	handlers.RespondJSON(w, http.StatusOK, result)
}
