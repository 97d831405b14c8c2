package get_date_reservations

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/shuchan/DH-ReservationService/internal/api/handlers"
	"github.com/shuchan/DH-ReservationService/internal/domain"
	"github.com/shuchan/DH-ReservationService/internal/service/reservations/models"
	"github.com/shuchan/DH-ReservationService/pkg/ptr"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidUserID = "некорректный параметр userId"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dates/{date}/reservations
// Используется кухней для подсчета порций на дату.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /dates/{date}/reservations - Invalid date: %s", vars["date"])
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &models.GetDateReservationsRequest{Date: date}

	// Опциональный фильтр по пользователю
	if raw := r.URL.Query().Get("userId"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			h.logger.Warn("GET /dates/{date}/reservations - Invalid userId: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidUserID)
			return
		}
		req.UserID = ptr.Ptr(userID)
	}

	result, err := h.service.GetDateReservations(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /dates/{date}/reservations - Failed to get reservations: date=%s, error=%v",
			vars["date"], err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
