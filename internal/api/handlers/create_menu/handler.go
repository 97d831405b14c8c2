package create_menu

import (
	"errors"
	"net/http"

	"github.com/shuchan/DH-ReservationService/internal/api/handlers"
	menusService "github.com/shuchan/DH-ReservationService/internal/service/menus"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDuplicateMenuNo    = "номер меню уже занят, повторите запрос"
)

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

// Handle POST /api/v1/menus
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /menus - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /menus - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, menusService.ErrInvalidInput):
			h.logger.Warn("POST /menus - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, menusService.ErrDuplicateMenuNo):
			h.logger.Warn("POST /menus - Duplicate menu number: name=%q, date=%s", req.Name, req.ProvideDate)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateMenuNo)

		default:
			h.logger.Error("POST /menus - Failed to create menu: name=%q, error=%v", req.Name, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /menus - Menu created successfully: menu_id=%d, menu_no=%s", result.ID, result.MenuNo)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
