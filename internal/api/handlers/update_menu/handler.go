package update_menu

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/shuchan/DH-ReservationService/internal/api/handlers"
	menusService "github.com/shuchan/DH-ReservationService/internal/service/menus"
	"github.com/shuchan/DH-ReservationService/internal/service/menus/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMenuID      = "некорректный ID меню"
	msgMenuNotFound       = "меню не найдено"
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

// Handle PUT /api/v1/menus/{menuId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	menuID, err := strconv.ParseInt(vars["menuId"], 10, 64)
	if err != nil || menuID <= 0 {
		h.logger.Warn("PUT /menus/{id} - Invalid menu ID: %s", vars["menuId"])
		handlers.RespondBadRequest(w, msgInvalidMenuID)
		return
	}

	var req models.UpdateMenuRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /menus/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), menuID, &req)
	if err != nil {
		switch {
		case errors.Is(err, menusService.ErrMenuNotFound):
			h.logger.Warn("PUT /menus/{id} - Menu not found: menu_id=%d", menuID)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, menusService.ErrInvalidInput):
			h.logger.Warn("PUT /menus/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /menus/{id} - Failed to update menu: menu_id=%d, error=%v", menuID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /menus/{id} - Menu updated successfully: menu_id=%d", menuID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
