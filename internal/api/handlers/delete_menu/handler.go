package delete_menu

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/shuchan/DH-ReservationService/internal/api/handlers"
	menusService "github.com/shuchan/DH-ReservationService/internal/service/menus"
)

const (
	msgInvalidMenuID = "некорректный ID меню"
	msgMenuNotFound  = "меню не найдено"
	msgMenuReserved  = "меню нельзя удалить, на него есть бронирования"
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

// Handle DELETE /api/v1/menus/{menuId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	menuID, err := strconv.ParseInt(vars["menuId"], 10, 64)
	if err != nil || menuID <= 0 {
		h.logger.Warn("DELETE /menus/{id} - Invalid menu ID: %s", vars["menuId"])
		handlers.RespondBadRequest(w, msgInvalidMenuID)
		return
	}

	if err := h.service.Delete(r.Context(), menuID); err != nil {
		switch {
		case errors.Is(err, menusService.ErrMenuNotFound):
			h.logger.Warn("DELETE /menus/{id} - Menu not found: menu_id=%d", menuID)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, menusService.ErrMenuReserved):
			h.logger.Warn("DELETE /menus/{id} - Menu has reservations: menu_id=%d", menuID)
			handlers.RespondError(w, http.StatusConflict, msgMenuReserved)

		default:
			h.logger.Error("DELETE /menus/{id} - Failed to delete menu: menu_id=%d, error=%v", menuID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /menus/{id} - Menu deleted successfully: menu_id=%d", menuID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
