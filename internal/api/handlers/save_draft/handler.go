package save_draft

import (
	"errors"
	"net/http"

	"github.com/shuchan/DH-ReservationService/internal/api/handlers"
	"github.com/shuchan/DH-ReservationService/internal/api/middleware"
	draftsService "github.com/shuchan/DH-ReservationService/internal/service/drafts"
	"github.com/shuchan/DH-ReservationService/internal/service/drafts/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle POST /api/v1/drafts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req models.SaveDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drafts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// UserID берется из аутентификации, а не из тела
	req.UserID = userID

	result, err := h.service.Save(r.Context(), &req)
	if err != nil {
		if errors.Is(err, draftsService.ErrInvalidInput) {
			h.logger.Warn("POST /drafts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		h.logger.Error("POST /drafts - Failed to save draft: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /drafts - Draft saved: user_id=%d, token=%s", userID, result.Token)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
