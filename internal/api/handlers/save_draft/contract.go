package save_draft

import (
	"context"

	"github.com/shuchan/DH-ReservationService/internal/service/drafts/models"
)

type DraftsService interface {
	Save(ctx context.Context, req *models.SaveDraftRequest) (*models.SaveDraftResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
