package resume_draft

import (
	"context"

	"github.com/shuchan/DH-ReservationService/internal/service/drafts/models"
)

type DraftsService interface {
	Resume(ctx context.Context, token string, userID int64) (*models.ResumeDraftResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
