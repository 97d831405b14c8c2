package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shuchan/DH-ReservationService/internal/infra/storage/draft"
	"github.com/shuchan/DH-ReservationService/internal/service/drafts/models"
	"github.com/shuchan/DH-ReservationService/internal/usecase/create_reservation"
	"github.com/shuchan/DH-ReservationService/pkg/types"
)

// Service сервис черновиков бронирования.
// Черновик позволяет клиенту отложить подтверждение: Save выдает токен,
// Resume превращает черновик в настоящее бронирование через обычный
// usecase создания со всеми его проверками.
type Service struct {
	store        DraftStore
	createUC     CreateReservationUseCase
	timeProvider TimeProvider
	logger       Logger
	ttl          time.Duration
}

// NewService создает новый экземпляр сервиса черновиков
func NewService(store DraftStore, createUC CreateReservationUseCase, logger Logger, ttl time.Duration) *Service {
	return &Service{
		store:        store,
		createUC:     createUC,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		ttl:          ttl,
	}
}

// Save сохраняет черновик и возвращает токен
func (s *Service) Save(ctx context.Context, req *models.SaveDraftRequest) (*models.SaveDraftResponse, error) {
	s.logger.Info("SaveDraft: user=%d, menu=%d, slot=%s", req.UserID, req.MenuID, req.TimeSlot)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}
	if req.MenuID <= 0 {
		return nil, fmt.Errorf("%w: menuId must be positive", ErrInvalidInput)
	}

	slot := types.TimeString(req.TimeSlot)
	if err := slot.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid timeSlot: %v", ErrInvalidInput, err)
	}

	now := s.timeProvider.Now()
	token, err := s.store.Save(ctx, &draft.Draft{
		UserID:    req.UserID,
		MenuID:    req.MenuID,
		TimeSlot:  slot,
		CreatedAt: now,
	})
	if err != nil {
		s.logger.Error("SaveDraft: store error: %v", err)
		return nil, fmt.Errorf("%w: Save - store error: %v", ErrInternal, err)
	}

	s.logger.Info("SaveDraft: saved draft token=%s for user=%d", token, req.UserID)
	return &models.SaveDraftResponse{
		Token:     token,
		ExpiresAt: now.Add(s.ttl).Format(time.RFC3339),
	}, nil
}

// Resume потребляет черновик и создает бронирование.
// Черновик удаляется до создания: повторный Resume того же токена
// вернет ErrDraftNotFound даже если создание не удалось.
func (s *Service) Resume(ctx context.Context, token string, userID int64) (*models.ResumeDraftResponse, error) {
	s.logger.Info("ResumeDraft: token=%s, user=%d", token, userID)

	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	d, err := s.store.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, draft.ErrDraftNotFound) {
			s.logger.Warn("ResumeDraft: draft token=%s not found", token)
			return nil, ErrDraftNotFound
		}
		s.logger.Error("ResumeDraft: store error: %v", err)
		return nil, fmt.Errorf("%w: Resume - store error: %v", ErrInternal, err)
	}

	if d.UserID != userID {
		s.logger.Warn("ResumeDraft: draft token=%s belongs to user=%d, not user=%d", token, d.UserID, userID)
		return nil, ErrAccessDenied
	}

	resp, err := s.createUC.Execute(ctx, &create_reservation.Request{
		UserID:   d.UserID,
		MenuID:   d.MenuID,
		TimeSlot: d.TimeSlot,
	})
	if err != nil {
		// Ошибки usecase пробрасываются как есть - handler мапит их на
		// HTTP статусы
		return nil, err
	}

	s.logger.Info("ResumeDraft: created reservation id=%d from draft token=%s", resp.ID, token)
	return models.FromUseCaseResponse(resp), nil
}
