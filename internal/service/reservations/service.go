package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	reservationRepo "github.com/shuchan/DH-ReservationService/internal/infra/storage/reservation"
	"github.com/shuchan/DH-ReservationService/internal/service/reservations/models"
)

// Service сервис для чтения бронирований
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь может видеть только свое бронирование.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	detail, err := s.reservationRepo.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if detail.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainDetail(detail), nil
}

// GetUserReservations получает бронирования пользователя, новые даты первыми
func (s *Service) GetUserReservations(ctx context.Context, userID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d", userID)

	details, err := s.reservationRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(details), userID)
	return models.FromDomainDetailList(details), nil
}

// GetDateReservations получает бронирования на дату с опциональным
// фильтром по пользователю. Используется кухней для подсчета порций.
func (s *Service) GetDateReservations(ctx context.Context, req *models.GetDateReservationsRequest) (*models.ReservationListResponse, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	s.logger.Info("GetDateReservations: fetching reservations for date=%s", req.Date.Format(domain.DateFormat))

	details, err := s.reservationRepo.ListByDate(ctx, domain.DateReservationsFilter{
		ProvideDate: req.Date,
		UserID:      req.UserID,
	})
	if err != nil {
		s.logger.Error("GetDateReservations: repository error for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetDateReservations - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDetailList(details), nil
}
