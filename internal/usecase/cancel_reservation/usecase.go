package cancel_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	"github.com/shuchan/DH-ReservationService/internal/infra/events"
	reservationRepo "github.com/shuchan/DH-ReservationService/internal/infra/storage/reservation"
	"github.com/shuchan/DH-ReservationService/pkg/txmanager"
)

const publishTimeout = 5 * time.Second

// UseCase use case для отмены бронирования
type UseCase struct {
	reservationRepo  ReservationRepository
	menuRepo         MenuRepository
	publisher        EventPublisher
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
	cancelCutoffHour int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	menuRepo MenuRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
	cancelCutoffHour int,
) *UseCase {
	return &UseCase{
		reservationRepo:  reservationRepo,
		menuRepo:         menuRepo,
		publisher:        publisher,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		cancelCutoffHour: cancelCutoffHour,
	}
}

// Execute выполняет use case отмены бронирования.
// Отмена удаляет строку; последняя отмена освобождает меню даты.
// Удаление и пересчет выполняются в сериализуемой транзакции, чтобы
// конкурентная отмена и создание не рассинхронизировали флаг меню.
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("CancelReservation: reservation=%d, user=%d", req.ReservationID, req.UserID)

	// 1. Валидация входных данных
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	// 2. Получаем бронирование вместе с данными меню
	detail, err := uc.reservationRepo.GetDetailByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: reservation id=%d not found", req.ReservationID)
			return ErrReservationNotFound
		}
		uc.logger.Error("CancelReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 3. Отменять можно только свое бронирование
	if detail.UserID != req.UserID {
		uc.logger.Warn("CancelReservation: reservation id=%d belongs to user=%d, not user=%d",
			req.ReservationID, detail.UserID, req.UserID)
		return ErrAccessDenied
	}

	// 4. Проверяем дедлайн отмены
	now := uc.timeProvider.Now()
	if err := validateCutoff(detail.ProvideDate, now, uc.cancelCutoffHour); err != nil {
		uc.logger.Warn("CancelReservation: cutoff passed for reservation id=%d (date %s)",
			req.ReservationID, detail.ProvideDate.Format(domain.DateFormat))
		return err
	}

	// 5. Удаляем и при необходимости освобождаем меню
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Блокируем меню даты, чтобы конкурентное создание не
		// увидело освобожденное меню раньше времени
		if _, err := uc.menuRepo.GetByProvideDate(txCtx, detail.ProvideDate); err != nil {
			uc.logger.Error("CancelReservation: failed to lock menus for date: %v", err)
			return fmt.Errorf("%w: failed to lock menus: %v", ErrInternal, err)
		}

		// 5.2. Удаляем бронирование
		if err := uc.reservationRepo.Delete(txCtx, req.ReservationID); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				// Конкурентная отмена уже удалила строку
				return ErrReservationNotFound
			}
			uc.logger.Error("CancelReservation: failed to delete reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to delete reservation: %v", ErrInternal, err)
		}

		// 5.3. Последнее бронирование меню освобождает дату
		count, err := uc.reservationRepo.CountByMenuID(txCtx, detail.MenuID)
		if err != nil {
			uc.logger.Error("CancelReservation: failed to count reservations for menu id=%d: %v", detail.MenuID, err)
			return fmt.Errorf("%w: failed to count reservations: %v", ErrInternal, err)
		}

		if count == 0 {
			if err := uc.menuRepo.SetLocked(txCtx, detail.MenuID, false); err != nil {
				uc.logger.Error("CancelReservation: failed to unlock menu id=%d: %v", detail.MenuID, err)
				return fmt.Errorf("%w: failed to unlock menu: %v", ErrInternal, err)
			}
			uc.logger.Info("CancelReservation: menu id=%d unlocked for %s",
				detail.MenuID, detail.ProvideDate.Format(domain.DateFormat))
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrRetriesExhausted) || errors.Is(err, txmanager.ErrTransaction) {
			uc.logger.Error("CancelReservation: transaction failed: %v", err)
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		return err
	}

	uc.logger.Info("CancelReservation: successfully cancelled reservation id=%d", req.ReservationID)

	uc.publishCancelled(detail)

	return nil
}

// validateCutoff проверяет дедлайн отмены: после cutoffHour часов дня,
// предшествующего дате подачи, отмена запрещена
func validateCutoff(provideDate time.Time, now time.Time, cutoffHour int) error {
	cutoff := time.Date(provideDate.Year(), provideDate.Month(), provideDate.Day(),
		cutoffHour, 0, 0, 0, now.Location()).
		AddDate(0, 0, -1)

	if !now.Before(cutoff) {
		return fmt.Errorf("%w: cancellation closed at %s", ErrTooLateToCancel, cutoff.Format("2006-01-02 15:04"))
	}

	return nil
}

// publishCancelled отправляет событие об отмене best-effort
func (uc *UseCase) publishCancelled(detail *domain.ReservationDetail) {
	event := events.ReservationEvent{
		Type:          events.TypeReservationCancelled,
		ReservationID: detail.ID,
		MenuID:        detail.MenuID,
		UserID:        detail.UserID,
		ProvideDate:   detail.ProvideDate.Format(domain.DateFormat),
		TimeSlot:      string(detail.TimeSlot),
		OccurredAt:    uc.timeProvider.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Warn("CancelReservation: failed to publish event for reservation id=%d: %v", detail.ID, err)
		}
	}()
}
