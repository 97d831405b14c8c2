package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	"github.com/shuchan/DH-ReservationService/internal/infra/events"
	calendarRepo "github.com/shuchan/DH-ReservationService/internal/infra/storage/calendar"
	menuRepo "github.com/shuchan/DH-ReservationService/internal/infra/storage/menu"
	reservationRepo "github.com/shuchan/DH-ReservationService/internal/infra/storage/reservation"
	"github.com/shuchan/DH-ReservationService/pkg/txmanager"
)

const publishTimeout = 5 * time.Second

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	menuRepo        MenuRepository
	calendarRepo    CalendarRepository
	publisher       EventPublisher
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
	minLeadDays     int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	menuRepo MenuRepository,
	calendarRepo CalendarRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
	minLeadDays int,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		menuRepo:        menuRepo,
		calendarRepo:    calendarRepo,
		publisher:       publisher,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		minLeadDays:     minLeadDays,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка эксклюзивности меню и запись выполняются в сериализуемой
// транзакции: два конкурентных запроса с разными меню на одну дату не
// могут пройти проверку одновременно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, menu=%d, slot=%s", req.UserID, req.MenuID, req.TimeSlot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем меню - оно определяет дату бронирования
	menu, err := uc.menuRepo.GetByID(ctx, req.MenuID)
	if err != nil {
		if errors.Is(err, menuRepo.ErrMenuNotFound) {
			uc.logger.Warn("CreateReservation: menu id=%d not found", req.MenuID)
			return nil, ErrMenuNotFound
		}
		uc.logger.Error("CreateReservation: failed to get menu id=%d: %v", req.MenuID, err)
		return nil, fmt.Errorf("%w: failed to get menu: %v", ErrInternal, err)
	}

	// 4. Проверяем минимальный срок бронирования
	if err := validateLeadTime(menu.ProvideDate, now, uc.minLeadDays); err != nil {
		uc.logger.Warn("CreateReservation: lead time validation failed for date %s: %v",
			menu.ProvideDate.Format(domain.DateFormat), err)
		return nil, err
	}

	// 5. Получаем расписание дня; без строки в календаре действует
	// расписание по умолчанию
	day, err := uc.calendarRepo.GetByDate(ctx, menu.ProvideDate)
	if err != nil {
		if !errors.Is(err, calendarRepo.ErrBusinessDayNotFound) {
			uc.logger.Error("CreateReservation: failed to get business day: %v", err)
			return nil, fmt.Errorf("%w: failed to get business day: %v", ErrInternal, err)
		}
		defaultDay := domain.DefaultBusinessDay(menu.ProvideDate)
		day = &defaultDay
	}

	// 6. Проверяем слот против сетки и рабочего окна
	if err := validateSlot(req.TimeSlot, day); err != nil {
		uc.logger.Warn("CreateReservation: slot %s not available on %s: %v",
			req.TimeSlot, menu.ProvideDate.Format(domain.DateFormat), err)
		return nil, err
	}

	var result *domain.Reservation

	// 7. Проверка эксклюзивности и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Блокируем все меню на дату (FOR UPDATE)
		menus, err := uc.menuRepo.GetByProvideDate(txCtx, menu.ProvideDate)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get menus for date: %v", err)
			return fmt.Errorf("%w: failed to get menus: %v", ErrInternal, err)
		}

		// 7.2. Получаем бронирования на дату (FOR UPDATE OF r).
		// Любое существующее бронирование с другим меню - конфликт.
		reservations, err := uc.reservationRepo.ListByDate(txCtx, domain.DateReservationsFilter{
			ProvideDate: menu.ProvideDate,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations for date: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		for _, r := range reservations {
			if r.MenuID != req.MenuID {
				uc.logger.Warn("CreateReservation: menu conflict on %s: requested=%d, reserved=%d",
					menu.ProvideDate.Format(domain.DateFormat), req.MenuID, r.MenuID)
				return ErrMenuConflict
			}
		}

		// 7.3. Свежая копия меню из заблокированной выборки: решение о
		// закреплении принимается по ней, а не по снимку до транзакции -
		// конкурентная отмена могла успеть освободить меню
		current := findMenu(menus, req.MenuID)
		if current == nil {
			// Меню удалили между предварительным чтением и транзакцией
			return ErrMenuNotFound
		}

		// Страховка от рассинхронизации флага: закреплено может быть
		// только запрошенное меню
		if locked := domain.LockedMenu(menus); locked != nil && !current.IsReservable(locked) {
			uc.logger.Warn("CreateReservation: menu id=%d is locked for %s",
				locked.ID, menu.ProvideDate.Format(domain.DateFormat))
			return ErrMenuConflict
		}

		// 7.4. Создаем бронирование
		reservation := &domain.Reservation{
			MenuID:   req.MenuID,
			UserID:   req.UserID,
			TimeSlot: req.TimeSlot,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrDuplicateReservation) {
				return ErrDuplicateReservation
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// 7.5. Первое бронирование закрепляет меню за датой
		if !current.Locked {
			if err := uc.menuRepo.SetLocked(txCtx, req.MenuID, true); err != nil {
				uc.logger.Error("CreateReservation: failed to lock menu id=%d: %v", req.MenuID, err)
				return fmt.Errorf("%w: failed to lock menu: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		// Исчерпание ретраев сериализации - временная недоступность
		if errors.Is(err, txmanager.ErrRetriesExhausted) || errors.Is(err, txmanager.ErrTransaction) {
			uc.logger.Error("CreateReservation: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	uc.publishCreated(result, menu)

	return &Response{
		ID:          result.ID,
		MenuID:      result.MenuID,
		UserID:      result.UserID,
		TimeSlot:    result.TimeSlot,
		MenuNo:      menu.MenuNo,
		MenuName:    menu.Name,
		ProvideDate: menu.ProvideDate,
		CreatedAt:   result.CreatedAt,
	}, nil
}

// publishCreated отправляет событие о создании best-effort: ошибка
// публикации не влияет на результат операции
func (uc *UseCase) publishCreated(r *domain.Reservation, menu *domain.Menu) {
	event := events.ReservationEvent{
		Type:          events.TypeReservationCreated,
		ReservationID: r.ID,
		MenuID:        r.MenuID,
		UserID:        r.UserID,
		ProvideDate:   menu.ProvideDate.Format(domain.DateFormat),
		TimeSlot:      string(r.TimeSlot),
		OccurredAt:    uc.timeProvider.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Warn("CreateReservation: failed to publish event for reservation id=%d: %v", r.ID, err)
		}
	}()
}

func findMenu(menus []*domain.Menu, id int64) *domain.Menu {
	for _, m := range menus {
		if m.ID == id {
			return m
		}
	}
	return nil
}
