package menus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	menuRepo "github.com/shuchan/DH-ReservationService/internal/infra/storage/menu"
	"github.com/shuchan/DH-ReservationService/internal/service/menus/models"
)

// Service сервис для работы с меню
type Service struct {
	menuRepo        MenuRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса меню
func NewService(
	menuRepo MenuRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		menuRepo:        menuRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Create создает меню на дату. Номер меню генерируется из даты и
// порядкового номера: yyyymmdd0001, yyyymmdd0002, ...
// Генерация и запись выполняются в транзакции; гонку за номер ловит
// уникальный индекс по menu_no.
func (s *Service) Create(ctx context.Context, req *models.CreateMenuRequest) (*models.MenuResponse, error) {
	s.logger.Info("CreateMenu: name=%q, date=%s", req.Name, req.ProvideDate.Format(domain.DateFormat))

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("CreateMenu: validation failed: %v", err)
		return nil, err
	}

	var created *domain.Menu

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		count, err := s.menuRepo.CountByProvideDate(txCtx, req.ProvideDate)
		if err != nil {
			s.logger.Error("CreateMenu: failed to count menus: %v", err)
			return fmt.Errorf("%w: CreateMenu - count menus: %v", ErrInternal, err)
		}

		menu := &domain.Menu{
			MenuNo:      domain.BuildMenuNo(req.ProvideDate, count+1),
			Name:        strings.TrimSpace(req.Name),
			ProvideDate: req.ProvideDate,
		}

		created, err = s.menuRepo.Create(txCtx, menu)
		if err != nil {
			if errors.Is(err, menuRepo.ErrDuplicateMenuNo) {
				return ErrDuplicateMenuNo
			}
			s.logger.Error("CreateMenu: failed to create menu: %v", err)
			return fmt.Errorf("%w: CreateMenu - repository error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateMenu: successfully created menu id=%d no=%s", created.ID, created.MenuNo)
	return models.FromDomainMenu(created), nil
}

// GetByID получает меню по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.MenuResponse, error) {
	menu, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, menuRepo.ErrMenuNotFound) {
			s.logger.Warn("GetMenu: menu id=%d not found", id)
			return nil, ErrMenuNotFound
		}
		s.logger.Error("GetMenu: repository error for menu id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainMenu(menu), nil
}

// MenusForDate возвращает меню, доступные для бронирования на дату.
// Пока ни одно меню не закреплено - возвращаются все меню даты.
// Как только появилось закрепленное меню, видно только оно.
func (s *Service) MenusForDate(ctx context.Context, date time.Time) (*models.MenuListResponse, error) {
	menus, err := s.menuRepo.GetByProvideDate(ctx, date)
	if err != nil {
		s.logger.Error("MenusForDate: repository error for date %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: MenusForDate - repository error: %v", ErrInternal, err)
	}

	if locked := domain.LockedMenu(menus); locked != nil {
		return models.FromDomainMenuList([]*domain.Menu{locked}), nil
	}

	return models.FromDomainMenuList(menus), nil
}

// Update изменяет название меню
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateMenuRequest) (*models.MenuResponse, error) {
	s.logger.Info("UpdateMenu: id=%d, name=%q", id, req.Name)

	name := strings.TrimSpace(req.Name)
	if len(name) < domain.MinMenuNameLength || len(name) > domain.MaxMenuNameLength {
		return nil, fmt.Errorf("%w: name length must be between %d and %d",
			ErrInvalidInput, domain.MinMenuNameLength, domain.MaxMenuNameLength)
	}

	menu, err := s.menuRepo.Update(ctx, id, name)
	if err != nil {
		if errors.Is(err, menuRepo.ErrMenuNotFound) {
			s.logger.Warn("UpdateMenu: menu id=%d not found", id)
			return nil, ErrMenuNotFound
		}
		s.logger.Error("UpdateMenu: repository error for menu id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainMenu(menu), nil
}

// Delete удаляет меню. Меню с бронированиями удалить нельзя.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("DeleteMenu: id=%d", id)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		count, err := s.reservationRepo.CountByMenuID(txCtx, id)
		if err != nil {
			s.logger.Error("DeleteMenu: failed to count reservations for menu id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - count reservations: %v", ErrInternal, err)
		}
		if count > 0 {
			s.logger.Warn("DeleteMenu: menu id=%d has %d reservations", id, count)
			return ErrMenuReserved
		}

		if err := s.menuRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, menuRepo.ErrMenuNotFound) {
				return ErrMenuNotFound
			}
			s.logger.Error("DeleteMenu: repository error for menu id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("DeleteMenu: successfully deleted menu id=%d", id)
	return nil
}

func validateCreateRequest(req *models.CreateMenuRequest) error {
	name := strings.TrimSpace(req.Name)
	if len(name) < domain.MinMenuNameLength || len(name) > domain.MaxMenuNameLength {
		return fmt.Errorf("%w: name length must be between %d and %d",
			ErrInvalidInput, domain.MinMenuNameLength, domain.MaxMenuNameLength)
	}
	if req.ProvideDate.IsZero() {
		return fmt.Errorf("%w: provideDate is required", ErrInvalidInput)
	}
	return nil
}
