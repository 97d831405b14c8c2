package models

import (
	"time"

	"github.com/shuchan/DH-ReservationService/internal/domain"
)

// Request модели

// CreateMenuRequest запрос на создание меню
type CreateMenuRequest struct {
	Name        string    `json:"name"`
	ProvideDate time.Time `json:"provideDate"`
}

// UpdateMenuRequest запрос на изменение названия меню
type UpdateMenuRequest struct {
	Name string `json:"name"`
}

// Response модели

// MenuResponse ответ с данными меню
type MenuResponse struct {
	ID          int64  `json:"id"`
	MenuNo      string `json:"menuNo"`
	Name        string `json:"name"`
	ProvideDate string `json:"provideDate"` // "2026-03-15"
	Locked      bool   `json:"isReserved"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// MenuListResponse ответ со списком меню
type MenuListResponse struct {
	Menus []MenuResponse `json:"menus"`
}

// FromDomainMenu конвертирует domain.Menu в MenuResponse
func FromDomainMenu(m *domain.Menu) *MenuResponse {
	return &MenuResponse{
		ID:          m.ID,
		MenuNo:      m.MenuNo,
		Name:        m.Name,
		ProvideDate: m.ProvideDate.Format(domain.DateFormat),
		Locked:      m.Locked,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   m.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainMenuList конвертирует список domain.Menu в MenuListResponse
func FromDomainMenuList(menus []*domain.Menu) *MenuListResponse {
	result := &MenuListResponse{Menus: make([]MenuResponse, 0, len(menus))}
	for _, m := range menus {
		result.Menus = append(result.Menus, *FromDomainMenu(m))
	}
	return result
}
