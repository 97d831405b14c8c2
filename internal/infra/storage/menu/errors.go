package menu

import "errors"

var (
	// ErrMenuNotFound возвращается, когда меню не найдено
	ErrMenuNotFound = errors.New("menu.repository: menu not found")

	// ErrDuplicateMenuNo возвращается при попытке создать меню с занятым номером
	ErrDuplicateMenuNo = errors.New("menu.repository: menu_no already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("menu.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("menu.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("menu.repository: failed to scan row")
)
