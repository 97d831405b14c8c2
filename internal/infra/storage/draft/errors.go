package draft

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден или его TTL истек
	ErrDraftNotFound = errors.New("draft.store: draft not found or expired")

	// ErrMarshal возвращается при ошибке сериализации черновика
	ErrMarshal = errors.New("draft.store: failed to marshal draft")

	// ErrStore возвращается при ошибке обращения к Redis
	ErrStore = errors.New("draft.store: redis operation failed")
)
