package domain

// Default configuration values
const (
	DefaultOpenTime  = "07:30"
	DefaultCloseTime = "19:30"

	DefaultMinLeadDays      = 1  // Бронировать можно не позднее чем за сутки
	DefaultCancelCutoffHour = 15 // Час дня накануне, после которого отмена запрещена
	DefaultDraftTTLMinutes  = 30
)

// Business validation constants
const (
	MinMenuNameLength = 1
	MaxMenuNameLength = 200

	MinLeadDaysLowerBound = 0
	MinLeadDaysUpperBound = 30

	MaxDraftTTLMinutes = 1440 // 1 day
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
