package events

import "context"

// Logger интерфейс логирования (реализуется pkg/logger)
type Logger interface {
	Info(format string, v ...interface{})
}

// LogPublisher пишет события в лог вместо брокера.
// Используется, когда Kafka выключена в конфигурации.
type LogPublisher struct {
	log Logger
}

// NewLogPublisher создает лог-publisher
func NewLogPublisher(log Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish логирует событие
func (p *LogPublisher) Publish(_ context.Context, event ReservationEvent) error {
	p.log.Info("event %s: reservation=%d menu=%d user=%d date=%s slot=%s",
		event.Type, event.ReservationID, event.MenuID, event.UserID, event.ProvideDate, event.TimeSlot)
	return nil
}

// Close ничего не делает
func (p *LogPublisher) Close() error {
	return nil
}
