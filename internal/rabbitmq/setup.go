package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// AuditQueue получает копию всех событий аудита.
const AuditQueue = "audit.all"

// SetupChannel открывает канал и объявляет topic-обменник exchange
// с очередью AuditQueue, привязанной ко всем ключам.
func SetupChannel(conn *amqp.Connection, exchange string) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	_, err = ch.QueueDeclare(
		AuditQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = ch.QueueBind(AuditQueue, "#", exchange, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ch, nil
}
