package mq

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"AssignReminders/config"
)

// 提醒投递的拓扑：一个 direct exchange，一个投递队列
const (
	ReminderExchange      = "reminders.direct"
	ReminderDeliveryQueue = "reminder.delivery"
	ReminderDeliveryKey   = "reminder.delivery"
)

var (
	conn    *amqp.Connection
	connMu  sync.Mutex
	initErr error
	inited  bool
)

func Init() error {
	connMu.Lock()
	defer connMu.Unlock()

	if inited {
		return initErr
	}
	inited = true

	url := config.Cfg.GetRabbitMQURL()
	conn, initErr = amqp.Dial(url)
	if initErr != nil {
		return initErr
	}

	ch, err := conn.Channel()
	if err != nil {
		initErr = err
		return err
	}
	defer ch.Close()

	if err := declareTopology(ch); err != nil {
		initErr = err
		return err
	}

	return nil
}

func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(
		ReminderExchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(
		ReminderDeliveryQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	return ch.QueueBind(ReminderDeliveryQueue, ReminderDeliveryKey, ReminderExchange, false, nil)
}

func Connection() *amqp.Connection {
	connMu.Lock()
	defer connMu.Unlock()
	return conn
}

func Close(ctx context.Context) error {
	connMu.Lock()
	defer connMu.Unlock()

	if conn == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
