package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/northwind-labs/employee-directory/backend/internal/config"
	"github.com/northwind-labs/employee-directory/backend/internal/domain"
)

func subjectFor(event domain.EmployeeEvent) string {
	switch event.Type {
	case domain.EmployeeCreated:
		return "Employee Directory - New employee"
	case domain.EmployeeUpdated:
		return "Employee Directory - Employee updated"
	case domain.EmployeeDeleted:
		return "Employee Directory - Employee removed"
	default:
		return ""
	}
}

func main() {
	/**********************************************
	 * create the logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * load configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		return
	}

	if cfg.Notify.To == "" {
		logger.Error("NOTIFY_TO is not configured, nothing to do")
		return
	}

	/**********************************************
	 * create the mail client
	 **********************************************/
	client, err := mail.NewClient(cfg.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.SMTP.Port),
		mail.WithUsername(cfg.SMTP.Username),
		mail.WithPassword(cfg.SMTP.Password),
	)
	if err != nil {
		logger.Error("failed to create mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("failed to reach mail server", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * connect to rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"employee_events", // queue name
		true,              // durable
		false,             // do not auto-delete when there is no consumer
		false,             // not exclusive
		false,             // wait for the broker to confirm the declare
		nil,               // no extra arguments
	)
	if err != nil {
		logger.Error("failed to declare queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",    // consumer tag assigned by the broker
		false, // manual acks
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to consume messages", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("received event", slog.String("message", string(msg.Body)))

				event := domain.EmployeeEvent{}
				if err := json.Unmarshal(msg.Body, &event); err != nil {
					logger.Error("failed to decode event", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				subject := subjectFor(event)
				if subject == "" {
					logger.Error("unsupported event type", slog.String("type", event.Type))
					_ = msg.Nack(false, false)
					continue
				}

				m := mail.NewMsg()
				if err := m.From(cfg.SMTP.Username); err != nil {
					logger.Error("failed to set sender", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(cfg.Notify.To); err != nil {
					logger.Error("failed to set recipient", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				m.Subject(subject)
				m.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
					"%s %s (employee #%d): %s at %s\n",
					event.FirstName, event.LastName, event.EmployeeID,
					event.Type, event.OccurredAt.Format(time.RFC3339),
				))

				if err := client.DialAndSend(m); err != nil {
					logger.Error("failed to send notification", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // requeue for another attempt
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("waiting for events... (press CTRL+C to exit)")
	<-sigChan

	slog.Info("shutting down notifier...")
	cancel()
	wg.Wait()
	slog.Info("notifier stopped")
}
