package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/BrianKimathi/event-booking-api/config"
	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	pginfra "github.com/BrianKimathi/event-booking-api/internal/infrastructure/postgres"
	"github.com/BrianKimathi/event-booking-api/pkg/mailer"
	mailtpl "github.com/BrianKimathi/event-booking-api/pkg/mailer/templates"
)

// Consumes email jobs from RabbitMQ, delivers them via Mailgun and
// flips the persisted notification row to SENT or FAILED.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if !cfg.MailSendEnabled {
		log.Println("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	emails := pginfra.NewEmailRepository(pool)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQEmailQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	// Re-drive rows that were persisted but never delivered, e.g. when
	// the API could not reach the broker.
	requeuePending(ctx, emails, ch, cfg.RabbitMQEmailQueue)

	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var job mailer.EmailJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}

			subject := job.Subject
			html := job.HTML
			if job.Template != "" {
				h, rerr := mailtpl.RenderHTML(job.Template, job.Data)
				if rerr != nil {
					log.Printf("render %s failed: %v", job.Template, rerr)
					markFailed(ctx, emails, job.NotificationID)
					_ = msg.Nack(false, false)
					continue
				}
				html = h
				if subject == "" {
					subject = mailtpl.Subject(job.Template)
				}
			}

			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := mg.Send(c, job.To, subject, job.Text, html)
			cancel()
			if err != nil {
				// Requeue for another attempt; mark failed only on the
				// final drop (no redelivery yet means first attempt).
				log.Printf("send to %s failed: %v", job.To, err)
				if msg.Redelivered {
					markFailed(ctx, emails, job.NotificationID)
					_ = msg.Nack(false, false)
				} else {
					_ = msg.Nack(false, true)
				}
				continue
			}

			if job.NotificationID != 0 {
				if err := emails.MarkSent(ctx, job.NotificationID, time.Now()); err != nil {
					log.Printf("mark sent %d failed: %v", job.NotificationID, err)
				}
			}
			_ = msg.Ack(false)
		}
		close(done)
	}()

	log.Printf("email worker listening on queue=%s", cfg.RabbitMQEmailQueue)
	<-stop
	log.Printf("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// requeuePending republishes stale PENDING notifications. Fresh rows
// are skipped: their job is usually still sitting in the queue.
func requeuePending(ctx context.Context, emails *pginfra.EmailRepository, ch *amqp.Channel, queue string) {
	pending, err := emails.ListByStatus(ctx, entity.EmailPending, 100)
	if err != nil {
		log.Printf("list pending notifications: %v", err)
		return
	}
	cutoff := time.Now().Add(-10 * time.Minute)
	requeued := 0
	for _, n := range pending {
		if n.CreatedAt.After(cutoff) {
			continue
		}
		job := mailer.EmailJob{
			NotificationID: n.ID,
			To:             n.RecipientEmail,
			Subject:        n.Subject,
			HTML:           n.Body,
		}
		body, err := json.Marshal(job)
		if err != nil {
			log.Printf("marshal requeue job %d: %v", n.ID, err)
			continue
		}
		err = ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
		if err != nil {
			log.Printf("requeue notification %d: %v", n.ID, err)
			continue
		}
		requeued++
	}
	if requeued > 0 {
		log.Printf("requeued %d stale pending notifications", requeued)
	}
}

func markFailed(ctx context.Context, emails *pginfra.EmailRepository, id int64) {
	if id == 0 {
		return
	}
	if err := emails.MarkFailed(ctx, id); err != nil {
		log.Printf("mark failed %d: %v", id, err)
	}
}
