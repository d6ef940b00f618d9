package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/mmvolkov/shop/internal/email"
	"github.com/mmvolkov/shop/internal/infrastructure/kafka"
	"github.com/mmvolkov/shop/internal/notification"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	topic := getEnv("KAFKA_TOPIC", "stock-movements")
	groupID := getEnv("KAFKA_GROUP_ID", "stock-notifier")

	threshold, err := strconv.Atoi(getEnv("LOW_STOCK_THRESHOLD", "5"))
	if err != nil {
		log.Fatalf("[Notifier] Invalid LOW_STOCK_THRESHOLD: %v", err)
	}

	var sender notification.AlertSender
	recipient := os.Getenv("ALERT_EMAIL")
	if smtpHost := os.Getenv("SMTP_HOST"); smtpHost != "" && recipient != "" {
		sender = email.NewService(
			smtpHost,
			getEnv("SMTP_PORT", "587"),
			getEnv("SMTP_FROM", "alerts@shop.local"),
		)
		log.Printf("[Notifier] Low-stock alerts will be mailed to %s", recipient)
	} else {
		log.Println("[Notifier] SMTP not configured, alerts are log-only")
	}

	handler := notification.NewHandler(sender, recipient, threshold)

	consumer := kafka.NewConsumer(brokers, topic, groupID)
	defer consumer.Close()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("[Notifier] Shutting down...")
		cancel()
	}()

	log.Printf("[Notifier] Consuming %s via %v (threshold %d)", topic, brokers, threshold)
	if err := consumer.Consume(ctx, handler.HandleMovement); err != nil && ctx.Err() == nil {
		log.Fatalf("[Notifier] Consumer error: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
