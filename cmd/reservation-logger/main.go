// Command reservation-logger drains the reservation event queue into
// logs/reservations.log.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/animal-shelter/internal/observability"
	"github.com/iliyamo/animal-shelter/internal/queue"
)

func main() {
	_ = godotenv.Load()
	observability.InitLogger("reservation-logger", os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		log.Fatal().Msg("RABBITMQ_URL is required")
	}
	dir := os.Getenv("RESERVATION_LOG_DIR")
	if dir == "" {
		dir = "logs"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &queue.Consumer{URL: url, LogDir: dir}
	log.Info().Str("queue", queue.ReservationQueue).Str("dir", dir).Msg("consuming")
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("consumer")
	}
}
