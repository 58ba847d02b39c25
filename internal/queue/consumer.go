package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/rs/zerolog/log"
)

// LogFileName is the file events are appended to inside the log dir.
const LogFileName = "reservations.log"

// Consumer drains the reservation queue into a log file.
type Consumer struct {
    URL    string
    LogDir string
}

// Run connects to RabbitMQ and consumes until ctx is cancelled.  Broken
// connections are redialed with exponential backoff capped at 30s.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(c.URL)
        if err != nil {
            log.Warn().Err(err).Dur("retry_in", backoff).Msg("reservation-consumer: dial failed")
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            backoff = nextBackoff(backoff)
            continue
        }
        backoff = time.Second

        err = c.consume(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        log.Warn().Err(err).Msg("reservation-consumer: consume loop ended, reconnecting")
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

// maxBackoff caps the redial delay.
const maxBackoff = 30 * time.Second

func nextBackoff(d time.Duration) time.Duration {
    return min(d*2, maxBackoff)
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Warn().Err(err).Msg("reservation-consumer: set QoS failed")
    }
    if _, err := ch.QueueDeclare(ReservationQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(ReservationQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.HandleMessage(d.Body); err != nil {
                log.Error().Err(err).Msg("reservation-consumer: handle message failed")
                _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// HandleMessage decodes one event and appends it to the log file.
func (c *Consumer) HandleMessage(body []byte) error {
    var ev ReservationEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if err := os.MkdirAll(c.LogDir, 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(filepath.Join(c.LogDir, LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(FormatLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// FormatLine renders ev as one human friendly log line.
func FormatLine(ev ReservationEvent) string {
    return fmt.Sprintf("[%s] Reservation %s | reservation_id=%d | volunteer_id=%d | animal_id=%d | start=%s | end=%s | approved=%t | ended=%t | status=%s | by=%d\n",
        ev.OccurredAt, ev.Action, ev.ReservationID, ev.VolunteerID, ev.AnimalID,
        ev.StartDate, ev.EndDate, ev.IsApproved, ev.IsEnded, ev.Status, ev.ActorID)
}
