package queue

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// defaultDialTimeout bounds the broker dial when ctx has no deadline.
const defaultDialTimeout = 5 * time.Second

// Publisher sends reservation events to RabbitMQ.  It dials per publish;
// reservation traffic is low and this keeps no connection state in the
// API process.
type Publisher struct {
    URL string
}

func NewPublisher(url string) *Publisher { return &Publisher{URL: url} }

// dialTimeout returns how long the broker dial may take under ctx.
func dialTimeout(ctx context.Context, now time.Time) (time.Duration, error) {
    if err := ctx.Err(); err != nil {
        return 0, err
    }
    deadline, ok := ctx.Deadline()
    if !ok {
        return defaultDialTimeout, nil
    }
    left := deadline.Sub(now)
    if left <= 0 {
        return 0, context.DeadlineExceeded
    }
    return left, nil
}

// PublishReservation declares the durable queue and publishes ev as a
// persistent JSON message on the default exchange.  The dial and the
// AMQP handshake stay within ctx's deadline.  Errors are returned, not
// logged; the caller decides what a failed publish means.
func (p *Publisher) PublishReservation(ctx context.Context, ev ReservationEvent) error {
    timeout, err := dialTimeout(ctx, time.Now())
    if err != nil {
        return fmt.Errorf("rabbitmq dial: %w", err)
    }
    conn, err := amqp.DialConfig(p.URL, amqp.Config{
        Heartbeat: 10 * time.Second,
        Locale:    "en_US",
        Dial:      amqp.DefaultDial(timeout),
    })
    if err != nil {
        return fmt.Errorf("rabbitmq dial: %w", err)
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("rabbitmq channel: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(
        ReservationQueue, // name
        true,             // durable
        false,            // autoDelete
        false,            // exclusive
        false,            // noWait
        nil,              // args
    ); err != nil {
        return fmt.Errorf("rabbitmq queue declare: %w", err)
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }
    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Type:         "reservation." + ev.Action,
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", ReservationQueue, false, false, pub); err != nil {
        return fmt.Errorf("rabbitmq publish: %w", err)
    }
    return nil
}
