package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"imperialvip/internal/config"
	"imperialvip/internal/utils"

	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueLog publishes attempts to RabbitMQ; the consumer writes them to the
// diagnostic file. When publishing fails the attempt goes to Fallback.
type QueueLog struct {
	Config   config.QueueConfig
	Fallback AttemptRecorder
}

func (q QueueLog) Record(ctx context.Context, a Attempt) error {
	if err := q.publish(ctx, a); err != nil {
		utils.LogWarn(utils.RequestIDFrom(ctx), "notify", "queue_publish", "publish failed, writing locally", err)
		if q.Fallback != nil {
			return q.Fallback.Record(ctx, a)
		}
		return err
	}
	return nil
}

func (q QueueLog) publish(ctx context.Context, a Attempt) error {
	conn, err := amqp.Dial(q.Config.URL)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(q.Config.QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	if a.At.IsZero() {
		a.At = time.Now()
	}
	body, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx, "", q.Config.QueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    a.At.UTC(),
		Body:         body,
	})
}

// RunAttemptConsumer drains the attempt queue into sink until ctx is done,
// reconnecting with backoff.
func RunAttemptConsumer(ctx context.Context, cfg config.QueueConfig, sink *FileLog) {
	backoff := time.Second
	for ctx.Err() == nil {
		conn, err := amqp.Dial(cfg.URL)
		if err != nil {
			utils.LogWarn("", "notify", "consumer_dial", fmt.Sprintf("retrying in %s", backoff), err)
			if !sleepCtx(ctx, backoff) {
				return
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeAttempts(ctx, conn, cfg.QueueName, sink)
		_ = conn.Close()
		if ctx.Err() != nil {
			return
		}
		utils.LogWarn("", "notify", "consumer_loop", "consume loop ended, reconnecting", err)
		if !sleepCtx(ctx, 2*time.Second) {
			return
		}
	}
}

func consumeAttempts(ctx context.Context, conn *amqp.Connection, queue string, sink *FileLog) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		utils.LogWarn("", "notify", "consumer_qos", "set QoS failed", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
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
			if err := handleAttempt(d.Body, sink); err != nil {
				utils.LogError("", "notify", "consumer_handle", "drop message", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func handleAttempt(body []byte, sink *FileLog) error {
	var a Attempt
	if err := json.Unmarshal(body, &a); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return sink.Record(context.Background(), a)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
