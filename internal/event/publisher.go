package event

import (
	"encoding/json"
	"log"
	"time"

	"github.com/streadway/amqp"
)

// Routing keys published on the topic exchange.
const (
	TestStarted     = "test.started"
	ProgressUpdated = "test.progress.updated"
	ResultGenerated = "test.result.generated"
	ResultSaved     = "test.result.saved"
	MemberJoined    = "member.joined"
	MemberLogin     = "member.login"
	MemberLinked    = "member.social_linked"
)

// Publisher emits domain events to a RabbitMQ topic exchange. It is
// optional: a nil *Publisher is safe to call and publishes nothing.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewPublisher(amqpURL, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish sends one event with the routing key. Failures are logged and
// swallowed; event delivery never fails a request.
func (p *Publisher) Publish(routingKey string, payload any) {
	if p == nil {
		return
	}

	body, err := json.Marshal(map[string]any{
		"type":      routingKey,
		"payload":   payload,
		"timestamp": time.Now(),
	})
	if err != nil {
		log.Printf("event %s: marshal failed: %v", routingKey, err)
		return
	}

	err = p.channel.Publish(p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		log.Printf("event %s: publish failed: %v", routingKey, err)
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
