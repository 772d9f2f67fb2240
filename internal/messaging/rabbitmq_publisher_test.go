package messaging_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/zharashanus/push-analytic/internal/messaging"
	"github.com/zharashanus/push-analytic/internal/models"
)

// TestRabbitMQPublisherIntegration starts a RabbitMQ container, publishes a
// push event and verifies it arrives on a bound queue intact.
func TestRabbitMQPublisherIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "rabbitmq:3-management",
		ExposedPorts: []string{"5672/tcp"},
		Env: map[string]string{
			"RABBITMQ_DEFAULT_USER": "guest",
			"RABBITMQ_DEFAULT_PASS": "guest",
		},
		WaitingFor: wait.ForLog("Server startup complete"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start rabbitmq container: %v", err)
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate rabbitmq container: %v", err)
		}
	}()

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get rabbitmq host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5672")
	if err != nil {
		t.Fatalf("failed to get rabbitmq port: %v", err)
	}
	url := fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())

	const (
		exchange   = "push.notifications"
		routingKey = "push.notifications.generated"
	)

	publisher, err := messaging.NewRabbitMQPublisher(url, exchange, routingKey)
	if err != nil {
		t.Fatalf("failed to create publisher: %v", err)
	}
	defer publisher.Close()

	// Bind a throwaway queue to capture what the publisher sends.
	conn, err := amqp.Dial(url)
	if err != nil {
		t.Fatalf("failed to dial rabbitmq: %v", err)
	}
	defer conn.Close()
	channel, err := conn.Channel()
	if err != nil {
		t.Fatalf("failed to open channel: %v", err)
	}
	queue, err := channel.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		t.Fatalf("failed to declare queue: %v", err)
	}
	if err := channel.QueueBind(queue.Name, routingKey, exchange, false, nil); err != nil {
		t.Fatalf("failed to bind queue: %v", err)
	}
	msgs, err := channel.Consume(queue.Name, "", true, false, false, false, nil)
	if err != nil {
		t.Fatalf("failed to consume: %v", err)
	}

	event := models.PushNotificationEvent{
		EventID:         "11111111-1111-1111-1111-111111111111",
		ClientCode:      42,
		Product:         "Карта для путешествий",
		Message:         "Рамазан, карта ждёт вас в приложении.",
		Score:           0.625,
		ExpectedBenefit: 1096,
		Priority:        models.PriorityMedium,
		Timestamp:       time.Now().UTC(),
	}
	if err := publisher.PublishPushEvent(ctx, event); err != nil {
		t.Fatalf("failed to publish event: %v", err)
	}

	select {
	case msg := <-msgs:
		var got models.PushNotificationEvent
		if err := json.Unmarshal(msg.Body, &got); err != nil {
			t.Fatalf("failed to unmarshal event: %v", err)
		}
		if got.EventID != event.EventID {
			t.Errorf("expected event id %s, got %s", event.EventID, got.EventID)
		}
		if got.ClientCode != event.ClientCode || got.Product != event.Product {
			t.Errorf("event payload diverged: %+v", got)
		}
		if msg.MessageId != event.EventID {
			t.Errorf("expected message id %s, got %s", event.EventID, msg.MessageId)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for event to be published")
	}
}
